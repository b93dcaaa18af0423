package token

// keywords holds the reserved C# keywords. Contextual keywords such as get,
// set, partial or where are lexed as identifiers and matched by text.
var keywords = map[string]bool{
	"abstract": true, "as": true, "base": true, "bool": true, "break": true,
	"byte": true, "case": true, "catch": true, "char": true, "checked": true,
	"class": true, "const": true, "continue": true, "decimal": true, "default": true,
	"delegate": true, "do": true, "double": true, "else": true, "enum": true,
	"event": true, "explicit": true, "extern": true, "false": true, "finally": true,
	"fixed": true, "float": true, "for": true, "foreach": true, "goto": true,
	"if": true, "implicit": true, "in": true, "int": true, "interface": true,
	"internal": true, "is": true, "lock": true, "long": true, "namespace": true,
	"new": true, "null": true, "object": true, "operator": true, "out": true,
	"override": true, "params": true, "private": true, "protected": true, "public": true,
	"readonly": true, "ref": true, "return": true, "sbyte": true, "sealed": true,
	"short": true, "sizeof": true, "stackalloc": true, "static": true, "string": true,
	"struct": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "uint": true, "ulong": true, "unchecked": true,
	"unsafe": true, "ushort": true, "using": true, "virtual": true, "void": true,
	"volatile": true, "while": true,
}

// IsKeyword reports whether s is a reserved keyword
func IsKeyword(s string) bool {
	return keywords[s]
}

// Keywords returns the reserved keyword set. The result must not be modified.
func Keywords() map[string]bool {
	return keywords
}

// punctuators is ordered longest first for maximal munch. ">>" and ">>="
// are deliberately absent; the parser joins adjacent ">" tokens.
var punctuators = []string{
	"<<=", "??=", "...",
	"&&", "||", "++", "--", "->", "==", "!=", "<=", ">=", "+=", "-=", "*=", "/=",
	"%=", "&=", "|=", "^=", "<<", "=>", "::", "??", "?.",
	"{", "}", "[", "]", "(", ")", ".", ",", ":", ";", "+", "-", "*", "/", "%",
	"&", "|", "^", "!", "~", "=", "<", ">", "?",
}

// Punctuators returns the punctuator table, longest first.
func Punctuators() []string {
	return punctuators
}
