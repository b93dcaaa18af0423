package ast

// RuleType identifies the syntactic category of a node. Every node has
// exactly one rule type, fixed when the node is built.
type RuleType int

const (
	// Terminal marks a leaf holding a single token.
	Terminal RuleType = iota

	// compilation units and namespaces
	CompilationUnit
	ExternAliasDirective
	UsingDirective
	NamespaceDeclaration
	QualifiedIdentifier
	NamespaceBody
	TypeDeclaration
	Modifier
	Attributes
	AttributeSection
	AttributeTargetSpecifier
	Attribute
	AttributeArguments

	// types
	Type
	PredefinedType
	NamespaceOrTypeName
	TypeArgumentList
	RankSpecifier
	TupleType

	// classes and structs
	ClassDeclaration
	ClassBase
	TypeParameterList
	TypeParameter
	TypeParameterConstraintsClause
	ClassBody
	ClassMemberDeclaration
	ConstantDeclaration
	FieldDeclaration
	VariableDeclarator
	VariableInitializer
	MethodDeclaration
	MemberName
	ReturnType
	FormalParameterList
	FixedParameter
	ParameterModifier
	ParameterArray
	MethodBody
	PropertyDeclaration
	AccessorDeclarations
	GetAccessorDeclaration
	SetAccessorDeclaration
	AccessorBody
	EventDeclaration
	EventAccessorDeclarations
	AddAccessorDeclaration
	RemoveAccessorDeclaration
	IndexerDeclaration
	OperatorDeclaration
	OperatorBody
	ConstructorDeclaration
	ConstructorInitializer
	ConstructorBody
	StaticConstructorDeclaration
	StaticConstructorBody
	DestructorDeclaration
	DestructorBody
	StructDeclaration
	StructBody
	RecordDeclaration
	RecordBase

	// interfaces, enums and delegates
	InterfaceDeclaration
	InterfaceBase
	InterfaceBody
	InterfaceMemberDeclaration
	InterfaceMethodDeclaration
	InterfacePropertyDeclaration
	InterfaceAccessors
	InterfaceEventDeclaration
	InterfaceIndexerDeclaration
	EnumDeclaration
	EnumBase
	EnumBody
	EnumMemberDeclaration
	DelegateDeclaration

	// statements
	Block
	Statement
	LabeledStatement
	DeclarationStatement
	LocalVariableDeclaration
	LocalVariableDeclarator
	LocalConstantDeclaration
	LocalFunctionDeclaration
	EmbeddedStatement
	EmptyStatement
	ExpressionStatement
	IfStatement
	SwitchStatement
	SwitchBlock
	SwitchSection
	SwitchLabel
	WhileStatement
	DoStatement
	ForStatement
	ForInitializer
	ForCondition
	ForIterator
	ForeachStatement
	BreakStatement
	ContinueStatement
	GotoStatement
	ReturnStatement
	ThrowStatement
	TryStatement
	CatchClause
	ExceptionFilter
	FinallyClause
	CheckedStatement
	UncheckedStatement
	LockStatement
	UsingStatement
	YieldStatement
	UnsafeStatement
	FixedStatement

	// expressions
	Expression
	AssignmentExpression
	LambdaExpression
	LambdaParameters
	LambdaParameter
	AnonymousMethodExpression
	QueryExpression
	FromClause
	QueryBody
	LetClause
	WhereClause
	JoinClause
	OrderbyClause
	Ordering
	SelectClause
	GroupClause
	QueryContinuation
	ConditionalExpression
	NullCoalescingExpression
	ConditionalOrExpression
	ConditionalAndExpression
	InclusiveOrExpression
	ExclusiveOrExpression
	AndExpression
	EqualityExpression
	RelationalExpression
	ShiftExpression
	AdditiveExpression
	MultiplicativeExpression
	UnaryExpression
	CastExpression
	AwaitExpression
	PreIncrementExpression
	PreDecrementExpression
	PrimaryExpression
	SimpleName
	ParenthesizedExpression
	TupleExpression
	MemberAccess
	ArgumentList
	Argument
	ElementAccess
	PostIncrementExpression
	PostDecrementExpression
	ThisAccess
	BaseAccess
	ObjectCreationExpression
	ArrayCreationExpression
	ObjectOrCollectionInitializer
	MemberInitializer
	ElementInitializer
	ArrayInitializer
	AnonymousObjectCreationExpression
	MemberDeclarator
	TypeofExpression
	DefaultValueExpression
	CheckedExpression
	UncheckedExpression
	SizeofExpression
	NameofExpression
	StackallocExpression
	ThrowExpression
	SwitchExpression
	SwitchExpressionArm

	ruleTypeCount
)

var ruleNames = [...]string{
	CompilationUnit:                   "compilationUnit",
	ExternAliasDirective:              "externAliasDirective",
	UsingDirective:                    "usingDirective",
	NamespaceDeclaration:              "namespaceDeclaration",
	QualifiedIdentifier:               "qualifiedIdentifier",
	NamespaceBody:                     "namespaceBody",
	TypeDeclaration:                   "typeDeclaration",
	Modifier:                          "modifier",
	Attributes:                        "attributes",
	AttributeSection:                  "attributeSection",
	AttributeTargetSpecifier:          "attributeTargetSpecifier",
	Attribute:                         "attribute",
	AttributeArguments:                "attributeArguments",
	Type:                              "type",
	PredefinedType:                    "predefinedType",
	NamespaceOrTypeName:               "namespaceOrTypeName",
	TypeArgumentList:                  "typeArgumentList",
	RankSpecifier:                     "rankSpecifier",
	TupleType:                         "tupleType",
	ClassDeclaration:                  "classDeclaration",
	ClassBase:                         "classBase",
	TypeParameterList:                 "typeParameterList",
	TypeParameter:                     "typeParameter",
	TypeParameterConstraintsClause:    "typeParameterConstraintsClause",
	ClassBody:                         "classBody",
	ClassMemberDeclaration:            "classMemberDeclaration",
	ConstantDeclaration:               "constantDeclaration",
	FieldDeclaration:                  "fieldDeclaration",
	VariableDeclarator:                "variableDeclarator",
	VariableInitializer:               "variableInitializer",
	MethodDeclaration:                 "methodDeclaration",
	MemberName:                        "memberName",
	ReturnType:                        "returnType",
	FormalParameterList:               "formalParameterList",
	FixedParameter:                    "fixedParameter",
	ParameterModifier:                 "parameterModifier",
	ParameterArray:                    "parameterArray",
	MethodBody:                        "methodBody",
	PropertyDeclaration:               "propertyDeclaration",
	AccessorDeclarations:              "accessorDeclarations",
	GetAccessorDeclaration:            "getAccessorDeclaration",
	SetAccessorDeclaration:            "setAccessorDeclaration",
	AccessorBody:                      "accessorBody",
	EventDeclaration:                  "eventDeclaration",
	EventAccessorDeclarations:         "eventAccessorDeclarations",
	AddAccessorDeclaration:            "addAccessorDeclaration",
	RemoveAccessorDeclaration:         "removeAccessorDeclaration",
	IndexerDeclaration:                "indexerDeclaration",
	OperatorDeclaration:               "operatorDeclaration",
	OperatorBody:                      "operatorBody",
	ConstructorDeclaration:            "constructorDeclaration",
	ConstructorInitializer:            "constructorInitializer",
	ConstructorBody:                   "constructorBody",
	StaticConstructorDeclaration:      "staticConstructorDeclaration",
	StaticConstructorBody:             "staticConstructorBody",
	DestructorDeclaration:             "destructorDeclaration",
	DestructorBody:                    "destructorBody",
	StructDeclaration:                 "structDeclaration",
	StructBody:                        "structBody",
	RecordDeclaration:                 "recordDeclaration",
	RecordBase:                        "recordBase",
	InterfaceDeclaration:              "interfaceDeclaration",
	InterfaceBase:                     "interfaceBase",
	InterfaceBody:                     "interfaceBody",
	InterfaceMemberDeclaration:        "interfaceMemberDeclaration",
	InterfaceMethodDeclaration:        "interfaceMethodDeclaration",
	InterfacePropertyDeclaration:      "interfacePropertyDeclaration",
	InterfaceAccessors:                "interfaceAccessors",
	InterfaceEventDeclaration:         "interfaceEventDeclaration",
	InterfaceIndexerDeclaration:       "interfaceIndexerDeclaration",
	EnumDeclaration:                   "enumDeclaration",
	EnumBase:                          "enumBase",
	EnumBody:                          "enumBody",
	EnumMemberDeclaration:             "enumMemberDeclaration",
	DelegateDeclaration:               "delegateDeclaration",
	Block:                             "block",
	Statement:                         "statement",
	LabeledStatement:                  "labeledStatement",
	DeclarationStatement:              "declarationStatement",
	LocalVariableDeclaration:          "localVariableDeclaration",
	LocalVariableDeclarator:           "localVariableDeclarator",
	LocalConstantDeclaration:          "localConstantDeclaration",
	LocalFunctionDeclaration:          "localFunctionDeclaration",
	EmbeddedStatement:                 "embeddedStatement",
	EmptyStatement:                    "emptyStatement",
	ExpressionStatement:               "expressionStatement",
	IfStatement:                       "ifStatement",
	SwitchStatement:                   "switchStatement",
	SwitchBlock:                       "switchBlock",
	SwitchSection:                     "switchSection",
	SwitchLabel:                       "switchLabel",
	WhileStatement:                    "whileStatement",
	DoStatement:                       "doStatement",
	ForStatement:                      "forStatement",
	ForInitializer:                    "forInitializer",
	ForCondition:                      "forCondition",
	ForIterator:                       "forIterator",
	ForeachStatement:                  "foreachStatement",
	BreakStatement:                    "breakStatement",
	ContinueStatement:                 "continueStatement",
	GotoStatement:                     "gotoStatement",
	ReturnStatement:                   "returnStatement",
	ThrowStatement:                    "throwStatement",
	TryStatement:                      "tryStatement",
	CatchClause:                       "catchClause",
	ExceptionFilter:                   "exceptionFilter",
	FinallyClause:                     "finallyClause",
	CheckedStatement:                  "checkedStatement",
	UncheckedStatement:                "uncheckedStatement",
	LockStatement:                     "lockStatement",
	UsingStatement:                    "usingStatement",
	YieldStatement:                    "yieldStatement",
	UnsafeStatement:                   "unsafeStatement",
	FixedStatement:                    "fixedStatement",
	Expression:                        "expression",
	AssignmentExpression:              "assignmentExpression",
	LambdaExpression:                  "lambdaExpression",
	LambdaParameters:                  "lambdaParameters",
	LambdaParameter:                   "lambdaParameter",
	AnonymousMethodExpression:         "anonymousMethodExpression",
	QueryExpression:                   "queryExpression",
	FromClause:                        "fromClause",
	QueryBody:                         "queryBody",
	LetClause:                         "letClause",
	WhereClause:                       "whereClause",
	JoinClause:                        "joinClause",
	OrderbyClause:                     "orderbyClause",
	Ordering:                          "ordering",
	SelectClause:                      "selectClause",
	GroupClause:                       "groupClause",
	QueryContinuation:                 "queryContinuation",
	ConditionalExpression:             "conditionalExpression",
	NullCoalescingExpression:          "nullCoalescingExpression",
	ConditionalOrExpression:           "conditionalOrExpression",
	ConditionalAndExpression:          "conditionalAndExpression",
	InclusiveOrExpression:             "inclusiveOrExpression",
	ExclusiveOrExpression:             "exclusiveOrExpression",
	AndExpression:                     "andExpression",
	EqualityExpression:                "equalityExpression",
	RelationalExpression:              "relationalExpression",
	ShiftExpression:                   "shiftExpression",
	AdditiveExpression:                "additiveExpression",
	MultiplicativeExpression:          "multiplicativeExpression",
	UnaryExpression:                   "unaryExpression",
	CastExpression:                    "castExpression",
	AwaitExpression:                   "awaitExpression",
	PreIncrementExpression:            "preIncrementExpression",
	PreDecrementExpression:            "preDecrementExpression",
	PrimaryExpression:                 "primaryExpression",
	SimpleName:                        "simpleName",
	ParenthesizedExpression:           "parenthesizedExpression",
	TupleExpression:                   "tupleExpression",
	MemberAccess:                      "memberAccess",
	ArgumentList:                      "argumentList",
	Argument:                          "argument",
	ElementAccess:                     "elementAccess",
	PostIncrementExpression:           "postIncrementExpression",
	PostDecrementExpression:           "postDecrementExpression",
	ThisAccess:                        "thisAccess",
	BaseAccess:                        "baseAccess",
	ObjectCreationExpression:          "objectCreationExpression",
	ArrayCreationExpression:           "arrayCreationExpression",
	ObjectOrCollectionInitializer:     "objectOrCollectionInitializer",
	MemberInitializer:                 "memberInitializer",
	ElementInitializer:                "elementInitializer",
	ArrayInitializer:                  "arrayInitializer",
	AnonymousObjectCreationExpression: "anonymousObjectCreationExpression",
	MemberDeclarator:                  "memberDeclarator",
	TypeofExpression:                  "typeofExpression",
	DefaultValueExpression:            "defaultValueExpression",
	CheckedExpression:                 "checkedExpression",
	UncheckedExpression:               "uncheckedExpression",
	SizeofExpression:                  "sizeofExpression",
	NameofExpression:                  "nameofExpression",
	StackallocExpression:              "stackallocExpression",
	ThrowExpression:                   "throwExpression",
	SwitchExpression:                  "switchExpression",
	SwitchExpressionArm:               "switchExpressionArm",
}

// String returns the lowerCamel rule name, e.g. "ifStatement".
func (t RuleType) String() string {
	if t == Terminal {
		return "terminal"
	}
	if t > Terminal && t < ruleTypeCount {
		return ruleNames[t]
	}
	return "unknown"
}

// RuleTypes returns every non-terminal rule type in declaration order.
func RuleTypes() []RuleType {
	types := make([]RuleType, 0, ruleTypeCount-1)
	for t := Terminal + 1; t < ruleTypeCount; t++ {
		types = append(types, t)
	}
	return types
}

// Count returns the number of rule types including Terminal. It sizes
// dispatch tables indexed by RuleType.
func Count() int {
	return int(ruleTypeCount)
}

// ParseRuleType looks a rule type up by its lowerCamel name.
func ParseRuleType(name string) (RuleType, bool) {
	t, ok := ruleIndex[name]
	return t, ok
}

var ruleIndex = func() map[string]RuleType {
	m := make(map[string]RuleType, len(ruleNames))
	for i, name := range ruleNames {
		if name != "" {
			m[name] = RuleType(i)
		}
	}
	return m
}()
