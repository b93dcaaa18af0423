package lexer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// EncodingError reports source bytes that cannot be decoded with the declared
// charset. The affected file is skipped.
type EncodingError struct {
	Charset string
	Offset  int
	Err     error
}

func (e *EncodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot decode source as %s: %v", e.Charset, e.Err)
	}
	return fmt.Sprintf("invalid %s byte sequence at offset %d", e.Charset, e.Offset)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// Decode converts raw file bytes to text using the named charset. An empty
// charset means UTF-8. A leading byte order mark is removed.
func Decode(data []byte, charset string) (string, error) {
	name := strings.TrimSpace(charset)
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		data = bytes.TrimPrefix(data, utf8BOM)
		if !utf8.Valid(data) {
			return "", &EncodingError{Charset: "UTF-8", Offset: invalidOffset(data)}
		}
		return string(data), nil
	}

	enc, err := lookup(name)
	if err != nil {
		return "", &EncodingError{Charset: name, Err: err}
	}

	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", &EncodingError{Charset: name, Err: err}
	}
	out = bytes.TrimPrefix(out, utf8BOM)
	if !utf8.Valid(out) {
		return "", &EncodingError{Charset: name, Offset: invalidOffset(out)}
	}
	return string(out), nil
}

// SupportedCharset reports an error when Decode cannot handle the charset
func SupportedCharset(charset string) error {
	name := strings.TrimSpace(charset)
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return nil
	}
	_, err := lookup(name)
	return err
}

func lookup(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "utf-16", "utf16":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", name)
	}
	return enc, nil
}

func invalidOffset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(data)
}
