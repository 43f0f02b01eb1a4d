package jiratime

import (
	"bytes"
	"encoding/json"
	"strings"
)

// TokenKind is the syntactic kind of a serialized value.
type TokenKind int

// Token kinds reported by TokenKindOf.
const (
	TokenString TokenKind = iota
	TokenNumber
	TokenBool
	TokenNull
	TokenObject
	TokenArray
	TokenInvalid
)

func (k TokenKind) String() string {
	switch k {
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenBool:
		return "bool"
	case TokenNull:
		return "null"
	case TokenObject:
		return "object"
	case TokenArray:
		return "array"
	default:
		return "invalid"
	}
}

// TokenKindOf classifies a raw JSON value by its first significant byte.
func TokenKindOf(raw []byte) TokenKind {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return TokenInvalid
	}
	switch c := raw[0]; {
	case c == '"':
		return TokenString
	case c == '{':
		return TokenObject
	case c == '[':
		return TokenArray
	case c == 't' || c == 'f':
		return TokenBool
	case c == 'n':
		return TokenNull
	case c == '-' || (c >= '0' && c <= '9'):
		return TokenNumber
	default:
		return TokenInvalid
	}
}

// Writer is the output sink used by Codec.Write.
type Writer interface {
	WriteString(s string) error
	Flush() error
}

// jsonWriter collects written strings and emits them as one JSON string on Flush.
type jsonWriter struct {
	pending strings.Builder
	out     []byte
}

func (w *jsonWriter) WriteString(s string) error {
	w.pending.WriteString(s)
	return nil
}

func (w *jsonWriter) Flush() error {
	b, err := json.Marshal(w.pending.String())
	if err != nil {
		return err
	}
	w.out = append(w.out, b...)
	w.pending.Reset()
	return nil
}

// DecodeJSON decodes a raw JSON value. Anything but a JSON string fails with a FormatError.
func (c *Codec) DecodeJSON(raw []byte) (Timestamp, error) {
	kind := TokenKindOf(raw)
	if kind != TokenString {
		return c.Read(kind, string(bytes.TrimSpace(raw)))
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return Timestamp{}, &FormatError{Input: string(raw), Token: TokenInvalid, Err: err}
	}
	return c.Read(TokenString, s)
}

// EncodeJSON renders ts as a JSON string in wire form.
func (c *Codec) EncodeJSON(ts Timestamp) ([]byte, error) {
	var w jsonWriter
	if err := c.Write(ts, &w); err != nil {
		return nil, err
	}
	return w.out, nil
}
