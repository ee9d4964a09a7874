// Package codec frames text payloads for the wire. Every payload except the
// show operation's is UTF-8 text wrapped in standard, padded base64.
package codec

import (
	"encoding/base64"
	"unicode/utf8"

	"github.com/getzep/zep-ner/pkg/models"
)

// Decode unwraps a base64 payload into UTF-8 text.
func Decode(payload string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", models.NewDecodeError("not base64", err)
	}
	if !utf8.Valid(raw) {
		return "", models.NewDecodeError("not utf-8", nil)
	}
	return string(raw), nil
}

// Encode wraps text as a base64 payload.
func Encode(text string) string {
	return base64.StdEncoding.EncodeToString([]byte(text))
}
