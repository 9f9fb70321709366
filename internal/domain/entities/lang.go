package entities

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownLang = errors.New("unknown language")

// Lang is a display language code.
type Lang string

const (
	LangJA Lang = "ja"
	LangEN Lang = "en"
	LangCN Lang = "cn"
)

// Langs lists every supported language in display order.
var Langs = []Lang{LangJA, LangEN, LangCN}

// ParseLang parses a language code. "zh" and regional variants such as
// "zh-CN" or "ja-JP" are accepted and mapped to the base language.
func ParseLang(s string) (Lang, error) {
	code := strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}

	switch code {
	case "ja":
		return LangJA, nil
	case "en":
		return LangEN, nil
	case "cn", "zh":
		return LangCN, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownLang, s)
}

// String implements fmt.Stringer.
func (l Lang) String() string {
	return string(l)
}
