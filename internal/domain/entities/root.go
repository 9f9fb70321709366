// Package entities contains domain entities used across the application.
package entities

import "strings"

// Field names a RootEntry exposes to table layouts.
const (
	FieldRoot      = "root"
	FieldMeaningJA = "meaning_ja"
	FieldMeaningEN = "meaning_en"
	FieldMeaningCN = "meaning_cn"
	FieldMeaningZH = "meaning_zh"
	FieldExamples  = "examples"
)

// RootEntry is one record of a roots dataset.
// Only Root is expected to be present; every other field may be missing.
type RootEntry struct {
	Root      string   `json:"root"`       // the root itself, matched case-insensitively
	MeaningJA string   `json:"meaning_ja"` // Japanese meaning
	MeaningEN string   `json:"meaning_en"` // English meaning
	MeaningCN string   `json:"meaning_cn"` // Chinese meaning
	MeaningZH string   `json:"meaning_zh"` // Chinese meaning under the alternative key
	Examples  []string `json:"examples"`   // example words containing the root
}

// Meaning returns the meaning for lang, or "" when the entry has none.
// Chinese reads meaning_cn first and falls back to meaning_zh.
func (e RootEntry) Meaning(lang Lang) string {
	switch lang {
	case LangJA:
		return e.MeaningJA
	case LangEN:
		return e.MeaningEN
	case LangCN:
		if e.MeaningCN != "" {
			return e.MeaningCN
		}
		return e.MeaningZH
	}
	return ""
}

// JoinExamples joins the examples with sep.
func (e RootEntry) JoinExamples(sep string) string {
	return strings.Join(e.Examples, sep)
}

// Field returns the display value of the named field.
// Examples are joined with sep. Unknown fields yield "".
func (e RootEntry) Field(name, sep string) string {
	switch name {
	case FieldRoot:
		return e.Root
	case FieldMeaningJA:
		return e.MeaningJA
	case FieldMeaningEN:
		return e.MeaningEN
	case FieldMeaningCN:
		return e.MeaningCN
	case FieldMeaningZH:
		return e.MeaningZH
	case FieldExamples:
		return e.JoinExamples(sep)
	}
	return ""
}

// IsKnownField reports whether name can be used as a table column field.
func IsKnownField(name string) bool {
	switch name {
	case FieldRoot, FieldMeaningJA, FieldMeaningEN, FieldMeaningCN, FieldMeaningZH, FieldExamples:
		return true
	}
	return false
}
