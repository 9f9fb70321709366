package entities

// Column alignments.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
)

// TableColumn maps one table column to a RootEntry field.
type TableColumn struct {
	Field     string `mapstructure:"field"`     // RootEntry field rendered in the column
	Header    string `mapstructure:"header"`    // header text
	Align     string `mapstructure:"align"`     // "left" (default) or "center"
	Separator string `mapstructure:"separator"` // joins examples, ignored for other fields
}

// TableLayout is a column mapping keyed by language code.
type TableLayout map[Lang][]TableColumn

// Columns returns the columns for lang, falling back to English.
func (l TableLayout) Columns(lang Lang) []TableColumn {
	if cols, ok := l[lang]; ok {
		return cols
	}
	return l[LangEN]
}

// TableCell is one rendered cell.
type TableCell struct {
	Text     string
	Centered bool
}

// TableView is a fully rendered table ready for a template.
type TableView struct {
	Dataset string
	Lang    Lang
	Layout  string
	Headers []TableCell
	Rows    [][]TableCell
}
