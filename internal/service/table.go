package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/aliskhannn/etymo-roots/internal/domain/entities"
)

// Built-in layout names.
const (
	LayoutFull    = "full"
	LayoutCompact = "compact"
)

var ErrUnknownLayout = errors.New("unknown table layout")

// BuiltinLayouts returns the two column mappings the site ships with.
// "full" shows the Chinese meaning from meaning_cn next to the English one;
// "compact" reads meaning_zh and drops the English column.
func BuiltinLayouts() map[string]entities.TableLayout {
	return map[string]entities.TableLayout{
		LayoutFull: {
			entities.LangJA: {
				{Field: entities.FieldRoot, Header: "語根", Align: entities.AlignCenter},
				{Field: entities.FieldMeaningJA, Header: "意味（日本語）"},
				{Field: entities.FieldMeaningEN, Header: "意味（英語）"},
				{Field: entities.FieldExamples, Header: "例", Separator: "、"},
			},
			entities.LangEN: {
				{Field: entities.FieldRoot, Header: "Root", Align: entities.AlignCenter},
				{Field: entities.FieldMeaningCN, Header: "Meaning (CN)"},
				{Field: entities.FieldMeaningEN, Header: "Meaning (EN)"},
				{Field: entities.FieldExamples, Header: "Examples", Separator: "、"},
			},
		},
		LayoutCompact: {
			entities.LangJA: {
				{Field: entities.FieldRoot, Header: "語根", Align: entities.AlignCenter},
				{Field: entities.FieldMeaningJA, Header: "意味（日本語）"},
				{Field: entities.FieldExamples, Header: "例", Separator: "、"},
			},
			entities.LangEN: {
				{Field: entities.FieldRoot, Header: "Root", Align: entities.AlignCenter},
				{Field: entities.FieldMeaningZH, Header: "Meaning (ZH)"},
				{Field: entities.FieldExamples, Header: "Examples", Separator: ", "},
			},
		},
	}
}

// TableService renders datasets as reference tables.
type TableService struct {
	loader        DatasetLoader
	layouts       map[string]entities.TableLayout
	defaultLayout string
	logger        *zap.Logger
}

// NewTableService creates a TableService. Custom layouts are added to the
// built-in ones and replace them on a name clash.
func NewTableService(
	loader DatasetLoader,
	custom map[string]entities.TableLayout,
	defaultLayout string,
	logger *zap.Logger,
) *TableService {
	layouts := BuiltinLayouts()
	for name, layout := range custom {
		layouts[name] = layout
	}

	if _, ok := layouts[defaultLayout]; !ok {
		defaultLayout = LayoutFull
	}

	return &TableService{
		loader:        loader,
		layouts:       layouts,
		defaultLayout: defaultLayout,
		logger:        logger,
	}
}

// Layouts returns the available layout names in sorted order.
func (s *TableService) Layouts() []string {
	names := make([]string, 0, len(s.layouts))
	for name := range s.layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultLayout returns the layout used when none is requested.
func (s *TableService) DefaultLayout() string {
	return s.defaultLayout
}

// Build renders dataset with the named layout ("" selects the default).
// A dataset that cannot be loaded is logged and rendered as an empty table;
// only an unknown layout is reported as an error.
func (s *TableService) Build(
	ctx context.Context, dataset string, lang entities.Lang, layoutName string,
) (entities.TableView, error) {
	if layoutName == "" {
		layoutName = s.defaultLayout
	}

	layout, ok := s.layouts[layoutName]
	if !ok {
		return entities.TableView{}, fmt.Errorf("%w: %s", ErrUnknownLayout, layoutName)
	}

	columns := layout.Columns(lang)
	view := entities.TableView{
		Dataset: dataset,
		Lang:    lang,
		Layout:  layoutName,
		Headers: make([]entities.TableCell, 0, len(columns)),
	}
	for _, col := range columns {
		view.Headers = append(view.Headers, entities.TableCell{Text: col.Header})
	}

	entries, err := s.loader.Load(ctx, dataset)
	if err != nil {
		s.logger.Error("failed to load table data",
			zap.String("dataset", dataset),
			zap.Error(err),
		)
		return view, nil
	}

	view.Rows = make([][]entities.TableCell, 0, len(entries))
	for _, entry := range entries {
		row := make([]entities.TableCell, 0, len(columns))
		for _, col := range columns {
			row = append(row, entities.TableCell{
				Text:     entry.Field(col.Field, col.Separator),
				Centered: col.Align == entities.AlignCenter,
			})
		}
		view.Rows = append(view.Rows, row)
	}

	return view, nil
}
