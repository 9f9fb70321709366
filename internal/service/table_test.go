package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/etymo-roots/internal/domain/entities"
)

func tableEntries() []entities.RootEntry {
	return []entities.RootEntry{
		{Root: "un", MeaningJA: "否定", MeaningEN: "not", MeaningCN: "不", Examples: []string{"undo", "unhappy"}},
		{Root: "re", MeaningEN: "again", MeaningZH: "再次", Examples: []string{"redo"}},
		{Root: "bio"},
	}
}

func cellTexts(row []entities.TableCell) []string {
	out := make([]string, 0, len(row))
	for _, c := range row {
		out = append(out, c.Text)
	}
	return out
}

func TestTable_FullLayoutEnglish(t *testing.T) {
	svc := NewTableService(&stubLoader{entries: tableEntries()}, nil, LayoutFull, zap.NewNop())

	view, err := svc.Build(context.Background(), "roots", entities.LangEN, "")
	require.NoError(t, err)

	assert.Equal(t, LayoutFull, view.Layout)
	assert.Equal(t, []string{"Root", "Meaning (CN)", "Meaning (EN)", "Examples"}, cellTexts(view.Headers))
	require.Len(t, view.Rows, 3)
	assert.Equal(t, []string{"un", "不", "not", "undo、unhappy"}, cellTexts(view.Rows[0]))
	assert.Equal(t, []string{"re", "", "again", "redo"}, cellTexts(view.Rows[1]))
	assert.Equal(t, []string{"bio", "", "", ""}, cellTexts(view.Rows[2]))
	assert.True(t, view.Rows[0][0].Centered)
	assert.False(t, view.Rows[0][1].Centered)
}

func TestTable_FullLayoutJapanese(t *testing.T) {
	svc := NewTableService(&stubLoader{entries: tableEntries()}, nil, LayoutFull, zap.NewNop())

	view, err := svc.Build(context.Background(), "roots", entities.LangJA, LayoutFull)
	require.NoError(t, err)

	assert.Equal(t, []string{"語根", "意味（日本語）", "意味（英語）", "例"}, cellTexts(view.Headers))
	assert.Equal(t, []string{"un", "否定", "not", "undo、unhappy"}, cellTexts(view.Rows[0]))
}

func TestTable_CompactLayout(t *testing.T) {
	svc := NewTableService(&stubLoader{entries: tableEntries()}, nil, LayoutFull, zap.NewNop())

	en, err := svc.Build(context.Background(), "roots", entities.LangEN, LayoutCompact)
	require.NoError(t, err)
	assert.Equal(t, []string{"Root", "Meaning (ZH)", "Examples"}, cellTexts(en.Headers))
	assert.Equal(t, []string{"un", "", "undo, unhappy"}, cellTexts(en.Rows[0]))
	assert.Equal(t, []string{"re", "再次", "redo"}, cellTexts(en.Rows[1]))

	ja, err := svc.Build(context.Background(), "roots", entities.LangJA, LayoutCompact)
	require.NoError(t, err)
	assert.Equal(t, []string{"un", "否定", "undo、unhappy"}, cellTexts(ja.Rows[0]))
}

func TestTable_RowCountMatchesDataset(t *testing.T) {
	for _, n := range []int{0, 1, 7, 50} {
		entries := make([]entities.RootEntry, n)
		svc := NewTableService(&stubLoader{entries: entries}, nil, "", zap.NewNop())

		view, err := svc.Build(context.Background(), "roots", entities.LangEN, "")
		require.NoError(t, err)
		assert.Len(t, view.Rows, n)
	}
}

func TestTable_LoadFailureRendersEmptyTable(t *testing.T) {
	svc := NewTableService(&stubLoader{err: errors.New("boom")}, nil, LayoutFull, zap.NewNop())

	view, err := svc.Build(context.Background(), "roots", entities.LangJA, "")
	require.NoError(t, err)
	assert.Empty(t, view.Rows)
	assert.Len(t, view.Headers, 4)
}

func TestTable_UnknownLayout(t *testing.T) {
	svc := NewTableService(&stubLoader{}, nil, LayoutFull, zap.NewNop())

	_, err := svc.Build(context.Background(), "roots", entities.LangEN, "wide")
	assert.ErrorIs(t, err, ErrUnknownLayout)
}

func TestTable_CustomLayoutAndChineseFallback(t *testing.T) {
	custom := map[string]entities.TableLayout{
		"zh": {
			entities.LangEN: {{Field: entities.FieldRoot, Header: "Root"}},
			entities.LangCN: {
				{Field: entities.FieldRoot, Header: "词根", Align: entities.AlignCenter},
				{Field: entities.FieldMeaningCN, Header: "含义"},
			},
		},
	}
	svc := NewTableService(&stubLoader{entries: tableEntries()}, custom, "zh", zap.NewNop())

	assert.Equal(t, "zh", svc.DefaultLayout())
	assert.Equal(t, []string{LayoutCompact, LayoutFull, "zh"}, svc.Layouts())

	cn, err := svc.Build(context.Background(), "roots", entities.LangCN, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"un", "不"}, cellTexts(cn.Rows[0]))

	// Full has no Chinese columns, so it falls back to English.
	full, err := svc.Build(context.Background(), "roots", entities.LangCN, LayoutFull)
	require.NoError(t, err)
	assert.Equal(t, "Meaning (CN)", full.Headers[1].Text)
}

func TestNewTableService_UnknownDefaultFallsBackToFull(t *testing.T) {
	svc := NewTableService(&stubLoader{}, nil, "nope", zap.NewNop())
	assert.Equal(t, LayoutFull, svc.DefaultLayout())
}
