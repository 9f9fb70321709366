package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLang(t *testing.T) {
	tests := []struct {
		in   string
		want Lang
	}{
		{"ja", LangJA},
		{"JA", LangJA},
		{" en ", LangEN},
		{"en-US", LangEN},
		{"cn", LangCN},
		{"zh", LangCN},
		{"zh-CN", LangCN},
		{"zh_TW", LangCN},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLang(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLang_Unknown(t *testing.T) {
	for _, in := range []string{"", "fr", "-ja", "japanese"} {
		_, err := ParseLang(in)
		assert.ErrorIs(t, err, ErrUnknownLang, in)
	}
}
