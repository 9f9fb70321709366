package locale

import (
	"golang.org/x/text/language"

	"github.com/aliskhannn/etymo-roots/internal/domain/entities"
)

var (
	supported = []language.Tag{language.Japanese, language.English, language.Chinese}
	matcher   = language.NewMatcher(supported)
)

// Match picks the supported language that best fits an Accept-Language
// header value. It returns fallback when nothing matches with at least
// low confidence.
func Match(acceptLanguage string, fallback entities.Lang) entities.Lang {
	if acceptLanguage == "" {
		return fallback
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}

	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return fallback
	}

	switch supported[idx] {
	case language.Japanese:
		return entities.LangJA
	case language.English:
		return entities.LangEN
	case language.Chinese:
		return entities.LangCN
	}

	return fallback
}
