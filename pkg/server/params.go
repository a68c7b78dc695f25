package server

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"github.com/notjagan/pokeguide/pkg/model"
)

var supported = []language.Tag{
	language.Korean,
	language.English,
	language.Japanese,
	language.French,
	language.German,
	language.Spanish,
	language.Italian,
	language.SimplifiedChinese,
	language.TraditionalChinese,
}

var matcher = language.NewMatcher(supported)

// localization picks the response language: the lang parameter, then
// Accept-Language, then Korean.
func localization(r *http.Request) model.LocalizationCode {
	if lang := strings.TrimSpace(r.URL.Query().Get("lang")); lang != "" {
		if tag, err := language.Parse(lang); err == nil {
			base, _ := tag.Base()
			return model.LocalizationCode(base.String())
		}
		return model.LocalizationCode(strings.ToLower(lang))
	}

	accept := r.Header.Get("Accept-Language")
	if accept == "" {
		return model.DefaultLocalizationCode
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return model.DefaultLocalizationCode
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return model.DefaultLocalizationCode
	}
	base, _ := supported[index].Base()
	return model.LocalizationCode(base.String())
}

func versionContext(r *http.Request) model.VersionContext {
	q := r.URL.Query()
	return model.VersionContext{
		Generation:   model.ParseGeneration(q.Get("generation")),
		VersionGroup: strings.TrimSpace(q.Get("version_group")),
		Game:         strings.TrimSpace(q.Get("game")),
	}
}

// splitList reads a comma separated parameter.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
