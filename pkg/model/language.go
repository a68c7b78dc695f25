package model

import "strings"

// LocalizationCode is an ISO 639 language code as used by the reference
// tables. The set is open; Korean and English are always present.
type LocalizationCode string

const (
	LocalizationCodeKorean  LocalizationCode = "ko"
	LocalizationCodeEnglish LocalizationCode = "en"
)

var DefaultLocalizationCode = LocalizationCodeKorean

// FallbackChain is the lookup order for a localized name: the requested
// language, then Korean, then English. The identifier is the caller's last
// resort.
func FallbackChain(code LocalizationCode) []LocalizationCode {
	chain := make([]LocalizationCode, 0, 3)
	if code != "" {
		chain = append(chain, code)
	}
	for _, c := range []LocalizationCode{LocalizationCodeKorean, LocalizationCodeEnglish} {
		if c != code {
			chain = append(chain, c)
		}
	}
	return chain
}

// Names holds localized display names keyed by language code.
type Names map[LocalizationCode]string

// Localize walks the fallback chain for code and falls back to the
// identifier with hyphens replaced by spaces.
func (n Names) Localize(code LocalizationCode, identifier string) string {
	for _, c := range FallbackChain(code) {
		if name, ok := n[c]; ok && name != "" {
			return name
		}
	}
	return IdentifierName(identifier)
}

func IdentifierName(identifier string) string {
	return strings.ReplaceAll(identifier, "-", " ")
}
