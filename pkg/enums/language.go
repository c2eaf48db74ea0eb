package enums

import "strings"

// Language selects which half of a bilingual field is displayed.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageArabic  Language = "ar"
)

// ParseLanguage maps anything other than "ar" to English.
func ParseLanguage(value string) Language {
	if strings.EqualFold(strings.TrimSpace(value), string(LanguageArabic)) {
		return LanguageArabic
	}
	return LanguageEnglish
}

func (l Language) IsArabic() bool {
	return l == LanguageArabic
}
