package domain

import "strings"

// Language - код языка перевода
type Language string

const (
	LanguageRU Language = "ru"
	LanguageKZ Language = "kz"
	LanguageEN Language = "en"

	DefaultLanguage = LanguageRU
)

// SupportedLanguages - языки в порядке приоритета при выборе перевода по умолчанию
var SupportedLanguages = []Language{LanguageRU, LanguageKZ, LanguageEN}

func (l Language) IsValid() bool {
	switch l {
	case LanguageRU, LanguageKZ, LanguageEN:
		return true
	}
	return false
}

func (l Language) String() string {
	return string(l)
}

// ParseLanguage нормализует код языка; пустое значение превращается в язык по умолчанию
func ParseLanguage(s string) Language {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultLanguage
	}
	return Language(s)
}
