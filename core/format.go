package core

import (
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
)

type dateLocale struct {
	tag    language.Tag
	locale monday.Locale
	layout string
}

// The first entry is the fallback for unmatched tags.
var dateLocales = []dateLocale{
	{language.English, monday.LocaleEnUS, "January 2, 2006 at 15:04"},
	{language.German, monday.LocaleDeDE, "2. January 2006 um 15:04"},
	{language.French, monday.LocaleFrFR, "2 January 2006 à 15:04"},
	{language.Spanish, monday.LocaleEsES, "2 de January de 2006, 15:04"},
	{language.Italian, monday.LocaleItIT, "2 January 2006 alle ore 15:04"},
	{language.BrazilianPortuguese, monday.LocalePtBR, "2 de January de 2006 às 15:04"},
	{language.Dutch, monday.LocaleNlNL, "2 January 2006 om 15:04"},
	{language.Russian, monday.LocaleRuRU, "2 January 2006 г. в 15:04"},
	{language.Japanese, monday.LocaleJaJP, "2006年1月2日 15:04"},
	{language.SimplifiedChinese, monday.LocaleZhCN, "2006年1月2日 15:04"},
	{language.Korean, monday.LocaleKoKR, "2006년 1월 2일 15:04"},
}

var dateMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(dateLocales))
	for i, l := range dateLocales {
		tags[i] = l.tag
	}

	return language.NewMatcher(tags)
}()

// FormatDateTime renders t in its own time zone as a Gregorian date with a
// long month name and a 24-hour clock, e.g. "March 5, 2024 at 09:07".
func FormatDateTime(t time.Time, locale string) string {
	tag, _ := language.Parse(locale)

	_, i, _ := dateMatcher.Match(tag)
	l := dateLocales[i]

	return monday.Format(t, l.layout, l.locale)
}
