package esi

import (
	"golang.org/x/text/language"
)

// Windows locale identifiers for the languages ESI viewers commonly ship.
// The first entry is the fallback.
var lcids = []struct {
	tag  language.Tag
	lcid int
}{
	{language.AmericanEnglish, 1033},
	{language.BritishEnglish, 2057},
	{language.MustParse("de-DE"), 1031},
	{language.MustParse("fr-FR"), 1036},
	{language.MustParse("es-ES"), 3082},
	{language.MustParse("it-IT"), 1040},
	{language.MustParse("nl-NL"), 1043},
	{language.MustParse("pt-BR"), 1046},
	{language.MustParse("sv-SE"), 1053},
	{language.MustParse("ru-RU"), 1049},
	{language.MustParse("ja-JP"), 1041},
	{language.MustParse("ko-KR"), 1042},
	{language.MustParse("zh-CN"), 2052},
}

var lcidMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(lcids))
	for i, l := range lcids {
		tags[i] = l.tag
	}
	return language.NewMatcher(tags)
}()

// LCID maps a BCP 47 locale to the LcId value used on Name elements.
// Empty, malformed or unsupported locales map to 1033 (en-US).
func LCID(locale string) int {
	if locale == "" {
		return lcids[0].lcid
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return lcids[0].lcid
	}
	_, idx, conf := lcidMatcher.Match(tag)
	if conf == language.No {
		return lcids[0].lcid
	}
	return lcids[idx].lcid
}
