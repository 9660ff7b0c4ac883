// Package i18n holds the mascot's lines, the end-of-game message and the
// share text in every supported language.
package i18n

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// Language names a line table.
type Language string

const (
	English Language = "english"
	Russian Language = "russian"
	Hebrew  Language = "hebrew"

	// Fallback is used when a language or category is missing.
	Fallback = English
)

// Languages lists the supported languages in display order.
var Languages = []Language{English, Russian, Hebrew}

// ParseLanguage accepts a language name or its ISO 639-1 code.
// Unknown values map to Fallback with ok false.
func ParseLanguage(s string) (lang Language, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "english", "en":
		return English, true
	case "russian", "ru":
		return Russian, true
	case "hebrew", "he", "iw":
		return Hebrew, true
	}
	return Fallback, false
}

// Next cycles through Languages.
func (l Language) Next() Language {
	for i, lang := range Languages {
		if lang == l {
			return Languages[(i+1)%len(Languages)]
		}
	}
	return Fallback
}

// Category groups lines by the moment they are spoken.
type Category int

const (
	Start Category = iota
	Good
	Bad
	End
	numCategories
)

func (c Category) String() string {
	switch c {
	case Start:
		return "start"
	case Good:
		return "good"
	case Bad:
		return "bad"
	case End:
		return "end"
	default:
		return "category(" + strconv.Itoa(int(c)) + ")"
	}
}

// ScorePlaceholder is replaced by the final score in end lines.
const ScorePlaceholder = "{score}"

// Table maps a language and category to its lines.
type Table map[Language][numCategories][]string

// ErrMissingLines is returned by Validate for an empty category.
var ErrMissingLines = errors.New("i18n: missing lines")

// Validate checks that every language has lines in every category and that
// the fallback language is present.
func Validate(t Table) error {
	if _, ok := t[Fallback]; !ok {
		return fmt.Errorf("%w: fallback language %s", ErrMissingLines, Fallback)
	}
	for lang, cats := range t {
		for c := Category(0); c < numCategories; c++ {
			if len(cats[c]) == 0 {
				return fmt.Errorf("%w: %s/%s", ErrMissingLines, lang, c)
			}
		}
	}
	return nil
}

// Lines returns the lines for lang and c, falling back to the fallback
// language when lang is unknown or the category is empty.
func (t Table) Lines(lang Language, c Category) []string {
	if c < 0 || c >= numCategories {
		return nil
	}
	if cats, ok := t[lang]; ok && len(cats[c]) > 0 {
		return cats[c]
	}
	return t[Fallback][c]
}

// RandomLine picks one line for lang and c.
func (t Table) RandomLine(rng *rand.Rand, lang Language, c Category) string {
	lines := t.Lines(lang, c)
	if len(lines) == 0 {
		return ""
	}
	return lines[rng.Intn(len(lines))]
}

// FormatEndMessage picks an end line and substitutes score. Lines without a
// placeholder get the localized score suffix, so the message always shows
// the score.
func (t Table) FormatEndMessage(rng *rand.Rand, score int, lang Language) string {
	line := t.RandomLine(rng, lang, End)
	s := strconv.Itoa(score)
	if strings.Contains(line, ScorePlaceholder) {
		return strings.ReplaceAll(line, ScorePlaceholder, s)
	}
	return line + " " + UI(lang).FinalScore + ": " + s
}

// Default is the built-in table.
var Default = mustTable(Table{
	English: {
		Start: {
			"Run, run! The challah is getting cold!",
			"Shabbat won't wait for Wi-Fi!",
			"Quick! The candles are waiting to be lit!",
			"Hurry! Your grandmother's soup is ready!",
		},
		Good: {
			"Kedusha +1",
			"Shabbat shalom!",
			"Mazal tov!",
			"Beautiful mitzvah!",
			"Holy sparks!",
		},
		Bad: {
			"Not on Shabbat!",
			"Oy vey! Put it away!",
			"Shabbat rest, tech rest!",
			"Sacred time, my friend!",
			"Choose kedusha instead!",
		},
		End: {
			"Mazal tov! Shabbat shalom!",
			"You collected {score} holy sparks!",
			"Beautiful! Your soul shines bright!",
			"Wonderful job! The angels are singing!",
			"Perfect! Your Shabbat table is blessed!",
		},
	},
	Russian: {
		Start: {
			"Беги, беги! Хала остывает!",
			"Шаббат не ждёт Wi-Fi!",
			"Быстрее! Свечи ждут зажжения!",
			"Торопись! Суп бабушки готов!",
		},
		Good: {
			"Кдуша +1",
			"Шаббат шалом!",
			"Мазаль тов!",
			"Прекрасная мицва!",
			"Святые искры!",
		},
		Bad: {
			"Не в Шаббат!",
			"Ой-вей! Убери это!",
			"Шаббат отдых, техника отдых!",
			"Священное время, друг!",
			"Выбери кдушу!",
		},
		End: {
			"Мазаль тов! Шаббат шалом!",
			"Ты собрал {score} святых искр!",
			"Прекрасно! Твоя душа сияет!",
			"Отличная работа! Ангелы поют!",
			"Идеально! Твой стол Шаббата благословен!",
		},
	},
	Hebrew: {
		Start: {
			"רוץ, רוץ! החלה מתקררת!",
			"שבת לא מחכה לאינטרנט!",
			"מהר! הנרות מחכים להדלקה!",
			"מהר! המרק של סבתא מוכן!",
		},
		Good: {
			"קדושה +1",
			"שבת שלום!",
			"מזל טוב!",
			"מצווה יפה!",
			"ניצוצות קדושה!",
		},
		Bad: {
			"לא בשבת!",
			"אוי ואבוי! תסיר זה!",
			"שבת מנוחה, טכנולוגיה מנוחה!",
			"זמן קדוש, ידידי!",
			"בחר בקדושה!",
		},
		End: {
			"מזל טוב! שבת שלום!",
			"אספת {score} ניצוצות קדושה!",
			"נפלא! הנשמה שלך זוהרת!",
			"עבודה נפלאה! המלאכים שרים!",
			"מושלם! שולחן השבת שלך מבורך!",
		},
	},
})

func mustTable(t Table) Table {
	if err := Validate(t); err != nil {
		panic(err)
	}
	return t
}
