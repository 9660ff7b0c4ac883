package i18n

// Strings are the fixed labels of the terminal screens.
type Strings struct {
	Title       string
	Instruction string
	Avoid       string
	PressStart  string
	Score       string
	Time        string
	Lives       string
	Players     string
	GameOver    string
	FinalScore  string
	Replay      string
	TopScores   string
	Share       string
	Language    string
}

var ui = map[Language]Strings{
	English: {
		Title:       "Kedusha Path",
		Instruction: "Click the holy items before they fall",
		Avoid:       "Leave the weekday things alone",
		PressStart:  "SPACE or click to start",
		Score:       "Score",
		Time:        "Time",
		Lives:       "Lives",
		Players:     "Players",
		GameOver:    "Shabbat has come!",
		FinalScore:  "Final score",
		Replay:      "SPACE play again · ESC menu · Q quit",
		TopScores:   "Top scores",
		Share:       "Share",
		Language:    "L language",
	},
	Russian: {
		Title:       "Путь Кдуши",
		Instruction: "Кликай по святым предметам, пока они не упали",
		Avoid:       "Будничные вещи не трогай",
		PressStart:  "ПРОБЕЛ или клик для старта",
		Score:       "Счёт",
		Time:        "Время",
		Lives:       "Жизни",
		Players:     "Игроки",
		GameOver:    "Наступил Шаббат!",
		FinalScore:  "Итоговый счёт",
		Replay:      "ПРОБЕЛ ещё раз · ESC меню · Q выход",
		TopScores:   "Лучшие результаты",
		Share:       "Поделиться",
		Language:    "L язык",
	},
	Hebrew: {
		Title:       "דרך הקדושה",
		Instruction: "לחצו על הפריטים הקדושים לפני שהם נופלים",
		Avoid:       "אל תגעו בדברי חול",
		PressStart:  "רווח או לחיצה כדי להתחיל",
		Score:       "ניקוד",
		Time:        "זמן",
		Lives:       "חיים",
		Players:     "שחקנים",
		GameOver:    "שבת הגיעה!",
		FinalScore:  "ניקוד סופי",
		Replay:      "רווח שוב · ESC תפריט · Q יציאה",
		TopScores:   "שיאים",
		Share:       "שתפו",
		Language:    "L שפה",
	},
}

// UI returns the screen labels for lang, or the fallback language's.
func UI(lang Language) Strings {
	if s, ok := ui[lang]; ok {
		return s
	}
	return ui[Fallback]
}
