package i18n

import (
	"fmt"
	"net/url"
)

// DefaultGameURL is linked from share messages when no URL is configured.
const DefaultGameURL = "https://torah-project-jobjoyclub.replit.app"

var shareTemplates = map[Language]string{
	English: "🏆 I scored %d points in Shabbat Runner!\n\n🕯️ Try learning Jewish traditions through gaming!\n🎮 Collect holy items and learn about Shabbat!\n\n✨ Test your knowledge of Jewish culture!",
	Russian: "🏆 Я набрал %d очков в Shabbat Runner!\n\n🕯️ Попробуй себя в изучении еврейских традиций через игру!\n🎮 Собирай святые предметы и изучай Шаббат!\n\n✨ Проверь свои знания о еврейской культуре!",
	Hebrew:  "🏆 קיבלתי %d נקודות ב-Shabbat Runner!\n\n🕯️ נסו ללמוד מסורות יהודיות דרך משחק!\n🎮 אספו פריטים קדושים ולמדו על שבת!\n\n✨ בדקו את הידע שלכם על התרבות היהודית!",
}

// ShareMessage returns the share text for score, without any link.
func ShareMessage(score int, lang Language) string {
	tmpl, ok := shareTemplates[lang]
	if !ok {
		tmpl = shareTemplates[Fallback]
	}
	return fmt.Sprintf(tmpl, score)
}

// ShareURL builds a Telegram share link carrying text and gameURL as
// separate parameters.
func ShareURL(text, gameURL string) string {
	if gameURL == "" {
		gameURL = DefaultGameURL
	}
	q := url.Values{}
	q.Set("text", text)
	q.Set("url", gameURL)
	return "https://t.me/share/url?" + q.Encode()
}
