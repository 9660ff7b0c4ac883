package game

import "github.com/tomz197/kedusha/internal/loop/config"

// Achievement kinds unlocked at the end of a game.
const (
	AchievementHighScore        = "high_score"
	AchievementPerfectCollector = "perfect_collector"
	AchievementShabbatMaster    = "shabbat_master"
)

// Achievement is an unlocked milestone.
type Achievement struct {
	Type      string
	Value     int
	Threshold int
}

// Achievements returns the milestones reached by a finished game, in a fixed order.
func Achievements(score, collected int) []Achievement {
	var out []Achievement
	if score >= config.HighScoreThreshold {
		out = append(out, Achievement{AchievementHighScore, score, config.HighScoreThreshold})
	}
	if collected >= config.PerfectCollectorThreshold {
		out = append(out, Achievement{AchievementPerfectCollector, collected, config.PerfectCollectorThreshold})
	}
	if score >= config.ShabbatMasterThreshold {
		out = append(out, Achievement{AchievementShabbatMaster, score, config.ShabbatMasterThreshold})
	}
	return out
}

// field is the event payload key carrying the achievement's value.
func (a Achievement) field() string {
	if a.Type == AchievementPerfectCollector {
		return "items_collected"
	}
	return "score"
}
