package model

import "time"

// FastSession is a single fasting period tracked by the fasting timer.
type FastSession struct {
	ID        string     `json:"id"`
	StartedAt time.Time  `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
	GoalHours int        `json:"goalHours"`
}

// Elapsed returns how long the fast has run, up to now or its end.
func (f FastSession) Elapsed(now time.Time) time.Duration {
	end := now
	if f.EndedAt != nil {
		end = *f.EndedAt
	}
	return end.Sub(f.StartedAt)
}

// GoalReached reports whether the fast has lasted at least GoalHours.
func (f FastSession) GoalReached(now time.Time) bool {
	return f.GoalHours > 0 && f.Elapsed(now) >= time.Duration(f.GoalHours)*time.Hour
}

// WaterEntry is one logged drink.
type WaterEntry struct {
	Milliliters int       `json:"ml"`
	LoggedAt    time.Time `json:"loggedAt"`
}

// WaterIntake is everything logged for one calendar day.
type WaterIntake struct {
	Day     string       `json:"day"`
	Entries []WaterEntry `json:"entries"`
}

// Total returns the summed milliliters for the day.
func (w WaterIntake) Total() int {
	total := 0
	for _, e := range w.Entries {
		total += e.Milliliters
	}
	return total
}

// RecommendationSettings holds the user's preferences for the food
// recommendation feature.
type RecommendationSettings struct {
	DailyCalories int      `json:"dailyCalories"`
	Diet          string   `json:"diet,omitempty"`
	Exclude       []string `json:"exclude,omitempty"`
	Enabled       bool     `json:"enabled"`
}

// DefaultRecommendationSettings is used until the user saves their own.
func DefaultRecommendationSettings() RecommendationSettings {
	return RecommendationSettings{
		DailyCalories: 2000,
		Enabled:       true,
	}
}
