package types

import (
	"time"
)

type User struct {
	Id           int       `json:"id"`
	ExternalId   string    `json:"external_id"`
	Username     string    `json:"username"`
	EmailAddress string    `json:"email_address,omitempty"`
	Password     string    `json:"-"`
	Bio          string    `json:"bio,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

type ScoreRecord struct {
	Id         int       `json:"id"`
	UserId     int       `json:"user_id"`
	Username   string    `json:"username"`
	Score      int       `json:"score"`
	Difficulty string    `json:"difficulty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ScoreSummary is the per-user rollup shown on the profile page.
type ScoreSummary struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Max     int     `json:"max"`
}

type LeaderboardEntry struct {
	Username   string    `json:"username"`
	Score      int       `json:"score"`
	Difficulty string    `json:"difficulty"`
	CreatedAt  time.Time `json:"created_at"`
}

type ChatMessage struct {
	Id        int       `json:"id"`
	UserId    int       `json:"user_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
