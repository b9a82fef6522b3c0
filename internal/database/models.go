package database

import "time"

type User struct {
	Id           int
	ExternalId   string
	Username     string
	EmailAddress string
	PasswordHash string
	Bio          string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Score struct {
	Id         int
	AccountId  int
	Username   string
	Score      int
	Difficulty string
	CreatedAt  time.Time
}

type Message struct {
	Id        int
	AccountId int
	Username  string
	Content   string
	CreatedAt time.Time
}

// ScoreAggregate is the per-account, per-difficulty rollup computed by the store.
type ScoreAggregate struct {
	Count   int
	Average float64
	Max     int
}

type CreateAccountParams struct {
	ExternalId   string
	Username     string
	EmailAddress string
	PasswordHash string
}

type UpdateAccountParams struct {
	UserId       int
	Bio          string
	PasswordHash string
}

type CreateScoreParams struct {
	AccountId  int
	Score      int
	Difficulty string
}

type CreateMessageParams struct {
	AccountId int
	Content   string
}
