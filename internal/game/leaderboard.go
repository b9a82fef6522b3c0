package game

import (
	"fmt"

	"github.com/npezzotti/go-molehunt/internal/database"
	"github.com/npezzotti/go-molehunt/internal/types"
)

const DefaultLeaderboardLimit = 10

// Leaderboard serves the top-K score records per difficulty.
type Leaderboard struct {
	db database.GameRepository
}

func NewLeaderboard(db database.GameRepository) *Leaderboard {
	return &Leaderboard{db: db}
}

// Top returns at most limit entries for the difficulty, highest score first.
// Equal scores rank by earliest submission, so the first player to reach a
// score stays ahead of later ties. An unknown difficulty matches no rows and
// yields an empty list rather than an error.
func (l *Leaderboard) Top(difficulty Difficulty, limit int) ([]types.LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", ErrInvalidInput)
	}

	scores, err := l.db.TopScores(difficulty.String(), limit)
	if err != nil {
		return nil, &StoreError{Op: "top scores", Err: err}
	}

	entries := make([]types.LeaderboardEntry, 0, len(scores))
	for _, s := range scores {
		entries = append(entries, types.LeaderboardEntry{
			Username:   s.Username,
			Score:      s.Score,
			Difficulty: s.Difficulty,
			CreatedAt:  s.CreatedAt,
		})
	}

	return entries, nil
}
