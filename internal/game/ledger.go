package game

import (
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/npezzotti/go-molehunt/internal/database"
	"github.com/npezzotti/go-molehunt/internal/types"
)

// ScoreLedger appends completed game results and computes per-user
// aggregates. All state lives in the repository; the ledger itself holds
// nothing across calls.
type ScoreLedger struct {
	db database.GameRepository
}

func NewScoreLedger(db database.GameRepository) *ScoreLedger {
	return &ScoreLedger{db: db}
}

// Submit validates and appends a single score record. Validation failures
// are reported before the store is touched.
func (l *ScoreLedger) Submit(userId, score int, difficulty Difficulty) (types.ScoreRecord, error) {
	if score < 0 {
		return types.ScoreRecord{}, fmt.Errorf("%w: score must be non-negative", ErrInvalidInput)
	}
	if !difficulty.Valid() {
		return types.ScoreRecord{}, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidInput, difficulty)
	}

	dbScore, err := l.db.CreateScore(database.CreateScoreParams{
		AccountId:  userId,
		Score:      score,
		Difficulty: difficulty.String(),
	})
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return types.ScoreRecord{}, fmt.Errorf("%w: user %d", ErrNotFound, userId)
		}
		return types.ScoreRecord{}, &StoreError{Op: "create score", Err: err}
	}

	return types.ScoreRecord{
		Id:         dbScore.Id,
		UserId:     dbScore.AccountId,
		Username:   dbScore.Username,
		Score:      dbScore.Score,
		Difficulty: dbScore.Difficulty,
		CreatedAt:  dbScore.CreatedAt,
	}, nil
}

// Aggregate returns count, average and max for the user's scores at the
// given difficulty. Zero values when the user has no scores there.
func (l *ScoreLedger) Aggregate(userId int, difficulty Difficulty) (types.ScoreSummary, error) {
	agg, err := l.db.GetScoreAggregate(userId, difficulty.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.ScoreSummary{}, nil
		}
		return types.ScoreSummary{}, &StoreError{Op: "score aggregate", Err: err}
	}

	return types.ScoreSummary{
		Count:   agg.Count,
		Average: roundAverage(agg.Average),
		Max:     agg.Max,
	}, nil
}

// roundAverage rounds to two decimal places for display.
func roundAverage(avg float64) float64 {
	return math.Round(avg*100) / 100
}
