package game

import (
	"errors"
	"testing"

	"github.com/npezzotti/go-molehunt/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccount(t *testing.T, repo *database.MemoryGameRepository, username string) database.User {
	t.Helper()
	u, err := repo.CreateAccount(database.CreateAccountParams{
		ExternalId:   username + "-ext",
		Username:     username,
		EmailAddress: username + "@example.com",
		PasswordHash: "hashedpassword",
	})
	require.NoError(t, err, "expected account creation to succeed")
	return u
}

func TestSubmitValidation(t *testing.T) {
	tcases := []struct {
		name       string
		score      int
		difficulty Difficulty
	}{
		{
			name:       "negative score",
			score:      -1,
			difficulty: DifficultyEasy,
		},
		{
			name:       "unknown difficulty",
			score:      10,
			difficulty: Difficulty("nightmare"),
		},
		{
			name:       "empty difficulty",
			score:      10,
			difficulty: Difficulty(""),
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			// no expectations: the store must not be touched on invalid input
			mockRepo := &database.MockGameRepository{}
			defer mockRepo.AssertExpectations(t)

			ledger := NewScoreLedger(mockRepo)
			_, err := ledger.Submit(1, tc.score, tc.difficulty)
			assert.ErrorIs(t, err, ErrInvalidInput, "expected invalid input error")
		})
	}
}

func TestSubmitThenAggregate(t *testing.T) {
	repo := database.NewMemoryGameRepository()
	user := newTestAccount(t, repo, "digger")
	ledger := NewScoreLedger(repo)

	before, err := ledger.Aggregate(user.Id, DifficultyEasy)
	require.NoError(t, err)

	record, err := ledger.Submit(user.Id, 42, DifficultyEasy)
	require.NoError(t, err, "expected submit to succeed")
	assert.Equal(t, user.Id, record.UserId, "expected record to belong to the submitting user")
	assert.Equal(t, "digger", record.Username)
	assert.Equal(t, 42, record.Score)
	assert.Equal(t, "easy", record.Difficulty)
	assert.False(t, record.CreatedAt.IsZero(), "expected record timestamp to be set")

	after, err := ledger.Aggregate(user.Id, DifficultyEasy)
	require.NoError(t, err)
	assert.Equal(t, before.Count+1, after.Count, "expected exactly one additional record")
	assert.GreaterOrEqual(t, after.Max, 42, "expected max to be at least the submitted score")
}

func TestSubmitUnknownUser(t *testing.T) {
	repo := database.NewMemoryGameRepository()
	ledger := NewScoreLedger(repo)

	_, err := ledger.Submit(99, 10, DifficultyMedium)
	assert.ErrorIs(t, err, ErrNotFound, "expected not found for unknown user")
}

func TestSubmitStoreError(t *testing.T) {
	mockRepo := &database.MockGameRepository{}
	defer mockRepo.AssertExpectations(t)

	mockRepo.On("CreateScore", database.CreateScoreParams{
		AccountId:  1,
		Score:      10,
		Difficulty: "hard",
	}).Return(database.Score{}, errors.New("connection refused")).Once()

	ledger := NewScoreLedger(mockRepo)
	_, err := ledger.Submit(1, 10, DifficultyHard)

	var storeErr *StoreError
	assert.ErrorAs(t, err, &storeErr, "expected store error")
	assert.NotErrorIs(t, err, ErrInvalidInput)
}

func TestAggregate(t *testing.T) {
	repo := database.NewMemoryGameRepository()
	user := newTestAccount(t, repo, "digger")
	ledger := NewScoreLedger(repo)

	for _, score := range []int{10, 20, 20, 5} {
		_, err := ledger.Submit(user.Id, score, DifficultyEasy)
		require.NoError(t, err)
	}
	// a different difficulty must not leak into the aggregate
	_, err := ledger.Submit(user.Id, 1000, DifficultyHard)
	require.NoError(t, err)

	summary, err := ledger.Aggregate(user.Id, DifficultyEasy)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Count)
	assert.Equal(t, 13.75, summary.Average)
	assert.Equal(t, 20, summary.Max)
}

func TestAggregateEmpty(t *testing.T) {
	repo := database.NewMemoryGameRepository()
	user := newTestAccount(t, repo, "digger")
	ledger := NewScoreLedger(repo)

	summary, err := ledger.Aggregate(user.Id, DifficultyHard)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Count, "expected zero count with no submissions")
	assert.Equal(t, 0.0, summary.Average, "expected zero average with no submissions")
	assert.Equal(t, 0, summary.Max, "expected zero max with no submissions")
}

func TestAggregateRounding(t *testing.T) {
	mockRepo := &database.MockGameRepository{}
	defer mockRepo.AssertExpectations(t)

	mockRepo.On("GetScoreAggregate", 1, "easy").Return(database.ScoreAggregate{
		Count:   3,
		Average: 10.0 / 3.0,
		Max:     5,
	}, nil).Once()

	ledger := NewScoreLedger(mockRepo)
	summary, err := ledger.Aggregate(1, DifficultyEasy)
	require.NoError(t, err)
	assert.Equal(t, 3.33, summary.Average, "expected average rounded to two decimal places")
}
