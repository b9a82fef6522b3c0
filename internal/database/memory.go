package database

import (
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/lib/pq"
)

// MemoryGameRepository is an in-memory GameRepository with the same
// constraint and ordering semantics as the Postgres implementation. It backs
// scenario tests that exercise real behavior rather than mock expectations.
type MemoryGameRepository struct {
	mu         sync.Mutex
	accounts   map[int]User
	scores     []Score
	messages   []Message
	nextUserId int
	nextScore  int
	nextMsg    int
}

func NewMemoryGameRepository() *MemoryGameRepository {
	return &MemoryGameRepository{
		accounts:   make(map[int]User),
		nextUserId: 1,
		nextScore:  1,
		nextMsg:    1,
	}
}

func (m *MemoryGameRepository) Ping() error { return nil }

func (m *MemoryGameRepository) CreateAccount(params CreateAccountParams) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.accounts {
		if u.Username == params.Username || u.EmailAddress == params.EmailAddress {
			return User{}, &pq.Error{Code: uniqueViolationCode}
		}
	}

	now := time.Now().UTC()
	u := User{
		Id:           m.nextUserId,
		ExternalId:   params.ExternalId,
		Username:     params.Username,
		EmailAddress: params.EmailAddress,
		PasswordHash: params.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.accounts[u.Id] = u
	m.nextUserId++

	return u, nil
}

func (m *MemoryGameRepository) UpdateAccount(params UpdateAccountParams) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.accounts[params.UserId]
	if !ok {
		return User{}, sql.ErrNoRows
	}

	u.Bio = params.Bio
	u.PasswordHash = params.PasswordHash
	u.UpdatedAt = time.Now().UTC()
	m.accounts[u.Id] = u

	return u, nil
}

func (m *MemoryGameRepository) GetAccountById(accountId int) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.accounts[accountId]
	if !ok {
		return User{}, sql.ErrNoRows
	}
	return u, nil
}

func (m *MemoryGameRepository) GetAccountByUsername(username string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.accounts {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, sql.ErrNoRows
}

func (m *MemoryGameRepository) GetAccountByExternalId(externalId string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.accounts {
		if u.ExternalId == externalId {
			return u, nil
		}
	}
	return User{}, sql.ErrNoRows
}

func (m *MemoryGameRepository) CreateScore(params CreateScoreParams) (Score, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.accounts[params.AccountId]
	if !ok {
		return Score{}, &pq.Error{Code: foreignKeyViolationCode}
	}

	s := Score{
		Id:         m.nextScore,
		AccountId:  params.AccountId,
		Username:   u.Username,
		Score:      params.Score,
		Difficulty: params.Difficulty,
		CreatedAt:  time.Now().UTC(),
	}
	m.scores = append(m.scores, s)
	m.nextScore++

	return s, nil
}

func (m *MemoryGameRepository) GetScoreAggregate(accountId int, difficulty string) (ScoreAggregate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var agg ScoreAggregate
	var sum int
	for _, s := range m.scores {
		if s.AccountId != accountId || s.Difficulty != difficulty {
			continue
		}
		agg.Count++
		sum += s.Score
		if s.Score > agg.Max {
			agg.Max = s.Score
		}
	}

	if agg.Count > 0 {
		agg.Average = float64(sum) / float64(agg.Count)
	}

	return agg, nil
}

func (m *MemoryGameRepository) TopScores(difficulty string, limit int) ([]Score, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []Score
	for _, s := range m.scores {
		if s.Difficulty == difficulty {
			matched = append(matched, s)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Score != matched[j].Score {
			return matched[i].Score > matched[j].Score
		}
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].Id < matched[j].Id
	})

	if len(matched) > limit {
		matched = matched[:limit]
	}

	scores := make([]Score, len(matched))
	copy(scores, matched)

	return scores, nil
}

func (m *MemoryGameRepository) CreateMessage(params CreateMessageParams) (Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.accounts[params.AccountId]
	if !ok {
		return Message{}, &pq.Error{Code: foreignKeyViolationCode}
	}

	msg := Message{
		Id:        m.nextMsg,
		AccountId: params.AccountId,
		Username:  u.Username,
		Content:   params.Content,
		CreatedAt: time.Now().UTC(),
	}
	m.messages = append(m.messages, msg)
	m.nextMsg++

	return msg, nil
}

func (m *MemoryGameRepository) GetMessagesSince(sinceId int) ([]Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	messages := make([]Message, 0)
	for _, msg := range m.messages {
		if msg.Id > sinceId {
			messages = append(messages, msg)
		}
	}

	return messages, nil
}

// MessageCount reports the number of stored messages. Test helper.
func (m *MemoryGameRepository) MessageCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}
