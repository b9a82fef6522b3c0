package database

import (
	"github.com/stretchr/testify/mock"
)

type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) Ping() error {
	args := m.Called()
	return args.Error(0)
}
func (m *MockGameRepository) CreateAccount(params CreateAccountParams) (User, error) {
	args := m.Called(params)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockGameRepository) UpdateAccount(params UpdateAccountParams) (User, error) {
	args := m.Called(params)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockGameRepository) GetAccountById(accountId int) (User, error) {
	args := m.Called(accountId)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockGameRepository) GetAccountByUsername(username string) (User, error) {
	args := m.Called(username)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockGameRepository) GetAccountByExternalId(externalId string) (User, error) {
	args := m.Called(externalId)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockGameRepository) CreateScore(params CreateScoreParams) (Score, error) {
	args := m.Called(params)
	return args.Get(0).(Score), args.Error(1)
}
func (m *MockGameRepository) GetScoreAggregate(accountId int, difficulty string) (ScoreAggregate, error) {
	args := m.Called(accountId, difficulty)
	return args.Get(0).(ScoreAggregate), args.Error(1)
}
func (m *MockGameRepository) TopScores(difficulty string, limit int) ([]Score, error) {
	args := m.Called(difficulty, limit)
	if scores, ok := args.Get(0).([]Score); ok {
		return scores, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockGameRepository) CreateMessage(params CreateMessageParams) (Message, error) {
	args := m.Called(params)
	return args.Get(0).(Message), args.Error(1)
}
func (m *MockGameRepository) GetMessagesSince(sinceId int) ([]Message, error) {
	args := m.Called(sinceId)
	if msgs, ok := args.Get(0).([]Message); ok {
		return msgs, args.Error(1)
	}
	return nil, args.Error(1)
}
