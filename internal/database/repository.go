package database

type GameRepository interface {
	Ping() error
	CreateAccount(params CreateAccountParams) (User, error)
	UpdateAccount(params UpdateAccountParams) (User, error)
	GetAccountById(accountId int) (User, error)
	GetAccountByUsername(username string) (User, error)
	GetAccountByExternalId(externalId string) (User, error)
	CreateScore(params CreateScoreParams) (Score, error)
	GetScoreAggregate(accountId int, difficulty string) (ScoreAggregate, error)
	TopScores(difficulty string, limit int) ([]Score, error)
	CreateMessage(params CreateMessageParams) (Message, error)
	GetMessagesSince(sinceId int) ([]Message, error)
}
