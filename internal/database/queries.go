package database

import (
	"time"
)

const (
	accountColumns = "id, external_id, username, email, password_hash, bio, created_at, updated_at"
)

func scanUser(row interface{ Scan(...any) error }) (User, error) {
	var u User
	err := row.Scan(
		&u.Id,
		&u.ExternalId,
		&u.Username,
		&u.EmailAddress,
		&u.PasswordHash,
		&u.Bio,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	return u, err
}

func (db *PgGameRepository) CreateAccount(params CreateAccountParams) (User, error) {
	now := time.Now().UTC()
	res := db.conn.QueryRow(
		"INSERT INTO accounts (external_id, username, email, password_hash, bio, created_at, updated_at) "+
			"VALUES ($1, $2, $3, $4, '', $5, $5) RETURNING "+accountColumns,
		params.ExternalId,
		params.Username,
		params.EmailAddress,
		params.PasswordHash,
		now,
	)

	return scanUser(res)
}

func (db *PgGameRepository) UpdateAccount(params UpdateAccountParams) (User, error) {
	res := db.conn.QueryRow(
		"UPDATE accounts SET bio = $2, password_hash = $3, updated_at = $4 "+
			"WHERE id = $1 RETURNING "+accountColumns,
		params.UserId,
		params.Bio,
		params.PasswordHash,
		time.Now().UTC(),
	)

	return scanUser(res)
}

func (db *PgGameRepository) GetAccountById(accountId int) (User, error) {
	row := db.conn.QueryRow(
		"SELECT "+accountColumns+" FROM accounts WHERE id = $1 LIMIT 1",
		accountId,
	)

	return scanUser(row)
}

func (db *PgGameRepository) GetAccountByUsername(username string) (User, error) {
	row := db.conn.QueryRow(
		"SELECT "+accountColumns+" FROM accounts WHERE username = $1 LIMIT 1",
		username,
	)

	return scanUser(row)
}

func (db *PgGameRepository) GetAccountByExternalId(externalId string) (User, error) {
	row := db.conn.QueryRow(
		"SELECT "+accountColumns+" FROM accounts WHERE external_id = $1 LIMIT 1",
		externalId,
	)

	return scanUser(row)
}

func (db *PgGameRepository) CreateScore(params CreateScoreParams) (Score, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return Score{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res := tx.QueryRow(
		"INSERT INTO scores (account_id, score, difficulty, created_at) "+
			"VALUES ($1, $2, $3, $4) RETURNING id, account_id, score, difficulty, created_at",
		params.AccountId,
		params.Score,
		params.Difficulty,
		time.Now().UTC(),
	)

	var score Score
	err = res.Scan(
		&score.Id,
		&score.AccountId,
		&score.Score,
		&score.Difficulty,
		&score.CreatedAt,
	)
	if err != nil {
		return Score{}, err
	}

	err = tx.QueryRow(
		"SELECT username FROM accounts WHERE id = $1", score.AccountId,
	).Scan(&score.Username)
	if err != nil {
		return Score{}, err
	}

	if err = tx.Commit(); err != nil {
		return Score{}, err
	}

	return score, nil
}

func (db *PgGameRepository) GetScoreAggregate(accountId int, difficulty string) (ScoreAggregate, error) {
	row := db.conn.QueryRow(
		"SELECT COUNT(*), COALESCE(AVG(score), 0), COALESCE(MAX(score), 0) FROM scores "+
			"WHERE account_id = $1 AND difficulty = $2",
		accountId,
		difficulty,
	)

	var agg ScoreAggregate
	err := row.Scan(&agg.Count, &agg.Average, &agg.Max)

	return agg, err
}

func (db *PgGameRepository) TopScores(difficulty string, limit int) ([]Score, error) {
	rows, err := db.conn.Query(
		"SELECT s.id, s.account_id, a.username, s.score, s.difficulty, s.created_at "+
			"FROM scores s JOIN accounts a ON a.id = s.account_id "+
			"WHERE s.difficulty = $1 ORDER BY s.score DESC, s.created_at ASC, s.id ASC LIMIT $2",
		difficulty,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores = make([]Score, 0, limit)
	for rows.Next() {
		var s Score
		if err = rows.Scan(&s.Id, &s.AccountId, &s.Username, &s.Score, &s.Difficulty, &s.CreatedAt); err != nil {
			return nil, err
		}

		scores = append(scores, s)
	}

	return scores, rows.Err()
}

func (db *PgGameRepository) CreateMessage(params CreateMessageParams) (Message, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return Message{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res := tx.QueryRow(
		"INSERT INTO messages (account_id, content, created_at) "+
			"VALUES ($1, $2, $3) RETURNING id, account_id, content, created_at",
		params.AccountId,
		params.Content,
		time.Now().UTC(),
	)

	var msg Message
	err = res.Scan(
		&msg.Id,
		&msg.AccountId,
		&msg.Content,
		&msg.CreatedAt,
	)
	if err != nil {
		return Message{}, err
	}

	err = tx.QueryRow(
		"SELECT username FROM accounts WHERE id = $1", msg.AccountId,
	).Scan(&msg.Username)
	if err != nil {
		return Message{}, err
	}

	if err = tx.Commit(); err != nil {
		return Message{}, err
	}

	return msg, nil
}

func (db *PgGameRepository) GetMessagesSince(sinceId int) ([]Message, error) {
	rows, err := db.conn.Query(
		"SELECT m.id, m.account_id, a.username, m.content, m.created_at "+
			"FROM messages m JOIN accounts a ON a.id = m.account_id "+
			"WHERE m.id > $1 ORDER BY m.id ASC",
		sinceId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages = make([]Message, 0)
	for rows.Next() {
		var msg Message
		if err = rows.Scan(&msg.Id, &msg.AccountId, &msg.Username, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, err
		}

		messages = append(messages, msg)
	}

	return messages, rows.Err()
}
