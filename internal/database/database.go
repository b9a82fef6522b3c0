package database

import (
	"database/sql"
)

type PgGameRepository struct {
	conn *sql.DB
}

func NewPgGameRepository(dsn string) (*PgGameRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &PgGameRepository{conn: db}, nil
}

func (db *PgGameRepository) Ping() error {
	return db.conn.Ping()
}

func (db *PgGameRepository) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}
