package migrations

import (
	"context"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

var Migrations = migrate.NewMigrations()

var createDashboard = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id       BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		batch    TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS questions (
		id               BIGSERIAL PRIMARY KEY,
		question         TEXT NOT NULL UNIQUE,
		image            TEXT,
		type             TEXT NOT NULL,
		options          JSONB NOT NULL DEFAULT '[]'::jsonb,
		answer           TEXT NOT NULL,
		batch            TEXT NOT NULL DEFAULT '',
		launched         BOOLEAN,
		launch_timestamp TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS responses (
		id                 BIGSERIAL PRIMARY KEY,
		username           TEXT NOT NULL,
		question           TEXT NOT NULL,
		response           TEXT NOT NULL,
		response_timestamp TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS responses_question_idx ON responses (question)`,
}

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			for _, stmt := range createDashboard {
				if _, err := db.ExecContext(ctx, stmt); err != nil {
					return err
				}
			}
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS responses, questions, users`)
			return err
		},
	)
}
