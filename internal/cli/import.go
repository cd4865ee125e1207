package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
	"tce-quiz-dashboard/internal/app"
	"tce-quiz-dashboard/internal/config"
	"tce-quiz-dashboard/internal/domain"
	"tce-quiz-dashboard/internal/infra/jsonfile"
)

// NewImportCmd copies users.json, questions.json and responses.json into Postgres.
func NewImportCmd(configPath *string) *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import the JSON documents into the Postgres store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if from == "" {
				from = cfg.Storage.Dir
			}
			if err := runMigrationsWithConfig(cmd.Context(), cfg); err != nil {
				return err
			}
			pool, err := pgxpool.Connect(cmd.Context(), cfg.Postgres.URL)
			if err != nil {
				return fmt.Errorf("connect postgres: %w", err)
			}
			defer pool.Close()

			dst := postgresStores(pool, jsonfile.NewImageStore(cfg.Storage.Dir))
			counts, err := importDocuments(cmd.Context(), jsonStores(from), dst)
			if err != nil {
				return err
			}
			log.Printf("imported %d users, %d questions, %d responses from %s", counts[0], counts[1], counts[2], from)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "directory holding the JSON documents (defaults to storage.dir)")
	return cmd
}

// importDocuments appends every record from src to dst. Users and questions
// already present in dst are skipped; responses are appended as-is.
func importDocuments(ctx context.Context, src, dst app.Stores) ([3]int, error) {
	var counts [3]int

	users, err := src.Users.List(ctx)
	if err != nil {
		return counts, err
	}
	for _, u := range users {
		if err := dst.Users.Add(ctx, u); err != nil {
			if errors.Is(err, domain.ErrDuplicateUser) {
				log.Printf("skip existing user %s", u.Username)
				continue
			}
			return counts, err
		}
		counts[0]++
	}

	questions, err := src.Questions.List(ctx)
	if err != nil {
		return counts, err
	}
	for _, q := range questions {
		if err := dst.Questions.Add(ctx, q); err != nil {
			if errors.Is(err, domain.ErrDuplicateQuestion) {
				log.Printf("skip existing question %q", q.Question)
				continue
			}
			return counts, err
		}
		counts[1]++
	}

	responses, err := src.Responses.List(ctx)
	if err != nil {
		return counts, err
	}
	for _, r := range responses {
		if err := dst.Responses.Add(ctx, r); err != nil {
			return counts, err
		}
		counts[2]++
	}
	return counts, nil
}
