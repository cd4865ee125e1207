package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"tce-quiz-dashboard/internal/app"
	"tce-quiz-dashboard/internal/config"
	"tce-quiz-dashboard/internal/infra/jsonfile"
	"tce-quiz-dashboard/internal/infra/memory"
	"tce-quiz-dashboard/internal/infra/postgres"
	redissession "tce-quiz-dashboard/internal/infra/redis"
)

// backend is everything the service needs, plus the resources to release.
type backend struct {
	stores   app.Stores
	sessions app.SessionRepository
	imageDir string
	closers  []func()
}

func (b *backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func jsonStores(dir string) app.Stores {
	return app.Stores{
		Users:     jsonfile.NewUserStore(dir),
		Questions: jsonfile.NewQuestionStore(dir),
		Responses: jsonfile.NewResponseStore(dir),
		Images:    jsonfile.NewImageStore(dir),
	}
}

func postgresStores(pool *pgxpool.Pool, images *jsonfile.ImageStore) app.Stores {
	return app.Stores{
		Users:     postgres.NewUserStore(pool),
		Questions: postgres.NewQuestionStore(pool),
		Responses: postgres.NewResponseStore(pool),
		Images:    images,
	}
}

func openBackend(ctx context.Context, cfg config.Config) (*backend, error) {
	images := jsonfile.NewImageStore(cfg.Storage.Dir)
	b := &backend{imageDir: images.Dir()}

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return nil, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		b.closers = append(b.closers, pool.Close)
		b.stores = postgresStores(pool, images)
		log.Printf("storage: postgres")
	default:
		b.stores = jsonStores(cfg.Storage.Dir)
		log.Printf("storage: json files in %s", cfg.Storage.Dir)
	}

	sessionTTL := config.TTLDuration(cfg.Session.TTL, 12*time.Hour)
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			b.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		b.closers = append(b.closers, func() { _ = client.Close() })
		b.sessions = redissession.NewSessionStore(client, sessionTTL)
		log.Printf("sessions: redis at %s", cfg.Redis.Addr)
	} else {
		b.sessions = memory.NewSessionStore()
		log.Printf("sessions: in-memory")
	}
	return b, nil
}
