// @title           Homes API
// @version         1.0
// @description     Real-estate listings: signup, search and realtor-owned home management.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/realtorhub/homes-api/internal/api"
	"github.com/realtorhub/homes-api/internal/api/handler"
	"github.com/realtorhub/homes-api/internal/core/ports"
	"github.com/realtorhub/homes-api/internal/core/service"
	"github.com/realtorhub/homes-api/internal/infrastructure/db/mongo"
	"github.com/realtorhub/homes-api/internal/infrastructure/db/postgres"
	"github.com/realtorhub/homes-api/internal/infrastructure/db/redis"
	"github.com/realtorhub/homes-api/internal/infrastructure/mq"
	"github.com/realtorhub/homes-api/internal/infrastructure/queue"
	"github.com/realtorhub/homes-api/internal/infrastructure/storage"
	"github.com/realtorhub/homes-api/internal/pkg/config"
	"github.com/realtorhub/homes-api/internal/pkg/obs"
	"github.com/realtorhub/homes-api/pkg/logger"
)

const (
	serviceName     = "homes-api"
	version         = "1.0.0"
	shutdownTimeout = 10 * time.Second
)

// stores is the persistence layer selected by STORAGE_DRIVER.
type stores struct {
	users  ports.AuthRepository
	homes  ports.HomeRepository
	events ports.EventRepository
	ping   handler.Pinger
	name   string
	close  func(context.Context) error
}

func main() {
	// A missing .env is fine; real deployments use the environment.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
	})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("bye")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// Resources register here as they open and are released in reverse order on
	// every return path.
	var cleanup closers
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		cleanup.closeAll(closeCtx, log)
	}()

	shutdownTracer, err := obs.InitTracer(ctx, obs.Options{
		ServiceName: serviceName,
		Version:     version,
		Environment: cfg.Env,
		Endpoint:    cfg.OTel.Endpoint,
	})
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	cleanup.add("tracer", shutdownTracer)

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	cleanup.add(st.name, st.close)

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	cleanup.add("redis", func(context.Context) error { return rdb.Close() })
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")

	pingers := map[string]handler.Pinger{
		st.name: st.ping,
		"redis": handler.PingFunc(func(ctx context.Context) error { return redis.Ping(ctx, rdb, 2*time.Second) }),
	}

	var broker ports.EventBroker
	if cfg.AMQP.URL != "" {
		publisher, err := mq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			return err
		}
		cleanup.add("rabbitmq", func(context.Context) error { return publisher.Close() })
		broker = publisher
		pingers["rabbitmq"] = publisher
		log.Info().Str("exchange", cfg.AMQP.Exchange).Msg("rabbitmq connected")
	}

	homeOpts := []service.HomeServiceOption{
		service.WithIdempotency(redis.NewIdempotencyStore(rdb)),
	}
	if cfg.S3.Bucket != "" {
		images, err := buildImageStore(ctx, cfg.S3)
		if err != nil {
			return fmt.Errorf("setup storage: %w", err)
		}
		homeOpts = append(homeOpts, service.WithImageStore(images))
		log.Info().Str("bucket", cfg.S3.Bucket).Str("region", cfg.S3.Region).Msg("image uploads enabled")
	}

	authSvc, err := service.NewAuthService(st.users, cfg.JWTSecret, cfg.TokenTTL, logger.Component("auth"))
	if err != nil {
		return err
	}

	eventSvc := service.NewEventService(st.events, broker, redis.NewDedupChecker(rdb), logger.Component("events"))
	dispatcher := queue.NewDispatcher(cfg.EventWorkers, eventSvc, logger.Component("dispatcher"))
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()
	dispatcher.Start(workerCtx)

	homeSvc := service.NewHomeService(st.homes, dispatcher, logger.Component("homes"), homeOpts...)

	e := api.NewRouter(api.Deps{
		AuthService: authSvc,
		HomeService: homeSvc,
		JWTSecret:   cfg.JWTSecret,
		Pingers:     pingers,
		Logger:      log,
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("storage", cfg.StorageDriver).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down...")
	case err := <-serverErr:
		log.Error().Err(err).Msg("http server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http shutdown")
	}
	// Requests are done; flush queued listing events before closing stores.
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("event dispatcher did not drain")
	}
	cancelWorkers()
	return nil
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		db, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN}, log)
		if err != nil {
			return nil, err
		}
		return postgresStores(db), nil
	default:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")
		return mongoStores(client, db), nil
	}
}

func mongoStores(client *mongodriver.Client, db *mongodriver.Database) *stores {
	return &stores{
		users:  mongo.NewAuthRepository(db),
		homes:  mongo.NewHomeRepository(db),
		events: mongo.NewEventRepository(db),
		ping:   handler.PingFunc(func(ctx context.Context) error { return mongo.Ping(ctx, db) }),
		name:   "mongodb",
		close:  client.Disconnect,
	}
}

func postgresStores(db *sql.DB) *stores {
	return &stores{
		users:  postgres.NewAuthRepository(db),
		homes:  postgres.NewHomeRepository(db),
		events: postgres.NewEventRepository(db),
		ping:   handler.PingFunc(db.PingContext),
		name:   "postgres",
		close:  func(context.Context) error { return db.Close() },
	}
}

func buildImageStore(ctx context.Context, s3cfg config.S3Config) (*storage.S3Store, error) {
	sc := storage.Config{
		Bucket:    s3cfg.Bucket,
		Region:    s3cfg.Region,
		Endpoint:  s3cfg.Endpoint,
		PublicURL: s3cfg.PublicURL,
	}
	client, err := storage.NewClient(ctx, sc)
	if err != nil {
		return nil, err
	}
	return storage.NewS3Store(client, sc)
}
