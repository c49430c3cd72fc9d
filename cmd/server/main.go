package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/buildy/tablemaker/internal/cache"
	"github.com/buildy/tablemaker/internal/config"
	"github.com/buildy/tablemaker/internal/eventbus"
	"github.com/buildy/tablemaker/internal/jsonio"
	"github.com/buildy/tablemaker/internal/seed"
	"github.com/buildy/tablemaker/internal/server"
	"github.com/buildy/tablemaker/internal/store"
	"github.com/buildy/tablemaker/internal/worker"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (optional)")
	seedDemo := flag.Bool("seed", false, "seed the default table with demo rows on an empty database")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("opening store: %v", err)
	}

	var payloadCache cache.Cache
	switch cfg.Cache.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr: cfg.Cache.RedisAddr,
			DB:   cfg.Cache.RedisDB,
		})
		defer client.Close()
		payloadCache = cache.NewRedisCache(client)
	default:
		payloadCache = cache.NewFileCache(cfg.Cache.Path)
	}

	if *seedDemo {
		if err := seed.DefaultTable(ctx, st); err != nil {
			log.Fatalf("seeding: %v", err)
		}
	}

	bus := eventbus.New(256)
	bus.Subscribe("log", eventbus.NewLogConsumer())
	bus.Subscribe("cache_sync", worker.NewCacheSyncWorker(jsonio.New(st), payloadCache))
	bus.Start(ctx)

	if err := server.Run(ctx, server.Config{
		Port:  cfg.Port,
		Store: st,
		Cache: payloadCache,
		Bus:   bus,
	}); err != nil {
		log.Fatalf("server error: %v", err)
	}
	bus.Wait()
}

func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	var (
		db      *sql.DB
		dialect store.Dialect
		err     error
	)
	switch cfg.Database.Driver {
	case "postgres":
		db, err = sql.Open("postgres", cfg.Database.DSN)
		dialect = store.DialectPostgres
	default:
		db, err = sql.Open("sqlite", cfg.Database.DSN)
		dialect = store.DialectSQLite
	}
	if err != nil {
		return nil, err
	}
	if dialect == store.DialectSQLite {
		db.SetMaxOpenConns(1)
		// Foreign keys must be switched on per connection in SQLite;
		// cascades depend on it.
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			return nil, err
		}
	}
	s := store.NewSQLStore(db, dialect)
	if err := s.CreateSchema(ctx); err != nil {
		return nil, err
	}
	log.Println("database schema ready")
	return s, nil
}
