package main

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/medscript/clinical-records/internal/api"
	"github.com/medscript/clinical-records/internal/core/service"
	mongodb "github.com/medscript/clinical-records/internal/infrastructure/db/mongo"
	redisdb "github.com/medscript/clinical-records/internal/infrastructure/db/redis"
	"github.com/medscript/clinical-records/internal/infrastructure/kv"
	"github.com/medscript/clinical-records/internal/infrastructure/records"
	"github.com/medscript/clinical-records/internal/pkg/config"
	"github.com/medscript/clinical-records/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Timezone).Msg("invalid timezone")
	}

	ctx := context.Background()

	var (
		medium kv.Medium
		db     *mongo.Database
		rdb    *redis.Client
	)
	switch cfg.Persistence {
	case config.BackendRedis:
		rdb, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		medium = kv.NewRedisMedium(rdb)
	case config.BackendMongo:
		var client *mongo.Client
		client, db, err = mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() { _ = client.Disconnect(ctx) }()
		medium = kv.NewMongoMedium(db)
	case config.BackendMemory:
		medium = kv.NewMemoryMedium()
		log.Warn().Msg("using in-memory persistence, records will not survive restarts")
	default:
		log.Fatal().Str("persistence", cfg.Persistence).Msg("unknown persistence backend")
	}

	store := records.NewStore(medium, log)
	if err := store.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("record store restore failed")
	}

	sessions := service.NewSessionManager(medium, log)
	if identity := sessions.Restore(ctx); identity != nil {
		log.Info().Str("user_id", identity.User.ID).Str("role", string(identity.User.Role)).Msg("session restored")
	}

	e := api.NewRouter(api.Deps{
		Store:     store,
		Sessions:  sessions,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  24 * time.Hour,
		Location:  loc,
		Mongo:     db,
		Redis:     rdb,
		Log:       log,
	})

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
