package main

import (
	"log"

	"github.com/redis/go-redis/v9"

	"playto.com/communityfeed/internal/bootstrap"
	"playto.com/communityfeed/internal/config"
	"playto.com/communityfeed/internal/server"
	"playto.com/communityfeed/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedSampleData(db); err != nil {
			log.Fatalf("failed to seed sample data: %v", err)
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	} else {
		log.Println("REDIS_URL not set, running without leaderboard cache and rate limiting")
	}

	srv := server.NewServer(cfg, db, redisClient)

	log.Printf("🚀 Community feed listening on :%s", cfg.Port)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
