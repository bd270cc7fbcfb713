package main

import (
	"context"
	"log"

	"shopchat-be/internal/config"
	"shopchat-be/internal/entity"
	"shopchat-be/pkg/directory"

	"github.com/fatih/color"
	"github.com/redis/go-redis/v9"
)

// Seeds the shared user directory with the configured fallback users so a
// fresh environment has a populated roster before anyone signs in.
func main() {
	cfg := config.Load()

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	store := directory.NewRedisStore(rdb)
	ctx := context.Background()

	color.Cyan("🌱 Seeding user directory\n")

	if len(cfg.Chat.FallbackUsers) == 0 {
		color.Yellow("No fallback users configured (CHAT_FALLBACK_USERS). Nothing to do.")
		return
	}

	for _, u := range cfg.Chat.FallbackUsers {
		record := entity.DirectoryUser{UserID: u.UserID, Name: u.Name, Email: u.Email}
		if err := store.Write(ctx, "users", record.UserID, record); err != nil {
			color.Red("Failed: %s (%v)", record.UserID, err)
			continue
		}
		color.Green("Seeded: %s (%s)", record.Name, record.UserID)
	}

	color.Cyan("\nDone.")
}
