package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"contact-management/cache"
	"contact-management/logger"
	"contact-management/services"
)

// Scheduled job that rebuilds the Redis contact cache from the store.
func handler(ctx context.Context) error {
	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		return err
	}
	defer log.Sync()

	dsn := os.Getenv("DB_DSN")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return err
	}

	redisClient, err := cache.InitRedis()
	if err != nil {
		return err
	}

	svc := services.NewContactService(db, log)
	svc.Cache = cache.NewContactCache(redisClient, log)
	return svc.RefreshAllContactCache(ctx)
}

func main() {
	lambda.Start(handler)
}
