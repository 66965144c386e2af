package db

import (
	"fmt"
	"os"
	"sync"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"contact-management/model"
)

var (
	DB   *gorm.DB
	once sync.Once
)

// InitDB opens the Postgres connection once per process and migrates the
// contact schema. The handle is returned so callers inject it explicitly.
func InitDB() (*gorm.DB, error) {
	var initErr error
	once.Do(func() {
		host := os.Getenv("DB_HOST")
		user := os.Getenv("DB_USER")
		password := os.Getenv("DB_PASSWORD")
		dbname := os.Getenv("DB_NAME")

		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=5432 sslmode=require", host, user, password, dbname)

		DB, initErr = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if initErr != nil {
			initErr = fmt.Errorf("failed to connect to database: %w", initErr)
			return
		}

		initErr = DB.AutoMigrate(&model.Contact{}, &model.Phone{})
		if initErr != nil {
			initErr = fmt.Errorf("failed to migrate database: %w", initErr)
		}
	})
	if initErr != nil {
		return nil, initErr
	}
	if DB == nil {
		return nil, fmt.Errorf("database was not initialized")
	}
	return DB, nil
}
