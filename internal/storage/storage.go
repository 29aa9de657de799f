package storage

import (
	"os"
	"sync"
	"time"

	"github.com/Betocasasa/projecthub-backend/internal/config"
	"github.com/Betocasasa/projecthub-backend/internal/util/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

var (
	db   *gorm.DB
	once sync.Once
)

// GetDb returns the shared database handle, connecting on first use.
func GetDb() *gorm.DB {
	once.Do(connect)
	return db
}

func connect() {
	log := logger.GetLogger()

	gormDb, err := gorm.Open(postgres.Open(config.GetEnv().DatabaseDsn), &gorm.Config{
		Logger: gorm_logger.Default.LogMode(gorm_logger.Silent),
	})
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	sqlDb, err := gormDb.DB()
	if err != nil {
		log.Error("Failed to access underlying database connection", "error", err)
		os.Exit(1)
	}

	sqlDb.SetMaxOpenConns(25)
	sqlDb.SetMaxIdleConns(10)
	sqlDb.SetConnMaxLifetime(30 * time.Minute)

	db = gormDb
}
