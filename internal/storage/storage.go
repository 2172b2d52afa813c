package storage

import (
	"os"
	"sync"
	"time"

	"teamboard/internal/config"
	"teamboard/internal/util/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

var (
	once sync.Once
	db   *gorm.DB
)

func GetDb() *gorm.DB {
	once.Do(connect)
	return db
}

func connect() {
	log := logger.GetLogger()

	gormConfig := &gorm.Config{
		Logger: gorm_logger.Default.LogMode(gorm_logger.Silent),
	}

	database, err := gorm.Open(postgres.Open(config.GetEnv().DatabaseDsn), gormConfig)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	sqlDb, err := database.DB()
	if err != nil {
		log.Error("Failed to get underlying sql.DB", "error", err)
		os.Exit(1)
	}

	sqlDb.SetMaxOpenConns(25)
	sqlDb.SetMaxIdleConns(10)
	sqlDb.SetConnMaxLifetime(30 * time.Minute)

	db = database
}
