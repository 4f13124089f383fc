package repositories

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"greenhouse-server/configs"
	"greenhouse-server/internal/loggers"
	"greenhouse-server/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Dbs struct {
	Redis    *redis.Client
	Postgres *gorm.DB
}

var DBS Dbs

func Init() {
	initRedis()
	initPostgres()
}

// initRedis initializes the Redis connection used for token revocation.
func initRedis() {
	opt := &redis.Options{
		Addr:     configs.Configs.Redis.Addresses[0],
		Username: configs.Configs.Redis.Username,
		Password: configs.Configs.Redis.Password,
		DB:       configs.Configs.Redis.Database,
	}

	if configs.Configs.Redis.Tls {
		opt.TLSConfig = &tls.Config{}
	}

	DBS.Redis = redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := DBS.Redis.Ping(ctx).Result()
	if err != nil {
		configs.Logger.Fatal("Failed to connect to Redis", zap.Error(err))
		return
	}

	configs.Logger.Info("Redis connected successfully", zap.String("result", result))
}

// initPostgres initializes the PostgreSQL connection.
func initPostgres() {
	host, port, err := net.SplitHostPort(configs.Configs.Postgres.Address)
	if err != nil {
		configs.Logger.Fatal("Invalid Postgres address", zap.Error(err))
		return
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s",
		host,
		configs.Configs.Postgres.Username,
		configs.Configs.Postgres.Password,
		configs.Configs.Postgres.Database,
		port,
	)

	var logLevel gormlogger.LogLevel
	switch configs.Configs.Logs.LogLevel {
	case "DEBUG", "INFO":
		logLevel = gormlogger.Info
	case "WARN":
		logLevel = gormlogger.Warn
	case "ERROR":
		logLevel = gormlogger.Error
	default:
		logLevel = gormlogger.Silent
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         loggers.NewZapGormLogger(logLevel, 200*time.Millisecond, true),
		TranslateError: true,
	})
	if err != nil {
		configs.Logger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		return
	}

	if err := AutoMigrateInOrder(db); err != nil {
		configs.Logger.Fatal("Failed to migrate database", zap.Error(err))
		return
	}

	DBS.Postgres = db
	configs.Logger.Info("PostgreSQL connected successfully")
}

// AutoMigrateInOrder migrates all models respecting FK dependencies.
func AutoMigrateInOrder(db *gorm.DB) error {
	modelsInOrder := []interface{}{
		&models.User{},
		&models.Greenhouse{},
		&models.InventoryItem{},
		&models.InventoryLog{},
		&models.FertilizerSchedule{},
		&models.Assignment{},
		&models.AuditLog{},
	}

	for _, model := range modelsInOrder {
		if err := db.AutoMigrate(model); err != nil {
			return err
		}
	}
	return nil
}
