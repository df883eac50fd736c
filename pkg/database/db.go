package database

import (
	"Petly/config"
	"Petly/models"
	"Petly/pkg/log"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens the MySQL pool and migrates the schema when enabled.
func NewDB(conf *config.Config) *gorm.DB {
	gormConf := &gorm.Config{
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
	if !conf.Debug() {
		gormConf.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(mysql.Open(conf.MySQL.Dsn()), gormConf)
	if err != nil {
		log.L.Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.L.Fatal("failed to get sql.DB", zap.Error(err))
	}
	if conf.MySQL.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(conf.MySQL.MaxOpenConns)
	}
	if conf.MySQL.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(conf.MySQL.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	if conf.MySQL.AutoMigrate {
		if err := db.AutoMigrate(models.Tables()...); err != nil {
			log.L.Fatal("auto migrate", zap.Error(err))
		}
	}

	log.L.Info("connect database success")
	return db
}
