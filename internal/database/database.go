package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"next-blog/config"
	"next-blog/internal/model"
)

var (
	PostgresDB *gorm.DB
)

func InitDatabase() {
	databaseConf := config.Conf.Database

	db, err := gorm.Open(postgres.Open(buildDSN(&databaseConf)), &gorm.Config{
		Logger: gormLogger(databaseConf.LogLevel),
	})
	if err != nil {
		panic(fmt.Errorf("连接数据库失败: %w", err))
	}

	// 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		panic(fmt.Errorf("获取数据库实例失败: %w", err))
	}
	sqlDB.SetMaxIdleConns(databaseConf.MaxIdleConns)
	sqlDB.SetMaxOpenConns(databaseConf.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(databaseConf.MaxLifetime) * time.Second)

	log.Printf("数据库连接成功: %s:%d/%s", databaseConf.Host, databaseConf.Port, databaseConf.Database)

	// 初始化数据库表
	if err := model.InitTable(db); err != nil {
		panic(err)
	}

	PostgresDB = db
}

// buildDSN 由数据库配置拼接连接串
func buildDSN(c *config.DatabaseConfig) string {
	sslmode := "disable"
	if c.SSLMode {
		sslmode = "require"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.Host, c.Username, c.Password, c.Database, c.Port, sslmode)
}

// gormLogger 配置的日志级别映射到gorm
func gormLogger(level string) logger.Interface {
	switch level {
	case "silent":
		return logger.Default.LogMode(logger.Silent)
	case "error":
		return logger.Default.LogMode(logger.Error)
	case "warn":
		return logger.Default.LogMode(logger.Warn)
	default:
		return logger.Default.LogMode(logger.Info)
	}
}

// GetDB 获取数据库实例
func GetDB() *gorm.DB {
	return PostgresDB
}
