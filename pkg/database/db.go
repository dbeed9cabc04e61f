package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"labportal/config"
	applogger "labportal/pkg/logger"
)

// Stores 三个相互独立的数据源
// 各库之间没有外键，也不做跨库事务
type Stores struct {
	Optimus   *gorm.DB
	Backstage *gorm.DB
	Auth      *gorm.DB
}

// OpenStores 按配置依次连接三个数据源，任一失败即关闭已打开的连接
func OpenStores(cfg *config.Config, logger *zap.Logger) (*Stores, error) {
	optimus, err := NewDB("optimus", &cfg.Optimus, cfg.Log.Level, logger)
	if err != nil {
		return nil, err
	}
	backstage, err := NewDB("backstage", &cfg.Backstage, cfg.Log.Level, logger)
	if err != nil {
		Close(optimus)
		return nil, err
	}
	auth, err := NewDB("authdb", &cfg.AuthDB, cfg.Log.Level, logger)
	if err != nil {
		Close(optimus)
		Close(backstage)
		return nil, err
	}
	return &Stores{Optimus: optimus, Backstage: backstage, Auth: auth}, nil
}

// Ping 逐个探测数据源，键为数据源名称，值为 nil 表示可用
func (s *Stores) Ping(ctx context.Context) map[string]error {
	return map[string]error{
		"optimus":   Ping(ctx, s.Optimus),
		"backstage": Ping(ctx, s.Backstage),
		"authdb":    Ping(ctx, s.Auth),
	}
}

// Ping 探测单个连接
func Ping(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("未连接")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close 关闭全部连接
func (s *Stores) Close() {
	Close(s.Optimus)
	Close(s.Backstage)
	Close(s.Auth)
}

// NewDB 初始化单个数据源连接
func NewDB(name string, cfg *config.DatabaseConfig, logLevel string, logger *zap.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(applogger.GormLevel(logLevel)),
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN())
	default:
		dialector = postgres.Open(cfg.DSN())
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("连接数据库 %s 失败: %w", name, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取 %s 底层 sql.DB 失败: %w", name, err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 25
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 10
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库 %s ping 失败: %w", name, err)
	}

	applogger.ForStore(logger, name).Info("数据库连接成功",
		zap.String("driver", cfg.Driver),
		zap.String("host", cfg.Host),
		zap.String("dbname", cfg.Name),
	)

	return db, nil
}

// Close 关闭单个连接，nil 安全
func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
