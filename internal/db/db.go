package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 是一个全局的数据库连接实例
var DB *gorm.DB

// Option 调整 Open 使用的 gorm 配置。
type Option func(*gorm.Config)

// WithLogger 替换 gorm 的默认日志实现。
func WithLogger(l logger.Interface) Option {
	return func(cfg *gorm.Config) {
		cfg.Logger = l
	}
}

// Init 打开数据库、执行自动迁移并设置全局 DB。
func Init(dsn string, opts ...Option) error {
	gdb, err := Open(dsn, opts...)
	if err != nil {
		return err
	}
	if err := Migrate(gdb); err != nil {
		return err
	}
	DB = gdb
	return nil
}

// Open 根据连接串打开 sqlite 数据库。
// 唯一约束冲突会被翻译为 gorm.ErrDuplicatedKey，并在每个连接上开启外键约束。
func Open(dsn string, opts ...Option) (*gorm.DB, error) {
	path := normalizeDSN(dsn)
	if path == "" {
		return nil, errors.New("database connection string is empty")
	}

	if err := ensureParentDir(path); err != nil {
		return nil, err
	}

	cfg := &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return gorm.Open(sqlite.Open(withForeignKeys(path)), cfg)
}

// Migrate 为核心模型创建或更新表结构。
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&User{}, &BlogPost{}, &Comment{})
}

func normalizeDSN(dsn string) string {
	trimmed := strings.TrimSpace(dsn)
	for _, prefix := range []string{"sqlite:///", "sqlite://", "sqlite:"} {
		if strings.HasPrefix(trimmed, prefix) {
			return strings.TrimPrefix(trimmed, prefix)
		}
	}
	return trimmed
}

func withForeignKeys(path string) string {
	if strings.Contains(path, "_foreign_keys=") || strings.Contains(path, "_fk=") {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=1"
	}
	return path + "?_foreign_keys=1"
}

func ensureParentDir(path string) error {
	if strings.HasPrefix(path, "file:") || strings.HasPrefix(path, ":memory:") {
		return nil
	}
	if idx := strings.Index(path, "?"); idx >= 0 {
		path = path[:idx]
	}

	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
