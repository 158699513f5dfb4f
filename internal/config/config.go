package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrSecretKeyMissing   = errors.New("SECRET_KEY is required")
	ErrDatabaseURIMissing = errors.New("DATABASE_URI is required")
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr    string
	Port          string
	DatabaseURI   string
	SecretKey     string
	GinMode       string
	LogLevel      string
	BcryptCost    int
	CookieSecure  bool
	AdminEmail    string
	AdminName     string
	AdminPassword string
}

// LoadDotEnv 读取工作目录下的 .env 文件，文件不存在时忽略。
func LoadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// Load 从环境变量读取应用配置。会话密钥与数据库连接串缺失时返回错误，其余项使用默认值。
func Load() (AppConfig, error) {
	secretKey := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secretKey == "" {
		return AppConfig{}, ErrSecretKeyMissing
	}

	databaseURI := strings.TrimSpace(os.Getenv("DATABASE_URI"))
	if databaseURI == "" {
		return AppConfig{}, ErrDatabaseURIMissing
	}

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "5000"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	logLevel := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	if logLevel == "" {
		logLevel = "info"
	}

	cost, err := parseBcryptCost(os.Getenv("BCRYPT_COST"))
	if err != nil {
		return AppConfig{}, err
	}

	return AppConfig{
		ListenAddr:    listenAddr,
		Port:          port,
		DatabaseURI:   databaseURI,
		SecretKey:     secretKey,
		GinMode:       ginMode,
		LogLevel:      logLevel,
		BcryptCost:    cost,
		CookieSecure:  parseBool(os.Getenv("COOKIE_SECURE")),
		AdminEmail:    strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))),
		AdminName:     strings.TrimSpace(os.Getenv("ADMIN_NAME")),
		AdminPassword: strings.TrimSpace(os.Getenv("ADMIN_PASSWORD")),
	}, nil
}

func parseBcryptCost(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return bcrypt.DefaultCost, nil
	}
	cost, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid BCRYPT_COST %q: %w", trimmed, err)
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return 0, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return cost, nil
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
