package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
	"github.com/quillpost/internal/auth"
	"github.com/quillpost/internal/config"
	"github.com/quillpost/internal/db"
	"github.com/quillpost/internal/handler"
	"github.com/quillpost/internal/logger"
	"github.com/quillpost/internal/router"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("failed to load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger.InitLogger(level)
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	var opts []db.Option
	if level == logging.DEBUG {
		opts = append(opts, db.WithLogger(gormlogger.Default.LogMode(gormlogger.Info)))
	}
	if err := db.Init(cfg.DatabaseURI, opts...); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	api := handler.NewAPI(db.DB, auth.NewHasher(cfg.BcryptCost), cfg.AdminEmail)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		admin, err := api.Users().EnsureAdmin(cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			log.Fatalf("failed to ensure admin account: %v", err)
		}
		logger.Infof("admin account ready: %s (id %d)", admin.Email, admin.ID)
	} else if cfg.AdminEmail == "" {
		logger.Warningf("ADMIN_EMAIL is not set, no account can publish posts")
	}

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(api, cfg.SecretKey, cfg.CookieSecure)
	logger.Infof("listening on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
