package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/quillpost/internal/auth"
	"github.com/quillpost/internal/config"
	"github.com/quillpost/internal/db"
	"github.com/quillpost/internal/service"
)

func main() {
	name := flag.String("name", "", "管理员显示名，默认取 ADMIN_NAME")
	email := flag.String("email", "", "管理员邮箱，默认取 ADMIN_EMAIL")
	password := flag.String("password", "", "新建账号时使用的密码，默认取 ADMIN_PASSWORD")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		log.Fatal("读取 .env 失败:", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("配置无效:", err)
	}

	adminName := firstNonEmpty(*name, cfg.AdminName)
	adminEmail := firstNonEmpty(*email, cfg.AdminEmail)
	adminPassword := firstNonEmpty(*password, cfg.AdminPassword)
	if adminEmail == "" {
		log.Fatal("请通过 -email 或 ADMIN_EMAIL 指定管理员邮箱")
	}

	// 初始化数据库
	if err := db.Init(cfg.DatabaseURI); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	users := service.NewUserService(db.DB, auth.NewHasher(cfg.BcryptCost), adminEmail)
	user, err := users.EnsureAdmin(adminName, adminEmail, adminPassword)
	if err != nil {
		if errors.Is(err, service.ErrAdminIncomplete) {
			log.Fatal("账号不存在，创建管理员需要提供密码")
		}
		log.Fatal("设置管理员失败:", err)
	}

	fmt.Println("管理员账号已就绪")
	fmt.Printf("ID: %d\n", user.ID)
	fmt.Printf("邮箱: %s\n", user.Email)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
