package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/quillpost/internal/auth"
	"github.com/quillpost/internal/config"
	"github.com/quillpost/internal/db"
	"github.com/quillpost/internal/service"
	"gorm.io/gorm"
)

const (
	demoAdminEmail  = "admin@quillpost.local"
	demoMemberEmail = "reader@quillpost.local"
)

type seedPost struct {
	title    string
	subtitle string
	imgURL   string
	body     string
	comments []string
}

var demoPosts = []seedPost{
	{
		title:    "The Life of Cactus",
		subtitle: "Who knew that cacti lived such interesting lives.",
		imgURL:   "https://images.unsplash.com/photo-1530482054429-cc491f61333b?auto=format&fit=crop&w=1600&q=80",
		body:     "Nori grape silver beet broccoli kombu beet greens fava bean potato quandong celery.\n\nBunya nuts black-eyed pea prairie turnip leek lentil turnip greens parsnip.",
		comments: []string{"I never knew cacti bloomed at night!"},
	},
	{
		title:    "Top 15 Things to Do When You Are Bored",
		subtitle: "Are you bored? Don't know what to do? Try these top 15 activities.",
		imgURL:   "https://images.unsplash.com/photo-1499781350541-7783f6c6a0c8?auto=format&fit=crop&w=1600&q=80",
		body:     "1. **Go for a walk.** Fresh air helps.\n2. **Read a book.** Any book.\n3. Write a blog post about being bored.",
	},
	{
		title:    "Introducing Sourdough",
		subtitle: "A beginner's guide to the bread everyone is baking.",
		imgURL:   "https://images.unsplash.com/photo-1509440159596-0249088772ff?auto=format&fit=crop&w=1600&q=80",
		body:     "Feed the starter, wait, fold the dough, wait some more. Patience is the only secret ingredient.",
		comments: []string{"Mine never rises. Any tips?", "Try a warmer spot for the starter."},
	},
}

// 示例数据生成器
func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal("读取 .env 失败:", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("配置无效:", err)
	}

	// 初始化数据库
	if err := db.Init(cfg.DatabaseURI); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	fmt.Println("开始生成示例数据...")
	created, err := seedDemo(db.DB, auth.NewHasher(cfg.BcryptCost))
	if err != nil {
		log.Fatal("生成示例数据失败:", err)
	}
	if created == 0 {
		fmt.Println("文章已存在，跳过生成")
		return
	}

	fmt.Println("示例数据生成完成！")
	fmt.Printf("管理员: %s (密码: admin123)\n", demoAdminEmail)
	fmt.Printf("读者: %s (密码: reader123)\n", demoMemberEmail)
	fmt.Printf("文章: %d 篇\n", created)
}

// seedDemo 在空库中写入管理员、读者、文章与评论，返回新建文章数。
func seedDemo(gdb *gorm.DB, hasher *auth.Hasher) (int, error) {
	var count int64
	if err := gdb.Model(&db.BlogPost{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	users := service.NewUserService(gdb, hasher, demoAdminEmail)
	admin, err := users.EnsureAdmin("Admin", demoAdminEmail, "admin123")
	if err != nil {
		return 0, fmt.Errorf("ensure admin: %w", err)
	}

	reader, err := users.FindByEmail(demoMemberEmail)
	if errors.Is(err, service.ErrUserNotFound) {
		reader, err = users.Register(service.RegisterInput{
			Name:     "Reader",
			Email:    demoMemberEmail,
			Password: "reader123",
		})
	}
	if err != nil {
		return 0, fmt.Errorf("prepare reader: %w", err)
	}

	posts := service.NewPostService(gdb)
	comments := service.NewCommentService(gdb)
	for _, item := range demoPosts {
		post, err := posts.Create(service.PostInput{
			Title:    item.title,
			Subtitle: item.subtitle,
			ImgURL:   item.imgURL,
			Body:     item.body,
		}, admin.ID)
		if err != nil {
			return 0, fmt.Errorf("create post %q: %w", item.title, err)
		}
		for _, body := range item.comments {
			if _, err := comments.Create(post.ID, reader.ID, body); err != nil {
				return 0, fmt.Errorf("comment on %q: %w", item.title, err)
			}
		}
	}
	return len(demoPosts), nil
}
