package service

import (
	"errors"
	"testing"
	"time"

	"github.com/quillpost/internal/db"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, gdb *gorm.DB, name, email, role string) db.User {
	t.Helper()
	user := db.User{Name: name, Email: email, Password: "hashed", Role: role}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func fixedClock() time.Time {
	return time.Date(2026, time.October, 15, 10, 0, 0, 0, time.UTC)
}

func TestPostServiceCreateStampsDateAndAuthor(t *testing.T) {
	gdb := setupServiceTestDB(t)
	admin := seedUser(t, gdb, "Admin", "admin@x.com", db.RoleAdmin)

	svc := NewPostService(gdb)
	svc.now = fixedClock

	post, err := svc.Create(PostInput{Title: " Hello ", Subtitle: "S", ImgURL: "http://x/y.png", Body: "<p>B</p>"}, admin.ID)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	if post.Title != "Hello" {
		t.Fatalf("expected trimmed title, got %q", post.Title)
	}
	if post.Date != "October 15, 2026" {
		t.Fatalf("unexpected date %q", post.Date)
	}
	if post.AuthorID != admin.ID {
		t.Fatalf("expected author %d, got %d", admin.ID, post.AuthorID)
	}

	loaded, err := svc.Get(post.ID)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if loaded.Author.Name != "Admin" {
		t.Fatalf("expected author to be preloaded, got %+v", loaded.Author)
	}
}

func TestPostServiceCreateRejectsDuplicateTitle(t *testing.T) {
	gdb := setupServiceTestDB(t)
	admin := seedUser(t, gdb, "Admin", "admin@x.com", db.RoleAdmin)
	svc := NewPostService(gdb)

	input := PostInput{Title: "Hello", Subtitle: "S", ImgURL: "http://x/y.png", Body: "B"}
	if _, err := svc.Create(input, admin.ID); err != nil {
		t.Fatalf("create first: %v", err)
	}
	if _, err := svc.Create(input, admin.ID); !errors.Is(err, ErrDuplicateTitle) {
		t.Fatalf("expected ErrDuplicateTitle, got %v", err)
	}

	posts, err := svc.ListAll()
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("expected one post after rejected duplicate, got %d", len(posts))
	}
}

func TestTranslatePostErrorMapsConstraintViolation(t *testing.T) {
	gdb := setupServiceTestDB(t)
	admin := seedUser(t, gdb, "Admin", "admin@x.com", db.RoleAdmin)

	first := db.BlogPost{AuthorID: admin.ID, Title: "Same", Subtitle: "S", Body: "B", ImgURL: "u", Date: "d"}
	if err := gdb.Create(&first).Error; err != nil {
		t.Fatalf("seed post: %v", err)
	}
	err := gdb.Create(&db.BlogPost{AuthorID: admin.ID, Title: "Same", Subtitle: "S", Body: "B", ImgURL: "u", Date: "d"}).Error
	if !errors.Is(translatePostError(err), ErrDuplicateTitle) {
		t.Fatalf("expected constraint violation to map to ErrDuplicateTitle, got %v", err)
	}
}

func TestPostServiceListAllNewestFirst(t *testing.T) {
	gdb := setupServiceTestDB(t)
	admin := seedUser(t, gdb, "Admin", "admin@x.com", db.RoleAdmin)
	svc := NewPostService(gdb)

	for _, title := range []string{"First", "Second", "Third"} {
		if _, err := svc.Create(PostInput{Title: title, Subtitle: "S", ImgURL: "http://x/y.png", Body: "B"}, admin.ID); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}

	posts, err := svc.ListAll()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}
	if posts[0].Title != "Third" || posts[2].Title != "First" {
		t.Fatalf("unexpected order: %q, %q, %q", posts[0].Title, posts[1].Title, posts[2].Title)
	}
	if posts[0].Author.Email != "admin@x.com" {
		t.Fatal("expected authors to be preloaded")
	}
}

func TestPostServiceGetMissing(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewPostService(gdb)

	if _, err := svc.Get(42); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
	exists, err := svc.Exists(42)
	if err != nil || exists {
		t.Fatalf("expected missing post, got exists=%v err=%v", exists, err)
	}
}

func TestPostServiceUpdate(t *testing.T) {
	gdb := setupServiceTestDB(t)
	admin := seedUser(t, gdb, "Admin", "admin@x.com", db.RoleAdmin)
	svc := NewPostService(gdb)
	svc.now = fixedClock

	post, err := svc.Create(PostInput{Title: "Draft", Subtitle: "S", ImgURL: "http://x/y.png", Body: "B"}, admin.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(post.ID, PostInput{Title: "Final", Subtitle: "S2", ImgURL: "http://x/z.png", Body: "B2"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Final" || updated.Subtitle != "S2" || updated.ImgURL != "http://x/z.png" || updated.Body != "B2" {
		t.Fatalf("fields not overwritten: %+v", updated)
	}
	if updated.AuthorID != admin.ID || updated.Date != "October 15, 2026" {
		t.Fatalf("author and date should be kept: %+v", updated)
	}

	// 保留原标题不应被视为重复
	if _, err := svc.Update(post.ID, PostInput{Title: "Final", Subtitle: "S3", ImgURL: "http://x/z.png", Body: "B3"}); err != nil {
		t.Fatalf("update with unchanged title: %v", err)
	}
}

func TestPostServiceUpdateRejectsDuplicateAndMissing(t *testing.T) {
	gdb := setupServiceTestDB(t)
	admin := seedUser(t, gdb, "Admin", "admin@x.com", db.RoleAdmin)
	svc := NewPostService(gdb)

	if _, err := svc.Create(PostInput{Title: "Taken", Subtitle: "S", ImgURL: "http://x/y.png", Body: "B"}, admin.ID); err != nil {
		t.Fatalf("create: %v", err)
	}
	other, err := svc.Create(PostInput{Title: "Other", Subtitle: "S", ImgURL: "http://x/y.png", Body: "B"}, admin.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(other.ID, PostInput{Title: "Taken", Subtitle: "S", ImgURL: "http://x/y.png", Body: "B"}); !errors.Is(err, ErrDuplicateTitle) {
		t.Fatalf("expected ErrDuplicateTitle, got %v", err)
	}
	if _, err := svc.Update(999, PostInput{Title: "New", Subtitle: "S", ImgURL: "http://x/y.png", Body: "B"}); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostServiceDeleteRemovesComments(t *testing.T) {
	gdb := setupServiceTestDB(t)
	admin := seedUser(t, gdb, "Admin", "admin@x.com", db.RoleAdmin)
	reader := seedUser(t, gdb, "Reader", "reader@x.com", db.RoleMember)
	posts := NewPostService(gdb)
	comments := NewCommentService(gdb)

	post, err := posts.Create(PostInput{Title: "Hello", Subtitle: "S", ImgURL: "http://x/y.png", Body: "B"}, admin.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := comments.Create(post.ID, reader.ID, "Nice"); err != nil {
		t.Fatalf("comment: %v", err)
	}

	if err := posts.Delete(post.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var count int64
	gdb.Model(&db.Comment{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected comments to be deleted, found %d", count)
	}
	if err := posts.Delete(post.ID); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound on second delete, got %v", err)
	}

	// 删除后标题可以复用
	if _, err := posts.Create(PostInput{Title: "Hello", Subtitle: "S", ImgURL: "http://x/y.png", Body: "B"}, admin.ID); err != nil {
		t.Fatalf("title should be free after delete: %v", err)
	}
}
