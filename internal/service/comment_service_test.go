package service

import (
	"errors"
	"testing"

	"github.com/quillpost/internal/db"
)

func TestCommentServiceCreateAndList(t *testing.T) {
	gdb := setupServiceTestDB(t)
	admin := seedUser(t, gdb, "Admin", "admin@x.com", db.RoleAdmin)
	reader := seedUser(t, gdb, "Reader", "reader@x.com", db.RoleMember)

	posts := NewPostService(gdb)
	post, err := posts.Create(PostInput{Title: "Hello", Subtitle: "S", ImgURL: "http://x/y.png", Body: "B"}, admin.ID)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	svc := NewCommentService(gdb)
	svc.now = fixedClock

	for _, body := range []string{"first", "second"} {
		if _, err := svc.Create(post.ID, reader.ID, body); err != nil {
			t.Fatalf("create comment: %v", err)
		}
	}

	comments, err := svc.ListForPost(post.ID)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
	if comments[0].Body != "first" || comments[1].Body != "second" {
		t.Fatalf("expected oldest first, got %q then %q", comments[0].Body, comments[1].Body)
	}
	if comments[0].Author.Name != "Reader" || comments[0].Date != "October 15, 2026" {
		t.Fatalf("unexpected comment %+v", comments[0])
	}

	loaded, err := posts.Get(post.ID)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if len(loaded.Comments) != 2 || loaded.Comments[0].Author.Name != "Reader" {
		t.Fatalf("expected comments with authors on post, got %+v", loaded.Comments)
	}
}

func TestCommentServiceRejectsMissingPostAndEmptyBody(t *testing.T) {
	gdb := setupServiceTestDB(t)
	reader := seedUser(t, gdb, "Reader", "reader@x.com", db.RoleMember)
	svc := NewCommentService(gdb)

	if _, err := svc.Create(404, reader.ID, "hello"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
	if _, err := svc.Create(1, reader.ID, "   "); !errors.Is(err, ErrCommentBodyRequired) {
		t.Fatalf("expected ErrCommentBodyRequired, got %v", err)
	}

	var count int64
	gdb.Model(&db.Comment{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no comments, found %d", count)
	}
}
