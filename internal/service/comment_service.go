package service

import (
	"errors"
	"strings"
	"time"

	"github.com/quillpost/internal/db"
	"gorm.io/gorm"
)

var ErrCommentBodyRequired = errors.New("comment body is required")

// CommentService 负责评论的读取与创建，评论创建后不再修改或删除。
type CommentService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewCommentService creates a CommentService instance.
func NewCommentService(gdb *gorm.DB) *CommentService {
	return &CommentService{db: gdb, now: time.Now}
}

// ListForPost returns the comments of a post with authors, oldest first.
func (s *CommentService) ListForPost(postID uint) ([]db.Comment, error) {
	var comments []db.Comment
	err := s.db.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at asc, id asc").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// Create stores a comment by authorID on postID, dated today.
func (s *CommentService) Create(postID, authorID uint, body string) (*db.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrCommentBodyRequired
	}

	comment := db.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Body:     body,
		Date:     db.FormatDate(s.now()),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&db.BlogPost{}).Where("id = ?", postID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrPostNotFound
		}
		return tx.Create(&comment).Error
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}
