package service

import (
	"errors"
	"strings"
	"time"

	"github.com/quillpost/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPostNotFound   = errors.New("post not found")
	ErrDuplicateTitle = errors.New("a post with this title already exists")
)

// PostService wraps post related database operations.
type PostService struct {
	db  *gorm.DB
	now func() time.Time
}

// PostInput represents fields accepted when creating or updating a post.
type PostInput struct {
	Title    string
	Subtitle string
	ImgURL   string
	Body     string
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb, now: time.Now}
}

// ListAll returns all posts with their authors, newest first.
func (s *PostService) ListAll() ([]db.BlogPost, error) {
	var posts []db.BlogPost
	if err := s.db.Preload("Author").Order("created_at desc, id desc").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Get fetches a post by id with its author and comments preloaded.
func (s *PostService) Get(id uint) (*db.BlogPost, error) {
	var post db.BlogPost
	err := s.db.
		Preload("Author").
		Preload("Comments", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("comments.created_at asc, comments.id asc")
		}).
		Preload("Comments.Author").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Exists reports whether a post with the given id is stored.
func (s *PostService) Exists(id uint) (bool, error) {
	var count int64
	if err := s.db.Model(&db.BlogPost{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create persists a post authored by authorID and dated today.
func (s *PostService) Create(input PostInput, authorID uint) (*db.BlogPost, error) {
	post := db.BlogPost{
		AuthorID: authorID,
		Title:    strings.TrimSpace(input.Title),
		Subtitle: strings.TrimSpace(input.Subtitle),
		ImgURL:   strings.TrimSpace(input.ImgURL),
		Body:     input.Body,
		Date:     db.FormatDate(s.now()),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		taken, err := titleTaken(tx, post.Title, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateTitle
		}
		return tx.Create(&post).Error
	})
	if err != nil {
		return nil, translatePostError(err)
	}
	return &post, nil
}

// Update overwrites the editable fields of an existing post. Author and date are kept.
func (s *PostService) Update(id uint, input PostInput) (*db.BlogPost, error) {
	var post db.BlogPost
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&post, id).Error; err != nil {
			return err
		}

		title := strings.TrimSpace(input.Title)
		taken, err := titleTaken(tx, title, post.ID)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateTitle
		}

		post.Title = title
		post.Subtitle = strings.TrimSpace(input.Subtitle)
		post.ImgURL = strings.TrimSpace(input.ImgURL)
		post.Body = input.Body
		return tx.Omit(clause.Associations).Save(&post).Error
	})
	if err != nil {
		return nil, translatePostError(err)
	}
	return &post, nil
}

// Delete removes a post together with its comments in one transaction.
func (s *PostService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&db.Comment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&db.BlogPost{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPostNotFound
		}
		return nil
	})
}

func titleTaken(tx *gorm.DB, title string, excludeID uint) (bool, error) {
	query := tx.Model(&db.BlogPost{}).Where("title = ?", title)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func translatePostError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrPostNotFound
	case isDuplicateKey(err):
		return ErrDuplicateTitle
	default:
		return err
	}
}
