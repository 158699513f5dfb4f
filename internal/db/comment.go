package db

import "time"

// Comment 定义了评论模型
type Comment struct {
	ID        uint `gorm:"primaryKey"`
	AuthorID  uint `gorm:"not null;index"`
	Author    User
	PostID    uint   `gorm:"not null;index"`
	Body      string `gorm:"type:text;not null"`
	Date      string `gorm:"not null"`
	CreatedAt time.Time
}
