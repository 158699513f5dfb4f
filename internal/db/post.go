package db

import "time"

// DateLayout 是文章与评论展示日期的格式，例如 "October 15, 2026"。
const DateLayout = "January 02, 2006"

// BlogPost 定义了文章模型。删除为物理删除，标题释放后可被复用。
type BlogPost struct {
	ID        uint `gorm:"primaryKey"`
	AuthorID  uint `gorm:"not null;index"`
	Author    User
	Title     string    `gorm:"uniqueIndex;not null"`
	Subtitle  string    `gorm:"not null"`
	Date      string    `gorm:"not null"`
	Body      string    `gorm:"type:text;not null"`
	ImgURL    string    `gorm:"not null"`
	Comments  []Comment `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FormatDate 按展示格式输出日期。
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
