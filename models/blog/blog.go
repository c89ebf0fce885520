package blog

import "time"

type BlogArticle struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	TitleRu     string     `gorm:"type:varchar(255);not null" json:"title_ru"`
	TitleEn     string     `gorm:"type:varchar(255);not null" json:"title_en"`
	TitleFr     string     `gorm:"type:varchar(255);not null" json:"title_fr"`
	ContentRu   string     `gorm:"type:text;not null" json:"content_ru"`
	ContentEn   string     `gorm:"type:text;not null" json:"content_en"`
	ContentFr   string     `gorm:"type:text;not null" json:"content_fr"`
	Slug        string     `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	CoverImage  *string    `gorm:"type:varchar(512)" json:"cover_image"`
	Author      *string    `gorm:"type:varchar(255)" json:"author"`
	IsPublished bool       `gorm:"not null;default:false" json:"is_published"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BlogArticle) TableName() string {
	return "blog_articles"
}
