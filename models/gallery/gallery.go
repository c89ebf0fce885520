package gallery

import "time"

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

func (m MediaType) IsValid() bool {
	return m == MediaTypeImage || m == MediaTypeVideo
}

// GalleryItem is an image or video, optionally attached to a tour.
type GalleryItem struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	MediaType    MediaType `gorm:"type:varchar(10);not null" json:"media_type"`
	URL          string    `gorm:"column:url;type:varchar(512);not null" json:"url"`
	ThumbnailURL *string   `gorm:"column:thumbnail_url;type:varchar(512)" json:"thumbnail_url"`
	CaptionRu    *string   `gorm:"type:varchar(500)" json:"caption_ru"`
	CaptionEn    *string   `gorm:"type:varchar(500)" json:"caption_en"`
	CaptionFr    *string   `gorm:"type:varchar(500)" json:"caption_fr"`
	TourID       *uint     `json:"tour_id"`
	SortOrder    int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (GalleryItem) TableName() string {
	return "gallery_items"
}
