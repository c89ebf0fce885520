package blog

import (
	"strings"
	"time"

	blogModel "travel-agency/models/blog"
	"travel-agency/types"
	"travel-agency/utils"
)

type BlogCreateRequest struct {
	TitleRu     string     `json:"title_ru" validate:"required,max=255"`
	TitleEn     string     `json:"title_en" validate:"required,max=255"`
	TitleFr     string     `json:"title_fr" validate:"required,max=255"`
	ContentRu   string     `json:"content_ru" validate:"required"`
	ContentEn   string     `json:"content_en" validate:"required"`
	ContentFr   string     `json:"content_fr" validate:"required"`
	Slug        string     `json:"slug" validate:"required,max=255"`
	CoverImage  *string    `json:"cover_image" validate:"omitempty,max=512"`
	Author      *string    `json:"author" validate:"omitempty,max=255"`
	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at"`
}

func (r *BlogCreateRequest) Validate() error {
	r.Slug = strings.ToLower(strings.TrimSpace(r.Slug))
	return types.ValidateStruct(r)
}

// ToModel sanitizes the article bodies and stamps the publish date when
// the article is published without one.
func (r BlogCreateRequest) ToModel(now time.Time) blogModel.BlogArticle {
	m := blogModel.BlogArticle{
		TitleRu:     utils.StripHTML(r.TitleRu),
		TitleEn:     utils.StripHTML(r.TitleEn),
		TitleFr:     utils.StripHTML(r.TitleFr),
		ContentRu:   utils.SanitizeHTML(r.ContentRu),
		ContentEn:   utils.SanitizeHTML(r.ContentEn),
		ContentFr:   utils.SanitizeHTML(r.ContentFr),
		Slug:        r.Slug,
		CoverImage:  r.CoverImage,
		Author:      utils.StripHTMLPtr(r.Author),
		IsPublished: r.IsPublished,
		PublishedAt: r.PublishedAt,
	}
	if m.IsPublished && m.PublishedAt == nil {
		m.PublishedAt = &now
	}
	return m
}

type BlogUpdateRequest struct {
	TitleRu     *string    `json:"title_ru" validate:"omitempty,min=1,max=255"`
	TitleEn     *string    `json:"title_en" validate:"omitempty,min=1,max=255"`
	TitleFr     *string    `json:"title_fr" validate:"omitempty,min=1,max=255"`
	ContentRu   *string    `json:"content_ru" validate:"omitempty,min=1"`
	ContentEn   *string    `json:"content_en" validate:"omitempty,min=1"`
	ContentFr   *string    `json:"content_fr" validate:"omitempty,min=1"`
	Slug        *string    `json:"slug" validate:"omitempty,min=1,max=255"`
	CoverImage  *string    `json:"cover_image" validate:"omitempty,max=512"`
	Author      *string    `json:"author" validate:"omitempty,max=255"`
	IsPublished *bool      `json:"is_published"`
	PublishedAt *time.Time `json:"published_at"`
}

func (r *BlogUpdateRequest) Validate() error {
	if r.Slug != nil {
		slug := strings.ToLower(strings.TrimSpace(*r.Slug))
		r.Slug = &slug
	}
	return types.ValidateStruct(r)
}

func (r BlogUpdateRequest) Apply(m *blogModel.BlogArticle, now time.Time) {
	if r.TitleRu != nil {
		m.TitleRu = utils.StripHTML(*r.TitleRu)
	}
	if r.TitleEn != nil {
		m.TitleEn = utils.StripHTML(*r.TitleEn)
	}
	if r.TitleFr != nil {
		m.TitleFr = utils.StripHTML(*r.TitleFr)
	}
	if r.ContentRu != nil {
		m.ContentRu = utils.SanitizeHTML(*r.ContentRu)
	}
	if r.ContentEn != nil {
		m.ContentEn = utils.SanitizeHTML(*r.ContentEn)
	}
	if r.ContentFr != nil {
		m.ContentFr = utils.SanitizeHTML(*r.ContentFr)
	}
	if r.Slug != nil {
		m.Slug = *r.Slug
	}
	if r.CoverImage != nil {
		m.CoverImage = r.CoverImage
	}
	if r.Author != nil {
		m.Author = utils.StripHTMLPtr(r.Author)
	}
	if r.PublishedAt != nil {
		m.PublishedAt = r.PublishedAt
	}
	if r.IsPublished != nil {
		m.IsPublished = *r.IsPublished
	}
	if m.IsPublished && m.PublishedAt == nil {
		m.PublishedAt = &now
	}
}
