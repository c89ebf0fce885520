package gallery

import (
	galleryModel "travel-agency/models/gallery"
	"travel-agency/types"
	"travel-agency/utils"
)

type GalleryCreateRequest struct {
	MediaType    string  `json:"media_type" validate:"required,oneof=image video"`
	URL          string  `json:"url" validate:"required,max=512"`
	ThumbnailURL *string `json:"thumbnail_url" validate:"omitempty,max=512"`
	CaptionRu    *string `json:"caption_ru" validate:"omitempty,max=500"`
	CaptionEn    *string `json:"caption_en" validate:"omitempty,max=500"`
	CaptionFr    *string `json:"caption_fr" validate:"omitempty,max=500"`
	TourID       *uint   `json:"tour_id" validate:"omitempty,gt=0"`
	SortOrder    int     `json:"sort_order"`
}

func (r *GalleryCreateRequest) Validate() error {
	return types.ValidateStruct(r)
}

func (r GalleryCreateRequest) ToModel() galleryModel.GalleryItem {
	return galleryModel.GalleryItem{
		MediaType:    galleryModel.MediaType(r.MediaType),
		URL:          r.URL,
		ThumbnailURL: r.ThumbnailURL,
		CaptionRu:    utils.StripHTMLPtr(r.CaptionRu),
		CaptionEn:    utils.StripHTMLPtr(r.CaptionEn),
		CaptionFr:    utils.StripHTMLPtr(r.CaptionFr),
		TourID:       r.TourID,
		SortOrder:    r.SortOrder,
	}
}

type GalleryUpdateRequest struct {
	MediaType    *string `json:"media_type" validate:"omitempty,oneof=image video"`
	URL          *string `json:"url" validate:"omitempty,min=1,max=512"`
	ThumbnailURL *string `json:"thumbnail_url" validate:"omitempty,max=512"`
	CaptionRu    *string `json:"caption_ru" validate:"omitempty,max=500"`
	CaptionEn    *string `json:"caption_en" validate:"omitempty,max=500"`
	CaptionFr    *string `json:"caption_fr" validate:"omitempty,max=500"`
	TourID       *uint   `json:"tour_id"`
	SortOrder    *int    `json:"sort_order"`
}

func (r *GalleryUpdateRequest) Validate() error {
	return types.ValidateStruct(r)
}

// Apply copies the set fields onto m. A tour_id of 0 detaches the item from its tour.
func (r GalleryUpdateRequest) Apply(m *galleryModel.GalleryItem) {
	if r.MediaType != nil {
		m.MediaType = galleryModel.MediaType(*r.MediaType)
	}
	if r.URL != nil {
		m.URL = *r.URL
	}
	if r.ThumbnailURL != nil {
		m.ThumbnailURL = r.ThumbnailURL
	}
	if r.CaptionRu != nil {
		m.CaptionRu = utils.StripHTMLPtr(r.CaptionRu)
	}
	if r.CaptionEn != nil {
		m.CaptionEn = utils.StripHTMLPtr(r.CaptionEn)
	}
	if r.CaptionFr != nil {
		m.CaptionFr = utils.StripHTMLPtr(r.CaptionFr)
	}
	if r.TourID != nil {
		if *r.TourID == 0 {
			m.TourID = nil
		} else {
			id := *r.TourID
			m.TourID = &id
		}
	}
	if r.SortOrder != nil {
		m.SortOrder = *r.SortOrder
	}
}
