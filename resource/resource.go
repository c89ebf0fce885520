package resource

import "time"

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	Username    string    `json:"username"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type VerifyResponse struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username"`
}

type BookingStatusResponse struct {
	ID     uint   `json:"id"`
	Status string `json:"status"`
}

type DashboardStats struct {
	Tours             int64 `json:"tours"`
	ActiveTours       int64 `json:"active_tours"`
	Hotels            int64 `json:"hotels"`
	Services          int64 `json:"services"`
	BlogArticles      int64 `json:"blog_articles"`
	GalleryItems      int64 `json:"gallery_items"`
	Bookings          int64 `json:"bookings"`
	BookingsPending   int64 `json:"bookings_pending"`
	BookingsThisWeek  int64 `json:"bookings_this_week"`
	BookingsThisMonth int64 `json:"bookings_this_month"`
	OperatorConfigs   int64 `json:"operator_configs"`
}

type UploadResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	App     string `json:"app"`
	Version string `json:"version"`
}
