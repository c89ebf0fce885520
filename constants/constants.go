package constants

// Token types issued by the auth service
const (
	TokenTypeAccess = "access"

	// Cookie read by the admin middleware when no Authorization header is sent
	AccessCookieName = "access"

	// Locals key holding the authenticated admin username
	LocalsAdmin = "admin"
)

// Background job types
const (
	JobSendBookingNotification = "send_booking_notification"
)

// Placeholders used in notification emails
const (
	PlaceholderPhone   = "N/A"
	PlaceholderMessage = "No additional message"
)
