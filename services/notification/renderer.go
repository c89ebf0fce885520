package notification

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"travel-agency/constants"
	bookingModel "travel-agency/models/booking"
	tourModel "travel-agency/models/tour"
)

// Email is a rendered notification, ready to address.
type Email struct {
	Subject string
	HTML    string
	Text    string
}

type bookingView struct {
	BookingID     uint
	TourTitle     string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Language      string
	Message       string
	TourURL       string
}

// Renderer builds booking notification emails. Customer input is escaped in the HTML part.
type Renderer struct {
	siteURL string
	html    *htmltemplate.Template
	text    *texttemplate.Template
}

func NewRenderer(siteURL string) (*Renderer, error) {
	html, err := htmltemplate.New("booking.html").Parse(bookingHTMLTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse html template: %w", err)
	}
	text, err := texttemplate.New("booking.txt").Parse(bookingTextTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse text template: %w", err)
	}
	return &Renderer{siteURL: strings.TrimRight(siteURL, "/"), html: html, text: text}, nil
}

// Subject is always in English so operators can filter on it.
func Subject(b *bookingModel.Booking, t *tourModel.TourPackage) string {
	return fmt.Sprintf("New Booking #%d — %s (%s)", b.ID, t.TitleEn, strings.ToUpper(b.Language))
}

func (r *Renderer) BookingNotification(b *bookingModel.Booking, t *tourModel.TourPackage) (Email, error) {
	view := bookingView{
		BookingID:     b.ID,
		TourTitle:     t.TitleEn,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: valueOr(b.CustomerPhone, constants.PlaceholderPhone),
		Language:      strings.ToUpper(b.Language),
		Message:       valueOr(b.Message, constants.PlaceholderMessage),
		TourURL:       fmt.Sprintf("%s/tours/%d", r.siteURL, t.ID),
	}

	var html, text bytes.Buffer
	if err := r.html.Execute(&html, view); err != nil {
		return Email{}, fmt.Errorf("render html body: %w", err)
	}
	if err := r.text.Execute(&text, view); err != nil {
		return Email{}, fmt.Errorf("render text body: %w", err)
	}
	return Email{Subject: Subject(b, t), HTML: html.String(), Text: text.String()}, nil
}

func valueOr(s *string, placeholder string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return placeholder
	}
	return *s
}
