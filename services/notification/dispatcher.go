package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"travel-agency/logger"
	"travel-agency/metrics"
	bookingModel "travel-agency/models/booking"
	operatorModel "travel-agency/models/operator_config"
	tourModel "travel-agency/models/tour"
	"travel-agency/queue"

	"gorm.io/gorm"
)

// OperatorDirectory finds the active operator for a language, nil if none.
type OperatorDirectory interface {
	ActiveFor(ctx context.Context, language string) (*operatorModel.OperatorConfig, error)
}

type StepStatus string

const (
	StepSent    StepStatus = "sent"
	StepFailed  StepStatus = "failed"
	StepSkipped StepStatus = "skipped"
)

type StepResult struct {
	Recipient string     `json:"recipient,omitempty"`
	Status    StepStatus `json:"status"`
	Error     string     `json:"error,omitempty"`
}

// Outcome reports what one dispatch attempt did.
type Outcome struct {
	BookingID  uint       `json:"booking_id"`
	Status     string     `json:"status"`
	Message    string     `json:"message,omitempty"`
	Language   string     `json:"language,omitempty"`
	Operator   StepResult `json:"operator"`
	Director   StepResult `json:"director"`
	Recipients []string   `json:"recipients"`
}

// Dispatcher sends the booking notification to the language operator and the director.
type Dispatcher struct {
	db            *gorm.DB
	operators     OperatorDirectory
	mailer        Mailer
	renderer      *Renderer
	directorEmail string
}

func NewDispatcher(db *gorm.DB, operators OperatorDirectory, mailer Mailer, renderer *Renderer, directorEmail string) *Dispatcher {
	return &Dispatcher{
		db:            db,
		operators:     operators,
		mailer:        mailer,
		renderer:      renderer,
		directorEmail: directorEmail,
	}
}

// Dispatch runs one notification attempt for a booking.
//
// A missing booking or tour is returned as a permanent error. Database
// failures, and an attempt that delivered no email at all, are returned as
// plain errors so the job is retried. A failed send to one recipient does
// not stop the send to the other.
func (d *Dispatcher) Dispatch(ctx context.Context, bookingID uint) (*Outcome, error) {
	outcome := &Outcome{
		BookingID:  bookingID,
		Operator:   StepResult{Status: StepSkipped},
		Director:   StepResult{Recipient: d.directorEmail, Status: StepSkipped},
		Recipients: []string{},
	}
	logger.Info(fmt.Sprintf("Processing email notification for booking #%d", bookingID))

	db := d.db.WithContext(ctx)
	var b bookingModel.Booking
	if err := db.First(&b, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return d.fail(outcome, "Booking not found", queue.Permanent(fmt.Errorf("booking #%d not found", bookingID)))
		}
		return d.fail(outcome, "Failed to load booking", fmt.Errorf("load booking #%d: %w", bookingID, err))
	}
	outcome.Language = b.Language

	var t tourModel.TourPackage
	if err := db.First(&t, b.TourID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return d.fail(outcome, "Tour not found", queue.Permanent(fmt.Errorf("tour #%d not found for booking #%d", b.TourID, bookingID)))
		}
		return d.fail(outcome, "Failed to load tour", fmt.Errorf("load tour #%d: %w", b.TourID, err))
	}

	operator, err := d.operators.ActiveFor(ctx, b.Language)
	if err != nil {
		return d.fail(outcome, "Failed to look up operator", fmt.Errorf("look up operator for %q: %w", b.Language, err))
	}

	email, err := d.renderer.BookingNotification(&b, &t)
	if err != nil {
		return d.fail(outcome, "Failed to render email", queue.Permanent(err))
	}

	lang := strings.ToUpper(b.Language)
	if operator != nil {
		outcome.Operator = d.send(ctx, "operator", operator.OperatorEmail, email)
		if outcome.Operator.Status == StepSent {
			logger.Success(fmt.Sprintf("Notification sent to %s operator: %s (%s)", lang, operator.OperatorName, operator.OperatorEmail))
		}
	} else {
		logger.Warning(fmt.Sprintf("No active operator configured for language '%s'. Skipping operator notification.", b.Language))
		metrics.NotificationEmails.WithLabelValues("operator", string(StepSkipped)).Inc()
	}

	outcome.Director = d.send(ctx, "director", d.directorEmail, email)
	if outcome.Director.Status == StepSent {
		logger.Success("Notification sent to director: " + d.directorEmail)
	}

	for _, step := range []StepResult{outcome.Operator, outcome.Director} {
		if step.Status == StepSent {
			outcome.Recipients = append(outcome.Recipients, step.Recipient)
		}
	}

	if len(outcome.Recipients) == 0 {
		outcome.Status = "error"
		outcome.Message = "No notification could be delivered"
		return outcome, fmt.Errorf("booking #%d: no notification delivered: %s", bookingID, outcome.Director.Error)
	}

	outcome.Status = "success"
	return outcome, nil
}

func (d *Dispatcher) send(ctx context.Context, role, to string, email Email) StepResult {
	step := StepResult{Recipient: to}
	err := d.mailer.Send(ctx, Message{To: to, Subject: email.Subject, HTML: email.HTML, Text: email.Text})
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to email %s %s", role, to), err)
		step.Status = StepFailed
		step.Error = err.Error()
	} else {
		step.Status = StepSent
	}
	metrics.NotificationEmails.WithLabelValues(role, string(step.Status)).Inc()
	return step
}

func (d *Dispatcher) fail(outcome *Outcome, message string, err error) (*Outcome, error) {
	outcome.Status = "error"
	outcome.Message = message
	logger.Error(fmt.Sprintf("Email notification for booking #%d: %s", outcome.BookingID, message), err)
	return outcome, err
}
