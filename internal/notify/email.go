// Package notify sends booking confirmations to guests.
package notify

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"gastroguide/internal/apperrors"
	"gastroguide/internal/logger"
	"gastroguide/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESService is the subset of the SES client used here.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type Config struct {
	Enabled   bool
	DevMode   bool
	FromEmail string
	Region    string
}

// EmailNotifier renders booking confirmations and sends them through SES.
// In dev mode the rendered message goes to the log instead.
type EmailNotifier struct {
	config     Config
	restaurant model.RestaurantInfo
	sesClient  SESService
	logger     logger.Logger
}

// NewEmailNotifier builds an SES client from the default AWS credential chain
// unless the notifier is disabled or in dev mode.
func NewEmailNotifier(ctx context.Context, cfg Config, restaurant model.RestaurantInfo, log logger.Logger) (*EmailNotifier, error) {
	n := &EmailNotifier{
		config:     cfg,
		restaurant: restaurant,
		logger:     logger.Component(log, "EmailNotifier"),
	}
	if !cfg.Enabled || cfg.DevMode {
		return n, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	n.sesClient = ses.NewFromConfig(awsCfg)
	return n, nil
}

// NewEmailNotifierWithClient is used by tests to inject a fake SES client.
func NewEmailNotifierWithClient(cfg Config, restaurant model.RestaurantInfo, client SESService, log logger.Logger) *EmailNotifier {
	return &EmailNotifier{
		config:     cfg,
		restaurant: restaurant,
		sesClient:  client,
		logger:     logger.Component(log, "EmailNotifier"),
	}
}

// SendBookingConfirmation reports false without error when notifications are
// off or the booking has no email address.
func (n *EmailNotifier) SendBookingConfirmation(ctx context.Context, booking *model.Booking) (bool, error) {
	if booking == nil || strings.TrimSpace(booking.Email) == "" {
		n.logger.Debug("no email on booking, confirmation skipped", nil)
		return false, nil
	}
	if !n.config.Enabled {
		return false, nil
	}

	msg, err := n.Render(booking)
	if err != nil {
		return false, err
	}

	if n.config.DevMode {
		n.logger.Info("booking confirmation (dev mode, not sent)", map[string]interface{}{
			"to":      booking.Email,
			"subject": msg.Subject,
			"body":    msg.Text,
		})
		return true, nil
	}
	if n.sesClient == nil {
		return false, apperrors.NewCollaboratorError(apperrors.ErrCodeNotificationSendFailed, "email", fmt.Errorf("ses client not configured"))
	}

	_, err = n.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{booking.Email},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(msg.Text)},
				Html: &types.Content{Data: aws.String(msg.HTML)},
			},
		},
		Source: aws.String(n.config.FromEmail),
	})
	if err != nil {
		return false, apperrors.NewCollaboratorError(apperrors.ErrCodeNotificationSendFailed, "email", err)
	}

	n.logger.Info("booking confirmation sent", map[string]interface{}{
		"booking_id": booking.ID,
		"to":         booking.Email,
	})
	return true, nil
}

// Message is a rendered confirmation email.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

type templateData struct {
	Booking    *model.Booking
	TablePref  string
	Restaurant model.RestaurantInfo
}

func (n *EmailNotifier) Render(booking *model.Booking) (*Message, error) {
	data := templateData{
		Booking:    booking,
		TablePref:  booking.TablePref,
		Restaurant: n.restaurant,
	}
	if data.TablePref == "" {
		data.TablePref = "Any"
	}

	var text bytes.Buffer
	if err := textTmpl.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("render text confirmation: %w", err)
	}
	var html bytes.Buffer
	if err := htmlTmpl.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("render html confirmation: %w", err)
	}

	return &Message{
		Subject: fmt.Sprintf("Booking Confirmation - %s (ID: %s)", n.restaurant.Name, booking.ID),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}

var textTmpl = texttemplate.Must(texttemplate.New("confirmation.txt").Parse(`Booking Confirmation - {{.Restaurant.Name}}

Dear {{.Booking.Customer}},

Thank you for choosing {{.Restaurant.Name}}! Your table reservation has been confirmed.

Booking ID: {{.Booking.ID}}

Reservation Details:
- Name: {{.Booking.Customer}}
- Date: {{.Booking.Date}}
- Time: {{.Booking.Time}}
- Number of Guests: {{.Booking.Guests}}
- Table Preference: {{.TablePref}}

Please save this Booking ID: {{.Booking.ID}}
You can use this ID to manage your reservation or chat with {{.Restaurant.Assistant}}.

We look forward to serving you!

{{.Restaurant.Name}}
{{.Restaurant.Location}}
Phone: {{.Restaurant.Phone}}
Email: {{.Restaurant.Email}}
`))

var htmlTmpl = htmltemplate.Must(htmltemplate.New("confirmation.html").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto;">
    <div style="background: #2c5f2d; color: #fff; padding: 20px; text-align: center;">
      <h1>{{.Restaurant.Name}}</h1>
      <h2>Booking Confirmation</h2>
    </div>
    <div style="padding: 20px;">
      <p>Dear {{.Booking.Customer}},</p>
      <p>Thank you for choosing {{.Restaurant.Name}}! Your table reservation has been confirmed.</p>
      <p style="font-size: 20px; font-weight: bold;">Booking ID: {{.Booking.ID}}</p>
      <h3>Reservation Details:</h3>
      <ul>
        <li><strong>Name:</strong> {{.Booking.Customer}}</li>
        <li><strong>Date:</strong> {{.Booking.Date}}</li>
        <li><strong>Time:</strong> {{.Booking.Time}}</li>
        <li><strong>Number of Guests:</strong> {{.Booking.Guests}}</li>
        <li><strong>Table Preference:</strong> {{.TablePref}}</li>
      </ul>
      <p><strong>Please save this Booking ID:</strong> {{.Booking.ID}}</p>
      <p>You can use this ID to manage your reservation or chat with {{.Restaurant.Assistant}}.</p>
      <p>We look forward to serving you!</p>
    </div>
    <div style="background: #f4f4f4; padding: 20px; text-align: center; font-size: 14px;">
      <p>{{.Restaurant.Name}}<br>{{.Restaurant.Location}}<br>{{.Restaurant.Phone}}<br>{{.Restaurant.Email}}</p>
    </div>
  </div>
</body>
</html>
`))
