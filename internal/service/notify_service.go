package service

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// NotifyService alerts the front desk when the reconciler finds bookings
// running past their end. Delivery is best effort: failures are logged and
// never block a reconciliation pass.
type NotifyService struct{}

func NewNotifyService() *NotifyService {
	return &NotifyService{}
}

// OverdueAlert emails and texts the configured front-desk contact about newly
// overdue bookings. Each channel is skipped silently when its destination is
// not configured.
func (s *NotifyService) OverdueAlert(day string, ids []int) {
	count := len(ids)
	if count == 0 {
		return
	}
	subject := fmt.Sprintf("%d booking(s) overdue on %s", count, day)
	body := fmt.Sprintf(
		"The following booking(s) have run past their scheduled end time on %s "+
			"and are still marked active:\n\n%s\n\n"+
			"Please check the rooms and end or extend the bookings on the grid.",
		day, formatIDs(ids))

	if toEmail := os.Getenv("NOTIFY_EMAIL"); toEmail != "" {
		toName := os.Getenv("NOTIFY_NAME")
		if toName == "" {
			toName = "Front Desk"
		}
		go func() {
			if err := SendEmailWithSendGrid(toEmail, toName, subject, body, ""); err != nil {
				log.Printf("notify: failed to send overdue alert email: %v", err)
			}
		}()
	}
	if toPhone := os.Getenv("NOTIFY_PHONE"); toPhone != "" {
		go func() {
			if err := SendSMS(toPhone, subject); err != nil {
				log.Printf("notify: failed to send overdue alert SMS: %v", err)
			}
		}()
	}
}

func formatIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("  booking #%d", id)
	}
	return strings.Join(parts, "\n")
}

// SendEmailWithSendGrid delivers one email through SendGrid. An empty
// htmlContent falls back to the plain-text body.
func SendEmailWithSendGrid(toEmailAddress, toName, subject, plainTextContent, htmlContent string) error {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY is not configured")
	}
	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if fromEmail == "" {
		return fmt.Errorf("SENDGRID_FROM_EMAIL is not configured")
	}
	fromName := os.Getenv("SENDGRID_FROM_NAME")
	if fromName == "" {
		fromName = "Room Booking"
	}
	if htmlContent == "" {
		htmlContent = plainTextContent
	}

	from := mail.NewEmail(fromName, fromEmail)
	to := mail.NewEmail(toName, toEmailAddress)
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

	client := sendgrid.NewSendClient(apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email via SendGrid: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("SendGrid returned status %d: %s", response.StatusCode, response.Body)
	}
	log.Printf("notify: email sent to %s (subject: %s)", toEmailAddress, subject)
	return nil
}

// SendSMS delivers one SMS through Twilio.
func SendSMS(toNumber, messageBody string) error {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	fromNumber := os.Getenv("TWILIO_FROM_NUMBER")
	if accountSid == "" || authToken == "" || fromNumber == "" {
		return fmt.Errorf("Twilio credentials are not fully configured")
	}
	if !strings.HasPrefix(toNumber, "+") {
		log.Printf("notify: destination number %q is not E.164, the SMS may fail", toNumber)
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   accountSid,
		Password:   authToken,
		AccountSid: accountSid,
	})
	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(fromNumber)
	params.SetBody(messageBody)

	resp, err := client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	if resp != nil && resp.Sid != nil {
		log.Printf("notify: SMS sent to %s (sid %s)", toNumber, *resp.Sid)
	}
	return nil
}
