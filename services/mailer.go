package services

import (
	"fmt"
	"log"
	"os"

	"github.com/resend/resend-go/v2"

	"coachdesk/backend/models"
)

var mailClient *resend.Client

// InitMailer sets up the Resend client from RESEND_API_KEY. When the key is
// missing (local dev, tests) sending is disabled and reminders are only
// logged.
func InitMailer() {
	apiKey := os.Getenv("RESEND_API_KEY")
	if apiKey == "" {
		log.Println("Warning: RESEND_API_KEY not set, email sending disabled")
		return
	}
	mailClient = resend.NewClient(apiKey)
}

func mailFrom() string {
	if from := os.Getenv("MAIL_FROM"); from != "" {
		return from
	}
	return "CoachDesk <reminders@coachdesk.app>"
}

// SendMeetingReminder emails a customer about an upcoming meeting
func SendMeetingReminder(toEmail, toName string, meeting models.Meeting) error {
	if mailClient == nil {
		log.Printf("Email disabled, skipping reminder to %s for meeting %s", toEmail, meeting.ID)
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    mailFrom(),
		To:      []string{toEmail},
		Subject: fmt.Sprintf("Reminder: %s", meeting.Title),
		Html: fmt.Sprintf(
			"<p>Hi %s,</p><p>This is a reminder for <strong>%s</strong> on %s.</p><p>See you there!</p>",
			toName, meeting.Title, meeting.StartTime.Format("Mon Jan 2 at 15:04"),
		),
	}

	sent, err := mailClient.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send reminder email: %w", err)
	}

	log.Printf("Sent meeting reminder %s to %s", sent.Id, toEmail)
	return nil
}
