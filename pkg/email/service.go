package email

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/fidalli/crm-backend/pkg/domain"
)

// Service handles email sending
type Service struct {
	fromEmail   string
	fromName    string
	sendGridKey string
	useSendGrid bool
}

// NewService creates a new email service.
// If sendGridAPIKey is provided, emails are sent via SendGrid; otherwise
// they are logged to console (development mode).
func NewService(fromEmail, fromName, sendGridAPIKey string) *Service {
	useSendGrid := sendGridAPIKey != ""
	if useSendGrid {
		log.Printf("✅ Email service initialized with SendGrid")
	} else {
		log.Printf("⚠️  Email service in console-only mode (set SENDGRID_API_KEY for production)")
	}

	return &Service{
		fromEmail:   fromEmail,
		fromName:    fromName,
		sendGridKey: sendGridAPIKey,
		useSendGrid: useSendGrid,
	}
}

// SendFollowUpReminder notifies a collaborator about interactions whose
// follow-up date has passed without being handled.
func (s *Service) SendFollowUpReminder(toEmail, toName string, overdue []domain.Interaction) error {
	if len(overdue) == 0 {
		return nil
	}

	subject := fmt.Sprintf("%d follow-up(s) overdue", len(overdue))

	var htmlRows, plainRows strings.Builder
	for _, i := range overdue {
		due := ""
		if i.FollowUpDate != nil {
			due = i.FollowUpDate.Format("2006-01-02")
		}
		htmlRows.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%s</td><td>%s</td></tr>", i.Subject, i.Type, due))
		plainRows.WriteString(fmt.Sprintf("- %s (%s), due %s\n", i.Subject, i.Type, due))
	}

	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Overdue follow-ups</h2>
			<p>Hi %s,</p>
			<p>The following interactions have follow-ups past their due date:</p>
			<table border="1" cellpadding="6">
				<tr><th>Subject</th><th>Type</th><th>Due</th></tr>
				%s
			</table>
			<p>Thanks,<br>%s</p>
		</body>
		</html>
	`, toName, htmlRows.String(), s.fromName)

	plainText := fmt.Sprintf(`Hi %s,

The following interactions have follow-ups past their due date:

%s
Thanks,
%s
`, toName, plainRows.String(), s.fromName)

	if s.useSendGrid {
		return s.sendViaSendGrid(toEmail, toName, subject, body, plainText)
	}
	return s.logEmailToConsole(toEmail, toName, subject, fmt.Sprintf("%d overdue follow-ups", len(overdue)))
}

// SendExportReady notifies a collaborator that a requested export file
// has been generated.
func (s *Service) SendExportReady(toEmail, toName, filename string, generatedAt time.Time) error {
	subject := "Your export is ready"

	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Export ready</h2>
			<p>Hi %s,</p>
			<p>Your export <strong>%s</strong> was generated at %s and is ready to download.</p>
			<p>Thanks,<br>%s</p>
		</body>
		</html>
	`, toName, filename, generatedAt.Format(time.RFC1123), s.fromName)

	plainText := fmt.Sprintf(`Hi %s,

Your export %s was generated at %s and is ready to download.

Thanks,
%s
`, toName, filename, generatedAt.Format(time.RFC1123), s.fromName)

	if s.useSendGrid {
		return s.sendViaSendGrid(toEmail, toName, subject, body, plainText)
	}
	return s.logEmailToConsole(toEmail, toName, subject, filename)
}

// sendViaSendGrid sends an email using the SendGrid API
func (s *Service) sendViaSendGrid(toEmail, toName, subject, htmlBody, plainTextBody string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)

	message := mail.NewSingleEmail(from, subject, to, plainTextBody, htmlBody)

	client := sendgrid.NewSendClient(s.sendGridKey)
	response, err := client.Send(message)

	if err != nil {
		log.Printf("❌ SendGrid error: %v", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode >= 400 {
		log.Printf("❌ SendGrid returned error status %d: %s", response.StatusCode, response.Body)
		return fmt.Errorf("sendgrid returned error status: %d", response.StatusCode)
	}

	log.Printf("✅ Email sent successfully to %s (SendGrid status: %d)", toEmail, response.StatusCode)
	return nil
}

// logEmailToConsole logs email details to console (development mode)
func (s *Service) logEmailToConsole(toEmail, toName, subject, summary string) error {
	log.Printf("📧 [EMAIL] %s", subject)
	log.Printf("   To: %s <%s>", toName, toEmail)
	log.Printf("   From: %s <%s>", s.fromName, s.fromEmail)
	log.Printf("   Summary: %s", summary)
	log.Printf("   ---")
	log.Printf("   ⚠️  Email NOT sent (development mode)")
	log.Printf("   Set SENDGRID_API_KEY environment variable to enable email sending")
	log.Printf("   ---")
	return nil
}
