package mailer

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendgridService struct {
	key  string
	from *sgmail.Email
}

var _ Service = (*sendgridService)(nil)

func NewSendgridService(key, fromEmail string) Service {
	return &sendgridService{
		key:  key,
		from: sgmail.NewEmail("TrainingKu", fromEmail),
	}
}

func (svc *sendgridService) SendPasswordReset(toEmail, toName, resetURL string) error {
	text := fmt.Sprintf(
		"You requested a password reset.\n\nOpen the link below to reset your password (valid for 1 hour):\n%s\n",
		resetURL,
	)
	html := fmt.Sprintf(
		`<h1>You requested a password reset</h1>
<p>Please click on the following link to reset your password:</p>
<a href="%s" target="_blank">Reset Password</a>
<p>This link will expire in 1 hour.</p>`,
		resetURL,
	)

	m := sgmail.NewSingleEmail(svc.from, "Password Reset Request", sgmail.NewEmail(toName, toEmail), text, html)
	resp, err := sendgrid.NewSendClient(svc.key).Send(m)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid: unexpected status %d", resp.StatusCode)
	}
	return nil
}
