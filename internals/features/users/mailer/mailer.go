// Pengiriman email adalah kolaborator eksternal: di sini hanya
// interface + dua implementasi tipis (console untuk dev, SendGrid
// untuk production).
package mailer

import (
	"log"

	"trainingku_backend/internals/configs"
)

type Service interface {
	SendPasswordReset(toEmail, toName, resetURL string) error
}

// NewFromEnv memilih implementasi berdasarkan SENDGRID_API_KEY.
func NewFromEnv() Service {
	if configs.SendgridAPIKey != "" {
		return NewSendgridService(configs.SendgridAPIKey, configs.MailFrom)
	}
	return ConsoleService{}
}

// ConsoleService menulis email ke log. Dipakai saat dev/test.
type ConsoleService struct{}

func (ConsoleService) SendPasswordReset(toEmail, toName, resetURL string) error {
	log.Printf("[MAIL] password reset untuk %s <%s>: %s", toName, toEmail, resetURL)
	return nil
}
