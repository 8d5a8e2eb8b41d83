package mailer

import (
	"whisper-chat/pkg/logger"
)

// DevMailer logs outgoing mail instead of sending it.
type DevMailer struct {
	log *logger.Logger
}

func NewDevMailer(log *logger.Logger) *DevMailer {
	return &DevMailer{log: log}
}

func (m *DevMailer) Send(toEmail, toName, subject, text, html string) (string, error) {
	if m.log != nil {
		m.log.Infof("dev mailer: to=%s subject=%q body=%q", toEmail, subject, text)
	}
	return "", nil
}

func (m *DevMailer) SendOTP(email string, code int) error {
	if m.log != nil {
		m.log.Infof("dev mailer: otp for %s is %d", email, code)
	}
	return nil
}
