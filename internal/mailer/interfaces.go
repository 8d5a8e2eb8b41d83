package mailer

type Service interface {
	Send(toEmail, toName, subject, text, html string) (string, error)
	SendOTP(email string, code int) error
}
