package email

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/Thiago-2004/ateneo-padel-reservas/internal/config"
)

// Sender delivers transactional mail. The auth service treats it as a best
// effort collaborator: failures are logged, never surfaced to the caller.
type Sender interface {
	// Enabled reports whether a mail transport is configured. When it is
	// not, the forgot-password flow returns the reset link directly as a
	// development fallback.
	Enabled() bool
	SendPasswordReset(to, name, resetLink string, ttl time.Duration) error
}

// SMTPSender sends through the SMTP server in config using gomail.
type SMTPSender struct {
	cfg *config.Config
}

func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Enabled() bool {
	e := s.cfg.Email
	return e.SMTPHost != "" && e.SMTPUsername != "" && e.SMTPPassword != ""
}

func (s *SMTPSender) SendPasswordReset(to, name, resetLink string, ttl time.Duration) error {
	m := gomail.NewMessage()
	from := s.cfg.Email.FromEmail
	if from == "" {
		from = s.cfg.Email.SMTPUsername
	}
	if s.cfg.Email.FromName != "" {
		m.SetHeader("From", m.FormatAddress(from, s.cfg.Email.FromName))
	} else {
		m.SetHeader("From", from)
	}
	m.SetHeader("To", to)
	m.SetHeader("Subject", "ATENEO PADEL - Reset de contraseña")
	m.SetBody("text/html", passwordResetBody(name, resetLink, ttl))

	d := gomail.NewDialer(
		s.cfg.Email.SMTPHost,
		s.cfg.Email.SMTPPort,
		s.cfg.Email.SMTPUsername,
		s.cfg.Email.SMTPPassword,
	)

	return d.DialAndSend(m)
}

func passwordResetBody(name, resetLink string, ttl time.Duration) string {
	return fmt.Sprintf(`
<div style="font-family:Arial,sans-serif">
  <h2>Reset de contraseña</h2>
  <p>Hola %s,</p>
  <p>Hacé click para cambiar tu contraseña (expira en %d minutos):</p>
  <p><a href="%s">%s</a></p>
  <p>Si no lo pediste, ignorá este mensaje.</p>
</div>`, name, int(ttl.Minutes()), resetLink, resetLink)
}
