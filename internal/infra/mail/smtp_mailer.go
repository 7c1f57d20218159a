// Package mail delivers transactional email over SMTP.
package mail

import (
	"bytes"
	"context"
	"html/template"
	"time"

	"playground/config"
	"playground/internal/domain/service"
	"playground/internal/errors"

	gomail "github.com/wneessen/go-mail"
)

const verificationSubject = "PlayGround 인증코드"

var verificationBody = template.Must(template.New("verification").Parse(
	`<div><p>PlayGround 인증코드 : {{.Code}}</p><p>인증 코드는 {{.ExpiresAt}}에 만료됩니다.</p></div>`,
))

// sender is the subset of *gomail.Client used to deliver messages.
type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
}

type smtpMailer struct {
	client sender
	from   string
}

// NewSMTPMailer builds a mailer from the mail configuration.
func NewSMTPMailer(cfg *config.Config) (service.Mailer, error) {
	if cfg.Mail == nil || cfg.Mail.Host == "" {
		return nil, errors.New("mail host must be provided")
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.Mail.Port),
		gomail.WithTLSPortPolicy(gomail.TLSMandatory),
	}
	if cfg.Mail.UserName != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Mail.UserName),
			gomail.WithPassword(cfg.Mail.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Mail.Host, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create smtp client")
	}

	from := cfg.Mail.From
	if from == "" {
		from = cfg.Mail.UserName
	}

	return newSMTPMailer(client, from), nil
}

func newSMTPMailer(client sender, from string) *smtpMailer {
	return &smtpMailer{client: client, from: from}
}

// SendVerificationCode renders the verification email and delivers it.
func (m *smtpMailer) SendVerificationCode(ctx context.Context, to, code string, expiresAt time.Time) error {
	body, err := renderVerificationBody(code, expiresAt)
	if err != nil {
		return err
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return errors.Wrap(err, "invalid sender address")
	}
	if err := msg.To(to); err != nil {
		return errors.Wrap(err, "invalid recipient address")
	}
	msg.Subject(verificationSubject)
	msg.SetBodyString(gomail.TypeTextHTML, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return errors.Wrap(err, "failed to send verification email")
	}

	return nil
}

func renderVerificationBody(code string, expiresAt time.Time) (string, error) {
	var buf bytes.Buffer
	err := verificationBody.Execute(&buf, struct {
		Code      string
		ExpiresAt string
	}{
		Code:      code,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to render verification email")
	}

	return buf.String(), nil
}
