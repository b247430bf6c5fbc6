// Package mailer envia os e-mails de pedido por SMTP.
package mailer

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/AngeloSouza1/ger-ped/internal/config"
)

// Attachment anexo de e-mail (tipicamente o PDF do pedido).
type Attachment struct {
	Filename    string
	Content     []byte
	ContentType string
}

// Message mensagem pronta para envio: texto e HTML como alternativas,
// anexos opcionais.
type Message struct {
	From        string
	To          []string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

// Sender envia mensagens. A implementação real fala SMTP; testes injetam
// um fake.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// SMTPSender implementação gomail.
type SMTPSender struct {
	cfg    config.MailConfig
	logger *zap.Logger
}

// NewSMTPSender cria o sender a partir da configuração de mail.
func NewSMTPSender(cfg config.MailConfig, logger *zap.Logger) *SMTPSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTPSender{cfg: cfg, logger: logger}
}

// DefaultFrom remetente padrão ("Nome <endereço>") usado quando a mensagem
// não traz um From.
func (s *SMTPSender) DefaultFrom() string {
	if s.cfg.SenderName != "" {
		return fmt.Sprintf("%s <%s>", s.cfg.SenderName, s.cfg.From)
	}
	return s.cfg.From
}

// Send monta a mensagem MIME (multipart/alternative + anexos) e envia.
func (s *SMTPSender) Send(ctx context.Context, m Message) error {
	if s.cfg.Host == "" {
		return fmt.Errorf("transporte de e-mail não configurado (SMTP_HOST)")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	from := m.From
	if from == "" {
		from = s.DefaultFrom()
	}
	msg.SetHeader("From", from)
	msg.SetHeader("To", m.To...)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/plain", m.Text)
	if m.HTML != "" {
		msg.AddAlternative("text/html", m.HTML)
	}

	for _, att := range m.Attachments {
		att := att
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(att.Content)
				return err
			}),
		}
		if att.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {att.ContentType},
			}))
		}
		msg.Attach(att.Filename, settings...)
	}

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("enviar e-mail: %w", err)
	}
	s.logger.Info("E-mail enviado",
		zap.Strings("to", m.To),
		zap.String("subject", m.Subject),
		zap.Int("attachments", len(m.Attachments)))
	return nil
}
