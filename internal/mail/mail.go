// Package mail forwards new contact submissions to the portfolio owner over
// SMTP.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"sync"

	"github.com/aTrapDeer/portfolio-backend/internal/models"
)

type Config struct {
	Host string
	Port string
	User string
	Pass string
	To   string
}

// Enabled reports whether credentials are configured.
func (c Config) Enabled() bool {
	return c.User != "" && c.Pass != ""
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Notifier struct {
	cfg    Config
	logger *slog.Logger
	send   sendFunc
	wg     sync.WaitGroup
}

func NewNotifier(cfg Config, logger *slog.Logger) *Notifier {
	if cfg.To == "" {
		cfg.To = cfg.User
	}
	return &Notifier{cfg: cfg, logger: logger, send: smtp.SendMail}
}

// SubmissionReceived mails sub in the background. Failures are only logged.
func (n *Notifier) SubmissionReceived(sub models.ContactSubmission) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := n.Send(sub); err != nil {
			n.logger.Error("error sending contact email", "submission_id", sub.ID, "error", err)
			return
		}
		n.logger.Info("contact email sent", "submission_id", sub.ID)
	}()
}

// Wait blocks until every queued mail has been handed to the server or ctx
// is done.
func (n *Notifier) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (n *Notifier) Send(sub models.ContactSubmission) error {
	if !n.cfg.Enabled() {
		return fmt.Errorf("SMTP credentials not configured")
	}
	auth := smtp.PlainAuth("", n.cfg.User, n.cfg.Pass, n.cfg.Host)
	addr := n.cfg.Host + ":" + n.cfg.Port
	return n.send(addr, auth, n.cfg.User, []string{n.cfg.To}, Message(n.cfg.User, n.cfg.To, sub))
}

// Message renders sub as an RFC 822 message. Replies go to the submitter.
func Message(from, to string, sub models.ContactSubmission) []byte {
	subject := "Portfolio Contact: " + headerSafe(sub.Name)
	if sub.Subject != nil && *sub.Subject != "" {
		subject += " - " + headerSafe(*sub.Subject)
	}

	body := fmt.Sprintf(`New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, sub.Name, sub.Email, sub.Message)

	var b strings.Builder
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("Reply-To: " + headerSafe(sub.Email) + "\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}

func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
