package notify

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strings"
	"time"

	"classicmatch"
)

// SMTPConfig locates the outbound mail relay.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// SMTPNotifier sends one-time codes over plain SMTP with AUTH when
// credentials are configured.
type SMTPNotifier struct {
	config SMTPConfig
	send   func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTP returns a notifier for the given relay.
func NewSMTP(cfg SMTPConfig) *SMTPNotifier {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.From == "" {
		cfg.From = "no-reply@example.com"
	}
	return &SMTPNotifier{
		config: cfg,
		send:   smtp.SendMail,
	}
}

// SendCode implements classicmatch.Notifier.
func (n *SMTPNotifier) SendCode(_ context.Context, account classicmatch.AccountRecord, purpose classicmatch.CodePurpose, code string, expiresAt time.Time) error {
	subject := subjectFor(purpose)

	var body strings.Builder
	fmt.Fprintf(&body, "%s さん\r\n\r\n", account.CallSign)
	fmt.Fprintf(&body, "確認コード: %s\r\n", code)
	fmt.Fprintf(&body, "有効期限: %s\r\n", expiresAt.Format("2006-01-02 15:04 MST"))

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", n.config.From)
	fmt.Fprintf(&msg, "To: %s\r\n", account.Email)
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body.String())

	var auth smtp.Auth
	if n.config.User != "" {
		auth = smtp.PlainAuth("", n.config.User, n.config.Pass, n.config.Host)
	}

	addr := fmt.Sprintf("%s:%d", n.config.Host, n.config.Port)
	return n.send(addr, auth, n.config.From, []string{account.Email}, []byte(msg.String()))
}

func subjectFor(purpose classicmatch.CodePurpose) string {
	if purpose == classicmatch.PurposeReset {
		return "【classic-match】パスワード再設定コード"
	}
	return "【classic-match】メール確認コード"
}
