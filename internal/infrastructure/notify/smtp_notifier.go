package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"

	"bluerhyno/internal/bootstrap/logging"
	"bluerhyno/internal/errs"
	"bluerhyno/internal/ports"
)

// Config mirrors the SMTP transport the site already uses.
type Config struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	FromName    string `mapstructure:"from_name"`
	FromAddress string `mapstructure:"from_address"`
}

// SMTPNotifier sends HTML mail over plain SMTP with auth. It implements
// ports.Notifier; callers treat every send as best-effort.
type SMTPNotifier struct {
	cfg Config
}

func NewSMTPNotifier(cfg Config) (*SMTPNotifier, error) {
	if strings.TrimSpace(cfg.Host) == "" {
		return nil, errors.New("smtp host is required")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if strings.TrimSpace(cfg.FromAddress) == "" {
		return nil, errors.New("smtp from address is required")
	}
	return &SMTPNotifier{cfg: cfg}, nil
}

func (n *SMTPNotifier) Send(ctx context.Context, msg ports.Email) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}
	if strings.TrimSpace(msg.To) == "" {
		return errors.New("recipient is required")
	}

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	headers := []string{
		fmt.Sprintf("From: %s <%s>", n.cfg.FromName, n.cfg.FromAddress),
		fmt.Sprintf("To: %s", msg.To),
		fmt.Sprintf("Subject: %s", msg.Subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
	}
	payload := strings.Join(headers, "\r\n") + "\r\n\r\n" + msg.Body

	addr := net.JoinHostPort(n.cfg.Host, fmt.Sprintf("%d", n.cfg.Port))
	if err := smtp.SendMail(addr, auth, n.cfg.FromAddress, []string{msg.To}, []byte(payload)); err != nil {
		return errs.Wrapf(err, "send mail to %s", msg.To)
	}
	return nil
}

// LogNotifier is the fallback when no SMTP transport is configured: sends are
// recorded in the log and reported successful.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Send(ctx context.Context, msg ports.Email) error {
	if ctx == nil {
		return errors.New("context is required")
	}

	logging.Info(logging.WithAttrs(ctx, slog.String("component", "notify")),
		"email suppressed, no smtp transport configured",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)
	return nil
}
