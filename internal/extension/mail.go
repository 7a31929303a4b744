package extension

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-web-skeleton/internal/config"
	"github.com/MKhiriev/go-web-skeleton/internal/logger"
	"github.com/MKhiriev/go-web-skeleton/internal/utils"
)

// Message is an outgoing mail. From defaults to MAIL_DEFAULT_SENDER.
type Message struct {
	From    string
	To      []string
	Cc      []string
	ReplyTo string
	Subject string
	Body    string
	HTML    bool
}

// Mail delivers messages over SMTP. With MAIL_SUPPRESS_SEND the messages are
// kept in an in-memory outbox instead.
type Mail struct {
	initialized bool
	settings    config.Mail
	log         *logger.Logger

	mu     sync.Mutex
	outbox []Message
}

func NewMail() *Mail {
	return &Mail{}
}

func (m *Mail) Name() string { return "mail" }

func (m *Mail) InitApp(cfg *config.StructuredConfig, log *logger.Logger) error {
	m.settings = cfg.Mail
	m.log = log
	m.initialized = true

	log.Debug().
		Str("server", cfg.Mail.Server).
		Int("port", cfg.Mail.Port).
		Bool("suppress_send", cfg.Mail.SuppressSend).
		Msg("mail initialized")
	return nil
}

// Send delivers msg. The context bounds dialing and the whole SMTP exchange.
func (m *Mail) Send(ctx context.Context, msg Message) error {
	if !m.initialized {
		return ErrNotInitialized
	}
	if len(msg.To) == 0 && len(msg.Cc) == 0 {
		return ErrNoRecipients
	}
	if msg.From == "" {
		msg.From = m.settings.DefaultSender
	}

	if m.settings.SuppressSend {
		m.mu.Lock()
		m.outbox = append(m.outbox, msg)
		m.mu.Unlock()

		m.log.Debug().Strs("to", msg.To).Str("subject", msg.Subject).Msg("mail suppressed")
		return nil
	}

	if err := m.deliver(ctx, msg); err != nil {
		return fmt.Errorf("error sending mail: %w", err)
	}

	m.log.Info().Int("recipients", len(msg.To)+len(msg.Cc)).Msg("mail sent")
	return nil
}

// Outbox returns the messages recorded while sending is suppressed.
func (m *Mail) Outbox() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Message, len(m.outbox))
	copy(out, m.outbox)
	return out
}

func (m *Mail) deliver(ctx context.Context, msg Message) error {
	host := m.settings.Server
	addr := net.JoinHostPort(host, strconv.Itoa(m.settings.Port))

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to start SMTP session: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			m.log.Debug().Err(err).Msg("failed to close SMTP client")
		}
	}()

	if m.settings.UseTLS {
		tlsConfig := &tls.Config{
			ServerName: host,
			MinVersion: tls.VersionTLS12,
		}
		if err = client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	if m.settings.Username != "" {
		auth := smtp.PlainAuth("", m.settings.Username, m.settings.Password, host)
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err = client.Mail(msg.From); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, rcpt := range append(append([]string{}, msg.To...), msg.Cc...) {
		if err = client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to initiate data transfer: %w", err)
	}
	if _, err = w.Write(buildMessage(msg, time.Now())); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data transfer: %w", err)
	}

	return client.Quit()
}

// buildMessage renders msg with RFC 5322 headers and CRLF line endings.
func buildMessage(msg Message, now time.Time) []byte {
	var b bytes.Buffer

	header := func(name, value string) {
		b.WriteString(name + ": " + value + "\r\n")
	}

	header("From", msg.From)
	if len(msg.To) > 0 {
		header("To", strings.Join(msg.To, ", "))
	}
	if len(msg.Cc) > 0 {
		header("Cc", strings.Join(msg.Cc, ", "))
	}
	if msg.ReplyTo != "" {
		header("Reply-To", msg.ReplyTo)
	}
	header("Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	header("Date", now.Format(time.RFC1123Z))
	header("Message-ID", "<"+utils.NewID()+"@"+senderDomain(msg.From)+">")
	header("MIME-Version", "1.0")

	contentType := "text/plain; charset=UTF-8"
	if msg.HTML {
		contentType = "text/html; charset=UTF-8"
	}
	header("Content-Type", contentType)

	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(strings.ReplaceAll(msg.Body, "\r\n", "\n"), "\n", "\r\n"))

	return b.Bytes()
}

func senderDomain(addr string) string {
	if i := strings.LastIndex(addr, "@"); i >= 0 && i < len(addr)-1 {
		return strings.Trim(addr[i+1:], ">")
	}
	return "localhost"
}
