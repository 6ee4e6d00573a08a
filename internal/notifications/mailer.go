package notifications

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"text/template"
	"time"

	"nexusems/pkg/logger"
)

// SMTPConfig holds SMTP configuration
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	Timeout   time.Duration

	// BaseURL prefixes the event link in the notice, e.g. https://tickets.example.com/events
	BaseURL string
}

func (c SMTPConfig) validate() error {
	switch {
	case c.Host == "":
		return errors.New("SMTP host is required")
	case c.Port <= 0 || c.Port > 65535:
		return errors.New("SMTP port must be between 1 and 65535")
	case c.FromEmail == "":
		return errors.New("from email is required")
	}
	return nil
}

const seatAvailableText = `
{{define "subject"}}Seats are available for {{.EventName}}{{end}}
{{define "text"}}Hi {{.Name}},

Seats have just opened up for {{.EventName}}. They are offered first come, first served.
{{if .Link}}
Book here: {{.Link}}
{{end}}
You joined the waitlist for event {{.EventID}}.{{end}}
`

const seatAvailableHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Good news, {{.Name}}!</h2>
  <p>Seats have just opened up for <strong>{{.EventName}}</strong>.</p>
  <p>They are offered first come, first served, so book soon.</p>
  {{if .Link}}<p><a href="{{.Link}}">Book your seats</a></p>{{end}}
  <p style="font-size: 12px; color: #888;">You are receiving this because you joined the waitlist for event {{.EventID}}.</p>
</body>
</html>`

type seatAvailableData struct {
	Name      string
	EventID   string
	EventName string
	Link      string
}

type sendFunc func(ctx context.Context, to string, message []byte) error

// SMTPMailer delivers waitlist notices over SMTP with STARTTLS
type SMTPMailer struct {
	config SMTPConfig
	text   *template.Template
	html   *htmltemplate.Template
	send   sendFunc
	log    *logger.Logger
}

func NewSMTPMailer(config SMTPConfig, log *logger.Logger) (*SMTPMailer, error) {
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid SMTP configuration: %w", err)
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	m := &SMTPMailer{
		config: config,
		text:   template.Must(template.New("seat-available").Parse(seatAvailableText)),
		html:   htmltemplate.Must(htmltemplate.New("seat-available").Parse(seatAvailableHTML)),
		log:    log.WithComponent("smtp-mailer"),
	}
	m.send = m.sendWithSTARTTLS
	return m, nil
}

// SendSeatAvailable tells one waitlisted person that seats opened up
func (m *SMTPMailer) SendSeatAvailable(ctx context.Context, email, name, eventID, eventName string) error {
	subject, htmlBody, textBody, err := m.render(seatAvailableData{
		Name:      name,
		EventID:   eventID,
		EventName: eventName,
		Link:      eventLink(m.config.BaseURL, eventID),
	})
	if err != nil {
		return fmt.Errorf("failed to render seat-available email: %w", err)
	}

	if err := m.send(ctx, email, m.buildMessage(email, subject, htmlBody, textBody)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.log.DebugContext(ctx, "Seat-available email sent", "event_id", eventID, "to", email)
	return nil
}

func (m *SMTPMailer) render(data seatAvailableData) (subject, htmlBody, textBody string, err error) {
	var subj, htmlBuf, textBuf bytes.Buffer
	if err = m.text.ExecuteTemplate(&subj, "subject", data); err != nil {
		return
	}
	if err = m.text.ExecuteTemplate(&textBuf, "text", data); err != nil {
		return
	}
	if err = m.html.Execute(&htmlBuf, data); err != nil {
		return
	}
	return strings.TrimSpace(subj.String()), htmlBuf.String(), textBuf.String(), nil
}

func (m *SMTPMailer) buildMessage(to, subject, htmlBody, textBody string) []byte {
	boundary := "boundary_" + strconv.FormatInt(time.Now().UnixNano(), 10)

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", m.config.FromName, m.config.FromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary)

	fmt.Fprintf(&b, "--%s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s\r\n", boundary, textBody)
	fmt.Fprintf(&b, "--%s\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s\r\n", boundary, htmlBody)
	fmt.Fprintf(&b, "--%s--\r\n", boundary)

	return []byte(b.String())
}

func (m *SMTPMailer) sendWithSTARTTLS(ctx context.Context, to string, message []byte) error {
	addr := net.JoinHostPort(m.config.Host, strconv.Itoa(m.config.Port))

	dialer := net.Dialer{Timeout: m.config.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetDeadline(time.Now().Add(m.config.Timeout))
	}

	client, err := smtp.NewClient(conn, m.config.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open SMTP session: %w", err)
	}
	defer client.Quit()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err = client.StartTLS(&tls.Config{ServerName: m.config.Host}); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	if m.config.Username != "" {
		auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err = client.Mail(m.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return w.Close()
}

func eventLink(baseURL, eventID string) string {
	if baseURL == "" {
		return ""
	}
	return strings.TrimRight(baseURL, "/") + "/" + eventID
}

// LogMailer only logs notices. Used when SMTP is not configured.
type LogMailer struct {
	log *logger.Logger
}

func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{log: log.WithComponent("log-mailer")}
}

func (m *LogMailer) SendSeatAvailable(ctx context.Context, email, name, eventID, eventName string) error {
	m.log.InfoContext(ctx, "Seat-available notice",
		"to", email, "name", name, "event_id", eventID, "event_name", eventName)
	return nil
}
