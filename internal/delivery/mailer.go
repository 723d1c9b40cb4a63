// Package delivery gets completed interview reports to the recruiter:
// by email over SMTP and as JSON artifacts on disk.
package delivery

import (
	"fmt"
	"net/smtp"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/prescreen/internal/interview"
)

// SMTPConfig holds the mail delivery configuration.
type SMTPConfig struct {
	Host           string
	Port           int
	Username       string
	Password       string
	RecruiterEmail string
}

// SMTPConfigFromEnv builds an SMTPConfig from environment variables,
// falling back to defaults for unset values.
func SMTPConfigFromEnv() SMTPConfig {
	cfg := SMTPConfig{
		Host: "smtp.gmail.com",
		Port: 587,
	}
	if h := os.Getenv("PRESCREEN_SMTP_HOST"); h != "" {
		cfg.Host = h
	}
	if p := os.Getenv("PRESCREEN_SMTP_PORT"); p != "" {
		if port, err := strconv.Atoi(p); err == nil {
			cfg.Port = port
		}
	}
	cfg.Username = os.Getenv("PRESCREEN_SMTP_USERNAME")
	cfg.Password = os.Getenv("PRESCREEN_SMTP_PASSWORD")
	cfg.RecruiterEmail = os.Getenv("PRESCREEN_RECRUITER_EMAIL")
	return cfg
}

// Validate checks that the credentials needed to send are present.
func (c SMTPConfig) Validate() error {
	var missing []string
	if c.Username == "" {
		missing = append(missing, "PRESCREEN_SMTP_USERNAME")
	}
	if c.Password == "" {
		missing = append(missing, "PRESCREEN_SMTP_PASSWORD")
	}
	if c.RecruiterEmail == "" {
		missing = append(missing, "PRESCREEN_RECRUITER_EMAIL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("incomplete mail configuration: %s unset", strings.Join(missing, ", "))
	}
	return nil
}

// sendFunc matches smtp.SendMail. Injected in tests.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends interview reports to the recruiter.
type Mailer struct {
	cfg  SMTPConfig
	send sendFunc
}

// NewMailer creates a Mailer over the given configuration.
func NewMailer(cfg SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg, send: smtp.SendMail}
}

// SendReport emails the report to the configured recruiter address.
func (m *Mailer) SendReport(report *interview.Report) error {
	if err := m.cfg.Validate(); err != nil {
		return err
	}

	subject := fmt.Sprintf("Interview Results: %s - %s", report.Candidate.Name, report.Role)
	body := reportHTML(report)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.cfg.Username)
	fmt.Fprintf(&msg, "To: %s\r\n", m.cfg.RecruiterEmail)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := m.send(addr, auth, m.cfg.Username, []string{m.cfg.RecruiterEmail}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send report: %w", err)
	}
	return nil
}

// reportHTML renders the recruiter email body.
func reportHTML(report *interview.Report) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString("<h2>Technical Interview Results</h2>")
	fmt.Fprintf(&b, "<p><strong>Candidate:</strong> %s</p>", report.Candidate.Name)
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>", report.Candidate.Email)
	fmt.Fprintf(&b, "<p><strong>Role:</strong> %s</p>", report.Role)
	fmt.Fprintf(&b, "<p><strong>Date:</strong> %s</p>", report.GeneratedAt.Format(time.DateTime))
	fmt.Fprintf(&b, "<p><strong>Final Score:</strong> %.1f%%</p>", report.Percentage)
	fmt.Fprintf(&b, "<p><strong>Status:</strong> %s</p>", report.Verdict)

	b.WriteString("<h3>Question Summary:</h3>")
	b.WriteString(`<table border="1" cellpadding="5">`)
	b.WriteString("<tr><th>Q#</th><th>Level</th><th>Question</th><th>Points</th><th>Feedback</th></tr>")
	for i, r := range report.History {
		points := r.AwardedPoints
		if r.FollowUp != nil {
			points += r.FollowUp.AdditionalPoints
		}
		fmt.Fprintf(&b, "<tr><td>%d</td><td>%d</td><td>%s</td><td>%.1f/%.0f</td><td>%s</td></tr>",
			i+1, r.ComplexityAtTime, htmlEscape(r.Question.Text), points,
			interview.PointsFor(r.ComplexityAtTime), htmlEscape(r.Feedback))
	}
	b.WriteString("</table>")
	b.WriteString("</body></html>")
	return b.String()
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func htmlEscape(s string) string {
	return htmlEscaper.Replace(s)
}
