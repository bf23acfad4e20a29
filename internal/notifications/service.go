package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mhosigiri/FeedbackAI/internal/analysis"
	"github.com/mhosigiri/FeedbackAI/internal/models"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Service delivers CSI digests via the configured channels: SMTP email,
// a generic JSON webhook, or both. Delivery failures are reported to the
// caller but one failing channel does not stop the other.
type Service struct {
	brand             string
	notificationEmail string
	smtpHost          string
	smtpPort          int
	smtpUsername      string
	smtpPassword      string
	webhookURL        string
	client            *resty.Client
}

// Ensure Service implements Notifier
var _ Notifier = (*Service)(nil)

// Config carries the delivery channel settings.
type Config struct {
	Brand             string
	NotificationEmail string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string
	WebhookURL        string
}

// NewService creates a new notification service
func NewService(cfg Config) *Service {
	return &Service{
		brand:             cfg.Brand,
		notificationEmail: cfg.NotificationEmail,
		smtpHost:          cfg.SMTPHost,
		smtpPort:          cfg.SMTPPort,
		smtpUsername:      cfg.SMTPUsername,
		smtpPassword:      cfg.SMTPPassword,
		webhookURL:        cfg.WebhookURL,
		client:            resty.New().SetTimeout(15 * time.Second),
	}
}

// SendDigest delivers the digest via every configured channel.
func (s *Service) SendDigest(result *models.AggregateResult) error {
	var errs []string

	if s.webhookURL != "" {
		if err := s.sendWebhook(result); err != nil {
			logrus.Errorf("Failed to send webhook digest: %v", err)
			errs = append(errs, fmt.Sprintf("webhook: %v", err))
		} else {
			logrus.Info("Successfully sent digest to webhook")
		}
	}

	if s.notificationEmail != "" {
		if err := s.sendEmail(result); err != nil {
			logrus.Errorf("Failed to send email digest: %v", err)
			errs = append(errs, fmt.Sprintf("email: %v", err))
		} else {
			logrus.Info("Successfully sent digest via email")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("digest delivery errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

type webhookPayload struct {
	Title       string         `json:"title"`
	CSIScore    float64        `json:"csi_score"`
	Summary     string         `json:"summary"`
	PostCount   int            `json:"post_count"`
	IssueCounts map[string]int `json:"issue_counts"`
	GeneratedAt string         `json:"generated_at"`
}

func (s *Service) sendWebhook(result *models.AggregateResult) error {
	payload := webhookPayload{
		Title:       fmt.Sprintf("%s Customer Satisfaction Digest", s.brand),
		CSIScore:    result.CSIScore,
		Summary:     result.Summary,
		PostCount:   len(result.Classified),
		IssueCounts: result.IssueCounts,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}

	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(s.webhookURL)

	if err != nil {
		return err
	}

	if resp.StatusCode() >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode())
	}

	return nil
}

const emailTemplate = `
<html>
<body>
<h2>{{.Brand}} Customer Satisfaction Digest</h2>
<p><strong>CSI score:</strong> {{.CSIScore}}</p>
<p>{{.Summary}}</p>
<h3>Issue breakdown ({{.PostCount}} posts)</h3>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Category</th><th>Posts</th></tr>
{{range .Rows}}<tr><td>{{.Category}}</td><td>{{.Count}}</td></tr>
{{end}}</table>
<p><em>Generated at {{.GeneratedAt}}</em></p>
</body>
</html>
`

type emailRow struct {
	Category string
	Count    int
}

type emailData struct {
	Brand       string
	CSIScore    float64
	Summary     string
	PostCount   int
	Rows        []emailRow
	GeneratedAt string
}

func (s *Service) sendEmail(result *models.AggregateResult) error {
	tmpl, err := template.New("digest").Parse(emailTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse digest template: %w", err)
	}

	rows := make([]emailRow, 0, len(analysis.CategoryOrder))
	for _, category := range analysis.CategoryOrder {
		rows = append(rows, emailRow{Category: category, Count: result.IssueCounts[category]})
	}

	var body bytes.Buffer
	err = tmpl.Execute(&body, emailData{
		Brand:       s.brand,
		CSIScore:    result.CSIScore,
		Summary:     result.Summary,
		PostCount:   len(result.Classified),
		Rows:        rows,
		GeneratedAt: time.Now().UTC().Format(time.RFC1123),
	})
	if err != nil {
		return fmt.Errorf("failed to render digest template: %w", err)
	}

	message := gomail.NewMessage()
	message.SetHeader("From", s.smtpUsername)
	message.SetHeader("To", s.notificationEmail)
	message.SetHeader("Subject", fmt.Sprintf("%s CSI Digest - %.2f", s.brand, result.CSIScore))
	message.SetBody("text/html", body.String())

	dialer := gomail.NewDialer(s.smtpHost, s.smtpPort, s.smtpUsername, s.smtpPassword)
	return dialer.DialAndSend(message)
}
