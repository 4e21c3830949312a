// Package email renders and delivers portal notifications. Delivery
// settings are looked up on every send so changes made by a super admin
// apply without a restart.
package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tpcell/portal/internal/pkg/apperrors"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	otpTemplate                = "otp.html"
	welcomeTemplate            = "welcome.html"
	verificationResultTemplate = "verification_result.html"
	applicationStatusTemplate  = "application_status.html"
	contactTemplate            = "contact.html"
	testTemplate               = "test.html"
)

// Providers accepted in the settings row
const (
	ProviderSMTP     = "smtp"
	ProviderSendGrid = "sendgrid"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendOTPEmail(ctx context.Context, toEmail, toName, code string, expiresIn time.Duration) error
	SendWelcomeEmail(ctx context.Context, toEmail, toName string) error
	SendVerificationResultEmail(ctx context.Context, toEmail, toName, entity string, verified bool, remarks string) error
	SendApplicationStatusEmail(ctx context.Context, toEmail, toName, jobTitle, companyName, status, remarks string) error
	SendContactFormEmail(ctx context.Context, msg ContactMessage) error
	SendTestEmail(ctx context.Context, toEmail string) error
}

// Settings holds delivery configuration
type Settings struct {
	Provider          string
	Host              string
	Port              int
	Secure            bool
	Username          string
	Password          string
	FromEmail         string
	FromName          string
	AdminContactEmail string
}

// SettingsSource loads the current delivery settings
type SettingsSource interface {
	EmailSettings(ctx context.Context) (*Settings, error)
}

// Message is a rendered email ready for delivery
type Message struct {
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

// Sender delivers a rendered message
type Sender interface {
	Send(ctx context.Context, settings *Settings, msg *Message) error
}

// ContactMessage is a public contact form submission
type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	settings  SettingsSource
	smtp      Sender
	sendgrid  Sender
	templates *template.Template
	baseURL   string
	logger    zerolog.Logger
}

// Option customises the service
type Option func(*EmailServiceImpl)

// WithSendGrid enables SendGrid delivery when selected in the settings
func WithSendGrid(apiKey string) Option {
	return func(s *EmailServiceImpl) {
		if apiKey != "" {
			s.sendgrid = NewSendGridSender(apiKey)
		}
	}
}

// WithSMTPSender replaces the SMTP transport
func WithSMTPSender(sender Sender) Option {
	return func(s *EmailServiceImpl) {
		s.smtp = sender
	}
}

// NewEmailService creates a new EmailService
func NewEmailService(settings SettingsSource, baseURL string, logger zerolog.Logger, opts ...Option) (*EmailServiceImpl, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	s := &EmailServiceImpl{
		settings:  settings,
		smtp:      NewSMTPSender(logger),
		templates: tmpl,
		baseURL:   strings.TrimRight(baseURL, "/"),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SendOTPEmail sends the email verification code
func (s *EmailServiceImpl) SendOTPEmail(ctx context.Context, toEmail, toName, code string, expiresIn time.Duration) error {
	data := map[string]interface{}{
		"Name":             toName,
		"Code":             code,
		"ExpiresInMinutes": int(expiresIn.Minutes()),
	}
	return s.send(ctx, []string{toEmail}, "", "Your verification code", otpTemplate, data, false)
}

// SendWelcomeEmail sends a welcome email to a newly verified user
func (s *EmailServiceImpl) SendWelcomeEmail(ctx context.Context, toEmail, toName string) error {
	data := map[string]interface{}{
		"Name":     toName,
		"LoginURL": s.baseURL + "/login",
	}
	return s.send(ctx, []string{toEmail}, "", "Welcome to the Training & Placement Cell portal", welcomeTemplate, data, false)
}

// SendVerificationResultEmail tells a student or company the outcome of
// the placement cell review
func (s *EmailServiceImpl) SendVerificationResultEmail(ctx context.Context, toEmail, toName, entity string, verified bool, remarks string) error {
	subject := "Your account has been verified"
	if !verified {
		subject = "Your account verification was rejected"
	}
	data := map[string]interface{}{
		"Name":     toName,
		"Entity":   strings.ToLower(entity),
		"Verified": verified,
		"Remarks":  remarks,
	}
	return s.send(ctx, []string{toEmail}, "", subject, verificationResultTemplate, data, false)
}

// SendApplicationStatusEmail notifies a student that their application moved
func (s *EmailServiceImpl) SendApplicationStatusEmail(ctx context.Context, toEmail, toName, jobTitle, companyName, status, remarks string) error {
	data := map[string]interface{}{
		"Name":        toName,
		"JobTitle":    jobTitle,
		"CompanyName": companyName,
		"Status":      strings.ReplaceAll(status, "_", " "),
		"Remarks":     remarks,
	}
	subject := fmt.Sprintf("Application update: %s at %s", jobTitle, companyName)
	return s.send(ctx, []string{toEmail}, "", subject, applicationStatusTemplate, data, false)
}

// SendContactFormEmail forwards a contact form submission to the placement cell
func (s *EmailServiceImpl) SendContactFormEmail(ctx context.Context, msg ContactMessage) error {
	settings, err := s.settings.EmailSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load email settings: %w", err)
	}
	if settings.AdminContactEmail == "" {
		s.logger.Warn().Str("from", msg.Email).Msg("Admin contact email not configured - contact message not forwarded")
		return nil
	}
	data := map[string]interface{}{
		"SenderName":  msg.Name,
		"SenderEmail": msg.Email,
		"Subject":     msg.Subject,
		"Message":     msg.Message,
	}
	return s.sendWith(ctx, settings, []string{settings.AdminContactEmail}, msg.Email, "Contact form: "+msg.Subject, contactTemplate, data, false)
}

// SendTestEmail checks the current settings. Unlike the notifications it
// fails when delivery is not configured.
func (s *EmailServiceImpl) SendTestEmail(ctx context.Context, toEmail string) error {
	data := map[string]interface{}{
		"SentAt": time.Now().UTC().Format(time.RFC1123),
	}
	return s.send(ctx, []string{toEmail}, "", "Placement portal test email", testTemplate, data, true)
}

func (s *EmailServiceImpl) send(ctx context.Context, to []string, replyTo, subject, tmpl string, data map[string]interface{}, strict bool) error {
	settings, err := s.settings.EmailSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load email settings: %w", err)
	}
	return s.sendWith(ctx, settings, to, replyTo, subject, tmpl, data, strict)
}

func (s *EmailServiceImpl) sendWith(ctx context.Context, settings *Settings, to []string, replyTo, subject, tmpl string, data map[string]interface{}, strict bool) error {
	data["FromName"] = settings.FromName

	html, err := s.Render(tmpl, data)
	if err != nil {
		return err
	}
	msg := &Message{To: to, ReplyTo: replyTo, Subject: subject, HTML: html}

	sender := s.senderFor(settings)
	if sender == nil {
		if strict {
			return apperrors.ErrEmailDeliveryDisabled
		}
		s.logger.Warn().
			Strs("to", to).
			Str("subject", subject).
			Msg("Email delivery not configured - message not sent")
		return nil
	}

	if err := sender.Send(ctx, settings, msg); err != nil {
		s.logger.Error().Err(err).Strs("to", to).Str("subject", subject).Msg("Failed to send email")
		return err
	}
	s.logger.Debug().Strs("to", to).Str("subject", subject).Str("provider", settings.Provider).Msg("Email sent")
	return nil
}

func (s *EmailServiceImpl) senderFor(settings *Settings) Sender {
	if settings.Provider == ProviderSendGrid && s.sendgrid != nil && settings.FromEmail != "" {
		return s.sendgrid
	}
	if settings.Host == "" || settings.FromEmail == "" {
		return nil
	}
	return s.smtp
}

// Render executes a named template
func (s *EmailServiceImpl) Render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}
