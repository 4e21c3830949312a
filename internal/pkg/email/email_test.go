package email

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tpcell/portal/internal/pkg/apperrors"
)

type staticSettings struct {
	settings *Settings
	calls    int
}

func (s *staticSettings) EmailSettings(ctx context.Context) (*Settings, error) {
	s.calls++
	copied := *s.settings
	return &copied, nil
}

type recordingSender struct {
	sent []*Message
	err  error
}

func (r *recordingSender) Send(ctx context.Context, settings *Settings, msg *Message) error {
	r.sent = append(r.sent, msg)
	return r.err
}

func newTestService(t *testing.T, settings *Settings) (*EmailServiceImpl, *recordingSender, *staticSettings) {
	t.Helper()
	src := &staticSettings{settings: settings}
	sender := &recordingSender{}
	svc, err := NewEmailService(src, "http://portal.test/", zerolog.Nop(), WithSMTPSender(sender))
	require.NoError(t, err)
	return svc, sender, src
}

func configured() *Settings {
	return &Settings{
		Provider:          ProviderSMTP,
		Host:              "smtp.college.edu",
		Port:              587,
		FromEmail:         "tpo@college.edu",
		FromName:          "T&P Cell",
		AdminContactEmail: "tpo-head@college.edu",
	}
}

func TestSendOTPEmail_RendersCode(t *testing.T) {
	svc, sender, _ := newTestService(t, configured())

	require.NoError(t, svc.SendOTPEmail(context.Background(), "asha@college.edu", "Asha", "482913", 10*time.Minute))

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, []string{"asha@college.edu"}, msg.To)
	assert.Contains(t, msg.HTML, "482913")
	assert.Contains(t, msg.HTML, "10 minutes")
	assert.Contains(t, msg.HTML, "T&amp;P Cell")
}

func TestSend_ReadsSettingsEverySend(t *testing.T) {
	svc, _, src := newTestService(t, configured())

	_ = svc.SendWelcomeEmail(context.Background(), "a@college.edu", "A")
	_ = svc.SendWelcomeEmail(context.Background(), "b@college.edu", "B")

	assert.Equal(t, 2, src.calls)
}

func TestSend_UnconfiguredIsSkipped(t *testing.T) {
	svc, sender, _ := newTestService(t, &Settings{Provider: ProviderSMTP})

	err := svc.SendVerificationResultEmail(context.Background(), "a@college.edu", "A", "STUDENT", true, "")
	assert.NoError(t, err)
	assert.Empty(t, sender.sent)

	err = svc.SendTestEmail(context.Background(), "a@college.edu")
	assert.ErrorIs(t, err, apperrors.ErrEmailDeliveryDisabled)
}

func TestSend_PropagatesTransportError(t *testing.T) {
	svc, sender, _ := newTestService(t, configured())
	sender.err = errors.New("connection refused")

	err := svc.SendApplicationStatusEmail(context.Background(), "a@college.edu", "A", "SDE", "Acme", "HR_INTERVIEW", "")
	assert.Error(t, err)
	assert.Contains(t, sender.sent[0].HTML, "HR INTERVIEW")
}

func TestSendContactFormEmail(t *testing.T) {
	svc, sender, _ := newTestService(t, configured())

	err := svc.SendContactFormEmail(context.Background(), ContactMessage{
		Name: "Ravi", Email: "ravi@example.com", Subject: "Campus drive", Message: "<b>hi</b>",
	})
	require.NoError(t, err)

	msg := sender.sent[0]
	assert.Equal(t, []string{"tpo-head@college.edu"}, msg.To)
	assert.Equal(t, "ravi@example.com", msg.ReplyTo)
	assert.Contains(t, msg.HTML, "&lt;b&gt;hi&lt;/b&gt;")
}

func TestBuildMIMEMessage(t *testing.T) {
	raw := string(BuildMIMEMessage(configured(), &Message{
		To: []string{"a@x.com", "b@x.com"}, Subject: "Hello", HTML: "<p>x</p>", ReplyTo: "r@x.com",
	}))

	assert.True(t, strings.HasPrefix(raw, "From: T&P Cell <tpo@college.edu>\r\n"))
	assert.Contains(t, raw, "To: a@x.com, b@x.com\r\n")
	assert.Contains(t, raw, "Reply-To: r@x.com\r\n")
	assert.True(t, strings.HasSuffix(raw, "\r\n\r\n<p>x</p>"))
}
