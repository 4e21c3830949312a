package email

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const sendGridHost = "https://api.sendgrid.com"

// SendGridSender delivers messages through the SendGrid v3 API
type SendGridSender struct {
	apiKey string
}

// NewSendGridSender creates a SendGrid transport
func NewSendGridSender(apiKey string) *SendGridSender {
	return &SendGridSender{apiKey: apiKey}
}

// Send delivers msg. The SendGrid client does not take a context; the
// request uses its default timeout.
func (s *SendGridSender) Send(_ context.Context, settings *Settings, msg *Message) error {
	m := sgmail.NewV3Mail()
	m.SetFrom(sgmail.NewEmail(settings.FromName, settings.FromEmail))
	m.AddContent(sgmail.NewContent("text/html", msg.HTML))

	personalization := sgmail.NewPersonalization()
	for _, to := range msg.To {
		personalization.AddTos(sgmail.NewEmail("", to))
	}
	personalization.Subject = msg.Subject
	m.AddPersonalizations(personalization)

	if msg.ReplyTo != "" {
		m.SetReplyTo(sgmail.NewEmail("", msg.ReplyTo))
	}
	m.AddCategories("tpcell-portal")

	request := sendgrid.GetRequest(s.apiKey, "/v3/mail/send", sendGridHost)
	request.Method = http.MethodPost
	request.Body = sgmail.GetRequestBody(m)

	resp, err := sendgrid.API(request)
	if err != nil {
		return fmt.Errorf("sendgrid request failed: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid rejected message: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
