package mailer

import (
	"context"
	"errors"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Message is one outgoing email. Tags show up in Mailgun analytics.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
	Tags    []string
}

// Mailgun sends notification emails from a fixed sender.
type Mailgun struct {
	client  *mg.MailgunImpl
	sender  string
	Timeout time.Duration
}

// NewMailgun builds the client once. apiBase is optional (e.g. mg.APIBaseEU).
func NewMailgun(domain, apiKey, sender, apiBase string) *Mailgun {
	client := mg.NewMailgun(domain, apiKey)
	if apiBase != "" {
		client.SetAPIBase(apiBase)
	}
	return &Mailgun{client: client, sender: sender, Timeout: 10 * time.Second}
}

// Send delivers msg and returns the Mailgun message id.
func (m *Mailgun) Send(ctx context.Context, msg Message) (string, error) {
	if msg.To == "" {
		return "", errors.New("mailgun: empty recipient")
	}
	out := m.client.NewMessage(m.sender, msg.Subject, msg.Text, msg.To)
	if msg.HTML != "" {
		out.SetHtml(msg.HTML)
	}
	if len(msg.Tags) > 0 {
		if err := out.AddTag(msg.Tags...); err != nil {
			return "", err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, m.Timeout)
	defer cancel()
	_, id, err := m.client.Send(ctx, out)
	return id, err
}
