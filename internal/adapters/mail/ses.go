// Package mail delivers finished rituals through Amazon SES.
package mail

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/osteele/liquid"

	"github.com/jsamuelsen/ritual-service/internal/domain"
)

const (
	serviceName = "ses"
	charset     = "UTF-8"
)

//go:embed templates/*.liquid
var templateFS embed.FS

// API is the subset of *sesv2.Client the mailer uses.
type API interface {
	SendEmail(ctx context.Context, in *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
	GetAccount(ctx context.Context, in *sesv2.GetAccountInput, optFns ...func(*sesv2.Options)) (*sesv2.GetAccountOutput, error)
}

// NewClient builds an SES v2 client, honouring an endpoint override.
func NewClient(cfg aws.Config, endpoint *string) *sesv2.Client {
	return sesv2.NewFromConfig(cfg, func(o *sesv2.Options) {
		if endpoint != nil {
			o.BaseEndpoint = endpoint
		}
	})
}

// Config configures the mailer.
type Config struct {
	From     string
	FromName string

	// ConfigurationSet is optional and enables SES event publishing.
	ConfigurationSet string

	Logger *slog.Logger
}

// Mailer implements ports.Mailer.
type Mailer struct {
	api    API
	from   string
	set    string
	logger *slog.Logger

	subject *liquid.Template
	html    *liquid.Template
	text    *liquid.Template
}

// NewMailer parses the embedded templates and validates the sender address.
func NewMailer(api API, cfg Config) (*Mailer, error) {
	if api == nil {
		return nil, errors.New("mail: SES client is required")
	}

	addr, err := mail.ParseAddress(cfg.From)
	if err != nil {
		return nil, fmt.Errorf("mail: invalid from address %q: %w", cfg.From, err)
	}

	if cfg.FromName != "" {
		addr.Name = cfg.FromName
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := &Mailer{
		api:    api,
		from:   addr.String(),
		set:    cfg.ConfigurationSet,
		logger: logger.With(slog.String("component", "mail.Mailer")),
	}

	engine := liquid.NewEngine()

	for name, dst := range map[string]**liquid.Template{
		"subject":     &m.subject,
		"ritual.html": &m.html,
		"ritual.txt":  &m.text,
	} {
		src, err := templateFS.ReadFile("templates/" + name + ".liquid")
		if err != nil {
			return nil, fmt.Errorf("reading %s template: %w", name, err)
		}

		tpl, perr := engine.ParseTemplate(src)
		if perr != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, perr)
		}

		*dst = tpl
	}

	return m, nil
}

// Message is a rendered email.
type Message struct {
	Subject string
	HTML    string
	Text    string
}

// Render produces the subject and both bodies for a delivery.
func (m *Mailer) Render(d *domain.RitualDelivery) (*Message, error) {
	bindings := liquid.Bindings{
		"orderId": d.OrderID,
		"name":    d.Name,
		"title":   d.Title,
		"mantra":  d.Mantra,
		"sunSign": string(d.SunSign),
		"pdfUrl":  d.PDFURL,
	}

	subject, err := m.subject.RenderString(bindings)
	if err != nil {
		return nil, fmt.Errorf("rendering subject: %w", err)
	}

	html, err := m.html.RenderString(bindings)
	if err != nil {
		return nil, fmt.Errorf("rendering html body: %w", err)
	}

	text, err := m.text.RenderString(bindings)
	if err != nil {
		return nil, fmt.Errorf("rendering text body: %w", err)
	}

	return &Message{
		Subject: strings.TrimSpace(subject),
		HTML:    html,
		Text:    text,
	}, nil
}

// SendRitual emails the PDF link to the order's address.
func (m *Mailer) SendRitual(ctx context.Context, d *domain.RitualDelivery) error {
	if d.To == "" {
		return domain.NewValidationError("email", "order has no recipient")
	}

	msg, err := m.Render(d)
	if err != nil {
		return err
	}

	in := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.from),
		Destination:      &types.Destination{ToAddresses: []string{d.To}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String(charset)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(msg.HTML), Charset: aws.String(charset)},
					Text: &types.Content{Data: aws.String(msg.Text), Charset: aws.String(charset)},
				},
			},
		},
		EmailTags: []types.MessageTag{
			{Name: aws.String("kind"), Value: aws.String("ritual_delivery")},
		},
	}

	if m.set != "" {
		in.ConfigurationSetName = aws.String(m.set)
	}

	out, err := m.api.SendEmail(ctx, in)
	if err != nil {
		return translateError(err)
	}

	m.logger.InfoContext(ctx, "ritual email sent",
		slog.String("order_id", d.OrderID),
		slog.String("message_id", aws.ToString(out.MessageId)),
	)

	return nil
}

// Name implements ports.HealthChecker.
func (m *Mailer) Name() string { return serviceName }

// Optional implements ports.OptionalChecker. Orders still fulfil without email;
// the PDF link stays available on the order.
func (m *Mailer) Optional() bool { return true }

// Check fails when the account cannot send.
func (m *Mailer) Check(ctx context.Context) error {
	out, err := m.api.GetAccount(ctx, &sesv2.GetAccountInput{})
	if err != nil {
		return translateError(err)
	}

	if !out.SendingEnabled {
		return domain.NewUnavailableError(serviceName, "sending is disabled for this account")
	}

	return nil
}

func translateError(err error) error {
	var (
		rejected *types.MessageRejected
		throttle *types.TooManyRequestsException
		limit    *types.LimitExceededException
		paused   *types.SendingPausedException
		notReady *types.MailFromDomainNotVerifiedException
	)

	switch {
	case errors.As(err, &rejected):
		return domain.NewValidationError("email", aws.ToString(rejected.Message))
	case errors.As(err, &throttle), errors.As(err, &limit):
		return domain.NewUnavailableError(serviceName, "sending rate exceeded")
	case errors.As(err, &paused), errors.As(err, &notReady):
		return domain.NewUnavailableError(serviceName, err.Error())
	default:
		return fmt.Errorf("ses send: %w", err)
	}
}
