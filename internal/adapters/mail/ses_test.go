package mail

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/ritual-service/internal/domain"
)

type fakeSES struct {
	sent    []*sesv2.SendEmailInput
	err     error
	enabled bool
}

func (f *fakeSES) SendEmail(_ context.Context, in *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.sent = append(f.sent, in)

	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func (f *fakeSES) GetAccount(context.Context, *sesv2.GetAccountInput, ...func(*sesv2.Options)) (*sesv2.GetAccountOutput, error) {
	if f.err != nil {
		return nil, f.err
	}

	return &sesv2.GetAccountOutput{SendingEnabled: f.enabled}, nil
}

func delivery() *domain.RitualDelivery {
	return &domain.RitualDelivery{
		OrderID: "order-1",
		To:      "luna@example.com",
		Name:    "Luna <Vega>",
		Title:   "Golden Threshold",
		Mantra:  "I open the door to abundance",
		SunSign: domain.SignLeo,
		PDFURL:  "https://cdn.example/rituals/order-1.pdf",
	}
}

func newTestMailer(t *testing.T, api API) *Mailer {
	t.Helper()

	m, err := NewMailer(api, Config{From: "rituals@example.com", FromName: "Ritual Generator"})
	require.NoError(t, err)

	return m
}

func TestNewMailer_Validates(t *testing.T) {
	_, err := NewMailer(nil, Config{From: "rituals@example.com"})
	require.Error(t, err)

	_, err = NewMailer(&fakeSES{}, Config{From: "not an address"})
	require.Error(t, err)
}

func TestMailer_Render(t *testing.T) {
	m := newTestMailer(t, &fakeSES{})

	msg, err := m.Render(delivery())

	require.NoError(t, err)
	assert.Equal(t, "Your ritual is ready, Luna <Vega>: Golden Threshold", msg.Subject)
	assert.Contains(t, msg.HTML, "Luna &lt;Vega&gt;", "names are escaped in HTML")
	assert.Contains(t, msg.HTML, `href="https://cdn.example/rituals/order-1.pdf"`)
	assert.Contains(t, msg.HTML, "Leo ritual")
	assert.Contains(t, msg.Text, "Golden Threshold (Leo)")
	assert.Contains(t, msg.Text, `Mantra: "I open the door to abundance"`)
	assert.Contains(t, msg.Text, "Download your ritual: https://cdn.example/rituals/order-1.pdf")
}

func TestMailer_Render_Anonymous(t *testing.T) {
	m := newTestMailer(t, &fakeSES{})

	d := delivery()
	d.Name = ""
	d.Mantra = ""

	msg, err := m.Render(d)

	require.NoError(t, err)
	assert.Equal(t, "Your ritual is ready: Golden Threshold", msg.Subject)
	assert.Contains(t, msg.Text, "Dear seeker,")
	assert.NotContains(t, msg.Text, "Mantra:")
}

func TestMailer_SendRitual(t *testing.T) {
	api := &fakeSES{}
	m := newTestMailer(t, api)

	require.NoError(t, m.SendRitual(context.Background(), delivery()))

	require.Len(t, api.sent, 1)
	in := api.sent[0]
	assert.Equal(t, `"Ritual Generator" <rituals@example.com>`, aws.ToString(in.FromEmailAddress))
	assert.Equal(t, []string{"luna@example.com"}, in.Destination.ToAddresses)
	assert.Equal(t, "UTF-8", aws.ToString(in.Content.Simple.Body.Html.Charset))
	assert.NotEmpty(t, aws.ToString(in.Content.Simple.Body.Text.Data))
	assert.Nil(t, in.ConfigurationSetName)
}

func TestMailer_SendRitual_NoRecipient(t *testing.T) {
	api := &fakeSES{}
	m := newTestMailer(t, api)

	d := delivery()
	d.To = ""

	err := m.SendRitual(context.Background(), d)

	assert.True(t, domain.IsValidation(err))
	assert.Empty(t, api.sent)
}

func TestMailer_SendRitual_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected func(error) bool
	}{
		{"rejected", &types.MessageRejected{Message: aws.String("Email address is not verified.")}, domain.IsValidation},
		{"throttled", &types.TooManyRequestsException{Message: aws.String("slow down")}, domain.IsUnavailable},
		{"paused", &types.SendingPausedException{Message: aws.String("paused")}, domain.IsUnavailable},
		{"other", errors.New("connection reset"), func(err error) bool { return !domain.IsUnavailable(err) && !domain.IsValidation(err) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMailer(t, &fakeSES{err: tt.err})

			err := m.SendRitual(context.Background(), delivery())

			require.Error(t, err)
			assert.True(t, tt.expected(err), "unexpected error: %v", err)
		})
	}
}

func TestMailer_HealthCheck(t *testing.T) {
	api := &fakeSES{enabled: true}
	m := newTestMailer(t, api)

	assert.Equal(t, "ses", m.Name())
	assert.True(t, m.Optional())
	require.NoError(t, m.Check(context.Background()))

	api.enabled = false
	assert.True(t, domain.IsUnavailable(m.Check(context.Background())))
}
