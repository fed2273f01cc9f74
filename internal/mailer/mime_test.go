package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessageText(t *testing.T) {
	msg := string(buildMessage(Email{
		FromName: "Chhapai",
		From:     "no-reply@chhapai.in",
		To:       []string{"customer@example.com"},
		Subject:  "Order received",
		TextBody: "Thanks for your order.",
	}))

	assert.Contains(t, msg, "From: Chhapai <no-reply@chhapai.in>")
	assert.Contains(t, msg, "To: customer@example.com")
	assert.Contains(t, msg, "Subject: Order received")
	assert.Contains(t, msg, "Content-Type: text/plain; charset=utf-8")
	assert.Contains(t, msg, "Thanks for your order.")
}

func TestBuildMessageMultipart(t *testing.T) {
	msg := string(buildMessage(Email{
		From:     "no-reply@chhapai.in",
		To:       []string{"a@example.com"},
		Subject:  "Invoice",
		TextBody: "plain",
		HTMLBody: "<b>html</b>",
	}))

	assert.Contains(t, msg, "multipart/alternative")
	assert.Contains(t, msg, "plain")
	assert.Contains(t, msg, "<b>html</b>")
}

func TestMockRecords(t *testing.T) {
	m := NewMock()
	require.NoError(t, m.Send(context.Background(), Email{To: []string{"x@example.com"}}))
	require.Len(t, m.Sent, 1)
	assert.Equal(t, []string{"x@example.com"}, m.Sent[0].To)
}

func TestAllRecipients(t *testing.T) {
	e := Email{To: []string{"a"}, Cc: []string{"b"}, Bcc: []string{"c"}}
	assert.Equal(t, []string{"a", "b", "c"}, e.AllRecipients())
}
