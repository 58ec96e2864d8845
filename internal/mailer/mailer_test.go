package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// MockMailer stands in for real SMTP delivery.
type MockMailer struct {
	WasCalled bool
	To        string
	Title     string
}

func (m *MockMailer) SendListingCreatedEmail(toEmail, listingTitle string) error {
	m.WasCalled = true
	m.To = toEmail
	m.Title = listingTitle
	return nil
}

func TestSendListingCreatedEmail_Mock(t *testing.T) {
	mock := &MockMailer{}
	err := mock.SendListingCreatedEmail("owner@example.com", "Dune")

	assert.NoError(t, err)
	assert.True(t, mock.WasCalled)
	assert.Equal(t, "owner@example.com", mock.To)
	assert.Equal(t, "Dune", mock.Title)
}

func TestNewSMTPMailer(t *testing.T) {
	m := NewSMTPMailer("smtp.example.com", 587, "noreply@example.com", "secret")
	assert.NotNil(t, m)
}
