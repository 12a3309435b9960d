// Package sms sends text messages through the Twilio REST API.
package sms

import (
	"errors"
	"fmt"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// MaxMessageLength is the number of characters that fit a single SMS
const MaxMessageLength = 160

// Sender delivers a text message and returns the provider's message identifier
type Sender interface {
	Send(body string, from string, to string) (string, error)
}

// Config holds the Twilio account used to send messages and the number messages are sent from.
type Config struct {
	AccountSID  string
	AuthToken   string
	PhoneNumber string
}

// Configured returns true when all account values are present
func (c Config) Configured() bool {
	return len(c.AccountSID) > 0 && len(c.AuthToken) > 0 && len(c.PhoneNumber) > 0
}

// TwilioSender implements Sender with the Twilio messages API
type TwilioSender struct {
	client *twilio.RestClient
}

// NewTwilioSender creates a TwilioSender authenticated with the account in cfg
func NewTwilioSender(cfg Config) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &TwilioSender{client: client}
}

// Send creates a message from "from" to "to" and returns its sid
func (s *TwilioSender) Send(body string, from string, to string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetBody(body)
	params.SetFrom(from)
	params.SetTo(to)

	message, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("creating twilio message: %w", err)
	}
	if message.Sid == nil {
		return "", errors.New("twilio message created without sid")
	}
	return *message.Sid, nil
}
