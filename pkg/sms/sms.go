package sms

import (
	"errors"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type SendSMSInput struct {
	To   string
	Body string
}

type Sender interface {
	Send(input SendSMSInput) error
}

// TwilioSender delivers text messages through the Twilio REST API.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender(accountSID, authToken, from string) (*TwilioSender, error) {
	if accountSID == "" || authToken == "" || from == "" {
		return nil, errors.New("missing twilio credentials")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioSender{client: client, from: from}, nil
}

func (s *TwilioSender) Send(input SendSMSInput) error {
	if input.To == "" || input.Body == "" {
		return errors.New("empty to/body")
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(s.from)
	params.SetTo(input.To)
	params.SetBody(input.Body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio create message failed: %w", err)
	}

	return nil
}
