package twilio

import (
	"context"
	"errors"
	"fmt"

	"medicare-call-server/internal/observability"

	twilioSDK "github.com/twilio/twilio-go"
	twilioClient "github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Client wraps the Twilio REST API for placing calls and sending SMS
type Client struct {
	rest        *twilioSDK.RestClient
	validator   twilioClient.RequestValidator
	phoneNumber string
	logger      *observability.Logger
}

func NewClient(accountSID, authToken, phoneNumber string, logger *observability.Logger) (*Client, error) {
	if accountSID == "" || authToken == "" {
		return nil, errors.New("Twilio account SID and auth token are required")
	}
	if phoneNumber == "" {
		return nil, errors.New("Twilio phone number is required")
	}

	rest := twilioSDK.NewRestClientWithParams(twilioSDK.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &Client{
		rest:        rest,
		validator:   twilioClient.NewRequestValidator(authToken),
		phoneNumber: phoneNumber,
		logger:      logger,
	}, nil
}

// PhoneNumber returns the originating/answering number
func (c *Client) PhoneNumber() string {
	return c.phoneNumber
}

// StartCall places an outbound call that hits webhookURL when answered and
// statusCallbackURL on terminal status changes. Returns the call SID.
func (c *Client) StartCall(ctx context.Context, to, webhookURL, statusCallbackURL string) (string, error) {
	params := &openapi.CreateCallParams{}
	params.SetTo(to)
	params.SetFrom(c.phoneNumber)
	params.SetUrl(webhookURL)
	params.SetMethod("POST")
	params.SetRecord(true)
	if statusCallbackURL != "" {
		params.SetStatusCallback(statusCallbackURL)
		params.SetStatusCallbackMethod("POST")
		params.SetStatusCallbackEvent([]string{"completed", "busy", "failed", "no-answer"})
	}

	call, err := c.rest.Api.CreateCall(params)
	if err != nil {
		c.logger.Error(ctx, "failed to create call", err)
		return "", fmt.Errorf("failed to create call: %w", err)
	}
	if call.Sid == nil {
		return "", errors.New("call created without a SID")
	}

	c.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "call_sid", Value: *call.Sid},
	), "initiated outbound call")
	return *call.Sid, nil
}

// SendSMS sends a text message and returns the message SID.
func (c *Client) SendSMS(ctx context.Context, to, body string) (string, error) {
	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(c.phoneNumber)
	params.SetBody(body)

	message, err := c.rest.Api.CreateMessage(params)
	if err != nil {
		c.logger.Error(ctx, "failed to send SMS", err)
		return "", fmt.Errorf("failed to send SMS: %w", err)
	}
	if message.Sid == nil {
		return "", errors.New("message created without a SID")
	}
	return *message.Sid, nil
}

// ValidateSignature checks the X-Twilio-Signature header against the request
// URL and form parameters.
func (c *Client) ValidateSignature(url string, params map[string]string, signature string) bool {
	return c.validator.Validate(url, params, signature)
}
