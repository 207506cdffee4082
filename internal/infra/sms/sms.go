package sms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrSendFailed is returned when the provider rejects or cannot deliver a
// message. Callers treat it as an external-service failure: counted and
// reported, never surfaced to the end customer.
var ErrSendFailed = errors.New("sms send failed")

// Sender delivers one SMS. No retry, a failure is final from the caller's
// perspective.
type Sender interface {
	Send(ctx context.Context, phone, body string) error
}

// TwilioSender sends messages through the Twilio REST API.
type TwilioSender struct {
	accountSID string
	authToken  string
	fromNumber string
	client     *http.Client
	logger     zerolog.Logger
}

func NewTwilioSender(accountSID, authToken, fromNumber string, logger zerolog.Logger) *TwilioSender {
	return &TwilioSender{
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
		client:     &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

var _ Sender = (*TwilioSender)(nil)

func (s *TwilioSender) Send(ctx context.Context, phone, body string) error {
	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", s.accountSID)

	form := url.Values{}
	form.Set("To", phone)
	form.Set("From", s.fromNumber)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error().Err(err).Str("to", phone).Msg("sms request failed")
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		s.logger.Error().
			Int("status", resp.StatusCode).
			Str("to", phone).
			Str("detail", string(detail)).
			Msg("sms rejected by provider")
		return fmt.Errorf("%w: provider returned %d", ErrSendFailed, resp.StatusCode)
	}

	s.logger.Info().Str("to", phone).Msg("sms sent")
	return nil
}

// DisabledSender logs what would have been sent and reports success,
// mirroring production behavior when SMS is switched off.
type DisabledSender struct {
	logger zerolog.Logger
}

func NewDisabledSender(logger zerolog.Logger) *DisabledSender {
	return &DisabledSender{logger: logger}
}

var _ Sender = (*DisabledSender)(nil)

func (s *DisabledSender) Send(ctx context.Context, phone, body string) error {
	s.logger.Info().Str("to", phone).Str("body", body).Msg("sms disabled, not sent")
	return nil
}
