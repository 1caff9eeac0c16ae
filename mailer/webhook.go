package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/oaiiae/hackathon-signup/datastores"
)

var ErrRejected = errors.New("mailer: message rejected")

// WebhookSender posts each message as JSON to an email delivery service.
// Any 2xx answer counts as delivered.
type WebhookSender struct {
	URL     string
	Client  *http.Client  // defaults to [http.DefaultClient]
	Timeout time.Duration // zero means no timeout besides ctx
	Log     datastores.EmailLogStore
}

func (s *WebhookSender) Send(ctx context.Context, m Message) error {
	return record(ctx, s.Log, m, s.post(ctx, m))
}

func (s *WebhookSender) post(ctx context.Context, m Message) error {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	body, err := json.Marshal(m)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode/100 != 2 { //nolint: mnd // 2XX HTTP Status Codes
		return fmt.Errorf("%w: %s", ErrRejected, resp.Status)
	}
	return nil
}
