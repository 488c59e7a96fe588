// Package signup relays newsletter sign-ups to a hosted form endpoint.
package signup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkordes/european-living/internal/domain"
)

// DefaultURL is the hosted form that collects sign-ups.
const DefaultURL = "https://formspree.io/f/mnngzrdn"

// Relay posts sign-ups to a form-relay endpoint.
type Relay struct {
	http *http.Client
	url  string
}

// New returns a Relay posting to url.
func New(httpClient *http.Client, url string) *Relay {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Relay{http: httpClient, url: url}
}

type payload struct {
	Email        string `json:"email"`
	SignupSource string `json:"signup_source"`
}

// Subscribe forwards email and source. Any non-2xx answer is domain.ErrUpstream.
// The email is assumed to be validated by the caller.
func (r *Relay) Subscribe(ctx context.Context, email, source string) error {
	body, err := json.Marshal(payload{Email: email, SignupSource: source})
	if err != nil {
		return fmt.Errorf("signup.Relay.Subscribe: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("signup.Relay.Subscribe: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return fmt.Errorf("signup.Relay.Subscribe: %w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("signup.Relay.Subscribe: %w: relay answered %s", domain.ErrUpstream, resp.Status)
	}
	return nil
}
