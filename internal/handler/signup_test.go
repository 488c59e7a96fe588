package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/european-living/internal/domain"
	"github.com/pkordes/european-living/internal/handler"
)

func newSignupHTTPHandler(sub handler.Subscriber) http.Handler {
	return newHTTPHandler(handler.Services{Signup: sub})
}

func TestSignup_202(t *testing.T) {
	var gotEmail, gotSource string
	sub := &mockSubscriber{
		subscribe: func(_ context.Context, email, source string) error {
			gotEmail, gotSource = email, source
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(`{"email":"pat@example.com"}`))
	rec := httptest.NewRecorder()
	newSignupHTTPHandler(sub).ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "pat@example.com", gotEmail)
	assert.Equal(t, "website", gotSource)
	assert.JSONEq(t, `{"status":"subscribed"}`, rec.Body.String())
}

func TestSignup_KeepsSource(t *testing.T) {
	sub := &mockSubscriber{
		subscribe: func(_ context.Context, _, source string) error {
			assert.Equal(t, "newsletter-footer", source)
			return nil
		},
	}

	body := `{"email":"pat@example.com","source":" newsletter-footer "}`
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newSignupHTTPHandler(sub).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestSignup_422_InvalidEmail(t *testing.T) {
	sub := &mockSubscriber{
		subscribe: func(_ context.Context, _, _ string) error {
			t.Fatal("relay must not be called for an invalid email")
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(`{"email":"not-an-email"}`))
	rec := httptest.NewRecorder()
	newSignupHTTPHandler(sub).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSignup_502_RelayFailure(t *testing.T) {
	sub := &mockSubscriber{
		subscribe: func(_ context.Context, _, _ string) error {
			return fmt.Errorf("signup.Relay.Subscribe: %w: relay returned 500", domain.ErrUpstream)
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(`{"email":"pat@example.com"}`))
	rec := httptest.NewRecorder()
	newSignupHTTPHandler(sub).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "upstream_error")
}

func TestSignup_422_MissingEmail(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(`{"source":"footer"}`))
	rec := httptest.NewRecorder()
	newSignupHTTPHandler(&mockSubscriber{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please enter a valid email address")
}
