package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPGateway_Dispatch(t *testing.T) {
	var received Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/v1/sms/loan-link" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("auth header = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"reference":"sms-42"}`))
	}))
	defer srv.Close()

	gw := NewHTTPGateway(srv.URL, "secret")
	ack, err := gw.Dispatch(context.Background(), Request{
		SessionID:    "abc",
		Phones:       []string{"0501234567", "0771234567"},
		Amount:       20000,
		TermMonths:   12,
		OfferVersion: 3,
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if ack.Reference != "sms-42" {
		t.Errorf("Reference = %q, want sms-42", ack.Reference)
	}
	if received.Amount != 20000 || received.TermMonths != 12 || received.OfferVersion != 3 {
		t.Errorf("server received %+v", received)
	}
	if len(received.Phones) != 2 {
		t.Errorf("phones = %v, want 2 numbers", received.Phones)
	}
}

func TestHTTPGateway_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	gw := NewHTTPGateway(srv.URL, "")
	_, err := gw.Dispatch(context.Background(), Request{})
	if !errors.Is(err, ErrDispatchFailed) {
		t.Errorf("expected ErrDispatchFailed, got %v", err)
	}
}
