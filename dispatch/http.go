package dispatch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

const sendPath = "/v1/sms/loan-link"

// HTTPGateway posts dispatch requests to the SMS service.
type HTTPGateway struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewHTTPGateway(baseURL, token string) *HTTPGateway {
	return &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Dispatch sends one SMS request and decodes the acknowledgement.
func (g *HTTPGateway) Dispatch(ctx context.Context, req Request) (Ack, error) {
	body, err := sonic.Marshal(req)
	if err != nil {
		return Ack{}, fmt.Errorf("%w: encode request: %v", ErrDispatchFailed, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+sendPath, bytes.NewReader(body))
	if err != nil {
		return Ack{}, fmt.Errorf("%w: build request: %v", ErrDispatchFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if g.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return Ack{}, fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Ack{}, fmt.Errorf("%w: sms service returned %d", ErrDispatchFailed, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Ack{}, fmt.Errorf("%w: read response: %v", ErrDispatchFailed, err)
	}

	var ack Ack
	if err := sonic.Unmarshal(data, &ack); err != nil {
		return Ack{}, fmt.Errorf("%w: decode response: %v", ErrDispatchFailed, err)
	}
	return ack, nil
}
