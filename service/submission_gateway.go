package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"loan-calculator/domain"
)

// ErrEncodePayload reports that the application could not be serialized.
var ErrEncodePayload = errors.New("encode loan application")

// SubmissionGateway sends a loan application and reports the HTTP status code.
type SubmissionGateway interface {
	SubmitLoanApplication(ctx context.Context, app domain.LoanApplication) (int, error)
}

// HTTPSubmissionGateway posts applications as JSON to a fixed endpoint.
type HTTPSubmissionGateway struct {
	url        string
	httpClient *http.Client
	marshal    func(any) ([]byte, error)
}

// NewHTTPSubmissionGateway uses client, or a client with the transport's
// default timeouts when client is nil.
func NewHTTPSubmissionGateway(url string, client *http.Client) *HTTPSubmissionGateway {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPSubmissionGateway{
		url:        url,
		httpClient: client,
		marshal:    json.Marshal,
	}
}

func (g *HTTPSubmissionGateway) SubmitLoanApplication(ctx context.Context, app domain.LoanApplication) (int, error) {
	body, err := g.marshal(app)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEncodePayload, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}
