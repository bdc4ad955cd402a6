package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aidar/hackathon-teams/internal/domain"
)

// CreateTeamPath is the team API endpoint the form posts to.
const CreateTeamPath = "/api/v1/team/create"

// maxErrorBody bounds how much of a failed response is read for the message.
const maxErrorBody = 64 << 10

// BackendError is a non-2xx answer from the team API.
type BackendError struct {
	Status  int
	Message string // empty when the body carried no usable message
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("team api returned %d: %s", e.Status, e.Message)
}

// TransportError is a network or decoding failure talking to the team API.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "team api transport: " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// TeamClient calls the team API over HTTP.
type TeamClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewTeamClient creates a client for the API at baseURL.
func NewTeamClient(baseURL string, httpClient *http.Client) *TeamClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &TeamClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// CreateTeam issues one POST to the create endpoint with token as bearer credential.
// Failures are *BackendError or *TransportError.
func (c *TeamClient) CreateTeam(ctx context.Context, token string, input TeamFormInput) (*domain.Team, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+CreateTeamPath, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &BackendError{
			Status:  resp.StatusCode,
			Message: errorMessage(io.LimitReader(resp.Body, maxErrorBody)),
		}
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, &TransportError{Err: fmt.Errorf("decode team: %w", err)}
	}
	var team domain.Team
	if err := json.Unmarshal(raw, &team); err != nil {
		return nil, &TransportError{Err: fmt.Errorf("decode team: %w", err)}
	}
	team.Raw = raw
	return &team, nil
}

// errorMessage extracts "error" from a failure body. It accepts both a plain
// string and an object with a "message" field.
func errorMessage(r io.Reader) string {
	var body struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil || len(body.Error) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(body.Error, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var detail struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body.Error, &detail); err == nil {
		return strings.TrimSpace(detail.Message)
	}
	return ""
}
