package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/mirandavy/classdeck/pkg/domain"
)

// TokenSource supplies the bearer token for API requests. Both screens share
// one externally-constructed source instead of reaching into ambient state.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource wrapping a fixed token string.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token() string { return string(t) }

// ElevateRequest is the payload for promoting a user to a higher permission
// group.
type ElevateRequest struct {
	UserID      int    `json:"userID"`
	AccessLevel string `json:"accessLevel"`
}

// Client is the platform API client.
type Client struct {
	baseURL    string
	creds      TokenSource
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string, creds TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		creds:   creds,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetUsers fetches all registered users.
func (c *Client) GetUsers(ctx context.Context) ([]domain.User, error) {
	data, err := c.get(ctx, "/users")
	if err != nil {
		return nil, fmt.Errorf("client.GetUsers: %w", err)
	}
	var users []domain.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("client.GetUsers: decode response: %w", err)
	}
	return users, nil
}

// ElevateAccess promotes a user to the given permission group.
func (c *Client) ElevateAccess(ctx context.Context, userID int, accessLevel string) error {
	req := ElevateRequest{UserID: userID, AccessLevel: accessLevel}
	if _, err := c.doRequest(ctx, http.MethodPost, "/elevateaccess", req); err != nil {
		return fmt.Errorf("client.ElevateAccess: %w", err)
	}
	return nil
}

// GetAllSessions fetches every recorded session. The backend answers with
// either an array or a Message sentinel meaning no records exist; the
// sentinel text is returned as noData, distinct from a transport error.
func (c *Client) GetAllSessions(ctx context.Context) (sessions []domain.Session, noData string, err error) {
	data, err := c.get(ctx, "/getallsessions")
	if err != nil {
		return nil, "", fmt.Errorf("client.GetAllSessions: %w", err)
	}
	sessions, noData, err = decodeListOrMessage[domain.Session](data)
	if err != nil {
		return nil, "", fmt.Errorf("client.GetAllSessions: %w", err)
	}
	return sessions, noData, nil
}

// GetLoggedAnswers fetches the term answers recorded for a session.
func (c *Client) GetLoggedAnswers(ctx context.Context, sessionID int) (answers []domain.LoggedAnswer, noData string, err error) {
	params := url.Values{}
	params.Set("sessionID", strconv.Itoa(sessionID))

	data, err := c.get(ctx, "/loggedanswer?"+params.Encode())
	if err != nil {
		return nil, "", fmt.Errorf("client.GetLoggedAnswers: %w", err)
	}
	answers, noData, err = decodeListOrMessage[domain.LoggedAnswer](data)
	if err != nil {
		return nil, "", fmt.Errorf("client.GetLoggedAnswers: %w", err)
	}
	return answers, noData, nil
}

// GetMentorResponses fetches the mentor-question responses for a session.
func (c *Client) GetMentorResponses(ctx context.Context, sessionID int) (responses []domain.MentorResponse, noData string, err error) {
	params := url.Values{}
	params.Set("session_id", strconv.Itoa(sessionID))

	data, err := c.get(ctx, "/studentresponses?"+params.Encode())
	if err != nil {
		return nil, "", fmt.Errorf("client.GetMentorResponses: %w", err)
	}
	responses, noData, err = decodeListOrMessage[domain.MentorResponse](data)
	if err != nil {
		return nil, "", fmt.Errorf("client.GetMentorResponses: %w", err)
	}
	return responses, noData, nil
}

// GetMentorQuestion fetches the mentor question text by question ID.
func (c *Client) GetMentorQuestion(ctx context.Context, questionID int) (q *domain.MentorQuestion, noData string, err error) {
	params := url.Values{}
	params.Set("questionID", strconv.Itoa(questionID))

	data, err := c.get(ctx, "/question?"+params.Encode())
	if err != nil {
		return nil, "", fmt.Errorf("client.GetMentorQuestion: %w", err)
	}
	if msg := sentinelMessage(data); msg != "" {
		return nil, msg, nil
	}
	var question domain.MentorQuestion
	if err := json.Unmarshal(data, &question); err != nil {
		return nil, "", fmt.Errorf("client.GetMentorQuestion: decode response: %w", err)
	}
	return &question, "", nil
}

// decodeListOrMessage decodes a response that is either an array of records
// or an object carrying a Message sentinel ("no records", not an error).
func decodeListOrMessage[T any](data []byte) ([]T, string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []T
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, "", fmt.Errorf("decode response: %w", err)
		}
		return list, "", nil
	}
	if msg := sentinelMessage(trimmed); msg != "" {
		return nil, msg, nil
	}
	return nil, "", fmt.Errorf("unexpected response shape: %s", truncBody(trimmed))
}

// sentinelMessage extracts the no-data Message field, if present.
func sentinelMessage(data []byte) string {
	var sentinel struct {
		Message string `json:"Message"`
	}
	if json.Unmarshal(data, &sentinel) == nil {
		return sentinel.Message
	}
	return ""
}

func truncBody(data []byte) string {
	const max = 120
	if len(data) > max {
		return string(data[:max]) + "..."
	}
	return string(data)
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	return c.doRequest(ctx, http.MethodGet, path, nil)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.creds.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max body
	if resp.StatusCode >= 400 {
		if readErr != nil {
			return nil, &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return nil, &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
		}
		return nil, &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}
	if readErr != nil {
		return nil, fmt.Errorf("read response: %w", readErr)
	}
	return respBody, nil
}
