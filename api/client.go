// Package api implements the HTTP client for the remote todo service.
//
// Every operation is a thin pass-through to the corresponding service
// endpoint; the client performs no retries, caching, or deduplication. Two
// policies cut across all calls: a bearer token is attached whenever one is
// held, and any 401 response fires the unauthorized hook before the call's
// own error is returned.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/eklerner/tdo/todo"
)

// TokenSource supplies the current bearer token. An empty string means no
// session is held and the request proceeds unauthenticated.
type TokenSource interface {
	Token() string
}

// Client calls the todo service.
type Client struct {
	baseURL        string
	client         *http.Client
	tokens         TokenSource
	onUnauthorized func()
}

// NewClient creates a client for the given address or URL.
func NewClient(addr string, tokens TokenSource) *Client {
	baseURL := strings.TrimRight(addr, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	return &Client{baseURL: baseURL, client: &http.Client{}, tokens: tokens}
}

// OnUnauthorized registers fn to run whenever any call returns 401,
// regardless of which operation triggered it. Only one hook is held; later
// registrations replace earlier ones.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// User is the created-user representation returned by registration.
type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	SlackChannel string `json:"slack_channel,omitempty"`
}

// RegisterRequest carries the registration fields.
type RegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	SlackChannel string `json:"slack_channel,omitempty"`
}

// Register creates a new user. It does not establish a session.
func (c *Client) Register(ctx context.Context, request RegisterRequest) (User, error) {
	var user User
	err := c.postJSON(ctx, "/auth/register", request, &user, "Registration failed")
	return user, err
}

// Token exchanges credentials for a bearer token. Unlike every other
// operation, the body is form-encoded rather than JSON.
func (c *Client) Token(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var response struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.send(req, &response, "Login failed"); err != nil {
		return "", err
	}
	return response.AccessToken, nil
}

// ListTodos fetches the caller's todos, narrowed by the filter.
func (c *Client) ListTodos(ctx context.Context, filter todo.Filter) ([]todo.Todo, error) {
	path := "/todos"
	if query := filter.Values().Encode(); query != "" {
		path += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	var todos []todo.Todo
	if err := c.send(req, &todos, "Failed to fetch todos"); err != nil {
		return nil, err
	}
	return todos, nil
}

// GetTodo fetches a single todo by ID.
func (c *Client) GetTodo(ctx context.Context, id int64) (todo.Todo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/todos/%d", c.baseURL, id), nil)
	if err != nil {
		return todo.Todo{}, err
	}

	var item todo.Todo
	if err := c.send(req, &item, "Failed to fetch todo"); err != nil {
		return todo.Todo{}, err
	}
	return item, nil
}

// CreateTodoRequest carries the fields for a new todo. A nil payload is
// omitted from the request entirely.
type CreateTodoRequest struct {
	Description string        `json:"description"`
	DueDate     time.Time     `json:"due_date"`
	Payload     *todo.Payload `json:"payload,omitempty"`
}

// CreateTodo creates a todo and returns the service's representation,
// including the assigned ID and timestamps.
func (c *Client) CreateTodo(ctx context.Context, request CreateTodoRequest) (todo.Todo, error) {
	var item todo.Todo
	err := c.postJSON(ctx, "/todos", request, &item, "Failed to create todo")
	return item, err
}

// UpdateTodo applies a partial update and returns the resulting todo. The
// returned representation replaces the local item wholesale; the service is
// the sole authority on derived fields such as the completion timestamp.
func (c *Client) UpdateTodo(ctx context.Context, id int64, update todo.Update) (todo.Todo, error) {
	data, err := json.Marshal(update)
	if err != nil {
		return todo.Todo{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, fmt.Sprintf("%s/todos/%d", c.baseURL, id), bytes.NewReader(data))
	if err != nil {
		return todo.Todo{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var item todo.Todo
	if err := c.send(req, &item, "Failed to update todo"); err != nil {
		return todo.Todo{}, err
	}
	return item, nil
}

// DeleteTodo deletes a todo. Callers must not drop local state until this
// returns without error.
func (c *Client) DeleteTodo(ctx context.Context, id int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/todos/%d", c.baseURL, id), nil)
	if err != nil {
		return err
	}
	return c.send(req, nil, "Failed to delete todo")
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, dest any, fallback string) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.send(req, dest, fallback)
}

// send executes the request with the cross-cutting policies applied: bearer
// attachment on the way out, 401 interception on the way back.
func (c *Client) send(req *http.Request, dest any, fallback string) error {
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &Error{Fallback: fallback, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readErrorResponse(resp, fallback)
	}

	if dest == nil {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	return json.Unmarshal(body, dest)
}

// readErrorResponse extracts the service's detail message when present.
func readErrorResponse(resp *http.Response, fallback string) error {
	apiErr := &Error{StatusCode: resp.StatusCode, Fallback: fallback}

	var payload struct {
		Detail string `json:"detail"`
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(&payload); err == nil {
		apiErr.Detail = payload.Detail
	}
	return apiErr
}
