// Package client is the Go consumer of the task manager API. It mirrors the
// data layer of the web UI: an authenticated HTTP client decoding the
// uniform response envelope into a tagged result, an explicit session value,
// and a pure task-list state that is only ever mutated after the server has
// confirmed an operation.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/devarsh/task-manager-api/internal/dto"
)

// ErrDeletionCancelled signals that the user declined the delete
// confirmation. It is a no-op outcome, not a failure; callers must not
// surface it as an error to the user.
var ErrDeletionCancelled = errors.New("deletion cancelled")

// ErrNotAuthenticated is returned when a protected call is made without a
// session.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrorKind classifies an API failure.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindAuth         ErrorKind = "auth"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindUnexpected   ErrorKind = "unexpected"
	KindConnectivity ErrorKind = "connectivity"
)

// APIError is the Err arm of a request result: a kind plus the
// human-readable messages the server attached. A response is either data or
// an APIError, never both.
type APIError struct {
	Kind     ErrorKind
	Messages []string
}

func (e *APIError) Error() string {
	if len(e.Messages) > 0 {
		return e.Messages[0]
	}
	return string(e.Kind)
}

// Session binds a bearer token to the user it authenticates. It is created
// at login, register, or verify, passed around explicitly, and destroyed at
// logout or expiry. There is no package-level session.
type Session struct {
	Token string
	User  dto.UserDTO
}

// Client talks to the API. The zero value is not usable; construct with New.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

// New creates a Client for the API rooted at baseURL (e.g.
// "http://localhost:5000/api").
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
	}
}

// Session returns the current session, or nil when logged out.
func (c *Client) Session() *Session {
	return c.session
}

// SetSession restores a previously persisted session (e.g. a token read back
// from the cookie store).
func (c *Client) SetSession(s *Session) {
	c.session = s
}

// ClearSession drops the held session. Called automatically whenever the
// server answers 401, matching the UI behavior of bouncing to login on any
// auth failure.
func (c *Client) ClearSession() {
	c.session = nil
}

// Register creates an account and opens a session for it.
func (c *Client) Register(name, email, password string) (*Session, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var payload dto.AuthPayload
	if err := c.do(http.MethodPost, "/auth/register", body, &payload); err != nil {
		return nil, err
	}

	c.session = &Session{Token: payload.Token, User: payload.User}
	return c.session, nil
}

// Login authenticates and opens a session.
func (c *Client) Login(email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	var payload dto.AuthPayload
	if err := c.do(http.MethodPost, "/auth/login", body, &payload); err != nil {
		return nil, err
	}

	c.session = &Session{Token: payload.Token, User: payload.User}
	return c.session, nil
}

// Verify validates the held token against the server and refreshes the
// session's user. An invalid or expired token clears the session.
func (c *Client) Verify() (*Session, error) {
	if c.session == nil {
		return nil, ErrNotAuthenticated
	}

	var payload dto.UserPayload
	if err := c.do(http.MethodGet, "/auth/verify", nil, &payload); err != nil {
		return nil, err
	}

	c.session.User = payload.User
	return c.session, nil
}

// Logout ends the session. The server call is best-effort: the local session
// is cleared even if the request fails, and the token stays valid server-side
// until its natural expiry.
func (c *Client) Logout() {
	if c.session != nil {
		_ = c.do(http.MethodPost, "/auth/logout", nil, nil)
	}
	c.session = nil
}

// ProfileUpdate holds optional profile changes; nil fields are left alone.
type ProfileUpdate struct {
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
}

// UpdateProfile applies profile changes and refreshes the session's user.
func (c *Client) UpdateProfile(update ProfileUpdate) (dto.UserDTO, error) {
	if c.session == nil {
		return dto.UserDTO{}, ErrNotAuthenticated
	}

	var payload dto.UserPayload
	if err := c.do(http.MethodPut, "/auth/profile", update, &payload); err != nil {
		return dto.UserDTO{}, err
	}

	c.session.User = payload.User
	return payload.User, nil
}

// RefreshUser re-reads the profile. Failures leave the session untouched;
// this is the one call whose errors the UI ignores.
func (c *Client) RefreshUser() {
	if c.session == nil {
		return
	}

	var payload dto.UserPayload
	if err := c.do(http.MethodGet, "/auth/profile", nil, &payload); err != nil {
		return
	}
	if c.session != nil {
		c.session.User = payload.User
	}
}

// TaskQuery holds the optional list filters.
type TaskQuery struct {
	Status    string
	Priority  string
	Search    string
	SortBy    string
	SortOrder string
}

// TaskInput is the create/replace payload.
type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority"`
	Status      string `json:"status,omitempty"`
}

// ListTasks fetches the caller's tasks.
func (c *Client) ListTasks(query TaskQuery) ([]dto.TaskDTO, error) {
	if c.session == nil {
		return nil, ErrNotAuthenticated
	}

	params := url.Values{}
	if query.Status != "" {
		params.Set("status", query.Status)
	}
	if query.Priority != "" {
		params.Set("priority", query.Priority)
	}
	if query.Search != "" {
		params.Set("search", query.Search)
	}
	if query.SortBy != "" {
		params.Set("sortBy", query.SortBy)
	}
	if query.SortOrder != "" {
		params.Set("sortOrder", query.SortOrder)
	}

	path := "/tasks"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var tasks []dto.TaskDTO
	if err := c.do(http.MethodGet, path, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task and returns the server's copy. Callers apply
// TaskAdded to their list state only after this returns successfully.
func (c *Client) CreateTask(input TaskInput) (dto.TaskDTO, error) {
	if c.session == nil {
		return dto.TaskDTO{}, ErrNotAuthenticated
	}

	var task dto.TaskDTO
	if err := c.do(http.MethodPost, "/tasks", input, &task); err != nil {
		return dto.TaskDTO{}, err
	}
	return task, nil
}

// UpdateTask replaces a task's fields and returns the server's copy.
func (c *Client) UpdateTask(taskID uint64, input TaskInput) (dto.TaskDTO, error) {
	if c.session == nil {
		return dto.TaskDTO{}, ErrNotAuthenticated
	}

	var task dto.TaskDTO
	if err := c.do(http.MethodPut, "/tasks/"+strconv.FormatUint(taskID, 10), input, &task); err != nil {
		return dto.TaskDTO{}, err
	}
	return task, nil
}

// DeleteTask asks confirm before issuing the server call. Declining returns
// ErrDeletionCancelled without touching the network, which callers must
// treat as a quiet no-op rather than a failure. A nil confirm means the
// caller already obtained confirmation (e.g. through its own dialog) and the
// delete proceeds immediately.
func (c *Client) DeleteTask(taskID uint64, confirm func() bool) error {
	if confirm != nil && !confirm() {
		return ErrDeletionCancelled
	}
	if c.session == nil {
		return ErrNotAuthenticated
	}

	return c.do(http.MethodDelete, "/tasks/"+strconv.FormatUint(taskID, 10), nil, nil)
}

// envelope mirrors the server's wire shape. Data is kept raw so each caller
// can decode into its own type.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
}

func (c *Client) do(method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &APIError{Kind: KindUnexpected, Messages: []string{err.Error()}}
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return &APIError{Kind: KindUnexpected, Messages: []string{err.Error()}}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.session != nil {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Kind: KindConnectivity, Messages: []string{"Please check your connection"}}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &APIError{Kind: KindUnexpected, Messages: []string{"Malformed server response"}}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.ClearSession()
	}

	if !env.Success {
		return &APIError{Kind: kindForStatus(resp.StatusCode), Messages: failureMessages(env)}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &APIError{Kind: KindUnexpected, Messages: []string{"Malformed server response"}}
		}
	}

	return nil
}

func kindForStatus(status int) ErrorKind {
	switch status {
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusUnauthorized:
		return KindAuth
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	default:
		return KindUnexpected
	}
}

func failureMessages(env envelope) []string {
	if len(env.Errors) > 0 {
		return env.Errors
	}
	if env.Message != "" {
		return []string{env.Message}
	}
	return []string{"Request failed"}
}
