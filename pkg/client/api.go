package client

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

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/wekeepgrowing/semo-workspace/pkg/errors"
)

const defaultTimeout = 10 * time.Second

// APIClient implements Backend against the workspace REST API.
type APIClient struct {
	client  *http.Client
	baseURL string
	token   string
	logger  *zap.Logger
}

// APIOption configures an APIClient.
type APIOption func(*APIClient)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) APIOption {
	return func(a *APIClient) { a.client = c }
}

// WithToken sets the bearer token sent on every request.
func WithToken(token string) APIOption {
	return func(a *APIClient) { a.token = token }
}

// WithAPILogger sets the logger used for request tracing.
func WithAPILogger(logger *zap.Logger) APIOption {
	return func(a *APIClient) { a.logger = logger }
}

// NewAPIClient creates a client for the API rooted at baseURL, e.g. "http://localhost:8080/api/v1".
func NewAPIClient(baseURL string, opts ...APIOption) *APIClient {
	a := &APIClient{
		client:  &http.Client{Timeout: defaultTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type workspaceRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type inviteRequest struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ListWorkspaces returns the workspaces the caller is a member of.
func (a *APIClient) ListWorkspaces(ctx context.Context) ([]Workspace, error) {
	var out []Workspace
	if err := a.do(ctx, http.MethodGet, "/workspaces", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Workspace{}
	}
	return out, nil
}

func (a *APIClient) CreateWorkspace(ctx context.Context, name string, description *string) (*Workspace, error) {
	var out Workspace
	if err := a.do(ctx, http.MethodPost, "/workspaces", workspaceRequest{Name: name, Description: description}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *APIClient) UpdateWorkspace(ctx context.Context, id, name string, description *string) (*Workspace, error) {
	var out Workspace
	if err := a.do(ctx, http.MethodPut, "/workspaces/"+url.PathEscape(id), workspaceRequest{Name: name, Description: description}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *APIClient) DeleteWorkspace(ctx context.Context, id string) error {
	return a.do(ctx, http.MethodDelete, "/workspaces/"+url.PathEscape(id), nil, nil)
}

func (a *APIClient) ListWorkspaceUsers(ctx context.Context, workspaceID string) ([]WorkspaceUser, error) {
	var out []WorkspaceUser
	if err := a.do(ctx, http.MethodGet, "/workspaces/"+url.PathEscape(workspaceID)+"/users", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []WorkspaceUser{}
	}
	return out, nil
}

// InviteUser adds the user registered under email to the workspace with the given role.
func (a *APIClient) InviteUser(ctx context.Context, workspaceID, email, role string) (*WorkspaceUser, error) {
	var out WorkspaceUser
	path := "/workspaces/" + url.PathEscape(workspaceID) + "/invitations"
	if err := a.do(ctx, http.MethodPost, path, inviteRequest{Email: email, Role: role}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *APIClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewAppError(apperrors.ErrInvalidArgument, "failed to encode request", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrInternal, "failed to create request", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	start := time.Now()
	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Warn("workspace API request failed",
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		if ctx.Err() != nil {
			return apperrors.NewAppError(apperrors.ErrTimeout, "request cancelled", err)
		}
		return apperrors.NewAppError(apperrors.ErrUnavailable, "workspace API unreachable", err)
	}
	defer resp.Body.Close()

	a.logger.Debug("workspace API request completed",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody errorResponse
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		_ = json.Unmarshal(raw, &errBody)
		return apperrors.FromHTTPStatus(resp.StatusCode, errBody.Code, errBody.Error)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewAppError(apperrors.ErrInternal, fmt.Sprintf("failed to decode %s %s response", method, path), err)
	}
	return nil
}
