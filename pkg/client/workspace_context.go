package client

import (
	"context"
	"sync"

	"go.uber.org/zap"

	apperrors "github.com/wekeepgrowing/semo-workspace/pkg/errors"
)

// errEmptyCreateResponse is recorded when the backend reports success without a workspace.
var errEmptyCreateResponse = apperrors.NewAppError(apperrors.ErrInternal, "empty create response", nil)

// State is a point-in-time copy of a WorkspaceContext.
type State struct {
	Workspaces       []Workspace
	CurrentWorkspace *Workspace
	IsLoading        bool
	WorkspaceUsers   []WorkspaceUser
	// UsersWorkspaceID is the workspace WorkspaceUsers belong to, empty when none were fetched.
	UsersWorkspaceID string
}

// Option configures a WorkspaceContext.
type Option func(*WorkspaceContext)

// WithOnChange registers a listener called with a fresh State after every state change.
// The listener runs on the goroutine that made the change, outside the context's lock.
func WithOnChange(fn func(State)) Option {
	return func(c *WorkspaceContext) { c.onChange = fn }
}

// WithLogger sets the logger used to record swallowed backend failures.
func WithLogger(logger *zap.Logger) Option {
	return func(c *WorkspaceContext) { c.logger = logger }
}

// WorkspaceContext holds one session's view of its workspaces and exposes the
// operations a UI may invoke on them. Backend failures never escape: fetches
// leave state unchanged, mutations report false or nil, and the failure is
// available from LastError.
//
// The current workspace is tracked by ID and always resolves to an element of
// Workspaces, so it cannot dangle after a delete or refresh.
//
// Overlapping fetches are last-started-wins. A mutation that completes while a
// fetch is in flight supersedes that fetch's result.
type WorkspaceContext struct {
	backend  Backend
	logger   *zap.Logger
	onChange func(State)

	mu               sync.Mutex
	workspaces       []Workspace
	currentID        string
	inFlight         int
	workspacesGen    uint64
	users            []WorkspaceUser
	usersWorkspaceID string
	usersGen         uint64
	lastErr          error
}

// NewWorkspaceContext creates an empty context backed by backend.
func NewWorkspaceContext(backend Backend, opts ...Option) *WorkspaceContext {
	c := &WorkspaceContext{
		backend:    backend,
		logger:     zap.NewNop(),
		workspaces: []Workspace{},
		users:      []WorkspaceUser{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Workspaces returns a copy of the workspaces visible to the session.
func (c *WorkspaceContext) Workspaces() []Workspace {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneWorkspaces(c.workspaces)
}

// CurrentWorkspace returns a copy of the selected workspace, or nil.
func (c *WorkspaceContext) CurrentWorkspace() *Workspace {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentLocked()
}

// IsLoading reports whether a FetchWorkspaces call is in flight.
func (c *WorkspaceContext) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight > 0
}

// WorkspaceUsers returns the members of the workspace last fetched with FetchWorkspaceUsers.
func (c *WorkspaceContext) WorkspaceUsers() []WorkspaceUser {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneUsers(c.users)
}

// LastError returns the error of the most recent backend call, nil if it succeeded.
func (c *WorkspaceContext) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Snapshot returns a copy of the whole state.
func (c *WorkspaceContext) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// FetchWorkspaces refreshes Workspaces from the backend. IsLoading is true for
// the duration of the call.
func (c *WorkspaceContext) FetchWorkspaces(ctx context.Context) {
	c.mu.Lock()
	c.inFlight++
	c.workspacesGen++
	gen := c.workspacesGen
	c.mu.Unlock()
	c.notify()

	defer func() {
		c.mu.Lock()
		c.inFlight--
		c.mu.Unlock()
		c.notify()
	}()

	list, err := c.backend.ListWorkspaces(ctx)

	c.mu.Lock()
	c.lastErr = err
	switch {
	case err != nil:
		c.logger.Warn("failed to fetch workspaces", zap.Error(err))
	case gen != c.workspacesGen:
		c.logger.Debug("discarding superseded workspace fetch", zap.Uint64("generation", gen))
	default:
		c.workspaces = cloneWorkspaces(list)
		if c.workspaces == nil {
			c.workspaces = []Workspace{}
		}
		if c.currentID != "" && c.indexLocked(c.currentID) < 0 {
			c.currentID = ""
		}
	}
	c.mu.Unlock()
}

// SetCurrentWorkspace selects ws, or clears the selection when ws is nil.
// A workspace that is not in Workspaces is ignored.
func (c *WorkspaceContext) SetCurrentWorkspace(ws *Workspace) {
	c.mu.Lock()
	switch {
	case ws == nil:
		c.currentID = ""
	case c.indexLocked(ws.ID) >= 0:
		c.currentID = ws.ID
	default:
		c.mu.Unlock()
		c.logger.Debug("ignoring selection of unknown workspace", zap.String("workspace_id", ws.ID))
		return
	}
	c.mu.Unlock()
	c.notify()
}

// CreateWorkspace creates a workspace and appends it to Workspaces.
// It returns nil if the backend rejects the request.
func (c *WorkspaceContext) CreateWorkspace(ctx context.Context, name string, description *string) *Workspace {
	created, err := c.backend.CreateWorkspace(ctx, name, description)

	if err == nil && created == nil {
		err = errEmptyCreateResponse
	}

	c.mu.Lock()
	c.lastErr = err
	if err != nil {
		c.mu.Unlock()
		c.logger.Warn("failed to create workspace", zap.String("name", name), zap.Error(err))
		return nil
	}

	ws := created.clone()
	if i := c.indexLocked(ws.ID); i >= 0 {
		c.workspaces[i] = ws
	} else {
		c.workspaces = append(c.workspaces, ws)
	}
	c.workspacesGen++
	c.mu.Unlock()
	c.notify()

	result := ws.clone()
	return &result
}

// UpdateWorkspace replaces the name and description of a known workspace.
// An id that is not in Workspaces returns false without calling the backend.
func (c *WorkspaceContext) UpdateWorkspace(ctx context.Context, id, name string, description *string) bool {
	c.mu.Lock()
	known := c.indexLocked(id) >= 0
	c.mu.Unlock()
	if !known {
		c.logger.Debug("ignoring update of unknown workspace", zap.String("workspace_id", id))
		return false
	}

	updated, err := c.backend.UpdateWorkspace(ctx, id, name, description)

	c.mu.Lock()
	c.lastErr = err
	if err != nil {
		c.mu.Unlock()
		c.logger.Warn("failed to update workspace", zap.String("workspace_id", id), zap.Error(err))
		return false
	}

	newName, newDescription := name, description
	if updated != nil {
		newName, newDescription = updated.Name, updated.Description
	}
	if i := c.indexLocked(id); i >= 0 {
		ws := c.workspaces[i]
		ws.Name = newName
		ws.Description = nil
		if newDescription != nil {
			d := *newDescription
			ws.Description = &d
		}
		c.workspaces[i] = ws
	}
	c.workspacesGen++
	c.mu.Unlock()
	c.notify()
	return true
}

// DeleteWorkspace deletes a workspace and removes it from Workspaces. If it was
// the current workspace the selection is cleared. If its members were loaded
// they are cleared too.
func (c *WorkspaceContext) DeleteWorkspace(ctx context.Context, id string) bool {
	err := c.backend.DeleteWorkspace(ctx, id)

	c.mu.Lock()
	c.lastErr = err
	if err != nil {
		c.mu.Unlock()
		c.logger.Warn("failed to delete workspace", zap.String("workspace_id", id), zap.Error(err))
		return false
	}

	if i := c.indexLocked(id); i >= 0 {
		c.workspaces = append(c.workspaces[:i:i], c.workspaces[i+1:]...)
	}
	if c.currentID == id {
		c.currentID = ""
	}
	if c.usersWorkspaceID == id {
		c.users = []WorkspaceUser{}
		c.usersWorkspaceID = ""
		c.usersGen++
	}
	c.workspacesGen++
	c.mu.Unlock()
	c.notify()
	return true
}

// FetchWorkspaceUsers replaces WorkspaceUsers with the members of workspaceID.
func (c *WorkspaceContext) FetchWorkspaceUsers(ctx context.Context, workspaceID string) {
	c.mu.Lock()
	c.usersGen++
	gen := c.usersGen
	c.mu.Unlock()

	users, err := c.backend.ListWorkspaceUsers(ctx, workspaceID)

	c.mu.Lock()
	c.lastErr = err
	switch {
	case err != nil:
		c.mu.Unlock()
		c.logger.Warn("failed to fetch workspace users", zap.String("workspace_id", workspaceID), zap.Error(err))
		return
	case gen != c.usersGen:
		c.mu.Unlock()
		return
	}
	c.users = cloneUsers(users)
	if c.users == nil {
		c.users = []WorkspaceUser{}
	}
	c.usersWorkspaceID = workspaceID
	c.mu.Unlock()
	c.notify()
}

// InviteUserToWorkspace invites the user registered under email. When the
// members of workspaceID are loaded they are fetched again.
func (c *WorkspaceContext) InviteUserToWorkspace(ctx context.Context, workspaceID, email, role string) bool {
	_, err := c.backend.InviteUser(ctx, workspaceID, email, role)

	c.mu.Lock()
	c.lastErr = err
	loaded := c.usersWorkspaceID == workspaceID
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("failed to invite user to workspace",
			zap.String("workspace_id", workspaceID),
			zap.String("role", role),
			zap.Error(err))
		return false
	}

	// a failed refetch is reported through LastError only
	if loaded {
		c.FetchWorkspaceUsers(ctx, workspaceID)
	}
	return true
}

func (c *WorkspaceContext) indexLocked(id string) int {
	for i := range c.workspaces {
		if c.workspaces[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *WorkspaceContext) currentLocked() *Workspace {
	if c.currentID == "" {
		return nil
	}
	i := c.indexLocked(c.currentID)
	if i < 0 {
		return nil
	}
	ws := c.workspaces[i].clone()
	return &ws
}

func (c *WorkspaceContext) snapshotLocked() State {
	return State{
		Workspaces:       cloneWorkspaces(c.workspaces),
		CurrentWorkspace: c.currentLocked(),
		IsLoading:        c.inFlight > 0,
		WorkspaceUsers:   cloneUsers(c.users),
		UsersWorkspaceID: c.usersWorkspaceID,
	}
}

func (c *WorkspaceContext) notify() {
	if c.onChange == nil {
		return
	}
	c.mu.Lock()
	s := c.snapshotLocked()
	c.mu.Unlock()
	c.onChange(s)
}
