package client

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/wekeepgrowing/semo-workspace/pkg/errors"
)

// MockBackend is a mock implementation of Backend
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) ListWorkspaces(ctx context.Context) ([]Workspace, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Workspace), args.Error(1)
}

func (m *MockBackend) CreateWorkspace(ctx context.Context, name string, description *string) (*Workspace, error) {
	args := m.Called(ctx, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Workspace), args.Error(1)
}

func (m *MockBackend) UpdateWorkspace(ctx context.Context, id, name string, description *string) (*Workspace, error) {
	args := m.Called(ctx, id, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Workspace), args.Error(1)
}

func (m *MockBackend) DeleteWorkspace(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBackend) ListWorkspaceUsers(ctx context.Context, workspaceID string) ([]WorkspaceUser, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]WorkspaceUser), args.Error(1)
}

func (m *MockBackend) InviteUser(ctx context.Context, workspaceID, email, role string) (*WorkspaceUser, error) {
	args := m.Called(ctx, workspaceID, email, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*WorkspaceUser), args.Error(1)
}

var (
	createdA = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	createdB = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
)

func sampleWorkspaces() []Workspace {
	return []Workspace{
		{ID: "Wteamaaaaaaa", Name: "Team A", Description: StringPtr("desc"), CreatedAt: createdA},
		{ID: "Wteambbbbbbb", Name: "Team B", CreatedAt: createdB},
	}
}

// loadedContext returns a context whose workspaces were fetched from sampleWorkspaces.
func loadedContext(t *testing.T) (*WorkspaceContext, *MockBackend) {
	t.Helper()
	backend := new(MockBackend)
	backend.On("ListWorkspaces", mock.Anything).Return(sampleWorkspaces(), nil).Once()

	wc := NewWorkspaceContext(backend)
	wc.FetchWorkspaces(context.Background())
	require.Len(t, wc.Workspaces(), 2)
	return wc, backend
}

func TestNewWorkspaceContext_Empty(t *testing.T) {
	wc := NewWorkspaceContext(new(MockBackend))

	s := wc.Snapshot()
	assert.Empty(t, s.Workspaces)
	assert.Nil(t, s.CurrentWorkspace)
	assert.False(t, s.IsLoading)
	assert.Empty(t, s.WorkspaceUsers)
	assert.NoError(t, wc.LastError())
}

func TestFetchWorkspaces_LoadingFlag(t *testing.T) {
	tests := []struct {
		name string
		list []Workspace
		err  error
	}{
		{name: "success", list: sampleWorkspaces()},
		{name: "failure", err: apperrors.NewAppError(apperrors.ErrUnavailable, "down", nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := new(MockBackend)
			wc := NewWorkspaceContext(backend)

			var loadingDuringCall bool
			backend.On("ListWorkspaces", mock.Anything).
				Run(func(args mock.Arguments) { loadingDuringCall = wc.IsLoading() }).
				Return(tt.list, tt.err)

			wc.FetchWorkspaces(context.Background())

			assert.True(t, loadingDuringCall)
			assert.False(t, wc.IsLoading())
			backend.AssertExpectations(t)
		})
	}
}

func TestFetchWorkspaces_FailureKeepsWorkspaces(t *testing.T) {
	wc, backend := loadedContext(t)
	backend.On("ListWorkspaces", mock.Anything).Return(nil, apperrors.New("network down")).Once()

	wc.FetchWorkspaces(context.Background())

	assert.Equal(t, sampleWorkspaces(), wc.Workspaces())
	assert.Error(t, wc.LastError())
}

func TestFetchWorkspaces_ResyncsCurrentWorkspace(t *testing.T) {
	wc, backend := loadedContext(t)
	list := wc.Workspaces()
	wc.SetCurrentWorkspace(&list[0])

	renamed := sampleWorkspaces()
	renamed[0].Name = "Team A renamed"
	backend.On("ListWorkspaces", mock.Anything).Return(renamed, nil).Once()
	wc.FetchWorkspaces(context.Background())

	require.NotNil(t, wc.CurrentWorkspace())
	assert.Equal(t, "Team A renamed", wc.CurrentWorkspace().Name)

	backend.On("ListWorkspaces", mock.Anything).Return(renamed[1:], nil).Once()
	wc.FetchWorkspaces(context.Background())

	assert.Nil(t, wc.CurrentWorkspace())
}

func TestFetchWorkspaces_LastStartedWins(t *testing.T) {
	backend := new(MockBackend)
	wc := NewWorkspaceContext(backend)

	release := make(chan struct{})
	started := make(chan struct{})
	stale := []Workspace{{ID: "Wstaleaaaaaa", Name: "stale", CreatedAt: createdA}}

	backend.On("ListWorkspaces", mock.Anything).
		Run(func(args mock.Arguments) {
			close(started)
			<-release
		}).
		Return(stale, nil).Once()
	backend.On("ListWorkspaces", mock.Anything).Return(sampleWorkspaces(), nil).Once()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		wc.FetchWorkspaces(context.Background())
	}()

	<-started
	wc.FetchWorkspaces(context.Background())
	assert.True(t, wc.IsLoading(), "first fetch still in flight")

	close(release)
	wg.Wait()

	assert.False(t, wc.IsLoading())
	assert.Equal(t, sampleWorkspaces(), wc.Workspaces())
}

func TestFetchWorkspaces_BackendPanicResetsLoading(t *testing.T) {
	backend := new(MockBackend)
	wc := NewWorkspaceContext(backend)
	backend.On("ListWorkspaces", mock.Anything).
		Run(func(args mock.Arguments) { panic("backend exploded") }).
		Return(nil, nil)

	assert.Panics(t, func() { wc.FetchWorkspaces(context.Background()) })
	assert.False(t, wc.IsLoading())
}

func TestFetchWorkspaces_MutationSupersedesInFlightFetch(t *testing.T) {
	renamed := &Workspace{ID: "Wteamaaaaaaa", Name: "Renamed", CreatedAt: createdA}
	created := &Workspace{ID: "Wnewnewnewnw", Name: "Team C", CreatedAt: createdB}

	tests := []struct {
		name   string
		setup  func(backend *MockBackend)
		mutate func(wc *WorkspaceContext) bool
		want   []Workspace
	}{
		{
			name: "create",
			setup: func(backend *MockBackend) {
				backend.On("CreateWorkspace", mock.Anything, "Team C", (*string)(nil)).Return(created, nil).Once()
			},
			mutate: func(wc *WorkspaceContext) bool {
				return wc.CreateWorkspace(context.Background(), "Team C", nil) != nil
			},
			want: append(sampleWorkspaces(), *created),
		},
		{
			name: "update",
			setup: func(backend *MockBackend) {
				backend.On("UpdateWorkspace", mock.Anything, "Wteamaaaaaaa", "Renamed", (*string)(nil)).Return(renamed, nil).Once()
			},
			mutate: func(wc *WorkspaceContext) bool {
				return wc.UpdateWorkspace(context.Background(), "Wteamaaaaaaa", "Renamed", nil)
			},
			want: []Workspace{*renamed, sampleWorkspaces()[1]},
		},
		{
			name: "delete",
			setup: func(backend *MockBackend) {
				backend.On("DeleteWorkspace", mock.Anything, "Wteamaaaaaaa").Return(nil).Once()
			},
			mutate: func(wc *WorkspaceContext) bool {
				return wc.DeleteWorkspace(context.Background(), "Wteamaaaaaaa")
			},
			want: []Workspace{sampleWorkspaces()[1]},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wc, backend := loadedContext(t)

			release := make(chan struct{})
			started := make(chan struct{})
			backend.On("ListWorkspaces", mock.Anything).
				Run(func(args mock.Arguments) {
					close(started)
					<-release
				}).
				Return(sampleWorkspaces(), nil).Once()
			tt.setup(backend)

			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				wc.FetchWorkspaces(context.Background())
			}()

			<-started
			require.True(t, tt.mutate(wc))

			close(release)
			wg.Wait()

			assert.False(t, wc.IsLoading())
			assert.Equal(t, tt.want, wc.Workspaces())
			backend.AssertExpectations(t)
		})
	}
}

func TestFetchWorkspaceUsers_LastStartedWins(t *testing.T) {
	wc, backend := loadedContext(t)
	usersA := []WorkspaceUser{{WorkspaceID: "Wteamaaaaaaa", UserID: "u1", Role: "owner", CreatedAt: createdA}}
	usersB := []WorkspaceUser{{WorkspaceID: "Wteambbbbbbb", UserID: "u2", Role: "owner", CreatedAt: createdB}}

	release := make(chan struct{})
	started := make(chan struct{})
	backend.On("ListWorkspaceUsers", mock.Anything, "Wteamaaaaaaa").
		Run(func(args mock.Arguments) {
			close(started)
			<-release
		}).
		Return(usersA, nil).Once()
	backend.On("ListWorkspaceUsers", mock.Anything, "Wteambbbbbbb").Return(usersB, nil).Once()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		wc.FetchWorkspaceUsers(context.Background(), "Wteamaaaaaaa")
	}()

	<-started
	wc.FetchWorkspaceUsers(context.Background(), "Wteambbbbbbb")

	close(release)
	wg.Wait()

	assert.Equal(t, usersB, wc.WorkspaceUsers())
	assert.Equal(t, "Wteambbbbbbb", wc.Snapshot().UsersWorkspaceID)
	backend.AssertExpectations(t)
}

func TestSetCurrentWorkspace(t *testing.T) {
	wc, backend := loadedContext(t)
	list := wc.Workspaces()

	wc.SetCurrentWorkspace(&list[1])
	require.NotNil(t, wc.CurrentWorkspace())
	assert.Equal(t, "Wteambbbbbbb", wc.CurrentWorkspace().ID)

	wc.SetCurrentWorkspace(&Workspace{ID: "Wunknownxxxx"})
	assert.Equal(t, "Wteambbbbbbb", wc.CurrentWorkspace().ID)

	wc.SetCurrentWorkspace(nil)
	assert.Nil(t, wc.CurrentWorkspace())

	// only the initial fetch reached the backend
	backend.AssertNumberOfCalls(t, "ListWorkspaces", 1)
	backend.AssertExpectations(t)
}

func TestCreateWorkspace(t *testing.T) {
	t.Run("success appends", func(t *testing.T) {
		wc, backend := loadedContext(t)
		created := &Workspace{ID: "Wnewnewnewnw", Name: "Team C", Description: StringPtr("desc"), CreatedAt: time.Now().UTC()}
		backend.On("CreateWorkspace", mock.Anything, "Team C", StringPtr("desc")).Return(created, nil).Once()

		ws := wc.CreateWorkspace(context.Background(), "Team C", StringPtr("desc"))

		require.NotNil(t, ws)
		assert.Equal(t, "Team C", ws.Name)
		require.NotNil(t, ws.Description)
		assert.Equal(t, "desc", *ws.Description)
		assert.NotEmpty(t, ws.ID)
		assert.False(t, ws.CreatedAt.IsZero())

		list := wc.Workspaces()
		require.Len(t, list, 3)
		assert.Equal(t, *created, list[2])
	})

	t.Run("nil description stays absent", func(t *testing.T) {
		wc, backend := loadedContext(t)
		created := &Workspace{ID: "Wnodescnodes", Name: "Team D", CreatedAt: time.Now().UTC()}
		backend.On("CreateWorkspace", mock.Anything, "Team D", (*string)(nil)).Return(created, nil).Once()

		ws := wc.CreateWorkspace(context.Background(), "Team D", nil)

		require.NotNil(t, ws)
		assert.Nil(t, ws.Description)
	})

	t.Run("failure returns nil and keeps workspaces", func(t *testing.T) {
		wc, backend := loadedContext(t)
		backend.On("CreateWorkspace", mock.Anything, "", (*string)(nil)).
			Return(nil, apperrors.NewAppError(apperrors.ErrInvalidArgument, "name is required", nil)).Once()

		ws := wc.CreateWorkspace(context.Background(), "", nil)

		assert.Nil(t, ws)
		assert.Equal(t, sampleWorkspaces(), wc.Workspaces())
		assert.True(t, apperrors.IsCode(wc.LastError(), apperrors.ErrInvalidArgument))
	})

	t.Run("empty response records an error", func(t *testing.T) {
		wc, backend := loadedContext(t)
		backend.On("CreateWorkspace", mock.Anything, "Team E", (*string)(nil)).Return(nil, nil).Once()

		ws := wc.CreateWorkspace(context.Background(), "Team E", nil)

		assert.Nil(t, ws)
		assert.Equal(t, sampleWorkspaces(), wc.Workspaces())
		require.Error(t, wc.LastError())
		assert.True(t, apperrors.IsCode(wc.LastError(), apperrors.ErrInternal))
	})
}

func TestUpdateWorkspace(t *testing.T) {
	t.Run("success updates list and current", func(t *testing.T) {
		wc, backend := loadedContext(t)
		list := wc.Workspaces()
		wc.SetCurrentWorkspace(&list[0])

		backend.On("UpdateWorkspace", mock.Anything, "Wteamaaaaaaa", "Team A2", (*string)(nil)).
			Return(&Workspace{ID: "Wteamaaaaaaa", Name: "Team A2", CreatedAt: createdA}, nil).Once()

		ok := wc.UpdateWorkspace(context.Background(), "Wteamaaaaaaa", "Team A2", nil)

		require.True(t, ok)
		got := wc.Workspaces()[0]
		assert.Equal(t, "Team A2", got.Name)
		assert.Nil(t, got.Description)
		assert.Equal(t, createdA, got.CreatedAt)

		current := wc.CurrentWorkspace()
		require.NotNil(t, current)
		assert.Equal(t, "Team A2", current.Name)
	})

	t.Run("unknown id returns false without backend call", func(t *testing.T) {
		wc, backend := loadedContext(t)

		ok := wc.UpdateWorkspace(context.Background(), "Wmissingxxxx", "x", nil)

		assert.False(t, ok)
		assert.Equal(t, sampleWorkspaces(), wc.Workspaces())
		backend.AssertNotCalled(t, "UpdateWorkspace", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("backend failure leaves state", func(t *testing.T) {
		wc, backend := loadedContext(t)
		backend.On("UpdateWorkspace", mock.Anything, "Wteamaaaaaaa", "x", (*string)(nil)).
			Return(nil, apperrors.NewAppError(apperrors.ErrUnauthorized, "forbidden", nil)).Once()

		ok := wc.UpdateWorkspace(context.Background(), "Wteamaaaaaaa", "x", nil)

		assert.False(t, ok)
		assert.Equal(t, sampleWorkspaces(), wc.Workspaces())
	})
}

func TestDeleteWorkspace(t *testing.T) {
	t.Run("success removes entry and clears selection", func(t *testing.T) {
		wc, backend := loadedContext(t)
		list := wc.Workspaces()
		wc.SetCurrentWorkspace(&list[0])

		backend.On("ListWorkspaceUsers", mock.Anything, "Wteamaaaaaaa").
			Return([]WorkspaceUser{{WorkspaceID: "Wteamaaaaaaa", UserID: "u1", Role: "owner", CreatedAt: createdA}}, nil).Once()
		wc.FetchWorkspaceUsers(context.Background(), "Wteamaaaaaaa")
		require.Len(t, wc.WorkspaceUsers(), 1)

		backend.On("DeleteWorkspace", mock.Anything, "Wteamaaaaaaa").Return(nil).Once()
		ok := wc.DeleteWorkspace(context.Background(), "Wteamaaaaaaa")

		require.True(t, ok)
		remaining := wc.Workspaces()
		require.Len(t, remaining, 1)
		assert.Equal(t, "Wteambbbbbbb", remaining[0].ID)
		assert.Nil(t, wc.CurrentWorkspace())
		assert.Empty(t, wc.WorkspaceUsers())
	})

	t.Run("deleting another workspace keeps selection", func(t *testing.T) {
		wc, backend := loadedContext(t)
		list := wc.Workspaces()
		wc.SetCurrentWorkspace(&list[0])

		backend.On("DeleteWorkspace", mock.Anything, "Wteambbbbbbb").Return(nil).Once()

		require.True(t, wc.DeleteWorkspace(context.Background(), "Wteambbbbbbb"))
		require.NotNil(t, wc.CurrentWorkspace())
		assert.Equal(t, "Wteamaaaaaaa", wc.CurrentWorkspace().ID)
	})

	t.Run("failure returns false", func(t *testing.T) {
		wc, backend := loadedContext(t)
		backend.On("DeleteWorkspace", mock.Anything, "Wteamaaaaaaa").
			Return(apperrors.NewAppError(apperrors.ErrUnauthorized, "owner only", nil)).Once()

		assert.False(t, wc.DeleteWorkspace(context.Background(), "Wteamaaaaaaa"))
		assert.Len(t, wc.Workspaces(), 2)
	})
}

func TestFetchWorkspaceUsers_ReplacesPreviousWorkspace(t *testing.T) {
	wc, backend := loadedContext(t)
	usersA := []WorkspaceUser{{WorkspaceID: "Wteamaaaaaaa", UserID: "u1", Role: "owner", CreatedAt: createdA}}
	usersB := []WorkspaceUser{
		{WorkspaceID: "Wteambbbbbbb", UserID: "u2", Role: "owner", CreatedAt: createdB},
		{WorkspaceID: "Wteambbbbbbb", UserID: "u3", Role: "member", CreatedAt: createdB},
	}
	backend.On("ListWorkspaceUsers", mock.Anything, "Wteamaaaaaaa").Return(usersA, nil).Once()
	backend.On("ListWorkspaceUsers", mock.Anything, "Wteambbbbbbb").Return(usersB, nil).Once()
	backend.On("ListWorkspaceUsers", mock.Anything, "Wteamaaaaaaa").Return(nil, apperrors.New("boom")).Once()

	wc.FetchWorkspaceUsers(context.Background(), "Wteamaaaaaaa")
	assert.Equal(t, usersA, wc.WorkspaceUsers())

	wc.FetchWorkspaceUsers(context.Background(), "Wteambbbbbbb")
	assert.Equal(t, usersB, wc.WorkspaceUsers())

	wc.FetchWorkspaceUsers(context.Background(), "Wteamaaaaaaa")
	assert.Equal(t, usersB, wc.WorkspaceUsers())
	assert.Equal(t, "Wteambbbbbbb", wc.Snapshot().UsersWorkspaceID)
}

func TestInviteUserToWorkspace(t *testing.T) {
	t.Run("success refetches loaded members", func(t *testing.T) {
		wc, backend := loadedContext(t)
		before := []WorkspaceUser{{WorkspaceID: "Wteamaaaaaaa", UserID: "u1", Role: "owner", CreatedAt: createdA}}
		invited := WorkspaceUser{WorkspaceID: "Wteamaaaaaaa", UserID: "u9", Role: "member", CreatedAt: time.Now().UTC()}

		backend.On("ListWorkspaceUsers", mock.Anything, "Wteamaaaaaaa").Return(before, nil).Once()
		wc.FetchWorkspaceUsers(context.Background(), "Wteamaaaaaaa")

		backend.On("InviteUser", mock.Anything, "Wteamaaaaaaa", "new@example.com", "member").Return(&invited, nil).Once()
		backend.On("ListWorkspaceUsers", mock.Anything, "Wteamaaaaaaa").Return(append(before, invited), nil).Once()

		ok := wc.InviteUserToWorkspace(context.Background(), "Wteamaaaaaaa", "new@example.com", "member")

		require.True(t, ok)
		assert.Len(t, wc.WorkspaceUsers(), 2)
		backend.AssertExpectations(t)
	})

	t.Run("success into other workspace does not refetch", func(t *testing.T) {
		wc, backend := loadedContext(t)
		backend.On("InviteUser", mock.Anything, "Wteambbbbbbb", "new@example.com", "admin").
			Return(&WorkspaceUser{WorkspaceID: "Wteambbbbbbb", UserID: "u9", Role: "admin"}, nil).Once()

		require.True(t, wc.InviteUserToWorkspace(context.Background(), "Wteambbbbbbb", "new@example.com", "admin"))
		backend.AssertNotCalled(t, "ListWorkspaceUsers", mock.Anything, mock.Anything)
	})

	t.Run("failure returns false", func(t *testing.T) {
		wc, backend := loadedContext(t)
		backend.On("InviteUser", mock.Anything, "Wteamaaaaaaa", "ghost@example.com", "member").
			Return(nil, apperrors.NewAppError(apperrors.ErrNotFound, "user not found", nil)).Once()

		assert.False(t, wc.InviteUserToWorkspace(context.Background(), "Wteamaaaaaaa", "ghost@example.com", "member"))
		assert.True(t, apperrors.IsCode(wc.LastError(), apperrors.ErrNotFound))
	})
}

func TestOnChange_ReceivesSnapshots(t *testing.T) {
	backend := new(MockBackend)
	backend.On("ListWorkspaces", mock.Anything).Return(sampleWorkspaces(), nil).Once()

	var states []State
	wc := NewWorkspaceContext(backend, WithOnChange(func(s State) { states = append(states, s) }))
	wc.FetchWorkspaces(context.Background())

	require.Len(t, states, 2)
	assert.True(t, states[0].IsLoading)
	assert.False(t, states[1].IsLoading)
	assert.Len(t, states[1].Workspaces, 2)
}

func TestReaders_ReturnCopies(t *testing.T) {
	wc, _ := loadedContext(t)

	list := wc.Workspaces()
	list[0].Name = "mutated"
	*list[0].Description = "mutated"

	fresh := wc.Workspaces()
	assert.Equal(t, "Team A", fresh[0].Name)
	assert.Equal(t, "desc", *fresh[0].Description)
}
