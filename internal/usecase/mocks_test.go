package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/wekeepgrowing/semo-workspace/internal/domain/entity"
	"github.com/wekeepgrowing/semo-workspace/internal/domain/repository"
)

// MockWorkspaceRepository is a mock implementation of WorkspaceRepository
type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) FindByID(ctx context.Context, id string) (*entity.Workspace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.Workspace, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) CreateWithOwner(ctx context.Context, workspace *entity.Workspace, owner *entity.WorkspaceUser) error {
	return m.Called(ctx, workspace, owner).Error(0)
}

func (m *MockWorkspaceRepository) Update(ctx context.Context, workspace *entity.Workspace) error {
	return m.Called(ctx, workspace).Error(0)
}

func (m *MockWorkspaceRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockWorkspaceUserRepository is a mock implementation of WorkspaceUserRepository
type MockWorkspaceUserRepository struct {
	mock.Mock
}

func (m *MockWorkspaceUserRepository) Find(ctx context.Context, workspaceID, userID string) (*entity.WorkspaceUser, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.WorkspaceUser), args.Error(1)
}

func (m *MockWorkspaceUserRepository) FindByWorkspaceID(ctx context.Context, workspaceID string) ([]*entity.WorkspaceUser, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.WorkspaceUser), args.Error(1)
}

func (m *MockWorkspaceUserRepository) Create(ctx context.Context, member *entity.WorkspaceUser) error {
	return m.Called(ctx, member).Error(0)
}

func (m *MockWorkspaceUserRepository) UpdateRole(ctx context.Context, workspaceID, userID string, role entity.Role) error {
	return m.Called(ctx, workspaceID, userID, role).Error(0)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

var errCacheMiss = errors.New("cache miss")

// memoryCache 테스트용 인메모리 캐시
type memoryCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string]string{}}
}

func (c *memoryCache) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memoryCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", errCacheMiss
	}
	return v, nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	return c.DeleteMulti(ctx, []string{key})
}

func (c *memoryCache) DeleteMulti(ctx context.Context, keys []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memoryCache) IsNotFound(err error) bool {
	return errors.Is(err, errCacheMiss)
}

func (c *memoryCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

type recordingEvents struct {
	events []*entity.WorkspaceEvent
}

func (r *recordingEvents) Publish(ctx context.Context, event *entity.WorkspaceEvent) error {
	r.events = append(r.events, event)
	return nil
}

type sentMail struct {
	to, subject, body string
}

type recordingMail struct {
	sent []sentMail
	err  error
}

func (r *recordingMail) SendMail(ctx context.Context, to, subject, body string) error {
	r.sent = append(r.sent, sentMail{to, subject, body})
	return r.err
}

type recordingRelationships struct {
	touched []string
	deleted []string
}

func (r *recordingRelationships) TouchMember(ctx context.Context, workspaceID, userID string, role entity.Role) error {
	r.touched = append(r.touched, workspaceID+"#"+role.String()+"@"+userID)
	return nil
}

func (r *recordingRelationships) DeleteWorkspace(ctx context.Context, workspaceID string) error {
	r.deleted = append(r.deleted, workspaceID)
	return nil
}

type stubTemplates struct{}

func (stubTemplates) InvitationSubject(workspaceName string) string {
	return "invite:" + workspaceName
}

func (stubTemplates) GenerateInvitationEmailHTML(inviteeName, inviterName, workspaceName, workspaceID, role string) string {
	return inviteeName + "|" + inviterName + "|" + workspaceName + "|" + workspaceID + "|" + role
}

type testDeps struct {
	workspaces    *MockWorkspaceRepository
	members       *MockWorkspaceUserRepository
	users         *MockUserRepository
	cache         *memoryCache
	events        *recordingEvents
	mail          *recordingMail
	relationships *recordingRelationships
}

func newTestDeps() *testDeps {
	return &testDeps{
		workspaces:    new(MockWorkspaceRepository),
		members:       new(MockWorkspaceUserRepository),
		users:         new(MockUserRepository),
		cache:         newMemoryCache(),
		events:        &recordingEvents{},
		mail:          &recordingMail{},
		relationships: &recordingRelationships{},
	}
}

func (d *testDeps) repositories() *repository.Repositories {
	return &repository.Repositories{
		Workspace:     d.workspaces,
		WorkspaceUser: d.members,
		User:          d.users,
		Cache:         d.cache,
		Events:        d.events,
		Mail:          d.mail,
		Relationship:  d.relationships,
	}
}

var fixedNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func member(workspaceID, userID string, role entity.Role) *entity.WorkspaceUser {
	return &entity.WorkspaceUser{WorkspaceID: workspaceID, UserID: userID, Role: role, CreatedAt: fixedNow}
}
