package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/wekeepgrowing/semo-workspace/pkg/errors"
)

func newTestAPI(t *testing.T, handler http.HandlerFunc) *APIClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewAPIClient(server.URL+"/api/v1", WithToken("test-token"))
}

func TestAPIClient_ListWorkspaces(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/workspaces", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"Wteamaaaaaaa","name":"Team A","description":"desc","created_at":"2024-01-01T00:00:00Z"},
			{"id":"Wteambbbbbbb","name":"Team B","description":null,"created_at":"2024-02-01T00:00:00Z"}
		]`))
	})

	list, err := api.ListWorkspaces(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 2)
	require.NotNil(t, list[0].Description)
	assert.Equal(t, "desc", *list[0].Description)
	assert.Nil(t, list[1].Description)
	assert.Equal(t, createdB, list[1].CreatedAt)
}

func TestAPIClient_CreateWorkspace_SendsNullDescription(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Team C", body["name"])
		desc, present := body["description"]
		assert.True(t, present)
		assert.Nil(t, desc)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"Wnewnewnewnw","name":"Team C","description":null,"created_at":"2024-03-01T00:00:00Z"}`))
	})

	ws, err := api.CreateWorkspace(context.Background(), "Team C", nil)

	require.NoError(t, err)
	assert.Equal(t, "Wnewnewnewnw", ws.ID)
	assert.Nil(t, ws.Description)
}

func TestAPIClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
		wantMsg  string
	}{
		{"error body code wins", http.StatusConflict, `{"error":"owner cannot be re-invited","code":"CONFLICT"}`, apperrors.ErrConflict, "owner cannot be re-invited"},
		{"forbidden without body", http.StatusForbidden, ``, apperrors.ErrUnauthorized, "Forbidden"},
		{"not found", http.StatusNotFound, `{"error":"user not found","code":"NOT_FOUND"}`, apperrors.ErrNotFound, "user not found"},
		{"server error", http.StatusInternalServerError, `oops`, apperrors.ErrInternal, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := api.InviteUser(context.Background(), "Wteamaaaaaaa", "a@example.com", "member")

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperrors.CodeOf(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestAPIClient_DeleteWorkspace_NoContent(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/workspaces/Wteamaaaaaaa", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, api.DeleteWorkspace(context.Background(), "Wteamaaaaaaa"))
}

func TestAPIClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	api := NewAPIClient(server.URL)
	_, err := api.ListWorkspaces(context.Background())

	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnavailable))
}

func TestAPIClient_DrivesWorkspaceContext(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"Wteamaaaaaaa","name":"Team A","description":null,"created_at":"2024-01-01T00:00:00Z"}]`))
	})

	wc := NewWorkspaceContext(api)
	wc.FetchWorkspaces(context.Background())

	require.Len(t, wc.Workspaces(), 1)
	assert.Equal(t, createdA, wc.Workspaces()[0].CreatedAt)
}
