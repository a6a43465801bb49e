package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/internal/mock"
	"github.com/noteleaf/noteleaf/internal/service"
	"github.com/noteleaf/noteleaf/internal/utils"
	"github.com/noteleaf/noteleaf/models"
)

// ---- Helpers ----

func newSyncHandler(t *testing.T) (*Handler, *mock.MockSyncService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	syncSvc := mock.NewMockSyncService(ctrl)

	h := &Handler{
		logger:   logger.Nop(),
		services: &service.Services{SyncService: syncSvc},
	}

	return h, syncSvc
}

// authedRequest builds a request whose context carries the given account ID,
// same as the auth middleware would.
func authedRequest(method, path, body string, accountID int64) *http.Request {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req = injectNopLogger(req)
	ctx := context.WithValue(req.Context(), utils.AccountIDCtxKey, accountID)
	return req.WithContext(ctx)
}

// ─────────────────────────────────────────────
// changes
// ─────────────────────────────────────────────

func TestChanges_FullPull(t *testing.T) {
	h, syncSvc := newSyncHandler(t)

	serverTime := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	syncSvc.EXPECT().
		Changes(gomock.Any(), int64(42), nil).
		Return(models.ChangesResponse{ServerTime: serverTime}, nil)

	rr := httptest.NewRecorder()
	h.changes(rr, authedRequest(http.MethodGet, "/sync/changes", "", 42))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp models.ChangesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, serverTime.Equal(resp.ServerTime))
}

func TestChanges_IncrementalPull(t *testing.T) {
	h, syncSvc := newSyncHandler(t)

	since := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	syncSvc.EXPECT().
		Changes(gomock.Any(), int64(42), gomock.Cond(func(got *time.Time) bool {
			return got != nil && got.Equal(since)
		})).
		Return(models.ChangesResponse{}, nil)

	rr := httptest.NewRecorder()
	h.changes(rr, authedRequest(http.MethodGet, "/sync/changes?since="+since.Format(time.RFC3339Nano), "", 42))

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestChanges_MalformedSince(t *testing.T) {
	h, _ := newSyncHandler(t)

	rr := httptest.NewRecorder()
	h.changes(rr, authedRequest(http.MethodGet, "/sync/changes?since=yesterday", "", 42))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestChanges_NoAccountID(t *testing.T) {
	h, _ := newSyncHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/sync/changes", nil)
	req = injectNopLogger(req)
	rr := httptest.NewRecorder()
	h.changes(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// ─────────────────────────────────────────────
// push
// ─────────────────────────────────────────────

func TestPush_Success(t *testing.T) {
	h, syncSvc := newSyncHandler(t)

	syncSvc.EXPECT().
		Push(gomock.Any(), int64(42), gomock.Cond(func(req models.PushRequest) bool {
			return len(req.Threads) == 1 && req.Threads[0].LocalID == "t-1"
		})).
		Return(models.PushResponse{
			Threads: []models.IDMapping{{LocalID: "t-1", ServerID: "7"}},
			Notes:   []models.IDMapping{},
		}, nil)

	body := `{"threads":[{"localId":"t-1","data":{"name":"groceries","updatedAt":"2026-03-14T10:00:00Z"}}],"notes":[]}`

	rr := httptest.NewRecorder()
	h.push(rr, authedRequest(http.MethodPost, "/sync/push", body, 42))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp models.PushResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []models.IDMapping{{LocalID: "t-1", ServerID: "7"}}, resp.Threads)
}

func TestPush_UserConflictStillOK(t *testing.T) {
	h, syncSvc := newSyncHandler(t)

	syncSvc.EXPECT().
		Push(gomock.Any(), int64(42), gomock.Any()).
		Return(models.PushResponse{
			Threads:      []models.IDMapping{},
			Notes:        []models.IDMapping{},
			UserConflict: &models.FieldConflict{Field: "email", Message: "email is already in use"},
		}, nil)

	body := `{"user":{"username":"ada","email":"taken@example.com"},"threads":[],"notes":[]}`

	rr := httptest.NewRecorder()
	h.push(rr, authedRequest(http.MethodPost, "/sync/push", body, 42))

	// A per-field conflict is part of the normal response, not an HTTP error.
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"userConflict"`)
}

func TestPush_InvalidJSON(t *testing.T) {
	h, _ := newSyncHandler(t)

	rr := httptest.NewRecorder()
	h.push(rr, authedRequest(http.MethodPost, "/sync/push", `{`, 42))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// ─────────────────────────────────────────────
// purgeRemoteData
// ─────────────────────────────────────────────

func TestPurgeRemoteData(t *testing.T) {
	h, syncSvc := newSyncHandler(t)

	syncSvc.EXPECT().
		PurgeRemoteData(gomock.Any(), int64(42)).
		Return(models.PurgeStats{ThreadsDeleted: 3, NotesDeleted: 17}, nil)

	rr := httptest.NewRecorder()
	h.purgeRemoteData(rr, authedRequest(http.MethodDelete, "/sync/remote-data", "", 42))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp models.PurgeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Stats.ThreadsDeleted)
	assert.Equal(t, 17, resp.Stats.NotesDeleted)
}
