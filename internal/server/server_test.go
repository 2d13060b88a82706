package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/langkah-ekspor/exporo/internal/chat"
	"github.com/langkah-ekspor/exporo/internal/store"
)

// echoEngine replies with a fixed string and marks the company name so tests
// can observe the merge side effect.
type echoEngine struct {
	reply string
}

func (e *echoEngine) ProcessTurn(ctx context.Context, sess *chat.Session, userText string) (string, error) {
	sess.Append("user", userText)
	sess.Profile.CompanyName = "CV Jati Sejahtera"
	sess.Append("assistant", e.reply)
	return e.reply, nil
}

func newTestServer(t *testing.T) (*Server, store.Store) {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))

	srv := NewServer(&echoEngine{reply: "Halo! Saya Exporo."}, st, zap.NewNop(), 0)
	return srv, st
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Router(), http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRegisterAndLogin(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	reg := map[string]string{
		"first_name": "Dewi", "last_name": "Lestari",
		"email": "dewi@example.com", "password": "rahasia123",
	}
	rec := doJSON(t, router, http.MethodPost, "/users", reg)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Duplicate email conflicts.
	rec = doJSON(t, router, http.MethodPost, "/users", reg)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/login", map[string]string{
		"email": "dewi@example.com", "password": "rahasia123",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/login", map[string]string{
		"email": "dewi@example.com", "password": "salah",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/users", map[string]string{"email": "a@b.c"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/users", map[string]string{
		"email": "a@b.c", "password": "12345",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "at least 6")
}

func TestChatTurn(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/chat/u-1", map[string]string{
		"message": "Nama usaha saya CV Jati Sejahtera",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Reply        string `json:"reply"`
		SessionID    string `json:"session_id"`
		Completeness struct {
			Completed int `json:"completed_fields"`
		} `json:"completeness"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Halo! Saya Exporo.", resp.Reply)
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, 1, resp.Completeness.Completed)
}

func TestChatTurnValidation(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/chat/u-1", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/chat/u-1", strings.NewReader("not json"))
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req)
	assert.Equal(t, http.StatusBadRequest, rec2.Code)
}

func TestGetProfileReflectsChat(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	doJSON(t, router, http.MethodPost, "/chat/u-1", map[string]string{"message": "halo"})

	rec := doJSON(t, router, http.MethodGet, "/profile/u-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "CV Jati Sejahtera")
}

func TestExportProfileJSON(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	rec := doJSON(t, router, http.MethodGet, "/profile/u-1/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "profile.json")
	assert.Contains(t, rec.Body.String(), "company_name")
}

func TestExportProfileXLSX(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	rec := doJSON(t, router, http.MethodGet, "/profile/u-1/export?format=xlsx", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	f, err := xlsx.OpenBinary(rec.Body.Bytes())
	require.NoError(t, err)
	assert.NotNil(t, f.Sheet["Profil Bisnis"])
}

func TestExportProfileBadFormat(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Router(), http.MethodGet, "/profile/u-1/export?format=csv", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetProfile(t *testing.T) {
	srv, st := newTestServer(t)
	router := srv.Router()

	doJSON(t, router, http.MethodPost, "/chat/u-1", map[string]string{"message": "halo"})

	rec := doJSON(t, router, http.MethodPost, "/profile/u-1/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/profile/u-1", nil)
	assert.NotContains(t, rec.Body.String(), "CV Jati Sejahtera")

	// Reset persisted the default profile.
	p, err := st.LoadProfile(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Not specified", p.CompanyName)
}
