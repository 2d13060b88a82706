package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/langkah-ekspor/exporo/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

var testReg = UserRegistration{
	FirstName: "Dewi",
	LastName:  "Lestari",
	Email:     "dewi@example.com",
	Phone:     "+62812345678",
	Password:  "rahasia123",
}

func TestSQLite_CreateAndAuthenticate(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	user, err := st.CreateUser(ctx, testReg)
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "dewi@example.com", user.Email)

	authed, err := st.Authenticate(ctx, "dewi@example.com", "rahasia123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)
	assert.Equal(t, "Dewi", authed.FirstName)
}

func TestSQLite_AuthenticateWrongPassword(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.CreateUser(ctx, testReg)
	require.NoError(t, err)

	_, err = st.Authenticate(ctx, "dewi@example.com", "salah")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestSQLite_AuthenticateUnknownEmail(t *testing.T) {
	st := newTestSQLiteStore(t)

	_, err := st.Authenticate(context.Background(), "ghost@example.com", "apapun")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestSQLite_DuplicateEmail(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.CreateUser(ctx, testReg)
	require.NoError(t, err)

	_, err = st.CreateUser(ctx, testReg)
	assert.True(t, errors.Is(err, ErrEmailExists))
}

func TestSQLite_GetUserByEmail(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	created, err := st.CreateUser(ctx, testReg)
	require.NoError(t, err)

	user, err := st.GetUserByEmail(ctx, "dewi@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Equal(t, "+62812345678", user.Phone)

	_, err = st.GetUserByEmail(ctx, "ghost@example.com")
	assert.True(t, errors.Is(err, ErrUserNotFound))
}

func TestSQLite_CountUsers(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	n, err := st.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = st.CreateUser(ctx, testReg)
	require.NoError(t, err)

	n, err = st.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSQLite_SaveAndLoadProfile(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	user, err := st.CreateUser(ctx, testReg)
	require.NoError(t, err)

	p := model.NewDefaultProfile()
	p.CompanyName = "CV Jati Sejahtera"
	p.ProductionCapacity.Amount = 100
	p.ExportReadiness.TargetCountries = []string{"Malaysia"}
	require.NoError(t, st.SaveProfile(ctx, user.ID, p))

	loaded, err := st.LoadProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "CV Jati Sejahtera", loaded.CompanyName)
	assert.Equal(t, float64(100), loaded.ProductionCapacity.Amount)
	assert.Equal(t, []string{"Malaysia"}, loaded.ExportReadiness.TargetCountries)
}

func TestSQLite_SaveProfileUpserts(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	user, err := st.CreateUser(ctx, testReg)
	require.NoError(t, err)

	p := model.NewDefaultProfile()
	p.CompanyName = "First"
	require.NoError(t, st.SaveProfile(ctx, user.ID, p))

	p.CompanyName = "Second"
	require.NoError(t, st.SaveProfile(ctx, user.ID, p))

	loaded, err := st.LoadProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Second", loaded.CompanyName)
}

func TestSQLite_LoadProfileDefaultsWhenMissing(t *testing.T) {
	st := newTestSQLiteStore(t)

	loaded, err := st.LoadProfile(context.Background(), "no-such-user")
	require.NoError(t, err)
	assert.Equal(t, model.NotSpecified, loaded.CompanyName)
	assert.Equal(t, "Indonesia", loaded.ProductionLocation.Country)
}
