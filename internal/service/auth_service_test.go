package service

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/tcc-admin-api/internal/models"
	"github.com/noah-isme/tcc-admin-api/internal/repository"
	appErrors "github.com/noah-isme/tcc-admin-api/pkg/errors"
)

func newAuthService(t *testing.T, store *repository.Store) *AuthService {
	t.Helper()
	var dirs []userDirectory
	for _, repo := range store.UserRepositories() {
		dirs = append(dirs, repo)
	}
	return NewAuthService(dirs, store.LoginHistory, 3, zap.NewNop(), nil)
}

func TestAuthenticateStudentSuccess(t *testing.T) {
	store := newSeededStore(t)
	svc := newAuthService(t, store)

	result, err := svc.Authenticate(context.Background(), "STU001", "password123")
	require.NoError(t, err)
	assert.Equal(t, models.KindStudent, result.Role)
	assert.Equal(t, "STU001", result.User.ID)

	// A successful login appends one audit line.
	records, err := store.LoginHistory.LoadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "STU001", records[0].UserID)
	assert.Equal(t, models.KindStudent, records[0].Role)
}

func TestAuthenticateCaseInsensitiveIDCaseSensitivePassword(t *testing.T) {
	store := newSeededStore(t)
	svc := newAuthService(t, store)

	_, err := svc.Authenticate(context.Background(), "stu001", "password123")
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), "STU001", "PASSWORD123")
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindAuth))
}

func TestAuthenticateAdminAndTutorRoles(t *testing.T) {
	store := newSeededStore(t)
	svc := newAuthService(t, store)

	admin, err := svc.Authenticate(context.Background(), "AD001", "admin123")
	require.NoError(t, err)
	assert.Equal(t, models.KindAdmin, admin.Role)

	tutor, err := svc.Authenticate(context.Background(), "TC002", "tutor123")
	require.NoError(t, err)
	assert.Equal(t, models.KindTutor, tutor.Role)
}

func TestLockoutAfterThreeFailures(t *testing.T) {
	store := newSeededStore(t)
	svc := newAuthService(t, store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Authenticate(ctx, "STU001", "wrong")
		require.Error(t, err)
	}
	assert.True(t, svc.Locked("STU001"))

	// The correct password no longer helps once locked.
	_, err := svc.Authenticate(ctx, "STU001", "password123")
	require.Error(t, err)
	e := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrAccountLocked.Code, e.Code)
}

func TestUnlockRestoresAccess(t *testing.T) {
	store := newSeededStore(t)
	svc := newAuthService(t, store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _ = svc.Authenticate(ctx, "STU001", "wrong")
	}
	require.True(t, svc.Locked("STU001"))

	svc.Unlock("STU001")
	_, err := svc.Authenticate(ctx, "STU001", "password123")
	require.NoError(t, err)
}

func TestSuccessResetsFailureCounter(t *testing.T) {
	store := newSeededStore(t)
	svc := newAuthService(t, store)
	ctx := context.Background()

	_, _ = svc.Authenticate(ctx, "STU001", "wrong")
	_, _ = svc.Authenticate(ctx, "STU001", "wrong")
	_, err := svc.Authenticate(ctx, "STU001", "password123")
	require.NoError(t, err)

	// Two more mismatches do not lock: the counter restarted at zero.
	_, _ = svc.Authenticate(ctx, "STU001", "wrong")
	_, _ = svc.Authenticate(ctx, "STU001", "wrong")
	assert.False(t, svc.Locked("STU001"))
}

func TestAuthenticateReadFailureIsNotACredentialMismatch(t *testing.T) {
	store := newSeededStore(t)
	svc := newAuthService(t, store)
	ctx := context.Background()

	// Make the student file unreadable by replacing it with a directory.
	path := store.PathFor(repository.StudentFile)
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0o755))

	for i := 0; i < 3; i++ {
		_, err := svc.Authenticate(ctx, "STU001", "password123")
		require.Error(t, err)
		assert.True(t, appErrors.IsKind(err, appErrors.KindIO))
		assert.False(t, appErrors.IsKind(err, appErrors.KindAuth))
	}

	// Read failures never move the failure counter.
	assert.False(t, svc.Locked("STU001"))
}

func TestAuthenticateUnknownPrefixFallsBackToScan(t *testing.T) {
	store := newSeededStore(t)

	// A tutor stored with an id that carries no routable prefix is still
	// found by the fixed-order scan.
	tutor := models.User{
		Kind:         models.KindTutor,
		ID:           "XX900",
		SecondaryKey: "legacy",
		Password:     "legacy123",
		DisplayName:  "Legacy Tutor",
		Email:        "legacy@tcc.example",
		Phone:        "012-0000000",
		DateOfBirth:  "1980-01-01",
	}
	tutors, err := store.Tutors.LoadAll()
	require.NoError(t, err)
	require.NoError(t, store.Tutors.SaveAll(append(tutors, tutor)))

	svc := newAuthService(t, store)
	result, err := svc.Authenticate(context.Background(), "XX900", "legacy123")
	require.NoError(t, err)
	assert.Equal(t, models.KindTutor, result.Role)
}
