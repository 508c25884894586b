package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/tcc-admin-api/internal/bootstrap"
	"github.com/noah-isme/tcc-admin-api/internal/repository"
)

// newSeededStore opens a store over a temp directory and seeds it with the
// bootstrap fixtures (STU001/STU002, CL007/CL008/CL014/CL015, three tutors).
func newSeededStore(t *testing.T) *repository.Store {
	t.Helper()
	store := repository.Open(t.TempDir(), zap.NewNop(), nil)
	require.NoError(t, bootstrap.Ensure(store, zap.NewNop()))
	return store
}
