package service

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/tcc-admin-api/internal/repository"
	appErrors "github.com/noah-isme/tcc-admin-api/pkg/errors"
)

func TestUpdateEnrollmentRewritesOnDiskField(t *testing.T) {
	store := newSeededStore(t)
	svc := NewEnrollmentService(store.Students, zap.NewNop())

	student, err := svc.Update(context.Background(), "STU001", []string{"CL007", "CL014"})
	require.NoError(t, err)
	assert.Equal(t, []string{"CL007", "CL014"}, student.EnrolledClassIDs)

	raw, err := os.ReadFile(store.PathFor(repository.StudentFile))
	require.NoError(t, err)
	var line string
	for _, l := range strings.Split(string(raw), "\n") {
		if strings.HasPrefix(l, "STU001,") {
			line = l
			break
		}
	}
	require.NotEmpty(t, line)
	fields := strings.Split(line, ",")
	assert.Equal(t, "CL007;CL014", fields[len(fields)-1])
}

func TestUpdateEnrollmentToZeroFailsAndLeavesDiskUntouched(t *testing.T) {
	store := newSeededStore(t)
	svc := NewEnrollmentService(store.Students, zap.NewNop())

	before, err := os.ReadFile(store.PathFor(repository.StudentFile))
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), "STU001", nil)
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))

	after, err := os.ReadFile(store.PathFor(repository.StudentFile))
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestUpdateEnrollmentRejectsFourClasses(t *testing.T) {
	store := newSeededStore(t)
	svc := NewEnrollmentService(store.Students, zap.NewNop())

	_, err := svc.Update(context.Background(), "STU001", []string{"CL007", "CL008", "CL014", "CL015"})
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))
}

func TestUpdateEnrollmentUnknownStudent(t *testing.T) {
	store := newSeededStore(t)
	svc := NewEnrollmentService(store.Students, zap.NewNop())

	_, err := svc.Update(context.Background(), "STU099", []string{"CL007"})
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindNotFound))
}

func TestUpdateEnrollmentIdempotent(t *testing.T) {
	store := newSeededStore(t)
	svc := NewEnrollmentService(store.Students, zap.NewNop())

	_, err := svc.Update(context.Background(), "STU001", []string{"CL007", "CL014"})
	require.NoError(t, err)
	_, err = svc.Update(context.Background(), "STU001", []string{"CL007", "CL014"})
	require.NoError(t, err)

	stored, err := store.Students.FindByID("STU001")
	require.NoError(t, err)
	assert.Equal(t, []string{"CL007", "CL014"}, stored.EnrolledClassIDs)
}
