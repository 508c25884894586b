package repository

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/tcc-admin-api/internal/models"
	appErrors "github.com/noah-isme/tcc-admin-api/pkg/errors"
)

func newStudentRepo(t *testing.T) *UserRepository {
	t.Helper()
	store := NewFilestore(filepath.Join(t.TempDir(), StudentFile), "student", zap.NewNop(), nil)
	return NewUserRepository(models.KindStudent, store)
}

func sampleStudent(id string) models.User {
	return models.User{
		Kind:             models.KindStudent,
		ID:               id,
		SecondaryKey:     "080101-10-1234",
		Password:         "password123",
		DisplayName:      "Lim Jia Hui",
		Email:            "jiahui.lim@tcc.example",
		Phone:            "012-3456711",
		Address:          "12 Jalan Ipoh Kuala Lumpur",
		Level:            models.LevelSecondaryLower,
		EnrollmentMonth:  "2026-01",
		EnrolledClassIDs: []string{"CL007", "CL008", "CL015"},
	}
}

func TestUserRepositoryCreateAssignsSequentialIDs(t *testing.T) {
	repo := newStudentRepo(t)

	first := sampleStudent("")
	require.NoError(t, repo.Create(&first))
	assert.Equal(t, "STU001", first.ID)

	second := sampleStudent("")
	second.SecondaryKey = "090215-14-5678"
	require.NoError(t, repo.Create(&second))
	assert.Equal(t, "STU002", second.ID)

	users, err := repo.LoadAll()
	require.NoError(t, err)
	require.Len(t, users, 2)
}

func TestUserRepositoryFindByIDCaseInsensitive(t *testing.T) {
	repo := newStudentRepo(t)
	require.NoError(t, repo.SaveAll([]models.User{sampleStudent("STU001")}))

	found, err := repo.FindByID("stu001")
	require.NoError(t, err)
	assert.Equal(t, "STU001", found.ID)

	_, err = repo.FindByID("STU099")
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindNotFound))
}

func TestUserRepositoryLoadAllSkipsMalformedLines(t *testing.T) {
	repo := newStudentRepo(t)
	good := sampleStudent("STU001")
	require.NoError(t, repo.SaveAll([]models.User{good}))
	require.NoError(t, repo.store.AppendLine("garbage,line"))
	require.NoError(t, repo.store.AppendLine(""))

	users, err := repo.LoadAll()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "STU001", users[0].ID)
}

func TestUpdateEnrolledClassesRewritesOnlyThatField(t *testing.T) {
	repo := newStudentRepo(t)
	require.NoError(t, repo.SaveAll([]models.User{sampleStudent("STU001")}))

	require.NoError(t, repo.UpdateEnrolledClasses("STU001", []string{"CL007", "CL014"}))

	raw, err := os.ReadFile(repo.store.Path())
	require.NoError(t, err)
	line := strings.TrimSpace(string(raw))
	assert.True(t, strings.HasSuffix(line, ",CL007;CL014"), "line: %s", line)
	assert.Contains(t, line, "Lim Jia Hui")

	found, err := repo.FindByID("STU001")
	require.NoError(t, err)
	assert.Equal(t, []string{"CL007", "CL014"}, found.EnrolledClassIDs)
}

func TestUpdateEnrolledClassesUnknownStudent(t *testing.T) {
	repo := newStudentRepo(t)
	require.NoError(t, repo.SaveAll([]models.User{sampleStudent("STU001")}))

	err := repo.UpdateEnrolledClasses("STU099", []string{"CL007"})
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindNotFound))
}
