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
)

func newClassRepo(t *testing.T) *ClassRepository {
	t.Helper()
	store := NewFilestore(filepath.Join(t.TempDir(), ClassFile), "class", zap.NewNop(), nil)
	return NewClassRepository(store)
}

func TestClassRepositoryUpdateTutorPreservesOtherFields(t *testing.T) {
	repo := newClassRepo(t)
	require.NoError(t, repo.SaveAll([]models.ClassOffering{{
		ClassID:     "CL007",
		TutorID:     "TC001",
		Subject:     "English",
		Description: "Focus on grammar, comprehension, and essay writing",
		Schedule:    "Mon 5pm;Wed 5pm",
		FeePerClass: 60.00,
	}}))

	require.NoError(t, repo.UpdateTutor("CL007", "TC003"))

	class, err := repo.FindByID("CL007")
	require.NoError(t, err)
	assert.Equal(t, "TC003", class.TutorID)
	assert.Equal(t, "Focus on grammar, comprehension, and essay writing", class.Description)
	assert.Equal(t, "Mon 5pm;Wed 5pm", class.Schedule)
	assert.Equal(t, 60.00, class.FeePerClass)

	raw, err := os.ReadFile(repo.store.Path())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(string(raw)), "CL007,TC003,English,"))
}

func TestClassRepositoryCreateAssignsNextID(t *testing.T) {
	repo := newClassRepo(t)
	require.NoError(t, repo.SaveAll([]models.ClassOffering{
		{ClassID: "CL007", TutorID: "TC001", Subject: "English", Schedule: "Mon 5pm", FeePerClass: 60},
		{ClassID: "CL015", TutorID: "TC001", Subject: "History", Schedule: "Sat 10am", FeePerClass: 55},
	}))

	class := models.ClassOffering{TutorID: "TC002", Subject: "Mathematics", Schedule: "Tue 5pm", FeePerClass: 60}
	require.NoError(t, repo.Create(&class))
	assert.Equal(t, "CL016", class.ClassID)

	classes, err := repo.LoadAll()
	require.NoError(t, err)
	assert.Len(t, classes, 3)
}

func TestClassRepositoryDelete(t *testing.T) {
	repo := newClassRepo(t)
	require.NoError(t, repo.SaveAll([]models.ClassOffering{
		{ClassID: "CL007", TutorID: "TC001", Subject: "English", Schedule: "Mon 5pm", FeePerClass: 60},
	}))

	deleted, err := repo.Delete("CL007")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete("CL007")
	require.NoError(t, err)
	assert.False(t, deleted)
}
