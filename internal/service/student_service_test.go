package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/tcc-admin-api/internal/models"
	appErrors "github.com/noah-isme/tcc-admin-api/pkg/errors"
)

func validRegistration(classIDs ...string) RegisterStudentRequest {
	return RegisterStudentRequest{
		ICNumber:        "100530-08-4321",
		Password:        "secret123",
		FullName:        "Nur Aisyah",
		Email:           "nur.aisyah@tcc.example",
		Phone:           "012-3456720",
		Address:         "3 Jalan Gasing Petaling Jaya",
		Level:           models.LevelSecondaryLower,
		EnrollmentMonth: "2026-09",
		ClassIDs:        classIDs,
	}
}

func TestRegisterStudentSucceedsWithFeeSum(t *testing.T) {
	store := newSeededStore(t)
	svc := NewStudentService(store.Students, store.Classes, nil, zap.NewNop())

	result, err := svc.Register(context.Background(), validRegistration("CL007", "CL008", "CL015"))
	require.NoError(t, err)
	assert.Equal(t, "STU003", result.Student.ID)
	assert.Equal(t, 60.00+60.00+55.00, result.TotalFee)

	stored, err := store.Students.FindByID("STU003")
	require.NoError(t, err)
	assert.Equal(t, []string{"CL007", "CL008", "CL015"}, stored.EnrolledClassIDs)
	assert.Equal(t, models.KindStudent, stored.Kind)
}

func TestRegisterStudentRejectsZeroClasses(t *testing.T) {
	store := newSeededStore(t)
	svc := NewStudentService(store.Students, store.Classes, nil, zap.NewNop())

	req := validRegistration("CL007")
	req.ClassIDs = []string{}
	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))
}

func TestRegisterStudentRejectsFourClasses(t *testing.T) {
	store := newSeededStore(t)
	svc := NewStudentService(store.Students, store.Classes, nil, zap.NewNop())

	_, err := svc.Register(context.Background(), validRegistration("CL007", "CL008", "CL014", "CL015"))
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))

	// Nothing was appended.
	students, loadErr := store.Students.LoadAll()
	require.NoError(t, loadErr)
	assert.Len(t, students, 2)
}

func TestRegisterStudentRejectsUnknownClass(t *testing.T) {
	store := newSeededStore(t)
	svc := NewStudentService(store.Students, store.Classes, nil, zap.NewNop())

	_, err := svc.Register(context.Background(), validRegistration("CL007", "CL999"))
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))
	assert.Contains(t, err.Error(), "CL999")
}

func TestRegisterStudentRejectsDuplicateIC(t *testing.T) {
	store := newSeededStore(t)
	svc := NewStudentService(store.Students, store.Classes, nil, zap.NewNop())

	req := validRegistration("CL007")
	req.ClassIDs = []string{"CL007", "CL008"}
	req.ICNumber = "080101-10-1234" // STU001's IC
	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindConflict))
}

func TestUpdateProfileKeepsEnrollment(t *testing.T) {
	store := newSeededStore(t)
	svc := NewStudentService(store.Students, store.Classes, nil, zap.NewNop())

	updated, err := svc.UpdateProfile(context.Background(), "STU001", UpdateStudentProfileRequest{
		FullName: "Lim Jia Hui",
		Email:    "new.email@tcc.example",
		Phone:    "012-9999999",
		Address:  "15 Jalan Ipoh Kuala Lumpur",
	})
	require.NoError(t, err)
	assert.Equal(t, "new.email@tcc.example", updated.Email)

	stored, err := store.Students.FindByID("STU001")
	require.NoError(t, err)
	assert.Equal(t, []string{"CL007", "CL008", "CL015"}, stored.EnrolledClassIDs)
	assert.Equal(t, "password123", stored.Password)
}
