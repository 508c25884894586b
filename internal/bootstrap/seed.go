// Package bootstrap guarantees that every backing file exists with sane seed
// data before any repository is used. Seeding is per-file: a file that
// already exists is never touched.
package bootstrap

import (
	"os"

	"go.uber.org/zap"

	"github.com/noah-isme/tcc-admin-api/internal/models"
	"github.com/noah-isme/tcc-admin-api/internal/repository"
)

// Ensure seeds every missing backing file under the store's data directory.
func Ensure(store *repository.Store, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	type seeder struct {
		name string
		path string
		seed func() error
	}
	steps := []seeder{
		{"admin", repository.AdminFile, func() error { return store.Admins.SaveAll(seedAdmins()) }},
		{"receptionist", repository.ReceptionistFile, func() error { return store.Receptionists.SaveAll(seedReceptionists()) }},
		{"tutor", repository.TutorFile, func() error { return store.Tutors.SaveAll(seedTutors()) }},
		{"class", repository.ClassFile, func() error { return store.Classes.SaveAll(seedClasses()) }},
		{"student", repository.StudentFile, func() error { return store.Students.SaveAll(seedStudents()) }},
		{"payment", repository.PaymentFile, store.Payments.InitEmpty},
		{"request", repository.RequestFile, store.Requests.InitEmpty},
		{"payment_history", repository.PaymentHistoryFile, store.PaymentHistory.InitEmpty},
		{"login_history", repository.LoginHistoryFile, store.LoginHistory.InitEmpty},
	}

	for _, step := range steps {
		path := store.PathFor(step.path)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return err
		}
		if err := step.seed(); err != nil {
			return err
		}
		logger.Info("seeded data file", zap.String("entity", step.name), zap.String("path", path))
	}
	return nil
}

func seedAdmins() []models.User {
	return []models.User{
		{
			Kind:         models.KindAdmin,
			ID:           "AD001",
			SecondaryKey: "admin",
			Password:     "admin123",
			DisplayName:  "Alicia Wong",
			Email:        "alicia.wong@tcc.example",
			Phone:        "012-3456701",
			Role:         "Administrator",
			Department:   "Operations",
		},
	}
}

func seedReceptionists() []models.User {
	return []models.User{
		{
			Kind:         models.KindReceptionist,
			ID:           "RC001",
			SecondaryKey: "reception",
			Password:     "front123",
			DisplayName:  "Siti Rahmah",
			Email:        "siti.rahmah@tcc.example",
			Phone:        "012-3456702",
			Role:         "Receptionist",
		},
	}
}

func seedTutors() []models.User {
	return []models.User{
		{
			Kind:         models.KindTutor,
			ID:           "TC001",
			SecondaryKey: "jtan",
			Password:     "tutor123",
			DisplayName:  "Jason Tan",
			Email:        "jason.tan@tcc.example",
			Phone:        "012-3456703",
			DateOfBirth:  "1988-04-12",
		},
		{
			Kind:         models.KindTutor,
			ID:           "TC002",
			SecondaryKey: "mlee",
			Password:     "tutor123",
			DisplayName:  "Michelle Lee",
			Email:        "michelle.lee@tcc.example",
			Phone:        "012-3456704",
			DateOfBirth:  "1991-09-30",
		},
		{
			Kind:         models.KindTutor,
			ID:           "TC003",
			SecondaryKey: "rkumar",
			Password:     "tutor123",
			DisplayName:  "Ravi Kumar",
			Email:        "ravi.kumar@tcc.example",
			Phone:        "012-3456705",
			DateOfBirth:  "1985-01-22",
		},
	}
}

func seedClasses() []models.ClassOffering {
	return []models.ClassOffering{
		{
			ClassID:     "CL007",
			TutorID:     "TC001",
			Subject:     "English",
			Description: "Focus on grammar, comprehension, and essay writing",
			Schedule:    "Mon 5pm;Wed 5pm",
			FeePerClass: 60.00,
		},
		{
			ClassID:     "CL008",
			TutorID:     "TC002",
			Subject:     "Mathematics",
			Description: "Syllabus revision and exam drills",
			Schedule:    "Tue 5pm;Thu 5pm",
			FeePerClass: 60.00,
		},
		{
			ClassID:     "CL014",
			TutorID:     "TC003",
			Subject:     "Science",
			Description: "Weekly experiments and workbook practice",
			Schedule:    "Fri 5pm",
			FeePerClass: 60.00,
		},
		{
			ClassID:     "CL015",
			TutorID:     "TC001",
			Subject:     "History",
			Description: "Guided note-taking and timeline work",
			Schedule:    "Sat 10am",
			FeePerClass: 55.00,
		},
	}
}

func seedStudents() []models.User {
	return []models.User{
		{
			Kind:             models.KindStudent,
			ID:               "STU001",
			SecondaryKey:     "080101-10-1234",
			Password:         "password123",
			DisplayName:      "Lim Jia Hui",
			Email:            "jiahui.lim@tcc.example",
			Phone:            "012-3456711",
			Address:          "12 Jalan Ipoh Kuala Lumpur",
			Level:            models.LevelSecondaryLower,
			EnrollmentMonth:  "2026-01",
			EnrolledClassIDs: []string{"CL007", "CL008", "CL015"},
		},
		{
			Kind:             models.KindStudent,
			ID:               "STU002",
			SecondaryKey:     "090215-14-5678",
			Password:         "password456",
			DisplayName:      "Daniel Ooi",
			Email:            "daniel.ooi@tcc.example",
			Phone:            "012-3456712",
			Address:          "8 Jalan Ampang Kuala Lumpur",
			Level:            models.LevelSecondaryLower,
			EnrollmentMonth:  "2026-02",
			EnrolledClassIDs: []string{"CL007", "CL008", "CL014"},
		},
	}
}
