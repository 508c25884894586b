package repository

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/noah-isme/tcc-admin-api/internal/models"
	"github.com/noah-isme/tcc-admin-api/pkg/metrics"
)

// Backing file names, one per entity type, under the data directory.
const (
	StudentFile        = "student.txt"
	TutorFile          = "tutor.txt"
	ReceptionistFile   = "receptionist.txt"
	AdminFile          = "admin.txt"
	ClassFile          = "classes.txt"
	PaymentFile        = "payments.txt"
	RequestFile        = "requests.txt"
	PaymentHistoryFile = "payment_history.txt"
	LoginHistoryFile   = "login_history.txt"
)

// Store aggregates every repository over one data directory.
type Store struct {
	dataDir string

	Students       *UserRepository
	Tutors         *UserRepository
	Receptionists  *UserRepository
	Admins         *UserRepository
	Classes        *ClassRepository
	Payments       *PaymentRepository
	Requests       *RequestRepository
	PaymentHistory *PaymentHistoryRepository
	LoginHistory   *LoginHistoryRepository
}

// Open wires all repositories to their backing files under dataDir. Files are
// not created here; the bootstrap collaborator seeds them before first use.
func Open(dataDir string, logger *zap.Logger, m *metrics.Service) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	fs := func(name, entity string) *Filestore {
		return NewFilestore(filepath.Join(dataDir, name), entity, logger, m)
	}
	return &Store{
		dataDir:        dataDir,
		Students:       NewUserRepository(models.KindStudent, fs(StudentFile, "student")),
		Tutors:         NewUserRepository(models.KindTutor, fs(TutorFile, "tutor")),
		Receptionists:  NewUserRepository(models.KindReceptionist, fs(ReceptionistFile, "receptionist")),
		Admins:         NewUserRepository(models.KindAdmin, fs(AdminFile, "admin")),
		Classes:        NewClassRepository(fs(ClassFile, "class")),
		Payments:       NewPaymentRepository(fs(PaymentFile, "payment")),
		Requests:       NewRequestRepository(fs(RequestFile, "request")),
		PaymentHistory: NewPaymentHistoryRepository(fs(PaymentHistoryFile, "payment_history")),
		LoginHistory:   NewLoginHistoryRepository(fs(LoginHistoryFile, "login_history")),
	}
}

// PathFor resolves a backing file name inside the data directory.
func (s *Store) PathFor(name string) string {
	return filepath.Join(s.dataDir, name)
}

// UserRepositories returns the four user repositories in authentication scan
// order: admin, receptionist, tutor, student.
func (s *Store) UserRepositories() []*UserRepository {
	return []*UserRepository{s.Admins, s.Receptionists, s.Tutors, s.Students}
}
