package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/tcc-admin-api/internal/models"
	appErrors "github.com/noah-isme/tcc-admin-api/pkg/errors"
	"github.com/noah-isme/tcc-admin-api/pkg/metrics"
)

// defaultMaxFailedAttempts locks an identifier after this many consecutive
// credential mismatches.
const defaultMaxFailedAttempts = 3

type userDirectory interface {
	Kind() models.UserKind
	FindByID(id string) (*models.User, error)
}

type loginHistoryAppender interface {
	Append(rec models.LoginRecord) error
}

// AuthResult reports a successful authentication.
type AuthResult struct {
	Role    models.UserKind
	User    models.User
	Message string
}

// AuthService resolves a credential pair against the four user repositories
// and applies the lockout policy. Lockout state lives for the process
// lifetime only and resets on construction.
type AuthService struct {
	directories []userDirectory
	history     loginHistoryAppender
	maxAttempts int
	logger      *zap.Logger
	metrics     *metrics.Service

	mu       sync.Mutex
	failures map[string]int
	locked   map[string]bool
}

// NewAuthService constructs the authentication gate. directories must be in
// the fixed fallback scan order: admin, receptionist, tutor, student.
func NewAuthService(directories []userDirectory, history loginHistoryAppender, maxAttempts int, logger *zap.Logger, m *metrics.Service) *AuthService {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxFailedAttempts
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		directories: directories,
		history:     history,
		maxAttempts: maxAttempts,
		logger:      logger,
		metrics:     m,
		failures:    make(map[string]int),
		locked:      make(map[string]bool),
	}
}

// Authenticate resolves id and password to exactly one user. The id match is
// case-insensitive, the password case-sensitive. Three consecutive failures
// lock the identifier until Unlock runs; a locked identifier fails even with
// the correct password. Only credential mismatches move the counter: a
// backing-file read failure propagates as an io error and leaves it alone.
func (s *AuthService) Authenticate(ctx context.Context, id, password string) (*AuthResult, error) {
	id = strings.TrimSpace(id)
	if id == "" || password == "" {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "id and password are required")
	}
	key := strings.ToUpper(id)

	s.mu.Lock()
	if s.locked[key] {
		s.mu.Unlock()
		s.metrics.ObserveLogin("locked")
		return nil, appErrors.Clone(appErrors.ErrAccountLocked, id+" is locked after repeated failures; ask an administrator to unlock it")
	}
	s.mu.Unlock()

	user, err := s.resolve(id)
	if err != nil {
		// A backing-file failure is not a credential mismatch: surface it
		// without touching the failure counter.
		return nil, err
	}
	if user == nil || user.Password != password {
		return nil, s.recordFailure(id, key)
	}

	s.mu.Lock()
	delete(s.failures, key)
	s.mu.Unlock()

	if err := s.history.Append(models.LoginRecord{
		EntryID:   uuid.NewString(),
		UserID:    user.ID,
		Role:      user.Kind,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		s.logger.Warn("failed to record login history", zap.String("user_id", user.ID), zap.Error(err))
	}

	s.metrics.ObserveLogin("success")
	s.logger.Info("login successful", zap.String("user_id", user.ID), zap.String("role", string(user.Kind)))
	return &AuthResult{Role: user.Kind, User: *user, Message: "login successful"}, nil
}

// Unlock clears the lockout and failure counter for one identifier.
func (s *AuthService) Unlock(id string) {
	key := strings.ToUpper(strings.TrimSpace(id))
	s.mu.Lock()
	delete(s.locked, key)
	delete(s.failures, key)
	s.mu.Unlock()
}

// Locked reports whether the identifier is currently locked.
func (s *AuthService) Locked(id string) bool {
	key := strings.ToUpper(strings.TrimSpace(id))
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked[key]
}

// resolve searches the directory matching the id's prefix first, then the
// remaining directories in the fixed fallback order. A missing record in one
// directory continues the scan; any other error aborts it, so a read failure
// is never mistaken for an unknown id.
func (s *AuthService) resolve(id string) (*models.User, error) {
	for _, dir := range s.scanOrder(id) {
		user, err := dir.FindByID(id)
		if err == nil {
			return user, nil
		}
		if appErrors.IsKind(err, appErrors.KindNotFound) {
			continue
		}
		return nil, err
	}
	return nil, nil
}

func (s *AuthService) scanOrder(id string) []userDirectory {
	upper := strings.ToUpper(id)
	ordered := make([]userDirectory, 0, len(s.directories))
	for _, dir := range s.directories {
		if strings.HasPrefix(upper, dir.Kind().IDPrefix()) {
			ordered = append(ordered, dir)
		}
	}
	for _, dir := range s.directories {
		if !strings.HasPrefix(upper, dir.Kind().IDPrefix()) {
			ordered = append(ordered, dir)
		}
	}
	return ordered
}

func (s *AuthService) recordFailure(id, key string) error {
	s.mu.Lock()
	s.failures[key]++
	count := s.failures[key]
	justLocked := false
	if count >= s.maxAttempts {
		s.locked[key] = true
		justLocked = true
	}
	s.mu.Unlock()

	s.metrics.ObserveLogin("failure")
	if justLocked {
		s.metrics.ObserveLockout()
		s.logger.Warn("identifier locked after repeated failures", zap.String("id", id), zap.Int("failures", count))
	}
	return appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid id or password")
}
