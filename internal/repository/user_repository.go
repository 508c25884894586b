package repository

import (
	"strings"

	"github.com/noah-isme/tcc-admin-api/internal/codec"
	"github.com/noah-isme/tcc-admin-api/internal/models"
	appErrors "github.com/noah-isme/tcc-admin-api/pkg/errors"
)

// UserRepository manages one user kind's backing file. The same type serves
// all four kinds; the codec dispatches on the kind tag.
type UserRepository struct {
	kind  models.UserKind
	store *Filestore
}

// NewUserRepository constructs a repository for one user kind.
func NewUserRepository(kind models.UserKind, store *Filestore) *UserRepository {
	return &UserRepository{kind: kind, store: store}
}

// Kind returns the user kind this repository serves.
func (r *UserRepository) Kind() models.UserKind {
	return r.kind
}

// LoadAll decodes every record in the file. Malformed lines are logged and
// skipped, never fatal to the load.
func (r *UserRepository) LoadAll() ([]models.User, error) {
	lines, err := r.store.ReadLines()
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(lines))
	skipped := 0
	for _, line := range lines {
		u, err := codec.DecodeUser(r.kind, line)
		if err != nil {
			r.store.warnSkipped(err)
			skipped++
			continue
		}
		users = append(users, u)
	}
	r.store.observeLoad(len(users), skipped)
	return users, nil
}

// SaveAll replaces the file contents with the given records.
func (r *UserRepository) SaveAll(users []models.User) error {
	lines := make([]string, 0, len(users))
	for _, u := range users {
		lines = append(lines, codec.EncodeUser(u))
	}
	return r.store.WriteLines(lines)
}

// FindByID resolves a record by identifier, case-insensitively.
func (r *UserRepository) FindByID(id string) (*models.User, error) {
	users, err := r.LoadAll()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].ID, id) {
			return &users[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, string(r.kind)+" "+id+" not found")
}

// Create assigns the next identifier for this kind and appends the record.
// Id generation and the append run as one critical section under the file
// lock, so concurrent creates cannot collide.
func (r *UserRepository) Create(u *models.User) error {
	u.Kind = r.kind
	_, err := r.store.Update(func(lines []string) ([]string, bool, error) {
		u.ID = NextID(r.kind.IDPrefix(), leadingFields(lines))
		return append(lines, codec.EncodeUser(*u)), true, nil
	})
	return err
}

// Update rewrites the record with the same id in place.
func (r *UserRepository) Update(u models.User) error {
	replaced, err := r.store.ReplaceLine(matchID(u.ID), codec.EncodeUser(u))
	if err != nil {
		return err
	}
	if !replaced {
		return appErrors.Clone(appErrors.ErrNotFound, string(r.kind)+" "+u.ID+" not found")
	}
	return nil
}

// UpdateEnrolledClasses rewrites only the student's enrolled class field,
// leaving every other field as stored. Returns ErrNotFound when the id does
// not resolve.
func (r *UserRepository) UpdateEnrolledClasses(studentID string, classIDs []string) error {
	replaced, err := r.store.Update(func(lines []string) ([]string, bool, error) {
		for i, line := range lines {
			if !lineHasID(line, studentID) {
				continue
			}
			u, err := codec.DecodeUser(r.kind, line)
			if err != nil {
				return nil, false, err
			}
			u.EnrolledClassIDs = append([]string(nil), classIDs...)
			out := make([]string, len(lines))
			copy(out, lines)
			out[i] = codec.EncodeUser(u)
			return out, true, nil
		}
		return lines, false, nil
	})
	if err != nil {
		return err
	}
	if !replaced {
		return appErrors.Clone(appErrors.ErrNotFound, string(r.kind)+" "+studentID+" not found")
	}
	return nil
}

// matchID matches a record line by its leading id field, case-insensitively.
func matchID(id string) func(line string) bool {
	return func(line string) bool {
		return lineHasID(line, id)
	}
}

func lineHasID(line, id string) bool {
	head := line
	if i := strings.IndexByte(line, ','); i >= 0 {
		head = line[:i]
	}
	return strings.EqualFold(strings.TrimSpace(head), id)
}

// leadingFields extracts the first comma field of every line, the id column
// for every entity file.
func leadingFields(lines []string) []string {
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		head := line
		if i := strings.IndexByte(line, ','); i >= 0 {
			head = line[:i]
		}
		ids = append(ids, strings.TrimSpace(head))
	}
	return ids
}
