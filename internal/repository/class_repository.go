package repository

import (
	"strings"

	"github.com/noah-isme/tcc-admin-api/internal/codec"
	"github.com/noah-isme/tcc-admin-api/internal/models"
	appErrors "github.com/noah-isme/tcc-admin-api/pkg/errors"
)

// ClassRepository manages the class offering file.
type ClassRepository struct {
	store *Filestore
}

// NewClassRepository constructs a ClassRepository.
func NewClassRepository(store *Filestore) *ClassRepository {
	return &ClassRepository{store: store}
}

// LoadAll decodes every class offering. Malformed lines are logged and skipped.
func (r *ClassRepository) LoadAll() ([]models.ClassOffering, error) {
	lines, err := r.store.ReadLines()
	if err != nil {
		return nil, err
	}
	classes := make([]models.ClassOffering, 0, len(lines))
	skipped := 0
	for _, line := range lines {
		c, err := codec.DecodeClass(line)
		if err != nil {
			r.store.warnSkipped(err)
			skipped++
			continue
		}
		classes = append(classes, c)
	}
	r.store.observeLoad(len(classes), skipped)
	return classes, nil
}

// SaveAll replaces the file contents with the given offerings.
func (r *ClassRepository) SaveAll(classes []models.ClassOffering) error {
	lines := make([]string, 0, len(classes))
	for _, c := range classes {
		lines = append(lines, codec.EncodeClass(c))
	}
	return r.store.WriteLines(lines)
}

// FindByID resolves one class offering by id.
func (r *ClassRepository) FindByID(classID string) (*models.ClassOffering, error) {
	classes, err := r.LoadAll()
	if err != nil {
		return nil, err
	}
	for i := range classes {
		if strings.EqualFold(classes[i].ClassID, classID) {
			return &classes[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "class "+classID+" not found")
}

// Create assigns the next CL identifier and appends the offering.
func (r *ClassRepository) Create(c *models.ClassOffering) error {
	_, err := r.store.Update(func(lines []string) ([]string, bool, error) {
		c.ClassID = NextID(models.ClassIDPrefix, leadingFields(lines))
		return append(lines, codec.EncodeClass(*c)), true, nil
	})
	return err
}

// UpdateTutor rewrites only the tutor field of one offering, leaving all
// other fields exactly as stored.
func (r *ClassRepository) UpdateTutor(classID, tutorID string) error {
	replaced, err := r.store.Update(func(lines []string) ([]string, bool, error) {
		for i, line := range lines {
			if !lineHasID(line, classID) {
				continue
			}
			c, err := codec.DecodeClass(line)
			if err != nil {
				return nil, false, err
			}
			c.TutorID = tutorID
			out := make([]string, len(lines))
			copy(out, lines)
			out[i] = codec.EncodeClass(c)
			return out, true, nil
		}
		return lines, false, nil
	})
	if err != nil {
		return err
	}
	if !replaced {
		return appErrors.Clone(appErrors.ErrNotFound, "class "+classID+" not found")
	}
	return nil
}

// Delete removes one class offering. Returns false when the id did not match.
func (r *ClassRepository) Delete(classID string) (bool, error) {
	return r.store.DeleteLine(matchID(classID))
}
