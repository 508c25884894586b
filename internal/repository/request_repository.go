package repository

import (
	"strings"

	"github.com/noah-isme/tcc-admin-api/internal/codec"
	"github.com/noah-isme/tcc-admin-api/internal/models"
	appErrors "github.com/noah-isme/tcc-admin-api/pkg/errors"
)

// RequestRepository manages the subject change request file.
type RequestRepository struct {
	store *Filestore
}

// NewRequestRepository constructs a RequestRepository.
func NewRequestRepository(store *Filestore) *RequestRepository {
	return &RequestRepository{store: store}
}

// LoadAll decodes every request. Malformed lines are logged and skipped.
func (r *RequestRepository) LoadAll() ([]models.SubjectChangeRequest, error) {
	lines, err := r.store.ReadLines()
	if err != nil {
		return nil, err
	}
	requests := make([]models.SubjectChangeRequest, 0, len(lines))
	skipped := 0
	for _, line := range lines {
		req, err := codec.DecodeRequest(line)
		if err != nil {
			r.store.warnSkipped(err)
			skipped++
			continue
		}
		requests = append(requests, req)
	}
	r.store.observeLoad(len(requests), skipped)
	return requests, nil
}

// FindByID resolves one request by id.
func (r *RequestRepository) FindByID(requestID string) (*models.SubjectChangeRequest, error) {
	requests, err := r.LoadAll()
	if err != nil {
		return nil, err
	}
	for i := range requests {
		if strings.EqualFold(requests[i].RequestID, requestID) {
			return &requests[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "request "+requestID+" not found")
}

// FindPending returns the pending request for a (student, current class)
// pair, or nil when none exists.
func (r *RequestRepository) FindPending(studentID, currentClassID string) (*models.SubjectChangeRequest, error) {
	requests, err := r.LoadAll()
	if err != nil {
		return nil, err
	}
	for i := range requests {
		req := &requests[i]
		if req.Status == models.RequestStatusPending &&
			strings.EqualFold(req.StudentID, studentID) &&
			strings.EqualFold(req.CurrentClassID, currentClassID) {
			return req, nil
		}
	}
	return nil, nil
}

// Create assigns the next REQ identifier and appends the request.
func (r *RequestRepository) Create(req *models.SubjectChangeRequest) error {
	_, err := r.store.Update(func(lines []string) ([]string, bool, error) {
		req.RequestID = NextID(models.RequestIDPrefix, leadingFields(lines))
		if req.Status == "" {
			req.Status = models.RequestStatusPending
		}
		return append(lines, codec.EncodeRequest(*req)), true, nil
	})
	return err
}

// UpdateStatus rewrites only the status field of one request.
func (r *RequestRepository) UpdateStatus(requestID string, status models.RequestStatus) error {
	replaced, err := r.store.Update(func(lines []string) ([]string, bool, error) {
		for i, line := range lines {
			if !lineHasID(line, requestID) {
				continue
			}
			req, err := codec.DecodeRequest(line)
			if err != nil {
				return nil, false, err
			}
			req.Status = status
			out := make([]string, len(lines))
			copy(out, lines)
			out[i] = codec.EncodeRequest(req)
			return out, true, nil
		}
		return lines, false, nil
	})
	if err != nil {
		return err
	}
	if !replaced {
		return appErrors.Clone(appErrors.ErrNotFound, "request "+requestID+" not found")
	}
	return nil
}

// InitEmpty creates the backing file with no records.
func (r *RequestRepository) InitEmpty() error {
	return r.store.WriteLines(nil)
}

// Delete removes one request. Returns false when the id did not match.
func (r *RequestRepository) Delete(requestID string) (bool, error) {
	return r.store.DeleteLine(matchID(requestID))
}
