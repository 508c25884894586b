package models

// RequestIDPrefix is the identifier prefix for subject change requests.
const RequestIDPrefix = "REQ"

// RequestStatus is the lifecycle state of a SubjectChangeRequest.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "Pending"
	RequestStatusApproved RequestStatus = "Approved"
	RequestStatusRejected RequestStatus = "Rejected"
)

// Terminal reports whether no further transition is allowed from the status.
func (s RequestStatus) Terminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// SubjectChangeRequest asks to swap one enrolled class for another.
// Transitions: Pending -> Approved (enrollment mutated), Pending -> Rejected,
// or deletion while still Pending (student withdrawal).
type SubjectChangeRequest struct {
	RequestID      string        `json:"request_id"`
	StudentID      string        `json:"student_id"`
	CurrentClassID string        `json:"current_class_id"`
	NewClassID     string        `json:"new_class_id"`
	Status         RequestStatus `json:"status"`
}
