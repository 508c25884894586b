package models

// ClassIDPrefix is the identifier prefix for class offerings.
const ClassIDPrefix = "CL"

// ClassOffering represents one tutored class available for enrollment.
// Description is free text and may itself contain commas; the codec handles
// it with a fixed-position rule.
type ClassOffering struct {
	ClassID     string  `json:"class_id"`
	TutorID     string  `json:"tutor_id"`
	Subject     string  `json:"subject"`
	Description string  `json:"description"`
	Schedule    string  `json:"schedule"` // semicolon-joined date tokens or freeform text
	FeePerClass float64 `json:"fee_per_class"`
}
