package models

// UserKind discriminates the four user record variants sharing the tagged
// User shape. Each kind is persisted in its own backing file.
type UserKind string

const (
	KindStudent      UserKind = "STUDENT"
	KindTutor        UserKind = "TUTOR"
	KindReceptionist UserKind = "RECEPTIONIST"
	KindAdmin        UserKind = "ADMIN"
)

// IDPrefix returns the identifier prefix used by this kind's file.
func (k UserKind) IDPrefix() string {
	switch k {
	case KindAdmin:
		return "AD"
	case KindReceptionist:
		return "RC"
	case KindTutor:
		return "TC"
	default:
		return "STU"
	}
}

// User is the tagged record shared by the four user files. Kind selects
// which of the variant fields are meaningful; the codec dispatches on it.
type User struct {
	Kind UserKind `json:"kind"`

	ID           string `json:"id"`
	SecondaryKey string `json:"secondary_key"` // IC number for students, username otherwise
	Password     string `json:"-"`
	DisplayName  string `json:"display_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`

	// Student variant.
	Address          string    `json:"address,omitempty"`
	Level            LevelBand `json:"level,omitempty"`
	EnrollmentMonth  string    `json:"enrollment_month,omitempty"`
	EnrolledClassIDs []string  `json:"enrolled_class_ids,omitempty"`

	// Tutor variant.
	DateOfBirth string `json:"date_of_birth,omitempty"`

	// Staff variants.
	Role       string `json:"role,omitempty"`
	Department string `json:"department,omitempty"` // admin only
}
