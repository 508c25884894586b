package models

// LevelBand is one of the five grade bands a student registers under.
type LevelBand string

const (
	LevelPrimaryLower   LevelBand = "PRIMARY_LOWER"
	LevelPrimaryUpper   LevelBand = "PRIMARY_UPPER"
	LevelSecondaryLower LevelBand = "SECONDARY_LOWER"
	LevelSecondaryUpper LevelBand = "SECONDARY_UPPER"
	LevelPreUniversity  LevelBand = "PRE_UNIVERSITY"
)

// Levels lists the grade bands in ascending order.
var Levels = []LevelBand{
	LevelPrimaryLower,
	LevelPrimaryUpper,
	LevelSecondaryLower,
	LevelSecondaryUpper,
	LevelPreUniversity,
}

// ValidLevel reports whether the band is one of the five catalogued levels.
func ValidLevel(level LevelBand) bool {
	for _, l := range Levels {
		if l == level {
			return true
		}
	}
	return false
}

// levelSubjects is the static catalog of subjects offered per grade band.
// New class offerings must name a subject catalogued for their level.
var levelSubjects = map[LevelBand][]string{
	LevelPrimaryLower:   {"English", "Mathematics", "Science", "Bahasa Melayu"},
	LevelPrimaryUpper:   {"English", "Mathematics", "Science", "Bahasa Melayu", "History"},
	LevelSecondaryLower: {"English", "Mathematics", "Science", "History", "Geography"},
	LevelSecondaryUpper: {"English", "Additional Mathematics", "Physics", "Chemistry", "Biology", "History"},
	LevelPreUniversity:  {"English", "Further Mathematics", "Physics", "Chemistry", "Biology", "Economics"},
}

// SubjectsForLevel returns the subjects offered for a grade band.
func SubjectsForLevel(level LevelBand) []string {
	subjects := levelSubjects[level]
	out := make([]string, len(subjects))
	copy(out, subjects)
	return out
}

// SubjectOffered reports whether the subject is catalogued for the level.
func SubjectOffered(level LevelBand, subject string) bool {
	for _, s := range levelSubjects[level] {
		if s == subject {
			return true
		}
	}
	return false
}
