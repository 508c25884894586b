package codec

import (
	"strings"
	"time"

	"github.com/noah-isme/tcc-admin-api/internal/models"
)

const loginMinFields = 4

// EncodeLogin serializes one login-history audit line.
func EncodeLogin(r models.LoginRecord) string {
	fields := []string{r.EntryID, r.UserID, string(r.Role), r.Timestamp.UTC().Format(time.RFC3339)}
	return strings.Join(fields, fieldSep)
}

// DecodeLogin parses one login-history audit line.
func DecodeLogin(line string) (models.LoginRecord, error) {
	fields := strings.Split(line, fieldSep)
	if len(fields) < loginMinFields {
		return models.LoginRecord{}, parseError("login history", line, "expected at least 4 fields")
	}
	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(fields[3]))
	if err != nil {
		return models.LoginRecord{}, parseError("login history", line, "bad timestamp")
	}
	return models.LoginRecord{
		EntryID:   strings.TrimSpace(fields[0]),
		UserID:    strings.TrimSpace(fields[1]),
		Role:      models.UserKind(strings.TrimSpace(fields[2])),
		Timestamp: ts,
	}, nil
}
