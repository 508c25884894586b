// Package codec translates between domain entities and the one-line-per-record
// comma-delimited text format of the backing files.
//
// The format has no quoting or escaping: a comma inside a field would shift
// every later field. The one exception is the class offering description,
// which is recovered with a fixed-position rule (see DecodeClass). Multi-value
// fields are semicolon-joined inside a single comma field.
package codec

import (
	"strconv"
	"strings"

	"github.com/noah-isme/tcc-admin-api/internal/models"
	appErrors "github.com/noah-isme/tcc-admin-api/pkg/errors"
)

const (
	fieldSep = ","
	multiSep = ";"
)

// JoinMulti joins a multi-valued field into its single-field representation.
func JoinMulti(values []string) string {
	return strings.Join(values, multiSep)
}

// SplitMulti splits a semicolon-joined field, dropping empty segments.
func SplitMulti(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, multiSep) {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseError(entity, line string, reason string) *appErrors.Error {
	return appErrors.Wrap(nil, appErrors.ErrParse.Code, appErrors.ErrParse.Kind,
		entity+" record rejected: "+reason+": "+line)
}

func formatFee(fee float64) string {
	return strconv.FormatFloat(fee, 'f', 2, 64)
}

// userCodec describes how one user variant serializes the fields that follow
// the six shared leading fields.
type userCodec struct {
	minFields  int
	encodeTail func(u models.User) []string
	decodeTail func(u *models.User, tail []string)
}

// userCodecs is the dispatch table keyed by user kind. All four variants share
// the leading fields id, secondaryKey, password, displayName, email, phone.
var userCodecs = map[models.UserKind]userCodec{
	models.KindStudent: {
		minFields: 10,
		encodeTail: func(u models.User) []string {
			return []string{u.Address, string(u.Level), u.EnrollmentMonth, JoinMulti(u.EnrolledClassIDs)}
		},
		decodeTail: func(u *models.User, tail []string) {
			u.Address = tail[0]
			u.Level = models.LevelBand(tail[1])
			u.EnrollmentMonth = tail[2]
			u.EnrolledClassIDs = SplitMulti(tail[3])
		},
	},
	models.KindTutor: {
		minFields: 7,
		encodeTail: func(u models.User) []string {
			return []string{u.DateOfBirth}
		},
		decodeTail: func(u *models.User, tail []string) {
			u.DateOfBirth = tail[0]
		},
	},
	models.KindReceptionist: {
		minFields: 7,
		encodeTail: func(u models.User) []string {
			return []string{u.Role}
		},
		decodeTail: func(u *models.User, tail []string) {
			u.Role = tail[0]
		},
	},
	models.KindAdmin: {
		minFields: 8,
		encodeTail: func(u models.User) []string {
			return []string{u.Role, u.Department}
		},
		decodeTail: func(u *models.User, tail []string) {
			u.Role = tail[0]
			u.Department = tail[1]
		},
	},
}

const userSharedFields = 6

// EncodeUser serializes a user record for its kind's backing file.
func EncodeUser(u models.User) string {
	fields := []string{u.ID, u.SecondaryKey, u.Password, u.DisplayName, u.Email, u.Phone}
	if c, ok := userCodecs[u.Kind]; ok {
		fields = append(fields, c.encodeTail(u)...)
	}
	return strings.Join(fields, fieldSep)
}

// DecodeUser parses one line of a user file as the given kind.
func DecodeUser(kind models.UserKind, line string) (models.User, error) {
	c, ok := userCodecs[kind]
	if !ok {
		return models.User{}, parseError("user", line, "unknown kind "+string(kind))
	}
	fields := strings.Split(line, fieldSep)
	if len(fields) < c.minFields {
		return models.User{}, parseError(string(kind), line, "expected at least "+strconv.Itoa(c.minFields)+" fields")
	}
	u := models.User{
		Kind:         kind,
		ID:           strings.TrimSpace(fields[0]),
		SecondaryKey: strings.TrimSpace(fields[1]),
		Password:     fields[2],
		DisplayName:  fields[3],
		Email:        fields[4],
		Phone:        fields[5],
	}
	if u.ID == "" {
		return models.User{}, parseError(string(kind), line, "empty id")
	}
	c.decodeTail(&u, fields[userSharedFields:])
	return u, nil
}

// classMinFields covers classId, tutorId, subject, description, schedule, fee.
const classMinFields = 6

// EncodeClass serializes a class offering.
func EncodeClass(c models.ClassOffering) string {
	fields := []string{c.ClassID, c.TutorID, c.Subject, c.Description, c.Schedule, formatFee(c.FeePerClass)}
	return strings.Join(fields, fieldSep)
}

// DecodeClass parses one class offering line. The description may contain
// commas, so positions are fixed from both ends: fields 0..2 are classId,
// tutorId and subject, the last two are schedule and fee, and everything in
// between is rejoined as the description.
func DecodeClass(line string) (models.ClassOffering, error) {
	fields := strings.Split(line, fieldSep)
	if len(fields) < classMinFields {
		return models.ClassOffering{}, parseError("class", line, "expected at least 6 fields")
	}
	n := len(fields)
	fee, err := strconv.ParseFloat(strings.TrimSpace(fields[n-1]), 64)
	if err != nil {
		return models.ClassOffering{}, parseError("class", line, "non-numeric fee")
	}
	c := models.ClassOffering{
		ClassID:     strings.TrimSpace(fields[0]),
		TutorID:     strings.TrimSpace(fields[1]),
		Subject:     fields[2],
		Description: strings.Join(fields[3:n-2], fieldSep),
		Schedule:    fields[n-2],
		FeePerClass: fee,
	}
	if c.ClassID == "" {
		return models.ClassOffering{}, parseError("class", line, "empty id")
	}
	return c, nil
}

const paymentMinFields = 9

// EncodePayment serializes a payment record.
func EncodePayment(p models.Payment) string {
	fields := []string{
		p.PaymentID, p.ReceiptID, p.StudentID, p.StudentName,
		JoinMulti(p.ClassIDs), formatFee(p.Amount), p.PaymentDate, p.Method, p.Status,
	}
	return strings.Join(fields, fieldSep)
}

// DecodePayment parses one payment line.
func DecodePayment(line string) (models.Payment, error) {
	fields := strings.Split(line, fieldSep)
	if len(fields) < paymentMinFields {
		return models.Payment{}, parseError("payment", line, "expected at least 9 fields")
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(fields[5]), 64)
	if err != nil {
		return models.Payment{}, parseError("payment", line, "non-numeric amount")
	}
	p := models.Payment{
		PaymentID:   strings.TrimSpace(fields[0]),
		ReceiptID:   strings.TrimSpace(fields[1]),
		StudentID:   strings.TrimSpace(fields[2]),
		StudentName: fields[3],
		ClassIDs:    SplitMulti(fields[4]),
		Amount:      amount,
		PaymentDate: fields[6],
		Method:      fields[7],
		Status:      fields[8],
	}
	if p.PaymentID == "" {
		return models.Payment{}, parseError("payment", line, "empty id")
	}
	return p, nil
}

const requestMinFields = 5

// EncodeRequest serializes a subject change request.
func EncodeRequest(r models.SubjectChangeRequest) string {
	fields := []string{r.RequestID, r.StudentID, r.CurrentClassID, r.NewClassID, string(r.Status)}
	return strings.Join(fields, fieldSep)
}

// DecodeRequest parses one subject change request line.
func DecodeRequest(line string) (models.SubjectChangeRequest, error) {
	fields := strings.Split(line, fieldSep)
	if len(fields) < requestMinFields {
		return models.SubjectChangeRequest{}, parseError("request", line, "expected at least 5 fields")
	}
	r := models.SubjectChangeRequest{
		RequestID:      strings.TrimSpace(fields[0]),
		StudentID:      strings.TrimSpace(fields[1]),
		CurrentClassID: strings.TrimSpace(fields[2]),
		NewClassID:     strings.TrimSpace(fields[3]),
		Status:         models.RequestStatus(strings.TrimSpace(fields[4])),
	}
	if r.RequestID == "" {
		return models.SubjectChangeRequest{}, parseError("request", line, "empty id")
	}
	switch r.Status {
	case models.RequestStatusPending, models.RequestStatusApproved, models.RequestStatusRejected:
	default:
		return models.SubjectChangeRequest{}, parseError("request", line, "unknown status "+string(r.Status))
	}
	return r, nil
}

const historyMinFields = 4

// EncodeHistory serializes a payment history entry.
func EncodeHistory(h models.PaymentHistoryEntry) string {
	fields := []string{h.StudentID, h.Month, h.PaymentID, formatFee(h.Amount)}
	return strings.Join(fields, fieldSep)
}

// DecodeHistory parses one payment history line.
func DecodeHistory(line string) (models.PaymentHistoryEntry, error) {
	fields := strings.Split(line, fieldSep)
	if len(fields) < historyMinFields {
		return models.PaymentHistoryEntry{}, parseError("payment history", line, "expected at least 4 fields")
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
	if err != nil {
		return models.PaymentHistoryEntry{}, parseError("payment history", line, "non-numeric amount")
	}
	return models.PaymentHistoryEntry{
		StudentID: strings.TrimSpace(fields[0]),
		Month:     strings.TrimSpace(fields[1]),
		PaymentID: strings.TrimSpace(fields[2]),
		Amount:    amount,
	}, nil
}
