package bulk

import (
	"time"

	"github.com/dalemusser/eduhub/internal/app/system/normalize"
	"github.com/dalemusser/eduhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StudentRefs carries pre-fetched store state for the student validator.
type StudentRefs struct {
	ExistingEmails map[string]bool
}

// ValidateStudents validates and normalizes a student batch. Email is the
// uniqueness key, compared after lowercasing and trimming. Student rows come
// from either a JSON array or CSV rows converted upstream to string fields.
func ValidateStudents(items []RawItem, refs StudentRefs) ([]models.User, []ValidationError) {
	var errs errorList
	seen := make(map[string]bool, len(items))
	now := time.Now()

	out := make([]models.User, 0, len(items))
	for i, it := range items {
		name, ok := stringValue(it, "displayName")
		if !ok || name == "" {
			errs.required(i, "displayName")
		}

		email, ok := stringValue(it, "email")
		normalized := normalize.Email(email)
		switch {
		case !ok || email == "":
			errs.required(i, "email")
		case !normalize.IsValidEmail(normalized):
			errs.invalid(i, "email", "email is not a valid address")
		default:
			switch {
			case seen[normalized]:
				errs.duplicate(i, "email", fmtDuplicate("student", normalized))
			case refs.ExistingEmails[normalized]:
				errs.duplicate(i, "email", fmtDuplicate("student", normalized))
				seen[normalized] = true
			default:
				seen[normalized] = true
			}
		}

		studentNumber, _ := stringValue(it, "studentNumber")
		notes, _ := stringValue(it, "notes")

		out = append(out, models.User{
			ID:            primitive.NewObjectID(),
			DisplayName:   normalize.Name(name),
			Email:         normalized,
			Role:          models.RoleStudent,
			StudentNumber: studentNumber,
			Notes:         notes,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
	return out, errs.errs
}
