package bulk

import (
	"time"

	"github.com/dalemusser/eduhub/internal/app/system/normalize"
	"github.com/dalemusser/eduhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubjectRefs carries the pre-fetched store state the subject validator
// checks against: one read per batch, not per item.
type SubjectRefs struct {
	ExistingNameKeys map[string]bool
	MaxOrder         int
}

// ValidateSubjects validates and normalizes a subject batch. The returned
// documents are only safe to persist when the error list is empty.
func ValidateSubjects(items []RawItem, refs SubjectRefs, createdBy primitive.ObjectID) ([]models.Subject, []ValidationError) {
	var errs errorList
	alloc := newOrderAlloc(refs.MaxOrder)
	seen := make(map[string]bool, len(items))
	now := time.Now()

	out := make([]models.Subject, 0, len(items))
	for i, it := range items {
		name, ok := stringValue(it, "name")
		if !ok || name == "" {
			errs.required(i, "name")
		}

		// First occurrence of a name wins; only later collisions error.
		key := normalize.Key(name)
		if name != "" {
			switch {
			case seen[key]:
				errs.duplicate(i, "name", fmtDuplicate("subject", name))
			case refs.ExistingNameKeys[key]:
				errs.duplicate(i, "name", fmtDuplicate("subject", name))
				seen[key] = true
			default:
				seen[key] = true
			}
		}

		status := publishStatusValue(it, i, &errs)
		order, explicit := orderValue(it, i, &errs)
		if !explicit {
			order = alloc.take()
		}

		out = append(out, models.Subject{
			ID:            primitive.NewObjectID(),
			Name:          name,
			NameCI:        key,
			Description:   descriptionValue(it, i, &errs),
			PublishStatus: status,
			Order:         order,
			CreatedBy:     createdBy,
			UpdatedAt:     now,
		})
	}
	return out, errs.errs
}
