package bulk

import (
	"time"

	"github.com/dalemusser/eduhub/internal/app/system/normalize"
	"github.com/dalemusser/eduhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UnitRefs carries pre-fetched store state for the unit validator: the set
// of valid parent subjects, per-subject existing name keys, and per-subject
// max display orders.
type UnitRefs struct {
	SubjectIDs        map[primitive.ObjectID]bool
	NameKeysBySubject map[primitive.ObjectID]map[string]bool
	MaxOrderBySubject map[primitive.ObjectID]int
}

// ValidateUnits validates and normalizes a unit batch. Name uniqueness and
// auto-order assignment are scoped per parent subject.
func ValidateUnits(items []RawItem, refs UnitRefs, createdBy primitive.ObjectID) ([]models.Unit, []ValidationError) {
	var errs errorList
	allocs := make(map[primitive.ObjectID]*orderAlloc)
	seen := make(map[primitive.ObjectID]map[string]bool)
	now := time.Now()

	out := make([]models.Unit, 0, len(items))
	for i, it := range items {
		var subjectID primitive.ObjectID
		raw, ok := stringValue(it, "subjectId")
		switch {
		case !ok || raw == "":
			errs.required(i, "subjectId")
		default:
			id, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				errs.invalid(i, "subjectId", "subjectId is not a valid id")
			} else if !refs.SubjectIDs[id] {
				errs.invalid(i, "subjectId", "subjectId does not reference an existing subject")
			} else {
				subjectID = id
			}
		}

		name, ok := stringValue(it, "name")
		if !ok || name == "" {
			errs.required(i, "name")
		}

		key := normalize.Key(name)
		if name != "" && !subjectID.IsZero() {
			if seen[subjectID] == nil {
				seen[subjectID] = make(map[string]bool)
			}
			switch {
			case seen[subjectID][key]:
				errs.duplicate(i, "name", fmtDuplicate("unit", name))
			case refs.NameKeysBySubject[subjectID][key]:
				errs.duplicate(i, "name", fmtDuplicate("unit", name))
				seen[subjectID][key] = true
			default:
				seen[subjectID][key] = true
			}
		}

		status := publishStatusValue(it, i, &errs)
		order, explicit := orderValue(it, i, &errs)
		if !explicit {
			if allocs[subjectID] == nil {
				allocs[subjectID] = newOrderAlloc(refs.MaxOrderBySubject[subjectID])
			}
			order = allocs[subjectID].take()
		}

		out = append(out, models.Unit{
			ID:            primitive.NewObjectID(),
			SubjectID:     subjectID,
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
