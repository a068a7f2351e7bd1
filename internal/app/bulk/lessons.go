package bulk

import (
	"time"

	"github.com/dalemusser/eduhub/internal/app/system/normalize"
	"github.com/dalemusser/eduhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LessonRefs carries pre-fetched store state for the lesson validator.
type LessonRefs struct {
	UnitIDs         map[primitive.ObjectID]bool
	TitleKeysByUnit map[primitive.ObjectID]map[string]bool
	MaxOrderByUnit  map[primitive.ObjectID]int
	ContentIDs      map[primitive.ObjectID]bool
}

// ValidateLessons validates and normalizes a lesson batch. Title uniqueness
// and auto-order assignment are scoped per parent unit; every referenced
// content id must exist.
func ValidateLessons(items []RawItem, refs LessonRefs, createdBy primitive.ObjectID) ([]models.Lesson, []ValidationError) {
	var errs errorList
	allocs := make(map[primitive.ObjectID]*orderAlloc)
	seen := make(map[primitive.ObjectID]map[string]bool)
	now := time.Now()

	out := make([]models.Lesson, 0, len(items))
	for i, it := range items {
		var unitID primitive.ObjectID
		raw, ok := stringValue(it, "unitId")
		switch {
		case !ok || raw == "":
			errs.required(i, "unitId")
		default:
			id, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				errs.invalid(i, "unitId", "unitId is not a valid id")
			} else if !refs.UnitIDs[id] {
				errs.invalid(i, "unitId", "unitId does not reference an existing unit")
			} else {
				unitID = id
			}
		}

		title, ok := stringValue(it, "title")
		if !ok || title == "" {
			errs.required(i, "title")
		}

		key := normalize.Key(title)
		if title != "" && !unitID.IsZero() {
			if seen[unitID] == nil {
				seen[unitID] = make(map[string]bool)
			}
			switch {
			case seen[unitID][key]:
				errs.duplicate(i, "title", fmtDuplicate("lesson", title))
			case refs.TitleKeysByUnit[unitID][key]:
				errs.duplicate(i, "title", fmtDuplicate("lesson", title))
				seen[unitID][key] = true
			default:
				seen[unitID][key] = true
			}
		}

		contentIDs := lessonContentIDs(it, i, refs.ContentIDs, &errs)

		status := publishStatusValue(it, i, &errs)
		order, explicit := orderValue(it, i, &errs)
		if !explicit {
			if allocs[unitID] == nil {
				allocs[unitID] = newOrderAlloc(refs.MaxOrderByUnit[unitID])
			}
			order = allocs[unitID].take()
		}

		out = append(out, models.Lesson{
			ID:            primitive.NewObjectID(),
			UnitID:        unitID,
			Title:         title,
			TitleCI:       key,
			Description:   descriptionValue(it, i, &errs),
			ContentIDs:    contentIDs,
			Tags:          tagsValue(it, i, &errs),
			PublishStatus: status,
			Order:         order,
			CreatedBy:     createdBy,
			UpdatedAt:     now,
		})
	}
	return out, errs.errs
}

// lessonContentIDs validates the optional contentIds list: every entry must
// be a well-formed id referencing an existing content document.
func lessonContentIDs(it RawItem, index int, known map[primitive.ObjectID]bool, errs *errorList) []primitive.ObjectID {
	v, ok := it["contentIds"]
	if !ok || v == nil {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		errs.invalid(index, "contentIds", "contentIds must be an array of ids")
		return nil
	}
	out := make([]primitive.ObjectID, 0, len(list))
	for _, e := range list {
		s, ok := e.(string)
		if !ok {
			errs.invalid(index, "contentIds", "contentIds must be an array of ids")
			return nil
		}
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			errs.invalid(index, "contentIds", "contentIds contains a malformed id")
			continue
		}
		if !known[id] {
			errs.invalid(index, "contentIds", "contentIds contains an unknown content id")
			continue
		}
		out = append(out, id)
	}
	return out
}
