package bulk

import (
	"net/url"
	"time"

	"github.com/dalemusser/eduhub/internal/app/system/normalize"
	"github.com/dalemusser/eduhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentRefs carries pre-fetched store state for the content validator.
type ContentRefs struct {
	ExistingTitleKeys map[string]bool
	MaxOrder          int
}

// ValidateContents validates and normalizes a content batch. Each item is a
// tagged variant (video, quiz, link) with its own required metadata fields
// on top of the shared title/description/tags/publishStatus/order checks.
func ValidateContents(items []RawItem, refs ContentRefs, createdBy primitive.ObjectID) ([]models.Content, []ValidationError) {
	var errs errorList
	alloc := newOrderAlloc(refs.MaxOrder)
	seen := make(map[string]bool, len(items))
	now := time.Now()

	out := make([]models.Content, 0, len(items))
	for i, it := range items {
		ctype, ok := stringValue(it, "type")
		switch {
		case !ok || ctype == "":
			errs.required(i, "type")
		case !models.IsValidContentType(ctype):
			errs.invalid(i, "type", `type must be "video", "quiz", or "link"`)
		}

		title, ok := stringValue(it, "title")
		if !ok || title == "" {
			errs.required(i, "title")
		}

		key := normalize.Key(title)
		if title != "" {
			switch {
			case seen[key]:
				errs.duplicate(i, "title", fmtDuplicate("content", title))
			case refs.ExistingTitleKeys[key]:
				errs.duplicate(i, "title", fmtDuplicate("content", title))
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

		out = append(out, models.Content{
			ID:            primitive.NewObjectID(),
			Title:         title,
			TitleCI:       key,
			Description:   descriptionValue(it, i, &errs),
			Tags:          tagsValue(it, i, &errs),
			PublishStatus: status,
			Order:         order,
			Metadata:      contentMetadata(it, i, ctype, &errs),
			CreatedBy:     createdBy,
			UpdatedAt:     now,
		})
	}
	return out, errs.errs
}

// contentMetadata runs the variant-specific required-field checks and builds
// the normalized metadata document.
func contentMetadata(it RawItem, index int, ctype string, errs *errorList) models.ContentMetadata {
	md := models.ContentMetadata{Type: ctype}

	switch ctype {
	case models.ContentTypeVideo:
		videoID, ok := stringValue(it, "youtubeVideoId")
		if !ok || videoID == "" {
			errs.required(index, "youtubeVideoId")
		}
		md.YouTubeVideoID = videoID

		dur, ok := numberValue(it, "durationSec")
		if !ok || dur <= 0 {
			errs.invalid(index, "durationSec", "durationSec must be a number > 0")
		} else {
			md.DurationSec = int(dur)
		}

	case models.ContentTypeQuiz:
		md.QuestionIDs = quizQuestionIDs(it, index, errs)

		per, ok := numberValue(it, "questionsPerAttempt")
		if !ok || per <= 0 {
			errs.invalid(index, "questionsPerAttempt", "questionsPerAttempt must be a number > 0")
		} else {
			md.QuestionsPerAttempt = int(per)
		}

		// allowRetry must be an explicit boolean, not merely truthy.
		if v, present := it["allowRetry"]; !present || v == nil {
			errs.required(index, "allowRetry")
		} else if b, ok := v.(bool); !ok {
			errs.invalid(index, "allowRetry", "allowRetry must be a boolean")
		} else {
			md.AllowRetry = &b
		}

		if present(it, "timeLimitSec") {
			limit, ok := numberValue(it, "timeLimitSec")
			if !ok || limit <= 0 {
				errs.invalid(index, "timeLimitSec", "timeLimitSec must be a number > 0")
			} else {
				md.TimeLimitSec = int(limit)
			}
		}

	case models.ContentTypeLink:
		raw, ok := stringValue(it, "url")
		if !ok || raw == "" {
			errs.required(index, "url")
			break
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs.invalid(index, "url", "url must be a valid http or https URL")
			break
		}
		md.URL = raw
	}

	return md
}

// quizQuestionIDs validates the question pool reference list.
func quizQuestionIDs(it RawItem, index int, errs *errorList) []primitive.ObjectID {
	v, ok := it["questionIds"]
	if !ok || v == nil {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		errs.invalid(index, "questionIds", "questionIds must be an array of ids")
		return nil
	}
	out := make([]primitive.ObjectID, 0, len(list))
	for _, e := range list {
		s, ok := e.(string)
		if !ok {
			errs.invalid(index, "questionIds", "questionIds must be an array of ids")
			return nil
		}
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			errs.invalid(index, "questionIds", "questionIds contains a malformed id")
			continue
		}
		out = append(out, id)
	}
	return out
}
