package bulk

import (
	"fmt"
	"strings"

	"github.com/dalemusser/eduhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/eduhub/internal/domain/models"
)

// RawItem is one loosely typed record from a decoded JSON (or CSV-derived)
// import payload. JSON numbers arrive as float64.
type RawItem map[string]any

// stringValue returns the trimmed string at field. ok is false when the
// field is absent, nil, or not a string.
func stringValue(it RawItem, field string) (string, bool) {
	v, present := it[field]
	if !present || v == nil {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// numberValue returns the numeric value at field. ok is false when absent
// or not a number.
func numberValue(it RawItem, field string) (float64, bool) {
	v, present := it[field]
	if !present || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// present reports whether the field exists with a non-nil value.
func present(it RawItem, field string) bool {
	v, ok := it[field]
	return ok && v != nil
}

// tagsValue validates the optional tags field: when present it must be an
// array of strings. Returns the trimmed tags and records an error otherwise.
func tagsValue(it RawItem, index int, errs *errorList) []string {
	v, ok := it["tags"]
	if !ok || v == nil {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		errs.invalid(index, "tags", "tags must be an array of strings")
		return nil
	}
	out := make([]string, 0, len(list))
	for _, e := range list {
		s, ok := e.(string)
		if !ok {
			errs.invalid(index, "tags", "tags must be an array of strings")
			return nil
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// publishStatusValue validates the optional publishStatus field and returns
// the effective value, defaulting to private when absent.
func publishStatusValue(it RawItem, index int, errs *errorList) string {
	v, ok := it["publishStatus"]
	if !ok || v == nil {
		return models.PublishPrivate
	}
	s, ok := v.(string)
	if !ok || !models.IsValidPublishStatus(s) {
		errs.invalid(index, "publishStatus", `publishStatus must be "public" or "private"`)
		return models.PublishPrivate
	}
	return s
}

// orderValue validates the optional order field. explicit is false when the
// field is absent and the caller should auto-assign.
func orderValue(it RawItem, index int, errs *errorList) (order int, explicit bool) {
	v, ok := it["order"]
	if !ok || v == nil {
		return 0, false
	}
	n, ok := numberValue(it, "order")
	if !ok || n < 1 {
		errs.invalid(index, "order", "order must be a number >= 1")
		return 0, false
	}
	return int(n), true
}

// descriptionValue validates the optional description field: when present it
// must be a structured document.
func descriptionValue(it RawItem, index int, errs *errorList) models.RichText {
	v, ok := it["description"]
	if !ok || v == nil {
		return models.EmptyDoc()
	}
	m, ok := v.(map[string]any)
	if !ok {
		errs.invalid(index, "description", "description must be a structured document")
		return models.EmptyDoc()
	}
	rt, _ := models.RichTextFromAny(m)
	return htmlsanitize.Document(rt)
}

// richTextValue converts a rich-text field that accepts either a plain
// string or a structured document. ok is false when the value has an
// unusable type.
func richTextValue(it RawItem, field string) (models.RichText, bool) {
	v, present := it[field]
	if !present || v == nil {
		return models.EmptyDoc(), true
	}
	rt, ok := models.RichTextFromAny(v)
	return htmlsanitize.Document(rt), ok
}

// answerKeys normalizes a correct-answer or submitted-answer value into a
// list of trimmed non-empty keys. A plain string becomes a one-element list;
// non-string array elements are dropped.
func answerKeys(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		if s := strings.TrimSpace(val); s != "" {
			return []string{s}
		}
		return nil
	case []any:
		out := make([]string, 0, len(val))
		for _, e := range val {
			if s, ok := e.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	case []string:
		out := make([]string, 0, len(val))
		for _, s := range val {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// choiceList extracts {key, label} choice objects from a raw value.
// Malformed entries (non-string or empty key, missing label) are dropped
// silently; the caller decides whether an empty result is an error.
func choiceList(v any) []models.Choice {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]models.Choice, 0, len(list))
	for _, e := range list {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		key, ok := m["key"].(string)
		if !ok || strings.TrimSpace(key) == "" {
			continue
		}
		labelRaw, ok := m["label"]
		if !ok || labelRaw == nil {
			continue
		}
		label, ok := models.RichTextFromAny(labelRaw)
		if !ok {
			continue
		}
		out = append(out, models.Choice{Key: strings.TrimSpace(key), Label: label})
	}
	return out
}

// orderAlloc hands out auto-assigned display orders starting above an
// existing maximum, advancing only when an item actually takes one.
type orderAlloc struct {
	next int
}

func newOrderAlloc(existingMax int) *orderAlloc {
	return &orderAlloc{next: existingMax + 1}
}

func (a *orderAlloc) take() int {
	n := a.next
	a.next++
	return n
}

func fmtDuplicate(kind, value string) string {
	return fmt.Sprintf("%s %q already exists", kind, value)
}
