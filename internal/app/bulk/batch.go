package bulk

import (
	"fmt"

	"github.com/dalemusser/eduhub/internal/app/system/limits"
)

// DecodeBatch extracts the item array stored under key from a decoded
// request body and runs the batch-level checks: the key must be present,
// its value must be an array, and the array must not exceed the per-batch
// item cap. A batch-level failure is reported at index 0 and short-circuits
// per-item validation entirely.
func DecodeBatch(body map[string]any, key string) ([]RawItem, []ValidationError) {
	v, ok := body[key]
	if !ok || v == nil {
		return nil, []ValidationError{{
			Index: 0, Field: key, Code: CodeRequired,
			Message: fmt.Sprintf("payload must contain a %q array", key),
		}}
	}

	list, ok := v.([]any)
	if !ok {
		return nil, []ValidationError{{
			Index: 0, Field: key, Code: CodeInvalid,
			Message: fmt.Sprintf("%q must be an array", key),
		}}
	}

	if len(list) > limits.MaxBatchItems {
		return nil, []ValidationError{{
			Index: 0, Field: key, Code: CodeLimitExceeded,
			Message: fmt.Sprintf("batch exceeds the %d-item limit", limits.MaxBatchItems),
		}}
	}

	items := make([]RawItem, 0, len(list))
	for i, e := range list {
		m, ok := e.(map[string]any)
		if !ok {
			return nil, []ValidationError{{
				Index: i, Field: key, Code: CodeInvalid,
				Message: "each item must be an object",
			}}
		}
		items = append(items, RawItem(m))
	}
	return items, nil
}
