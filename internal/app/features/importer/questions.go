package importer

import (
	"context"
	"net/http"

	"github.com/dalemusser/eduhub/internal/app/bulk"
	questionstore "github.com/dalemusser/eduhub/internal/app/store/questions"
	"github.com/dalemusser/eduhub/internal/app/system/apiutil"
	"github.com/dalemusser/eduhub/internal/app/system/limits"
	"github.com/dalemusser/eduhub/internal/app/system/timeouts"
)

// ImportQuestions handles POST /api/import/questions.
func (h *Handler) ImportQuestions(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if !apiutil.DecodeBody(w, r, limits.MaxImportBodySize, &body) {
		return
	}
	user, ok := h.caller(w, r, bodyUserID(body))
	if !ok {
		return
	}

	items, verrs := bulk.DecodeBatch(body, "questions")
	if len(verrs) > 0 {
		apiutil.WriteValidationFailed(w, verrs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	store := questionstore.New(h.DB)
	promptKeys, err := store.ExistingPromptKeys(ctx)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "importer: load question prompts failed", err)
		return
	}
	maxOrder, err := store.MaxOrder(ctx)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "importer: load question max order failed", err)
		return
	}

	questions, verrs := bulk.ValidateQuestions(items, bulk.QuestionRefs{
		ExistingPromptKeys: promptKeys,
		MaxOrder:           maxOrder,
	}, user.ID)
	if len(verrs) > 0 {
		apiutil.WriteValidationFailed(w, verrs)
		return
	}

	if err := store.InsertMany(ctx, questions); err != nil {
		h.insertFailed(w, "questions", err, questionstore.ErrDuplicatePrompt)
		return
	}

	h.accepted(w, "questions", len(questions), user.ID.Hex())
}
