// Package bulk validates batch-import payloads for each entity family.
//
// Every validator follows the same contract: it receives the decoded raw
// items plus pre-fetched reference sets (existing uniqueness keys, parent id
// sets, max display orders), and returns the normalized documents together
// with every field-level problem it found. Callers persist the documents
// only when the error list is empty; partial success is never returned.
package bulk

// Error codes carried on ValidationError. These are part of the import API
// response shape consumed by the admin UI.
const (
	CodeRequired      = "required"
	CodeInvalid       = "invalid"
	CodeDuplicate     = "duplicate"
	CodeLimitExceeded = "limit_exceeded"
)

// ValidationError describes one field-level problem in a submitted batch.
// Index is the zero-based position of the offending item in the submitted
// array; batch-level failures use index 0.
type ValidationError struct {
	Index   int    `json:"index"`
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorList struct {
	errs []ValidationError
}

func (l *errorList) add(index int, field, code, message string) {
	l.errs = append(l.errs, ValidationError{Index: index, Field: field, Code: code, Message: message})
}

func (l *errorList) required(index int, field string) {
	l.add(index, field, CodeRequired, field+" is required")
}

func (l *errorList) invalid(index int, field, message string) {
	l.add(index, field, CodeInvalid, message)
}

func (l *errorList) duplicate(index int, field, message string) {
	l.add(index, field, CodeDuplicate, message)
}
