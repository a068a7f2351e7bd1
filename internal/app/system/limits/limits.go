// internal/app/system/limits/limits.go
package limits

// Request body size and batch limits for import and admin endpoints.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxImportBodySize is the maximum size for bulk import request bodies
	// (JSON or CSV).
	MaxImportBodySize = 5 << 20 // 5 MB

	// MaxAdminBodySize is the maximum size for single-item admin
	// create/update bodies.
	MaxAdminBodySize = 1 << 20 // 1 MB

	// MaxBatchItems is the maximum number of items accepted in one bulk
	// import batch. Exceeding it is a single batch-level error; no per-item
	// validation runs.
	MaxBatchItems = 300
)
