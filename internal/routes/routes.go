package routes

const (
	// Health
	Health = "/health"

	// Property management
	Properties = "/api/v1/properties"
	Property   = "/api/v1/properties/{slug}"

	// Pipeline runs
	RunProperty = "/api/v1/runs/property/{slug}"
	RunBatch    = "/api/v1/runs/batch"

	// Downstream read surface (dashboard / CRM)
	PropertySnapshots     = "/api/v1/properties/{slug}/snapshots"
	PropertySnapshotByDay = "/api/v1/properties/{slug}/snapshots/{date}"
	PropertyEvents        = "/api/v1/properties/{slug}/events"
)
