package dtos

/*
RunRequest is the optional body for POST /api/v1/runs/property/{slug}
and /api/v1/runs/batch. Omitted fields default to the property-local
calendar day and the configured source label.
*/
type RunRequest struct {
	Date   string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Source string `json:"source" validate:"omitempty,max=100"`
}
