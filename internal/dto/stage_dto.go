package dto

// CreateStageRequest represents the request to create a construction stage.
// Dates are exchanged as ISO-8601 UTC strings (2006-01-02T15:04:05Z); the
// service layer owns parsing and validation, so no binding tags here.
// Duration is accepted for wire compatibility but always ignored: it is
// derived from startDate, endDate and durationUnit.
type CreateStageRequest struct {
	Name         string   `json:"name"`
	StartDate    string   `json:"startDate"`
	EndDate      *string  `json:"endDate"`
	Duration     *float64 `json:"duration"`
	DurationUnit string   `json:"durationUnit"`
	Color        *string  `json:"color"`
	ExternalID   *string  `json:"externalId"`
	Status       string   `json:"status"`
}

// UpdateStageRequest represents a partial update. Every field is tri-state
// so the service can tell an omitted key from an explicit null. Only
// endDate honors null as a meaningful value ("clear the end date"); null
// for any other field is rejected during validation.
type UpdateStageRequest struct {
	Name         Optional[string]  `json:"name"`
	StartDate    Optional[string]  `json:"startDate"`
	EndDate      Optional[string]  `json:"endDate"`
	Duration     Optional[float64] `json:"duration"`
	DurationUnit Optional[string]  `json:"durationUnit"`
	Color        Optional[string]  `json:"color"`
	ExternalID   Optional[string]  `json:"externalId"`
	Status       Optional[string]  `json:"status"`
}

// IsEmpty reports whether the payload carries no writable field at all.
// Duration does not count: it is never caller-settable.
func (r *UpdateStageRequest) IsEmpty() bool {
	return !r.Name.Set && !r.StartDate.Set && !r.EndDate.Set &&
		!r.DurationUnit.Set && !r.Color.Set && !r.ExternalID.Set && !r.Status.Set
}

// StageResponse represents a construction stage as returned to callers.
// Timestamp fields are re-formatted from the persisted record, never
// echoed from the request.
type StageResponse struct {
	ID           uint     `json:"id"`
	Name         string   `json:"name"`
	StartDate    string   `json:"startDate"`
	EndDate      *string  `json:"endDate"`
	Duration     *float64 `json:"duration"`
	DurationUnit string   `json:"durationUnit"`
	Color        *string  `json:"color"`
	ExternalID   *string  `json:"externalId"`
	Status       string   `json:"status"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
}
