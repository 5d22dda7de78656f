package dto

import (
	"github.com/pathways-hq/pathways/internal/validator"
	"github.com/pathways-hq/pathways/internal/domain/departure"
	"github.com/pathways-hq/pathways/internal/types"
)

type DepartureResponse struct {
	*departure.Departure
	Checklist []*departure.ChecklistItem `json:"checklist,omitempty"`
}

// ListDeparturesResponse represents the response for listing departures
type ListDeparturesResponse = types.ListResponse[*DepartureResponse]

// UpdateChecklistItemRequest marks a checklist item met or unmet
type UpdateChecklistItemRequest struct {
	Code string `json:"code" validate:"required"`
	Met  bool   `json:"met"`
}

// ComplianceCheckResponse is the outcome of evaluating one departure
type ComplianceCheckResponse struct {
	DepartureID string                      `json:"departure_id"`
	CandidateID string                      `json:"candidate_id"`
	Result      *departure.ComplianceResult `json:"result"`
}

// ComplianceScanResponse summarizes a scan over all departures
type ComplianceScanResponse struct {
	Scanned      int `json:"scanned"`
	Compliant    int `json:"compliant"`
	Partial      int `json:"partial"`
	Pending      int `json:"pending"`
	NonCompliant int `json:"non_compliant"`
	Failed       int `json:"failed"`

	DryRun bool `json:"dry_run"`
}

func (r *UpdateChecklistItemRequest) Validate() error {
	return validator.ValidateRequest(r)
}
