package types

// BatchStatus is the scheduling state of a training batch
type BatchStatus string

const (
	BatchStatusPlanned   BatchStatus = "planned"
	BatchStatusOngoing   BatchStatus = "ongoing"
	BatchStatusCompleted BatchStatus = "completed"
)

func (s BatchStatus) String() string {
	return string(s)
}

// BatchFilter filters training batch queries
type BatchFilter struct {
	*QueryFilter
	CampusID    string      `json:"campus_id,omitempty" form:"campus_id"`
	TradeID     string      `json:"trade_id,omitempty" form:"trade_id"`
	BatchStatus BatchStatus `json:"batch_status,omitempty" form:"batch_status"`
}

// NewBatchFilter creates a filter with default pagination
func NewBatchFilter() *BatchFilter {
	return &BatchFilter{QueryFilter: NewDefaultQueryFilter()}
}

// Validate validates the batch filter
func (f *BatchFilter) Validate() error {
	return f.QueryFilter.Validate()
}
