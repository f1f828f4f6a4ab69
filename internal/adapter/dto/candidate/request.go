package candidate

// UpdateRequest carries a partial field update for one candidate record.
// Keys are record store column names; unknown keys are passed through.
type UpdateRequest struct {
	Fields map[string]interface{} `json:"fields" validate:"required"`
}

// SummaryRequest carries an interview summary payload. The field name
// matches the record store column it lands in.
type SummaryRequest struct {
	InterviewSummary string `json:"InterviewSummary" validate:"required"`
}

// MoveStageRequest moves a candidate to another kanban column
type MoveStageRequest struct {
	Stage string `json:"stage" validate:"required,stage"`
}
