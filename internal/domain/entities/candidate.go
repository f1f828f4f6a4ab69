package entities

import "time"

// Airtable column names for the candidate table. The record store addresses
// fields by these fixed string keys; everything else in the system uses the
// typed Candidate entity.
const (
	FieldFullName             = "Full Name"
	FieldEmail                = "Email"
	FieldPhone                = "Phone"
	FieldLocation             = "Location"
	FieldLinkedIn             = "LinkedIn"
	FieldSummary              = "Summary"
	FieldExperience           = "Experience"
	FieldEducation            = "Education"
	FieldSkills               = "Skills"
	FieldCertifications       = "Certifications"
	FieldStatus               = "Status"
	FieldStage                = "Stage"
	FieldManagerRating        = "Manager Rating"
	FieldManagerComments      = "Manager Comments"
	FieldWillingToRelocate    = "Willing to Relocate"
	FieldIndustry             = "Industry"
	FieldSalesRoleType        = "Sales Role Type"
	FieldAnnualRevenue        = "Annual Revenue Generated"
	FieldBookOfBusiness       = "Book of Business"
	FieldTradeLanes           = "Trade Lanes"
	FieldImportExportFocus    = "Import Export Focus"
	FieldModeOfTransportation = "Mode of Transportation"
	FieldInterviewSummary     = "Interviewsummary"
	FieldShareTokenHash       = "Share Token Hash"
	FieldShareTokenExpires    = "Share Token Expires"
	FieldShareVisibleTabs     = "Share Visible Tabs"
	FieldCreatedDate          = "Created Date"
)

// Kanban pipeline stages, in board order
const (
	StageInitialScreening = "Initial Screening"
	StageInterviewed      = "Interviewed"
	StageProfileShared    = "Profile Shared"
	StageFinalDecision    = "Final Decision"
)

// KanbanStages lists the valid stages in board order
var KanbanStages = []string{
	StageInitialScreening,
	StageInterviewed,
	StageProfileShared,
	StageFinalDecision,
}

// IsValidStage reports whether stage is one of the known kanban stages
func IsValidStage(stage string) bool {
	for _, s := range KanbanStages {
		if s == stage {
			return true
		}
	}
	return false
}

// Candidate is the typed view of one record in the candidate store
type Candidate struct {
	ID                   string    `json:"id"`
	FullName             string    `json:"fullName"`
	Email                string    `json:"email"`
	Phone                string    `json:"phone"`
	Location             string    `json:"location"`
	LinkedIn             string    `json:"linkedin"`
	Summary              string    `json:"summary"`
	Experience           string    `json:"experience"`
	Education            string    `json:"education"`
	Skills               string    `json:"skills"`
	Certifications       string    `json:"certifications"`
	Status               string    `json:"status"`
	Stage                string    `json:"stage"`
	ManagerRating        float64   `json:"managerRating"`
	ManagerComments      string    `json:"managerComments"`
	WillingToRelocate    string    `json:"willingToRelocate"`
	Industry             string    `json:"industry"`
	SalesRoleType        string    `json:"salesRoleType"`
	AnnualRevenue        float64   `json:"annualRevenue"`
	BookOfBusiness       bool      `json:"bookOfBusiness"`
	TradeLanes           []string  `json:"tradeLanes"`
	ImportExportFocus    string    `json:"importExportFocus"`
	ModeOfTransportation []string  `json:"modeOfTransportation"`
	InterviewSummary     string    `json:"interviewSummary"`
	ShareTokenHash       string    `json:"-"`
	ShareTokenExpires    time.Time `json:"-"`
	ShareVisibleTabs     []string  `json:"-"`
	CreatedDate          string    `json:"createdDate"`
}

// HasInterviewSummary reports whether a durable summary already exists
func (c *Candidate) HasInterviewSummary() bool {
	return c != nil && c.InterviewSummary != ""
}
