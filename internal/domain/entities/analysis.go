package entities

// NotMentioned is the literal the analysis prompt requires for any profile
// field the candidate did not bring up in the interview.
const NotMentioned = "Not mentioned"

// AnalysisResult represents the structured output of the interview analysis
type AnalysisResult struct {
	OverallSummary      string           `json:"overallSummary"`
	Strengths           []string         `json:"strengths"`
	Weaknesses          []string         `json:"weaknesses"`
	KeySkills           []string         `json:"keySkills"`
	CultureFit          string           `json:"cultureFit"`
	RecommendationScore int              `json:"recommendationScore"`
	Recommendation      string           `json:"recommendation"`
	NotableQuotes       []string         `json:"notableQuotes"`
	RedFlags            []string         `json:"redFlags"`
	CandidateProfile    CandidateProfile `json:"candidateProfile"`
}

// CandidateProfile holds the profile facts extracted from the transcript.
// Every field is a string; unmentioned facts carry the NotMentioned literal
// rather than being empty or omitted.
type CandidateProfile struct {
	TradeLane            string `json:"tradeLane"`
	PreferredCompanyType string `json:"preferredCompanyType"`
	PreferredLocation    string `json:"preferredLocation"`
	WillingToRelocate    string `json:"willingToRelocate"`
	CurrentRole          string `json:"currentRole"`
	CurrentRevenue       string `json:"currentRevenue"`
	SalaryExpectation    string `json:"salaryExpectation"`
	BookOfBusiness       string `json:"bookOfBusiness"`
	YearsOfExperience    string `json:"yearsOfExperience"`
	ImportExportFocus    string `json:"importExportFocus"`
	Industry             string `json:"industry"`
	ModeOfTransportation string `json:"modeOfTransportation"`
}

// Normalize enforces the schema invariants after parsing: nil slices become
// empty slices and empty profile fields become the NotMentioned literal. The
// model is prompted to fill everything, but a JSON-parseable answer with
// missing fields must not leak empty strings into the UI or the record store.
func (r *AnalysisResult) Normalize() {
	if r.Strengths == nil {
		r.Strengths = []string{}
	}
	if r.Weaknesses == nil {
		r.Weaknesses = []string{}
	}
	if r.KeySkills == nil {
		r.KeySkills = []string{}
	}
	if r.NotableQuotes == nil {
		r.NotableQuotes = []string{}
	}
	if r.RedFlags == nil {
		r.RedFlags = []string{}
	}

	fields := []*string{
		&r.CandidateProfile.TradeLane,
		&r.CandidateProfile.PreferredCompanyType,
		&r.CandidateProfile.PreferredLocation,
		&r.CandidateProfile.WillingToRelocate,
		&r.CandidateProfile.CurrentRole,
		&r.CandidateProfile.CurrentRevenue,
		&r.CandidateProfile.SalaryExpectation,
		&r.CandidateProfile.BookOfBusiness,
		&r.CandidateProfile.YearsOfExperience,
		&r.CandidateProfile.ImportExportFocus,
		&r.CandidateProfile.Industry,
		&r.CandidateProfile.ModeOfTransportation,
	}
	for _, f := range fields {
		if *f == "" {
			*f = NotMentioned
		}
	}
}
