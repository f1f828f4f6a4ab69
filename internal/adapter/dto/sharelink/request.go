package sharelink

// GenerateRequest mints a new share link for a candidate profile
type GenerateRequest struct {
	ExpiresInDays int      `json:"expiresInDays" validate:"omitempty,min=1,max=90"`
	VisibleTabs   []string `json:"visibleTabs"`
}
