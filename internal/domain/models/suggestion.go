package models

// Suggestion is a single ranked candidate produced by a scoring collaborator.
// It is identified only by free text and must be reconciled against the
// catalog before anything downstream may trust it.
type Suggestion struct {
	Title    string   `json:"title" validate:"required"`
	Company  string   `json:"company" validate:"required"`
	Score    float64  `json:"score" validate:"gte=0,lte=100"`
	Location string   `json:"location,omitempty"`
	Stipend  string   `json:"stipend,omitempty"`
	Field    string   `json:"field,omitempty"`
	Duration string   `json:"duration,omitempty"`
	Skills   string   `json:"skills,omitempty"`
	Type     string   `json:"type,omitempty"`
	Reasons  []string `json:"reasons,omitempty"`
}

// Match is a Suggestion resolved to a catalog posting.
type Match struct {
	Suggestion
	PostingID uint `json:"internship_id"`
}
