package scorer

import (
	"github.com/maxaizer/intern-match/internal/domain/models"
	"github.com/samber/lo"
	"strings"
)

// Request is the single JSON document handed to a scoring collaborator. The
// field names follow the original matcher script, so that script can be used
// unchanged as a process scorer.
type Request struct {
	User        Candidate        `json:"user"`
	Internships []PostingPayload `json:"internships"`
}

type Candidate struct {
	UserID            string `json:"user_id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Location          string `json:"location"`
	About             string `json:"about_me"`
	Skills            string `json:"skills"`
	Expertise         string `json:"professional_title"`
	PreferredRole     string `json:"preferred_role"`
	InternshipType    string `json:"internship_type"`
	PreferredLocation string `json:"preferred_location"`
	ExpectedStipend   string `json:"expected_stipend"`
}

type PostingPayload struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Stipend     string `json:"stipend"`
	Field       string `json:"field"`
	Duration    string `json:"duration"`
	Skills      string `json:"skills"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// NewRequest builds the payload. Posting identifiers are deliberately left
// out: suggestions are resolved back to the catalog by title and company.
func NewRequest(profile models.Profile, postings []models.Posting) Request {
	preferredLocation := profile.PreferredLocation
	if preferredLocation == "" {
		preferredLocation = profile.Location
	}

	return Request{
		User: Candidate{
			UserID:            profile.UserID,
			Name:              profile.FullName,
			Email:             profile.Email,
			Location:          profile.Location,
			About:             profile.About,
			Skills:            strings.Join(profile.SkillNames(), ", "),
			Expertise:         profile.Title,
			PreferredRole:     profile.PreferredRole,
			InternshipType:    profile.InternshipType,
			PreferredLocation: preferredLocation,
			ExpectedStipend:   profile.ExpectedStipend,
		},
		Internships: lo.Map(postings, func(p models.Posting, _ int) PostingPayload {
			return PostingPayload{
				Title:       p.Title,
				Company:     p.Company,
				Location:    p.Location,
				Stipend:     p.Stipend,
				Field:       p.Field,
				Duration:    p.Duration,
				Skills:      p.Skills,
				Type:        string(p.Type),
				Description: p.Description,
			}
		}),
	}
}
