package models

import "time"

type Profile struct {
	UserID            string    `gorm:"primaryKey" json:"user_id" validate:"required"`
	FullName          string    `json:"name"`
	Email             string    `gorm:"index" json:"email" validate:"omitempty,email"`
	Title             string    `json:"title"`
	Phone             string    `json:"phone"`
	Location          string    `json:"location"`
	About             string    `json:"about"`
	PictureURL        string    `json:"picture"`
	CompletionScore   int       `json:"completion_score" validate:"gte=0,lte=100"`
	PreferredRole     string    `json:"preferred_role"`
	InternshipType    string    `json:"internship_type"`
	PreferredLocation string    `json:"preferred_location"`
	ExpectedStipend   string    `json:"expected_stipend"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	Skills         []Skill         `gorm:"foreignKey:UserID;references:UserID" json:"skills" validate:"dive"`
	Education      []Education     `gorm:"foreignKey:UserID;references:UserID" json:"education" validate:"dive"`
	Certifications []Certification `gorm:"foreignKey:UserID;references:UserID" json:"certifications" validate:"dive"`
	Achievements   []Achievement   `gorm:"foreignKey:UserID;references:UserID" json:"achievements" validate:"dive"`
	Projects       []Project       `gorm:"foreignKey:UserID;references:UserID" json:"projects" validate:"dive"`

	TotalApplications int64 `gorm:"-" json:"total_applications"`
}

type Skill struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	UserID string `gorm:"not null;index" json:"-"`
	Name   string `gorm:"not null" json:"name" validate:"required"`
}

func (Skill) TableName() string { return "profile_skills" }

type Education struct {
	ID          uint   `gorm:"primaryKey" json:"-"`
	UserID      string `gorm:"not null;index" json:"-"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Period      string `json:"period"`
	Details     string `json:"details"`
}

func (Education) TableName() string { return "profile_education" }

type Certification struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	UserID     string `gorm:"not null;index" json:"-"`
	Name       string `json:"cert_name" validate:"required"`
	IssuingOrg string `json:"issuing_org"`
	Year       string `json:"year"`
}

func (Certification) TableName() string { return "profile_certifications" }

type Achievement struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	UserID   string `gorm:"not null;index" json:"-"`
	Title    string `json:"title" validate:"required"`
	EventOrg string `json:"event_org"`
	Year     string `json:"year"`
}

func (Achievement) TableName() string { return "profile_achievements" }

type Project struct {
	ID          uint   `gorm:"primaryKey" json:"-"`
	UserID      string `gorm:"not null;index" json:"-"`
	Title       string `json:"title" validate:"required"`
	Year        string `json:"year"`
	Description string `json:"description"`
}

func (Project) TableName() string { return "profile_projects" }

// SkillNames flattens the skills collection, which is what scorers consume.
func (p Profile) SkillNames() []string {
	names := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		names = append(names, s.Name)
	}
	return names
}
