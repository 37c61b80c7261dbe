package models

import (
	"strings"
	"time"
)

type PostingType string

const (
	FullTime PostingType = "Full-time"
	PartTime PostingType = "Part-time"
	Remote   PostingType = "Remote"
)

// NormalizePostingType maps loosely written types ("full time", "REMOTE") to
// the catalog values. Unknown or empty input falls back to FullTime.
func NormalizePostingType(s string) PostingType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "part-time", "part time":
		return PartTime
	case "remote":
		return Remote
	default:
		return FullTime
	}
}

type Posting struct {
	ID          uint        `gorm:"primaryKey;autoIncrement" json:"internship_id" yaml:"-"`
	Title       string      `gorm:"not null" json:"title" yaml:"title"`
	Company     string      `gorm:"not null;index" json:"company" yaml:"company"`
	Location    string      `json:"location" yaml:"location"`
	Stipend     string      `json:"stipend" yaml:"stipend"`
	Field       string      `json:"field" yaml:"field"`
	Duration    string      `json:"duration" yaml:"duration"`
	Skills      string      `json:"skills" yaml:"skills"`
	Type        PostingType `json:"type" yaml:"type"`
	Description string      `json:"description" yaml:"description"`
	CreatedAt   time.Time   `json:"created_at" yaml:"-"`
	UpdatedAt   time.Time   `json:"updated_at" yaml:"-"`
}
