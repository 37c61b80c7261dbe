package models

import (
	"fmt"
	"strings"
	"time"
)

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "Pending"
	StatusAccepted ApplicationStatus = "Accepted"
	StatusRejected ApplicationStatus = "Rejected"
)

var ApplicationStatuses = []ApplicationStatus{StatusPending, StatusAccepted, StatusRejected}

func ParseStatus(s string) (ApplicationStatus, error) {
	switch ApplicationStatus(strings.TrimSpace(s)) {
	case StatusPending:
		return StatusPending, nil
	case StatusAccepted:
		return StatusAccepted, nil
	case StatusRejected:
		return StatusRejected, nil
	default:
		return "", fmt.Errorf("unknown application status %q", s)
	}
}

// Application is an append-only ledger row. The user and posting fields are a
// snapshot taken at apply time, so the record stays readable after the
// posting is edited or removed.
type Application struct {
	ID           string            `gorm:"primaryKey;size:36" json:"application_id"`
	UserID       string            `gorm:"not null;index" json:"user_id"`
	PostingID    uint              `gorm:"not null" json:"internship_id"`
	UserName     string            `json:"user_name"`
	UserEmail    string            `json:"user_email"`
	PostingTitle string            `json:"internship_title"`
	CompanyName  string            `json:"company_name"`
	Status       ApplicationStatus `gorm:"not null;default:Pending;index" json:"application_status"`
	AppliedAt    time.Time         `gorm:"not null;index" json:"applied_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type ApplicationDetails struct {
	Application
	Description string `json:"description"`
}

type ApplicationsSummary struct {
	Total        int64         `json:"total_applications"`
	Applications []Application `json:"applications"`
}
