package events

import "github.com/maxaizer/intern-match/internal/domain/models"

var ApplicationSubmittedTopic = "ApplicationSubmittedEvent"

type ApplicationSubmitted struct {
	Application models.Application
}

var ApplicationStatusChangedTopic = "ApplicationStatusChangedEvent"

type ApplicationStatusChanged struct {
	ApplicationID string
	UserID        string
	From          models.ApplicationStatus
	To            models.ApplicationStatus
}
