package dto

import (
	"time"

	"prime_estate/internal/domain/models"
	"prime_estate/internal/storage"
)

// CreateProjectInput is the normalized multipart payload for a new project.
// Localized fields accept both a plain string and an {en, ar} pair; the
// handler normalizes them once on ingress.
type CreateProjectInput struct {
	Title          models.LocalizedText
	Type           string
	Description    models.LocalizedText
	Status         models.LocalizedText
	Location       models.LocalizedText
	CompletionDate *time.Time
	Features       models.LocalizedList
	Files          []storage.FileUpload
}

// UpdateProjectInput carries partial field updates. Nil pointers mean "leave
// unchanged". RemovedImages holds image URLs to drop, Files holds new uploads.
type UpdateProjectInput struct {
	Title          *models.LocalizedText
	Type           *string
	Description    *models.LocalizedText
	Status         *models.LocalizedText
	Location       *models.LocalizedText
	CompletionDate *time.Time
	Features       *models.LocalizedList
	RemovedImages  []string
	Files          []storage.FileUpload
}

// ProjectPage is one page of the project listing.
type ProjectPage struct {
	Items       []models.Project
	Total       int
	TotalPages  int
	CurrentPage int
}
