package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is a real-estate development listing. Image holds the ordered list
// of object-store URLs; it is never empty after a successful create or update.
type Project struct {
	ID             uuid.UUID     `json:"id"`
	Title          LocalizedText `json:"title"`
	Type           string        `json:"type"`
	Description    LocalizedText `json:"description"`
	Image          []string      `json:"image"`
	Status         LocalizedText `json:"status"`
	Location       LocalizedText `json:"location"`
	CompletionDate *time.Time    `json:"completionDate,omitempty"`
	Features       LocalizedList `json:"features"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// ProjectFilter narrows ListProjects. Zero values mean "no filter".
type ProjectFilter struct {
	Status string
	Type   string
}
