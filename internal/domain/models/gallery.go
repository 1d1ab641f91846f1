package models

import (
	"time"

	"github.com/google/uuid"
)

// GalleryEntry denormalizes a single project image into its own row. The set
// of entries for a project mirrors that project's Image list after every
// successful write.
type GalleryEntry struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
