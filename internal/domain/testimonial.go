package domain

import (
	"time"

	"github.com/google/uuid"
)

// Testimonial is read-only for the service; rows are curated in the store.
type Testimonial struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	CustomerName string    `json:"customerName" gorm:"type:varchar(200);not null"`
	Content      string    `json:"content" gorm:"type:text;not null"`
	Rating       int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
