package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Trick is a funding goal. CurrentAmount is only ever raised by pledges.
type Trick struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name            string    `json:"name" gorm:"not null"`
	ObjectiveAmount int64     `json:"objectiveAmount" gorm:"not null;default:0"`
	CurrentAmount   int64     `json:"currentAmount" gorm:"not null;default:0"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (trick *Trick) BeforeCreate(tx *gorm.DB) (err error) {
	if trick.ID == uuid.Nil {
		trick.ID = uuid.New()
	}
	return
}
