package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Spot struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name        string    `json:"name" gorm:"not null"`
	ImagePath   string    `json:"imagePath"`
	Description string    `json:"description"`
	Photos      []Photo   `json:"photos" gorm:"many2many:spot_photos;"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (spot *Spot) BeforeCreate(tx *gorm.DB) (err error) {
	if spot.ID == uuid.Nil {
		spot.ID = uuid.New()
	}
	return
}

func (spot *Spot) OwnerID() uuid.UUID { return spot.ID }

func (spot *Spot) PhotoIDs() []uuid.UUID {
	return photoIDs(spot.Photos)
}
