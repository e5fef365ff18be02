package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Photo struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Title     string    `json:"title"`
	Image     string    `json:"image" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (photo *Photo) BeforeCreate(tx *gorm.DB) (err error) {
	if photo.ID == uuid.Nil {
		photo.ID = uuid.New()
	}
	return
}

func photoIDs(photos []Photo) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(photos))
	for _, p := range photos {
		ids = append(ids, p.ID)
	}
	return ids
}
