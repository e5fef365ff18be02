package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	Name      string     `json:"name"`
	Day       *time.Time `json:"day" gorm:"type:date"`
	DayString string     `json:"dayString"`
	Active    bool       `json:"active" gorm:"not null;default:false;index"`
	SpotID    *uuid.UUID `json:"spotId" gorm:"type:uuid"`
	Tricks    []Trick    `json:"tricks" gorm:"many2many:event_tricks;"`
	Players   []Player   `json:"players" gorm:"many2many:event_players;"`
	Fans      []Fan      `json:"fans" gorm:"many2many:event_fans;"`
	Photos    []Photo    `json:"photos" gorm:"many2many:event_photos;"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}

func (event *Event) OwnerID() uuid.UUID { return event.ID }

func (event *Event) TrickIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(event.Tricks))
	for _, t := range event.Tricks {
		ids = append(ids, t.ID)
	}
	return ids
}

func (event *Event) PlayerIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(event.Players))
	for _, p := range event.Players {
		ids = append(ids, p.ID)
	}
	return ids
}

func (event *Event) FanIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(event.Fans))
	for _, f := range event.Fans {
		ids = append(ids, f.ID)
	}
	return ids
}

func (event *Event) PhotoIDs() []uuid.UUID {
	return photoIDs(event.Photos)
}
