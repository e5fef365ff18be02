package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FanKind tells which of the two fan shapes a record carries.
type FanKind string

const (
	// FanKindAccount fans point at a User and keep no profile data of their own.
	FanKindAccount FanKind = "account"
	// FanKindInline fans hold their profile fields directly.
	FanKindInline FanKind = "inline"
)

type Fan struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	Kind      FanKind    `json:"kind" gorm:"not null;default:'inline'"`
	UserID    *uuid.UUID `json:"userId,omitempty" gorm:"type:uuid;index"`
	User      *User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	FullName  string     `json:"fullName"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Login     *string    `json:"login,omitempty" gorm:"uniqueIndex"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone" gorm:"index"`
	Password  string     `json:"-"`
	Picture   string     `json:"picture"`
	Activated bool       `json:"activated" gorm:"not null;default:false"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (fan *Fan) BeforeCreate(tx *gorm.DB) (err error) {
	if fan.ID == uuid.Nil {
		fan.ID = uuid.New()
	}
	if fan.Kind == "" {
		fan.Kind = FanKindInline
	}
	return
}
