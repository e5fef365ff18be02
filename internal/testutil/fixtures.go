package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/farellandr/skatefund/internal/models"
	"gorm.io/gorm"
)

func SeedTrick(tb testing.TB, ctx context.Context, db *gorm.DB, name string, objective, current int64) *models.Trick {
	tb.Helper()
	t := &models.Trick{Name: name, ObjectiveAmount: objective, CurrentAmount: current}
	if err := db.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed trick: %v", err)
	}
	return t
}

func SeedEvent(tb testing.TB, ctx context.Context, db *gorm.DB, name string, active bool) *models.Event {
	tb.Helper()
	day := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	e := &models.Event{Name: name, Day: &day, DayString: day.Format("2006-01-02"), Active: active}
	if err := db.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed event: %v", err)
	}
	return e
}

func SeedUser(tb testing.TB, ctx context.Context, db *gorm.DB, login, phone string) *models.User {
	tb.Helper()
	u := &models.User{Login: login, Phone: phone, FirstName: "A", LastName: "B", Activated: true}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedPlayer(tb testing.TB, ctx context.Context, db *gorm.DB, user *models.User) *models.Player {
	tb.Helper()
	p := &models.Player{UserID: user.ID}
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed player: %v", err)
	}
	return p
}

func SeedFan(tb testing.TB, ctx context.Context, db *gorm.DB, fullName, phone string) *models.Fan {
	tb.Helper()
	f := &models.Fan{Kind: models.FanKindInline, FullName: fullName, Phone: phone}
	if err := db.WithContext(ctx).Create(f).Error; err != nil {
		tb.Fatalf("seed fan: %v", err)
	}
	return f
}

func SeedSpot(tb testing.TB, ctx context.Context, db *gorm.DB, name string) *models.Spot {
	tb.Helper()
	s := &models.Spot{Name: name}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed spot: %v", err)
	}
	return s
}

func SeedPhoto(tb testing.TB, ctx context.Context, db *gorm.DB, title string) *models.Photo {
	tb.Helper()
	p := &models.Photo{Title: title, Image: "https://cdn.example.com/" + title + ".jpg"}
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed photo: %v", err)
	}
	return p
}
