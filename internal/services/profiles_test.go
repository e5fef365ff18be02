package services

import (
	"errors"
	"testing"

	"github.com/farellandr/skatefund/internal/apperr"
	"github.com/farellandr/skatefund/internal/models"
	"github.com/farellandr/skatefund/internal/testutil"
	"github.com/google/uuid"
)

func TestPlayerCreateFromProfile(t *testing.T) {
	svc, db, ctx := newTestServices(t)

	player, err := svc.Players.Create(ctx, PlayerInput{FirstName: "Lee", LastName: "Park", Phone: "555-9", Country: "KR"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if player.User == nil || player.User.Login != "555-9" || player.User.Country != "KR" || !player.User.Activated {
		t.Fatalf("Create: unexpected user %+v", player.User)
	}

	_, err = svc.Players.Create(ctx, PlayerInput{FirstName: "Kim", Phone: "555-9", Login: "kim"})
	wantKind(t, "Create reused phone", err, apperr.KindConflict, apperr.CodePhoneAlreadyUsed)

	_, err = svc.Players.Create(ctx, PlayerInput{FirstName: "Kim", Login: "555-9"})
	wantKind(t, "Create reused login", err, apperr.KindConflict, apperr.CodeLoginAlreadyUsed)

	_, err = svc.Players.Create(ctx, PlayerInput{FirstName: "Kim"})
	wantKind(t, "Create without login", err, apperr.KindInvalidInput, apperr.CodeRequired)

	var users, players int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Player{}).Count(&players)
	if users != 1 || players != 1 {
		t.Fatalf("Create: want 1 user and 1 player got=%d/%d", users, players)
	}
}

func TestPlayerUpdateRewritesUser(t *testing.T) {
	svc, db, ctx := newTestServices(t)
	user := testutil.SeedUser(t, ctx, db, "rider", "555-1")
	player := testutil.SeedPlayer(t, ctx, db, user)

	_, err := svc.Players.Update(ctx, PlayerProfile{FirstName: "Lee"})
	wantKind(t, "Update without id", err, apperr.KindPreconditionFailed, apperr.CodeIDNull)

	updated, err := svc.Players.Update(ctx, PlayerProfile{ID: &player.ID, FirstName: " Lee ", LastName: "Park", Phone: "555-3"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.User == nil || updated.User.FirstName != "Lee" || updated.User.Phone != "555-3" || updated.User.Login != "rider" {
		t.Fatalf("Update: unexpected user %+v", updated.User)
	}

	missing := uuid.New()
	if _, err := svc.Players.Update(ctx, PlayerProfile{ID: &missing}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Update missing: want=NotFound got=%v", err)
	}
}

func TestFanUpdate(t *testing.T) {
	svc, db, ctx := newTestServices(t)
	testutil.SeedUser(t, ctx, db, "taken", "")

	fan, err := svc.Fans.Create(ctx, FanInput{FullName: "Dana Cruz", Phone: "555-5", Password: "hunter22"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	oldHash := fan.Password

	_, err = svc.Fans.Update(ctx, FanInput{FullName: "Dana Cruz"})
	wantKind(t, "Update without id", err, apperr.KindPreconditionFailed, apperr.CodeIDNull)

	_, err = svc.Fans.Update(ctx, FanInput{ID: &fan.ID, FullName: "Dana Cruz", Login: "TAKEN"})
	wantKind(t, "Update to taken login", err, apperr.KindConflict, apperr.CodeLoginAlreadyUsed)

	updated, err := svc.Fans.Update(ctx, FanInput{ID: &fan.ID, FullName: "Dana Cruz Vega", Phone: "555-5", Login: "555-5"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.FirstName != "Dana" || updated.LastName != "Cruz Vega" {
		t.Fatalf("Update: name split want=Dana/Cruz Vega got=%s/%s", updated.FirstName, updated.LastName)
	}
	if updated.Password != oldHash {
		t.Fatalf("Update: empty password replaced the hash")
	}

	_, err = svc.Fans.Update(ctx, FanInput{ID: &fan.ID, FullName: "Dana"})
	wantKind(t, "Update single name", err, apperr.KindInvalidInput, apperr.CodeInvalidName)

	missing := uuid.New()
	if _, err := svc.Fans.Update(ctx, FanInput{ID: &missing, FullName: "Dana Cruz"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Update missing: want=NotFound got=%v", err)
	}
}

func TestUserUpdateAndPicture(t *testing.T) {
	svc, db, ctx := newTestServices(t)
	testutil.SeedUser(t, ctx, db, "other", "")
	user, err := svc.Users.Register(ctx, RegisterInput{Login: "rider", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err = svc.Users.Update(ctx, UserUpdate{Login: "rider"})
	wantKind(t, "Update without id", err, apperr.KindPreconditionFailed, apperr.CodeIDNull)

	_, err = svc.Users.Update(ctx, UserUpdate{ID: &user.ID, Login: "Other"})
	wantKind(t, "Update to taken login", err, apperr.KindConflict, apperr.CodeLoginAlreadyUsed)

	updated, err := svc.Users.Update(ctx, UserUpdate{ID: &user.ID, Login: "Rider", Password: "secret2", Country: "PT"})
	if err != nil {
		t.Fatalf("Update own login: %v", err)
	}
	if updated.Login != "rider" || updated.Country != "PT" {
		t.Fatalf("Update: unexpected user %+v", updated)
	}
	if _, err := svc.Users.Authenticate(ctx, "rider", "secret2"); err != nil {
		t.Fatalf("Authenticate new password: %v", err)
	}

	_, err = svc.Users.SetPicture(ctx, user.ID, "not an image")
	wantKind(t, "SetPicture invalid", err, apperr.KindInvalidInput, apperr.CodeInvalidImage)

	pictured, err := svc.Users.SetPicture(ctx, user.ID, "https://cdn.example.com/rider.jpg")
	if err != nil {
		t.Fatalf("SetPicture: %v", err)
	}
	if pictured.Picture != "https://cdn.example.com/rider.jpg" {
		t.Fatalf("SetPicture: got=%q", pictured.Picture)
	}
	if _, err := svc.Users.SetPicture(ctx, uuid.New(), "https://cdn.example.com/x.jpg"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("SetPicture missing user: want=NotFound got=%v", err)
	}
}
