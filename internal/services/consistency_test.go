package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/farellandr/skatefund/internal/apperr"
	"github.com/farellandr/skatefund/internal/locks"
	"github.com/farellandr/skatefund/internal/models"
	"github.com/farellandr/skatefund/internal/repositories"
	"github.com/farellandr/skatefund/internal/testutil"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type failingGraph struct {
	GraphService
}

func (failingGraph) Attach(ctx context.Context, rel Relation, ownerID, memberID uuid.UUID) (Owner, error) {
	return nil, apperr.Store("attach", errors.New("link table unavailable"))
}

func TestTrickCreateRemovesTrickWhenLinkFails(t *testing.T) {
	svc, db, ctx := newTestServices(t)
	testutil.SeedEvent(t, ctx, db, "Street Jam", true)

	log := testutil.Logger(t)
	tricks := NewTrickService(repositories.NewTrickRepo(db, log), svc.Events, failingGraph{svc.Graph}, locks.NewKeyed(), log)

	if _, err := tricks.Create(ctx, TrickInput{Name: "kickflip", ObjectiveAmount: 100}); err == nil {
		t.Fatalf("Create: expected link error")
	}

	var stored int64
	db.Model(&models.Trick{}).Count(&stored)
	if stored != 0 {
		t.Fatalf("Create: want no stored tricks got=%d", stored)
	}
}

func TestEventUpdateAfterDeleteDoesNotRecreate(t *testing.T) {
	svc, db, ctx := newTestServices(t)
	event := testutil.SeedEvent(t, ctx, db, "Street Jam", false)

	if err := svc.Events.Delete(ctx, event.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err := svc.Events.Update(ctx, EventInput{ID: &event.ID, Name: "Back Again"})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Update deleted: want=NotFound got=%v", err)
	}
	if _, err := svc.Events.Activate(ctx, event.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Activate deleted: want=NotFound got=%v", err)
	}

	var stored int64
	db.Model(&models.Event{}).Count(&stored)
	if stored != 0 {
		t.Fatalf("Update deleted: want no events got=%d", stored)
	}
}

func TestEventDeleteDropsLinksKeepsMembers(t *testing.T) {
	svc, db, ctx := newTestServices(t)
	event := testutil.SeedEvent(t, ctx, db, "Street Jam", true)
	trick := testutil.SeedTrick(t, ctx, db, "ollie", 10, 0)
	player := testutil.SeedPlayer(t, ctx, db, testutil.SeedUser(t, ctx, db, "rider", "555-1"))
	fan := testutil.SeedFan(t, ctx, db, "Dana Cruz", "555-2")
	photo := testutil.SeedPhoto(t, ctx, db, "crowd")

	attach := []struct {
		rel Relation
		id  uuid.UUID
	}{
		{EventTricks, trick.ID},
		{EventPlayers, player.ID},
		{EventFans, fan.ID},
		{EventPhotos, photo.ID},
	}
	for _, a := range attach {
		if _, err := svc.Graph.Attach(ctx, a.rel, event.ID, a.id); err != nil {
			t.Fatalf("Attach %s: %v", a.rel, err)
		}
	}

	if err := svc.Events.Delete(ctx, event.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	for _, table := range []string{"event_tricks", "event_players", "event_fans", "event_photos"} {
		var links int64
		db.Table(table).Where("event_id = ?", event.ID).Count(&links)
		if links != 0 {
			t.Fatalf("Delete: %s want=0 got=%d", table, links)
		}
	}
	if _, err := svc.Tricks.Get(ctx, trick.ID); err != nil {
		t.Fatalf("trick removed with event: %v", err)
	}
	if _, err := svc.Players.Get(ctx, player.ID); err != nil {
		t.Fatalf("player removed with event: %v", err)
	}
	if _, err := svc.Fans.Get(ctx, fan.ID); err != nil {
		t.Fatalf("fan removed with event: %v", err)
	}
	var photos int64
	db.Model(&models.Photo{}).Where("id = ?", photo.ID).Count(&photos)
	if photos != 1 {
		t.Fatalf("photo removed with event")
	}
}

func TestEventConcurrentAttachUpdateDelete(t *testing.T) {
	svc, db, ctx := newTestServices(t)
	event := testutil.SeedEvent(t, ctx, db, "Street Jam", false)

	const n = 10
	tricks := make([]*models.Trick, n)
	for i := range tricks {
		tricks[i] = testutil.SeedTrick(t, ctx, db, fmt.Sprintf("trick-%d", i), 10, 0)
	}

	var g errgroup.Group
	for i := 0; i < n; i++ {
		trickID := tricks[i].ID
		g.Go(func() error {
			_, err := svc.Graph.Attach(ctx, EventTricks, event.ID, trickID)
			return ignoreNotFound(err)
		})
		g.Go(func() error {
			_, err := svc.Events.Update(ctx, EventInput{ID: &event.ID, Name: "Street Jam"})
			return ignoreNotFound(err)
		})
	}
	g.Go(func() error {
		return svc.Events.Delete(ctx, event.ID)
	})
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent ops: %v", err)
	}

	if _, err := svc.Events.Get(ctx, event.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Get after delete: want=NotFound got=%v", err)
	}
	var links int64
	db.Table("event_tricks").Where("event_id = ?", event.ID).Count(&links)
	if links != 0 {
		t.Fatalf("links after delete: want=0 got=%d", links)
	}
	var stored int64
	db.Model(&models.Trick{}).Count(&stored)
	if stored != n {
		t.Fatalf("tricks: want=%d got=%d", n, stored)
	}
}

func TestAttachConcurrentWithMemberDelete(t *testing.T) {
	svc, db, ctx := newTestServices(t)
	event := testutil.SeedEvent(t, ctx, db, "Street Jam", true)

	const n = 20
	var g errgroup.Group
	for i := 0; i < n; i++ {
		trick := testutil.SeedTrick(t, ctx, db, fmt.Sprintf("trick-%d", i), 10, 0)
		player := testutil.SeedPlayer(t, ctx, db, testutil.SeedUser(t, ctx, db, fmt.Sprintf("rider-%d", i), ""))
		g.Go(func() error {
			_, err := svc.Graph.Attach(ctx, EventTricks, event.ID, trick.ID)
			return ignoreNotFound(err)
		})
		g.Go(func() error { return svc.Tricks.Delete(ctx, trick.ID) })
		g.Go(func() error {
			_, err := svc.Graph.Attach(ctx, EventPlayers, event.ID, player.ID)
			return ignoreNotFound(err)
		})
		g.Go(func() error { return svc.Players.Delete(ctx, player.ID) })
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent ops: %v", err)
	}

	var tricks, players, trickLinks, playerLinks int64
	db.Model(&models.Trick{}).Count(&tricks)
	db.Model(&models.Player{}).Count(&players)
	db.Table("event_tricks").Count(&trickLinks)
	db.Table("event_players").Count(&playerLinks)
	if tricks != 0 || players != 0 {
		t.Fatalf("deleted members came back: tricks=%d players=%d", tricks, players)
	}
	if trickLinks != 0 || playerLinks != 0 {
		t.Fatalf("dangling links: tricks=%d players=%d", trickLinks, playerLinks)
	}
}

func ignoreNotFound(err error) error {
	if errors.Is(err, apperr.ErrNotFound) {
		return nil
	}
	return err
}
