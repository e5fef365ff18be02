package services

import (
	"context"
	"strings"

	"github.com/farellandr/skatefund/internal/apperr"
	"github.com/farellandr/skatefund/internal/helpers"
	"github.com/farellandr/skatefund/internal/locks"
	"github.com/farellandr/skatefund/internal/logger"
	"github.com/farellandr/skatefund/internal/models"
	"github.com/farellandr/skatefund/internal/repositories"
	"github.com/google/uuid"
)

// Relation names one owner-to-member link set.
type Relation string

const (
	EventTricks  Relation = "event_tricks"
	EventPlayers Relation = "event_players"
	EventFans    Relation = "event_fans"
	EventPhotos  Relation = "event_photos"
	SpotPhotos   Relation = "spot_photos"
)

const (
	ownerEvent = "event"
	ownerSpot  = "spot"

	memberTrick  = "trick"
	memberPlayer = "player"
	memberFan    = "fan"
	memberPhoto  = "photo"
)

// Owner is an aggregate holding member link sets, either *models.Event or
// *models.Spot.
type Owner interface {
	OwnerID() uuid.UUID
}

func ParseRelation(raw string) (Relation, error) {
	rel := Relation(strings.ToLower(strings.TrimSpace(raw)))
	switch rel {
	case EventTricks, EventPlayers, EventFans, EventPhotos, SpotPhotos:
		return rel, nil
	}
	return "", apperr.InvalidInput(apperr.CodeUnknownRelation, "unknown relation %q", raw)
}

type relationSpec struct {
	owner       string
	member      string
	association string
	memberIDs   func(Owner) []uuid.UUID
	loadMember  func(ctx context.Context, id uuid.UUID) (interface{}, error)
	memberRef   func(id uuid.UUID) interface{}
}

type GraphService interface {
	Attach(ctx context.Context, rel Relation, ownerID, memberID uuid.UUID) (Owner, error)
	Detach(ctx context.Context, rel Relation, ownerID, memberID uuid.UUID) (Owner, error)
	AddPhoto(ctx context.Context, rel Relation, ownerID uuid.UUID, title, image string) (Owner, *models.Photo, error)
	RemovePhoto(ctx context.Context, rel Relation, ownerID, photoID uuid.UUID) (Owner, error)
}

type graphService struct {
	events    repositories.EventRepo
	spots     repositories.SpotRepo
	photos    repositories.PhotoRepo
	relations repositories.RelationRepo
	locks     *locks.Keyed
	log       *logger.Logger
	specs     map[Relation]relationSpec
}

func NewGraphService(
	events repositories.EventRepo,
	spots repositories.SpotRepo,
	tricks repositories.TrickRepo,
	players repositories.PlayerRepo,
	fans repositories.FanRepo,
	photos repositories.PhotoRepo,
	relations repositories.RelationRepo,
	keyed *locks.Keyed,
	baseLog *logger.Logger,
) GraphService {
	loadPhoto := func(ctx context.Context, id uuid.UUID) (interface{}, error) { return photos.GetByID(ctx, nil, id) }
	photoRef := func(id uuid.UUID) interface{} { return &models.Photo{ID: id} }

	return &graphService{
		events:    events,
		spots:     spots,
		photos:    photos,
		relations: relations,
		locks:     keyed,
		log:       baseLog.With("service", "GraphService"),
		specs: map[Relation]relationSpec{
			EventTricks: {
				owner:       ownerEvent,
				member:      memberTrick,
				association: "Tricks",
				memberIDs:   func(o Owner) []uuid.UUID { return o.(*models.Event).TrickIDs() },
				loadMember:  func(ctx context.Context, id uuid.UUID) (interface{}, error) { return tricks.GetByID(ctx, nil, id) },
				memberRef:   func(id uuid.UUID) interface{} { return &models.Trick{ID: id} },
			},
			EventPlayers: {
				owner:       ownerEvent,
				member:      memberPlayer,
				association: "Players",
				memberIDs:   func(o Owner) []uuid.UUID { return o.(*models.Event).PlayerIDs() },
				loadMember:  func(ctx context.Context, id uuid.UUID) (interface{}, error) { return players.GetByID(ctx, nil, id) },
				memberRef:   func(id uuid.UUID) interface{} { return &models.Player{ID: id} },
			},
			EventFans: {
				owner:       ownerEvent,
				member:      memberFan,
				association: "Fans",
				memberIDs:   func(o Owner) []uuid.UUID { return o.(*models.Event).FanIDs() },
				loadMember:  func(ctx context.Context, id uuid.UUID) (interface{}, error) { return fans.GetByID(ctx, nil, id) },
				memberRef:   func(id uuid.UUID) interface{} { return &models.Fan{ID: id} },
			},
			EventPhotos: {
				owner:       ownerEvent,
				member:      memberPhoto,
				association: "Photos",
				memberIDs:   func(o Owner) []uuid.UUID { return o.(*models.Event).PhotoIDs() },
				loadMember:  loadPhoto,
				memberRef:   photoRef,
			},
			SpotPhotos: {
				owner:       ownerSpot,
				member:      memberPhoto,
				association: "Photos",
				memberIDs:   func(o Owner) []uuid.UUID { return o.(*models.Spot).PhotoIDs() },
				loadMember:  loadPhoto,
				memberRef:   photoRef,
			},
		},
	}
}

// ownerKey names the lock of one record. Owners are always locked before
// members.
func ownerKey(kind string, id uuid.UUID) string { return kind + ":" + id.String() }

func (g *graphService) spec(rel Relation) (relationSpec, error) {
	spec, ok := g.specs[rel]
	if !ok {
		return relationSpec{}, apperr.InvalidInput(apperr.CodeUnknownRelation, "unknown relation %q", rel)
	}
	return spec, nil
}

func (g *graphService) loadOwner(ctx context.Context, kind string, id uuid.UUID) (Owner, error) {
	if kind == ownerSpot {
		spot, err := g.spots.GetByID(ctx, nil, id)
		if err != nil {
			return nil, err
		}
		return spot, nil
	}
	event, err := g.events.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// Attach links member to owner. Attaching a member that is already linked
// leaves the set unchanged.
func (g *graphService) Attach(ctx context.Context, rel Relation, ownerID, memberID uuid.UUID) (Owner, error) {
	spec, err := g.spec(rel)
	if err != nil {
		return nil, err
	}

	unlock := g.locks.Lock(ownerKey(spec.owner, ownerID))
	defer unlock()

	return g.attachLocked(ctx, rel, spec, ownerID, memberID)
}

// attachLocked expects the owner lock to be held. It locks the member so a
// concurrent delete cannot slip between loading the member and linking it.
func (g *graphService) attachLocked(ctx context.Context, rel Relation, spec relationSpec, ownerID, memberID uuid.UUID) (Owner, error) {
	unlockMember := g.locks.Lock(ownerKey(spec.member, memberID))
	defer unlockMember()

	owner, err := g.loadOwner(ctx, spec.owner, ownerID)
	if err != nil {
		return nil, err
	}
	member, err := spec.loadMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	if containsID(spec.memberIDs(owner), memberID) {
		return owner, nil
	}
	if err := g.relations.Append(ctx, nil, owner, spec.association, member); err != nil {
		return nil, err
	}

	g.log.Debug("Member attached", "relation", rel, "owner_id", ownerID, "member_id", memberID)
	return g.loadOwner(ctx, spec.owner, ownerID)
}

// Detach unlinks member from owner. The member record is left alone and does
// not need to exist.
func (g *graphService) Detach(ctx context.Context, rel Relation, ownerID, memberID uuid.UUID) (Owner, error) {
	spec, err := g.spec(rel)
	if err != nil {
		return nil, err
	}

	unlock := g.locks.Lock(ownerKey(spec.owner, ownerID))
	defer unlock()

	owner, err := g.loadOwner(ctx, spec.owner, ownerID)
	if err != nil {
		return nil, err
	}
	if !containsID(spec.memberIDs(owner), memberID) {
		return owner, nil
	}
	return g.detachLocked(ctx, rel, spec, ownerID, memberID)
}

func (g *graphService) detachLocked(ctx context.Context, rel Relation, spec relationSpec, ownerID, memberID uuid.UUID) (Owner, error) {
	owner, err := g.loadOwner(ctx, spec.owner, ownerID)
	if err != nil {
		return nil, err
	}
	if err := g.relations.Remove(ctx, nil, owner, spec.association, spec.memberRef(memberID)); err != nil {
		return nil, err
	}

	g.log.Debug("Member detached", "relation", rel, "owner_id", ownerID, "member_id", memberID)
	return g.loadOwner(ctx, spec.owner, ownerID)
}

// AddPhoto stores a new photo and links it to the owner.
func (g *graphService) AddPhoto(ctx context.Context, rel Relation, ownerID uuid.UUID, title, image string) (Owner, *models.Photo, error) {
	spec, err := g.photoSpec(rel)
	if err != nil {
		return nil, nil, err
	}
	if err := helpers.ValidateImagePayload(image); err != nil {
		return nil, nil, err
	}

	unlock := g.locks.Lock(ownerKey(spec.owner, ownerID))
	defer unlock()

	if _, err := g.loadOwner(ctx, spec.owner, ownerID); err != nil {
		return nil, nil, err
	}

	photo := &models.Photo{Title: strings.TrimSpace(title), Image: image}
	if err := g.photos.Create(ctx, nil, photo); err != nil {
		return nil, nil, err
	}

	owner, err := g.attachLocked(ctx, rel, spec, ownerID, photo.ID)
	if err != nil {
		if _, delErr := g.photos.DeleteByID(ctx, nil, photo.ID); delErr != nil {
			g.log.Warn("Failed to drop orphan photo", "photo_id", photo.ID, "error", delErr)
		}
		return nil, nil, err
	}
	return owner, photo, nil
}

// RemovePhoto unlinks the photo and persists the owner before the photo
// record itself is deleted. The photo must belong to the owner.
func (g *graphService) RemovePhoto(ctx context.Context, rel Relation, ownerID, photoID uuid.UUID) (Owner, error) {
	spec, err := g.photoSpec(rel)
	if err != nil {
		return nil, err
	}

	unlock := g.locks.Lock(ownerKey(spec.owner, ownerID))
	defer unlock()

	owner, err := g.loadOwner(ctx, spec.owner, ownerID)
	if err != nil {
		return nil, err
	}
	if !containsID(spec.memberIDs(owner), photoID) {
		return nil, apperr.NotFound("photo", photoID)
	}

	owner, err = g.detachLocked(ctx, rel, spec, ownerID, photoID)
	if err != nil {
		return nil, err
	}
	unlockPhoto := g.locks.Lock(ownerKey(memberPhoto, photoID))
	_, err = g.photos.DeleteByID(ctx, nil, photoID)
	unlockPhoto()
	if err != nil {
		return nil, err
	}

	g.log.Info("Photo removed", "relation", rel, "owner_id", ownerID, "photo_id", photoID)
	return owner, nil
}

func (g *graphService) photoSpec(rel Relation) (relationSpec, error) {
	if rel != EventPhotos && rel != SpotPhotos {
		return relationSpec{}, apperr.InvalidInput(apperr.CodeUnknownRelation, "relation %q does not hold photos", rel)
	}
	return g.spec(rel)
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
