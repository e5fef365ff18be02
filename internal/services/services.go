package services

import (
	"github.com/farellandr/skatefund/internal/locks"
	"github.com/farellandr/skatefund/internal/logger"
	"github.com/farellandr/skatefund/internal/repositories"
	"gorm.io/gorm"
)

// Services bundles every service over one database and one lock table.
type Services struct {
	Identity      IdentityService
	Pledges       PledgeService
	Graph         GraphService
	Events        EventService
	Tricks        TrickService
	Spots         SpotService
	Players       PlayerService
	Fans          FanService
	Users         UserService
	Contributions ContributionService
}

func New(db *gorm.DB, baseLog *logger.Logger) *Services {
	keyed := locks.NewKeyed()

	eventRepo := repositories.NewEventRepo(db, baseLog)
	trickRepo := repositories.NewTrickRepo(db, baseLog)
	spotRepo := repositories.NewSpotRepo(db, baseLog)
	playerRepo := repositories.NewPlayerRepo(db, baseLog)
	fanRepo := repositories.NewFanRepo(db, baseLog)
	userRepo := repositories.NewUserRepo(db, baseLog)
	photoRepo := repositories.NewPhotoRepo(db, baseLog)
	relationRepo := repositories.NewRelationRepo(db, baseLog)

	identity := NewIdentityService(fanRepo, userRepo, keyed, baseLog)
	pledges := NewPledgeService(trickRepo, keyed, baseLog)
	graph := NewGraphService(eventRepo, spotRepo, trickRepo, playerRepo, fanRepo, photoRepo, relationRepo, keyed, baseLog)
	events := NewEventService(db, eventRepo, spotRepo, graph, keyed, baseLog)

	return &Services{
		Identity:      identity,
		Pledges:       pledges,
		Graph:         graph,
		Events:        events,
		Tricks:        NewTrickService(trickRepo, events, graph, keyed, baseLog),
		Spots:         NewSpotService(spotRepo, graph, keyed, baseLog),
		Players:       NewPlayerService(db, playerRepo, userRepo, fanRepo, keyed, baseLog),
		Fans:          NewFanService(fanRepo, userRepo, keyed, baseLog),
		Users:         NewUserService(userRepo, fanRepo, keyed, baseLog),
		Contributions: NewContributionService(trickRepo, identity, pledges, baseLog),
	}
}
