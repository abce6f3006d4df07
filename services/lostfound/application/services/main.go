package services

import (
	"github.com/campuskeep/campuskeep/pkg/app"
	"github.com/campuskeep/campuskeep/pkg/cache"
	"github.com/campuskeep/campuskeep/services/lostfound/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Items         *ItemService
	Claims        *ClaimService
	Matches       *MatchService
	Broadcasts    *BroadcastService
	Audit         *AuditService
	Notifications *NotificationService
}

// New wires all lost-and-found application services with infrastructure from
// the Application container.
func New(a *app.Application) *Services {
	items := postgres.NewItemRepository(a.Db, a.EventBus)
	claims := postgres.NewClaimRepository(a.Db, a.EventBus)
	handovers := postgres.NewHandoverRepository(a.Db)
	audit := postgres.NewAuditRepository(a.Db, a.EventBus)
	notifications := postgres.NewNotificationRepository(a.Db)
	itemCache := cache.NewItemCache(a.Redis)

	return &Services{
		Items:         NewItemService(items, claims, handovers, audit, itemCache),
		Claims:        NewClaimService(claims, items, audit, itemCache),
		Matches:       NewMatchService(items, itemCache, a.Config.MatchMinKeywords),
		Broadcasts:    NewBroadcastService(audit),
		Audit:         NewAuditService(audit),
		Notifications: NewNotificationService(notifications),
	}
}
