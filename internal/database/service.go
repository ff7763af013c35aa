package database

import (
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/pokatrack/pokatrack/internal/database/service"
)

// Service provides access to all business logic services.
type Service struct {
	roster *service.RosterService
	media  *service.MediaService
	event  *service.EventService
	stats  *service.StatsService
}

// NewService creates a new service instance with all services.
func NewService(db *bun.DB, repository *Repository, logger *zap.Logger) *Service {
	groupModel := repository.Group()
	memberModel := repository.Member()
	mediaModel := repository.Media()
	eventModel := repository.Event()

	return &Service{
		roster: service.NewRoster(db, groupModel, memberModel, logger),
		media:  service.NewMedia(db, groupModel, mediaModel, logger),
		event:  service.NewEvent(db, groupModel, memberModel, mediaModel, eventModel, logger),
		stats:  service.NewStats(groupModel, eventModel, logger),
	}
}

// Roster returns the roster service.
func (s *Service) Roster() *service.RosterService {
	return s.roster
}

// Media returns the media service.
func (s *Service) Media() *service.MediaService {
	return s.media
}

// Event returns the event service.
func (s *Service) Event() *service.EventService {
	return s.event
}

// Stats returns the stats service.
func (s *Service) Stats() *service.StatsService {
	return s.stats
}
