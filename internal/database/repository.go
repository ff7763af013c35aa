package database

import (
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/pokatrack/pokatrack/internal/database/models"
)

// Repository provides access to all database models.
type Repository struct {
	group  *models.GroupModel
	member *models.MemberModel
	media  *models.MediaModel
	event  *models.EventModel
}

// NewRepository creates a new repository instance with all models.
func NewRepository(db *bun.DB, logger *zap.Logger) *Repository {
	return &Repository{
		group:  models.NewGroup(db, logger),
		member: models.NewMember(db, logger),
		media:  models.NewMedia(db, logger),
		event:  models.NewEvent(db, logger),
	}
}

// Group returns the group model repository.
func (r *Repository) Group() *models.GroupModel {
	return r.group
}

// Member returns the member model repository.
func (r *Repository) Member() *models.MemberModel {
	return r.member
}

// Media returns the trigger media model repository.
func (r *Repository) Media() *models.MediaModel {
	return r.media
}

// Event returns the event model repository.
func (r *Repository) Event() *models.EventModel {
	return r.event
}
