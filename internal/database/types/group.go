package types

import (
	"errors"
	"time"
)

var ErrGroupNotFound = errors.New("group not found")

// Group represents a guild that has been registered for tracking.
// A group owns at most one trigger media and any number of members.
type Group struct {
	ID        int64     `bun:",pk,autoincrement" json:"id"`
	GuildID   uint64    `bun:",unique,notnull"   json:"guildId"`
	CreatedAt time.Time `bun:",notnull"          json:"createdAt"`
	UpdatedAt time.Time `bun:",notnull"          json:"updatedAt"`
}
