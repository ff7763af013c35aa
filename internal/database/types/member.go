package types

import (
	"errors"
	"time"
)

var ErrMemberNotFound = errors.New("member not found")

// Member represents one user's participation in one group.
// Rows are never deleted; leaving a group only clears the active flag
// so that recorded events survive membership changes.
type Member struct {
	ID        int64     `bun:",pk,autoincrement"           json:"id"`
	GroupID   int64     `bun:",notnull,unique:member_in_group" json:"groupId"`
	UserID    uint64    `bun:",notnull,unique:member_in_group" json:"userId"`
	Username  string    `bun:",notnull,default:''"         json:"username"`
	Nickname  string    `bun:",notnull,default:''"         json:"nickname"`
	IsActive  bool      `bun:",notnull,default:true"       json:"isActive"`
	CreatedAt time.Time `bun:",notnull"                    json:"createdAt"`
	UpdatedAt time.Time `bun:",notnull"                    json:"updatedAt"`
}

// Deactivate removes the member from tracking without deleting history.
// Reactivation happens through the upsert path on rejoin.
func (m *Member) Deactivate() {
	m.IsActive = false
	m.UpdatedAt = time.Now()
}
