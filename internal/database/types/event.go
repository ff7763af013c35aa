package types

import "time"

// Event is one recorded occurrence of the trigger action by a member.
// Events are append-only; insertion is the only mutation.
type Event struct {
	ID        int64     `bun:",pk,autoincrement" json:"id"`
	MemberID  int64     `bun:",notnull"          json:"memberId"`
	CreatedAt time.Time `bun:",notnull"          json:"createdAt"`
}
