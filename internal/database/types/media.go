package types

import (
	"errors"
	"time"
)

var ErrTriggerNotSet = errors.New("trigger media not set")

// TriggerMedia is the single media fingerprint that counts as a valid
// event trigger for a group. Setting a new fingerprint overwrites the
// previous one; no history is kept.
type TriggerMedia struct {
	ID          int64     `bun:",pk,autoincrement" json:"id"`
	GroupID     int64     `bun:",unique,notnull"   json:"groupId"`
	Fingerprint string    `bun:",notnull"          json:"fingerprint"`
	CreatedAt   time.Time `bun:",notnull"          json:"createdAt"`
	UpdatedAt   time.Time `bun:",notnull"          json:"updatedAt"`
}
