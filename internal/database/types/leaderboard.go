package types

// MemberCount is one leaderboard row: a member's identity together with
// the number of events recorded inside the queried period.
type MemberCount struct {
	MemberID int64  `bun:"member_id" json:"memberId"`
	UserID   uint64 `bun:"user_id"   json:"userId"`
	Username string `bun:"username"  json:"username"`
	Nickname string `bun:"nickname"  json:"nickname"`
	Count    int64  `bun:"count"     json:"count"`
}
