package constants

const (
	// StartCommandName registers a guild for tracking.
	StartCommandName = "start"
	// JoinCommandName adds the calling user to the roster.
	JoinCommandName = "join"
	// LeaveCommandName deactivates the calling user.
	LeaveCommandName = "leave"
	// SetMediaCommandName arms the trigger media selection flow.
	SetMediaCommandName = "setpokakmedia"
	// MuteCommandName times a member out for a parsed duration.
	MuteCommandName = "mute"

	// WeekCommandName reports the leaderboard of the current ISO week.
	WeekCommandName = "week"
	// MonthCommandName reports the leaderboard of the current month.
	MonthCommandName = "month"
	// YearCommandName reports the leaderboard of the current year.
	YearCommandName = "year"
	// AllCommandName reports the all-time leaderboard.
	AllCommandName = "all"

	// MuteUserOptionName is the member to mute.
	MuteUserOptionName = "user"
	// MuteDurationOptionName is the raw duration string ("5m", "2h").
	MuteDurationOptionName = "duration"
	// MuteReasonOptionName is the optional mute reason.
	MuteReasonOptionName = "reason"

	// DefaultLeaderboardLimit caps report rows when the config leaves
	// the limit unset.
	DefaultLeaderboardLimit = 10

	// EventReaction acknowledges a recorded event.
	EventReaction = "👌"
)
