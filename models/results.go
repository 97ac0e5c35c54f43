package models

// XPChange reports the outcome of an XP mutation
type XPChange struct {
	OldXP    int64
	NewXP    int64
	OldLevel int64
	NewLevel int64
}

// LeveledUp reports whether the change crossed at least one level boundary
func (c XPChange) LeveledUp() bool {
	return c.NewLevel > c.OldLevel
}

// CheckInResult is the outcome of a successful daily check-in
type CheckInResult struct {
	Streak       int64
	CashAwarded  int64
	XPAwarded    int64
	WeeklyBonus  bool
	MonthlyBonus bool
	NewBalance   int64
	XPChange     XPChange
}

// GiftResult is the outcome of a successful user-to-user transfer
type GiftResult struct {
	Amount           int64
	Fee              int64
	RecipientID      int64
	RecipientName    string
	SenderBalance    int64
	RecipientBalance int64
}

// ExchangeDirection selects which way an exchange converts
type ExchangeDirection string

const (
	ExchangeCashToXP ExchangeDirection = "cash_to_xp"
	ExchangeXPToCash ExchangeDirection = "xp_to_cash"
)

// ExchangeResult is the outcome of a successful cash/XP conversion
type ExchangeResult struct {
	Direction  ExchangeDirection
	Spent      int64
	Received   int64
	NewBalance int64
	XPChange   XPChange
}

// EnhanceResult is the outcome of one enhancement attempt
type EnhanceResult struct {
	Item       EnhancementItem
	Success    bool
	Dropped    bool
	Cost       int64
	NewBalance int64
}

// LeaderboardKind selects the metric a leaderboard is ranked by
type LeaderboardKind string

const (
	LeaderboardKindCash   LeaderboardKind = "cash"
	LeaderboardKindXP     LeaderboardKind = "xp"
	LeaderboardKindStreak LeaderboardKind = "streak"
)

// LeaderboardEntry is one row of a guild leaderboard
type LeaderboardEntry struct {
	Rank        int64
	UserID      int64
	DisplayName string
	Value       int64
}
