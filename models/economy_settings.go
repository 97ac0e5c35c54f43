package models

// Hard-coded defaults for guilds that have never overridden anything
const (
	DefaultAttendanceCash     int64 = 100
	DefaultAttendanceXP       int64 = 50
	DefaultStreakCashPerDay   int64 = 20
	DefaultStreakXPPerDay     int64 = 10
	DefaultMaxStreakBonusDays int64 = 10
	DefaultWeeklyBonusCash    int64 = 300
	DefaultWeeklyBonusXP      int64 = 150
	DefaultMonthlyBonusCash   int64 = 1500
	DefaultMonthlyBonusXP     int64 = 750
	DefaultGiftFeePercent     int64 = 5
	DefaultGiftMinAmount      int64 = 100
	DefaultGiftMaxAmount      int64 = 100000
	DefaultGiftDailyLimit     int64 = 3
	DefaultCashToXPFeePercent int64 = 10
	DefaultXPToCashFeePercent int64 = 20
	DefaultCashToXPDailyLimit int64 = 1
	DefaultXPToCashDailyLimit int64 = 1
	DefaultEnhanceCost        int64 = 500
)

// EconomySettings is a guild's sparse override of the default economy
// configuration. Nil fields fall back to the defaults above, never to an
// error. The row is created lazily on first read.
type EconomySettings struct {
	GuildID            int64  `db:"guild_id"`
	AttendanceCash     *int64 `db:"attendance_cash"`
	AttendanceXP       *int64 `db:"attendance_xp"`
	StreakCashPerDay   *int64 `db:"streak_cash_per_day"`
	StreakXPPerDay     *int64 `db:"streak_xp_per_day"`
	MaxStreakBonusDays *int64 `db:"max_streak_bonus_days"`
	WeeklyBonusCash    *int64 `db:"weekly_bonus_cash"`
	WeeklyBonusXP      *int64 `db:"weekly_bonus_xp"`
	MonthlyBonusCash   *int64 `db:"monthly_bonus_cash"`
	MonthlyBonusXP     *int64 `db:"monthly_bonus_xp"`
	GiftFeePercent     *int64 `db:"gift_fee_percent"`
	GiftMinAmount      *int64 `db:"gift_min_amount"`
	GiftMaxAmount      *int64 `db:"gift_max_amount"`
	GiftDailyLimit     *int64 `db:"gift_daily_limit"`
	CashToXPFeePercent *int64 `db:"cash_to_xp_fee_percent"`
	XPToCashFeePercent *int64 `db:"xp_to_cash_fee_percent"`
	CashToXPDailyLimit *int64 `db:"cash_to_xp_daily_limit"`
	XPToCashDailyLimit *int64 `db:"xp_to_cash_daily_limit"`
	EnhanceCost        *int64 `db:"enhance_cost"`
}

// EffectiveSettings is a fully-resolved settings snapshot with every
// override applied over the defaults
type EffectiveSettings struct {
	AttendanceCash     int64
	AttendanceXP       int64
	StreakCashPerDay   int64
	StreakXPPerDay     int64
	MaxStreakBonusDays int64
	WeeklyBonusCash    int64
	WeeklyBonusXP      int64
	MonthlyBonusCash   int64
	MonthlyBonusXP     int64
	GiftFeePercent     int64
	GiftMinAmount      int64
	GiftMaxAmount      int64
	GiftDailyLimit     int64
	CashToXPFeePercent int64
	XPToCashFeePercent int64
	CashToXPDailyLimit int64
	XPToCashDailyLimit int64
	EnhanceCost        int64
}

// Effective resolves the sparse overrides against the defaults
func (s *EconomySettings) Effective() EffectiveSettings {
	return EffectiveSettings{
		AttendanceCash:     orDefault(s.AttendanceCash, DefaultAttendanceCash),
		AttendanceXP:       orDefault(s.AttendanceXP, DefaultAttendanceXP),
		StreakCashPerDay:   orDefault(s.StreakCashPerDay, DefaultStreakCashPerDay),
		StreakXPPerDay:     orDefault(s.StreakXPPerDay, DefaultStreakXPPerDay),
		MaxStreakBonusDays: orDefault(s.MaxStreakBonusDays, DefaultMaxStreakBonusDays),
		WeeklyBonusCash:    orDefault(s.WeeklyBonusCash, DefaultWeeklyBonusCash),
		WeeklyBonusXP:      orDefault(s.WeeklyBonusXP, DefaultWeeklyBonusXP),
		MonthlyBonusCash:   orDefault(s.MonthlyBonusCash, DefaultMonthlyBonusCash),
		MonthlyBonusXP:     orDefault(s.MonthlyBonusXP, DefaultMonthlyBonusXP),
		GiftFeePercent:     orDefault(s.GiftFeePercent, DefaultGiftFeePercent),
		GiftMinAmount:      orDefault(s.GiftMinAmount, DefaultGiftMinAmount),
		GiftMaxAmount:      orDefault(s.GiftMaxAmount, DefaultGiftMaxAmount),
		GiftDailyLimit:     orDefault(s.GiftDailyLimit, DefaultGiftDailyLimit),
		CashToXPFeePercent: orDefault(s.CashToXPFeePercent, DefaultCashToXPFeePercent),
		XPToCashFeePercent: orDefault(s.XPToCashFeePercent, DefaultXPToCashFeePercent),
		CashToXPDailyLimit: orDefault(s.CashToXPDailyLimit, DefaultCashToXPDailyLimit),
		XPToCashDailyLimit: orDefault(s.XPToCashDailyLimit, DefaultXPToCashDailyLimit),
		EnhanceCost:        orDefault(s.EnhanceCost, DefaultEnhanceCost),
	}
}

func orDefault(v *int64, def int64) int64 {
	if v != nil {
		return *v
	}
	return def
}
