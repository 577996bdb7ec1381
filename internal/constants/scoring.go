package constants

const (
	// Balance smoothing constants:
	// - BalanceAlpha is the weight of the newest Daily Performance Score (DPS) when it is
	//   blended into the running category score. The remainder (1 - alpha) stays with history.
	// - BalanceWindowDays is how many calendar days (ending today) feed one computation.
	// - DefaultBaselineScore seeds every category when the user has no stored score.
	BalanceAlpha         = 0.015
	BalanceWindowDays    = 14
	DefaultBaselineScore = 50.0

	// MaxDailyScore caps a single day's performance score
	MaxDailyScore = 100.0

	// NoScheduledHabits marks a day whose DPS is undefined
	NoScheduledHabits = -1.0
)

func init() {
	if BalanceAlpha <= 0 || BalanceAlpha > 1 {
		panic("BalanceAlpha must be in (0, 1]")
	}
}
