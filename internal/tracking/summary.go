package tracking

// Summary describes a reconciliation that was applied to a day's record.
type Summary struct {
	Day     Day
	Updates *Updates
}
