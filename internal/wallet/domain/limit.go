package domain

// SpendLimit is the daily-ceiling triple shared by accounts and delegations.
// Amounts are in minor currency units. A DailyLimit of zero means unlimited.
// LastSpendDate is a calendar day string (YYYY-MM-DD); rollover is lazy: a
// stale date means the counter is ignored, no background reset job exists.
type SpendLimit struct {
	DailyLimit    int64
	SpentToday    int64
	LastSpendDate string
}

// Unlimited reports whether no daily ceiling applies.
func (l SpendLimit) Unlimited() bool { return l.DailyLimit <= 0 }

// EffectiveSpent returns the spent counter after applying lazy day rollover:
// a LastSpendDate other than today means nothing has been spent today yet.
func (l SpendLimit) EffectiveSpent(today string) int64 {
	if l.LastSpendDate != today {
		return 0
	}
	return l.SpentToday
}

// Remaining returns the budget left for today. The second return is false
// when the limit is unlimited (in which case the first value is meaningless).
func (l SpendLimit) Remaining(today string) (int64, bool) {
	if l.Unlimited() {
		return 0, false
	}
	return l.DailyLimit - l.EffectiveSpent(today), true
}
