package booking

import "time"

// Scope selects whose bookings a listing covers: the booker's own bookings, or
// every booking of the items a user owns. Exactly one side is set.
type Scope struct {
	BookerID string
	ItemIDs  []string
}

// LimitAll disables the page size bound ("no pagination" is Offset 0, Limit LimitAll).
const LimitAll = 0

// Query is the single repository contract for filtered booking listings: an
// explicit scope, at most one predicate, and an explicit pagination window.
// Results are always ordered by start descending, id ascending on ties.
type Query struct {
	Scope Scope

	// At most one of the following predicates is set.
	Status     Status     // status equality (WAITING / REJECTED filters)
	CurrentAt  *time.Time // interval contains the instant: start <= t AND end > t
	EndBefore  *time.Time // past: end <= t
	StartAfter *time.Time // future: start > t

	Offset int
	Limit  int
}

// BuildQuery classifies a state filter into a Query against the store. The
// caller captures "now" once per request so that every row of one listing is
// bucketed against the same instant.
func BuildQuery(scope Scope, filter StateFilter, now time.Time, from, size int) (Query, error) {
	q := Query{Scope: scope, Offset: from, Limit: size}

	switch filter {
	case FilterAll:
		// No predicate: everything in scope.
	case FilterWaiting:
		q.Status = StatusWaiting
	case FilterRejected:
		q.Status = StatusRejected
	case FilterCurrent:
		q.CurrentAt = &now
	case FilterPast:
		q.EndBefore = &now
	case FilterFuture:
		q.StartAfter = &now
	default:
		return Query{}, ErrUnknownState(string(filter))
	}

	return q, nil
}
