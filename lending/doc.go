// Package lending implements the lending rules of the catalog: reserve, checkout and return.
//
// Decide is a pure function. It takes the current book value and a command and returns a
// catalog.DecisionResult with the event to record. Successful events are applied with
// catalog.Evolve by the caller (library.Manager); rejected commands produce a
// catalog.LendingFailed event together with the error.
//
// Business Rules:
//
//	reserve:  Available -> Reserved
//	checkout: Available -> CheckedOut, one copy less
//	checkout: Reserved  -> CheckedOut, one copy less (if the Policy allows it)
//	return:   CheckedOut -> Available, one copy more
//
// A book without available copies never enters CheckedOut.
package lending
