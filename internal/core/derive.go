package core

import (
	"sort"
	"time"
)

// Derived values are always recomputed from the stored entities and never
// persisted; storing them would risk drift against the transaction history.

// Balance folds the transaction list into the available fund balance:
// startingBalance + deposits - expenses. Addition commutes, so the result
// does not depend on list order.
func Balance(transactions []Transaction, startingBalance Money) Money {
	total := startingBalance.Cents
	for _, t := range transactions {
		switch t.Type {
		case Deposit:
			total += t.Amount.Cents
		case Expense:
			total -= t.Amount.Cents
		}
	}
	return Money{Cents: total}
}

// TotalContribution returns the amount a member is expected to have
// contributed by now: the monthly pledge times the number of elapsed
// calendar months since joining, with the join month itself counted.
// A member without a join date has contributed nothing.
func TotalContribution(m Member, now time.Time) Money {
	if m.JoinDate.IsZero() {
		return Money{}
	}
	months := (now.Year()-m.JoinDate.Year())*12 + int(now.Month()) - int(m.JoinDate.Month())
	months++ // credit the join month
	if months < 0 {
		months = 0
	}
	return Money{Cents: m.MonthlyPledge.Cents * int64(months)}
}

// Project list sort keys.
const (
	SortVotes  SortKey = "votes"
	SortCost   SortKey = "cost"
	SortNewest SortKey = "newest"
)

// StatusAll disables status filtering in FilterProjects.
const StatusAll ProjectStatus = "all"

type SortKey string

func (k SortKey) Valid() bool {
	switch k {
	case SortVotes, SortCost, SortNewest:
		return true
	}
	return false
}

// statusRank orders projects voting < active < completed for display.
func statusRank(s ProjectStatus) int {
	switch s {
	case ProjectVoting:
		return 0
	case ProjectActive:
		return 1
	default:
		return 2
	}
}

// FilterProjects returns a filtered, sorted copy of projects. The input is
// never mutated. Projects are filtered by exact status (or passed through
// for StatusAll), completed projects are dropped when includeCompleted is
// false, and the result is stably ordered by status rank and then by the
// requested key, descending.
func FilterProjects(projects []Project, filter ProjectStatus, includeCompleted bool, key SortKey) []Project {
	result := make([]Project, 0, len(projects))
	for _, p := range projects {
		if filter != StatusAll && filter != "" && p.Status != filter {
			continue
		}
		if !includeCompleted && p.Status == ProjectCompleted {
			continue
		}
		result = append(result, p)
	}
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if ra, rb := statusRank(a.Status), statusRank(b.Status); ra != rb {
			return ra < rb
		}
		switch key {
		case SortVotes:
			return a.Votes > b.Votes
		case SortCost:
			return a.Cost.Cents > b.Cost.Cents
		default:
			return a.ID > b.ID
		}
	})
	return result
}

// HasVoted reports whether the member id is in the project's voter set.
func (p Project) HasVoted(memberID int64) bool {
	for _, id := range p.VotedMemberIDs {
		if id == memberID {
			return true
		}
	}
	return false
}
