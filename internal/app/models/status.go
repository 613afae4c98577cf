package models

// The status vocabulary is kept from the marketplace's data model:
// requested items and listings move through pendiente -> en_proceso ->
// concretado, matches through match_donante -> match_aceptado ->
// concretado (or match_rechazado / cancelado). Every write that changes a
// status validates the transition against the tables below; anything not
// in a table is rejected.

// ItemStatus is the lifecycle status of a listing and of each of its
// requested items.
type ItemStatus string

const (
	ItemPending    ItemStatus = "pendiente"
	ItemInProgress ItemStatus = "en_proceso"
	ItemFulfilled  ItemStatus = "concretado"
)

var itemTransitions = map[ItemStatus][]ItemStatus{
	ItemPending:    {ItemInProgress},
	ItemInProgress: {ItemFulfilled, ItemPending}, // back to pendiente on cancel
	ItemFulfilled:  nil,                          // terminal
}

// Valid reports whether the status is a known item status.
func (s ItemStatus) Valid() bool {
	_, ok := itemTransitions[s]
	return ok
}

// CanTransitionTo reports whether the transition s -> next is allowed.
func (s ItemStatus) CanTransitionTo(next ItemStatus) bool {
	for _, t := range itemTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions exist from s.
func (s ItemStatus) Terminal() bool {
	return s.Valid() && len(itemTransitions[s]) == 0
}

// MatchStatus is the lifecycle status of a match between a donor and a
// requested item.
type MatchStatus string

const (
	MatchCommitted MatchStatus = "match_donante"
	MatchAccepted  MatchStatus = "match_aceptado"
	MatchRejected  MatchStatus = "match_rechazado"
	MatchFulfilled MatchStatus = "concretado"
	MatchCancelled MatchStatus = "cancelado"
)

var matchTransitions = map[MatchStatus][]MatchStatus{
	MatchCommitted: {MatchAccepted, MatchRejected, MatchCancelled},
	MatchAccepted:  {MatchFulfilled, MatchCancelled},
	MatchRejected:  nil,
	MatchFulfilled: nil,
	MatchCancelled: nil,
}

// Valid reports whether the status is a known match status.
func (s MatchStatus) Valid() bool {
	_, ok := matchTransitions[s]
	return ok
}

// CanTransitionTo reports whether the transition s -> next is allowed.
func (s MatchStatus) CanTransitionTo(next MatchStatus) bool {
	for _, t := range matchTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions exist from s.
func (s MatchStatus) Terminal() bool {
	return s.Valid() && len(matchTransitions[s]) == 0
}

// Active reports whether the match still blocks a new commitment by the
// same donor for the same item. Rejected and cancelled matches do not.
func (s MatchStatus) Active() bool {
	return s == MatchCommitted || s == MatchAccepted
}
