package models

import "testing"

func TestItemStatusTransitions(t *testing.T) {
	cases := []struct {
		from ItemStatus
		to   ItemStatus
		want bool
	}{
		{ItemPending, ItemInProgress, true},
		{ItemInProgress, ItemFulfilled, true},
		{ItemInProgress, ItemPending, true}, // cancel reopens the item
		{ItemPending, ItemFulfilled, false},
		{ItemFulfilled, ItemPending, false},
		{ItemFulfilled, ItemInProgress, false},
		{ItemPending, ItemPending, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.want {
			t.Errorf("ItemStatus(%q).CanTransitionTo(%q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestItemFulfilledIsTerminal(t *testing.T) {
	if !ItemFulfilled.Terminal() {
		t.Error("concretado must be terminal for items")
	}
	if ItemPending.Terminal() || ItemInProgress.Terminal() {
		t.Error("pendiente and en_proceso must not be terminal")
	}
}

func TestMatchStatusTransitions(t *testing.T) {
	cases := []struct {
		from MatchStatus
		to   MatchStatus
		want bool
	}{
		{MatchCommitted, MatchAccepted, true},
		{MatchCommitted, MatchRejected, true},
		{MatchCommitted, MatchCancelled, true}, // donor withdrawal
		{MatchAccepted, MatchFulfilled, true},
		{MatchAccepted, MatchCancelled, true},
		{MatchCommitted, MatchFulfilled, false}, // must be accepted first
		{MatchAccepted, MatchRejected, false},
		{MatchFulfilled, MatchCancelled, false},
		{MatchRejected, MatchAccepted, false},
		{MatchCancelled, MatchCommitted, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.want {
			t.Errorf("MatchStatus(%q).CanTransitionTo(%q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestMatchStatusActive(t *testing.T) {
	active := map[MatchStatus]bool{
		MatchCommitted: true,
		MatchAccepted:  true,
		MatchRejected:  false,
		MatchFulfilled: false,
		MatchCancelled: false,
	}
	for s, want := range active {
		if got := s.Active(); got != want {
			t.Errorf("MatchStatus(%q).Active() = %v, want %v", s, got, want)
		}
	}
}

func TestMatchTerminalStates(t *testing.T) {
	for _, s := range []MatchStatus{MatchRejected, MatchFulfilled, MatchCancelled} {
		if !s.Terminal() {
			t.Errorf("MatchStatus(%q) must be terminal", s)
		}
	}
	for _, s := range []MatchStatus{MatchCommitted, MatchAccepted} {
		if s.Terminal() {
			t.Errorf("MatchStatus(%q) must not be terminal", s)
		}
	}
}

// TestWorkflowScenarioChains walks the status chains the workflow
// endpoints produce, including two donors committing to the same item:
// the accepted donor's match advances, the competitor's is rejected.
func TestWorkflowScenarioChains(t *testing.T) {
	chains := []struct {
		name  string
		match []MatchStatus
		item  []ItemStatus
	}{
		{
			name:  "commit accept fulfill",
			match: []MatchStatus{MatchCommitted, MatchAccepted, MatchFulfilled},
			item:  []ItemStatus{ItemPending, ItemInProgress, ItemFulfilled},
		},
		{
			name:  "commit accept cancel",
			match: []MatchStatus{MatchCommitted, MatchAccepted, MatchCancelled},
			item:  []ItemStatus{ItemPending, ItemInProgress, ItemPending},
		},
	}
	for _, c := range chains {
		t.Run(c.name, func(t *testing.T) {
			for i := 1; i < len(c.match); i++ {
				if !c.match[i-1].CanTransitionTo(c.match[i]) {
					t.Errorf("match chain broken at %q -> %q", c.match[i-1], c.match[i])
				}
			}
			for i := 1; i < len(c.item); i++ {
				if !c.item[i-1].CanTransitionTo(c.item[i]) {
					t.Errorf("item chain broken at %q -> %q", c.item[i-1], c.item[i])
				}
			}
		})
	}

	// The losing donor's commitment is rejected on accept of the winner
	// and stops blocking a fresh commitment.
	if !MatchCommitted.CanTransitionTo(MatchRejected) {
		t.Error("competing commitment must be rejectable")
	}
	if MatchRejected.Active() {
		t.Error("a rejected commitment must not block a new one")
	}
}

func TestStatusValidity(t *testing.T) {
	if ItemStatus("match_donante").Valid() {
		t.Error("match statuses are not item statuses")
	}
	if MatchStatus("en_proceso").Valid() {
		t.Error("item statuses are not match statuses")
	}
	if !RoleType("mec").Valid() || RoleType("admin").Valid() {
		t.Error("role validity mismatch")
	}
}
