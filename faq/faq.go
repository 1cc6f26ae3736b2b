// Package faq holds the landing page questions and the single-expansion
// accordion state that decides which answer is visible.
//
// An Accordion is a value: every toggle returns a new Accordion and leaves
// the receiver untouched, so handlers can rebuild state from a request,
// derive the next state for each header link, and render without locking.
package faq

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrIndexOutOfRange is returned when an index does not address an entry.
var ErrIndexOutOfRange = errors.New("faq: index out of range")

// Entry is a single question and its answer.
type Entry struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// Expansion is the index of the expanded entry, or none.
// The zero value is none.
type Expansion struct {
	index int
	set   bool
}

// None returns the collapsed-everything expansion.
func None() Expansion { return Expansion{} }

// At returns an expansion pointing at entry i. It is not bounds-checked;
// Accordion.WithExpansion does that against a concrete entry list.
func At(i int) Expansion { return Expansion{index: i, set: true} }

// Index reports the expanded index and whether one is set.
func (e Expansion) Index() (int, bool) { return e.index, e.set }

// IsNone reports whether no entry is expanded.
func (e Expansion) IsNone() bool { return !e.set }

// String encodes the expansion for query strings: "none" or the decimal index.
func (e Expansion) String() string {
	if !e.set {
		return "none"
	}
	return strconv.Itoa(e.index)
}

// ParseExpansion decodes the output of Expansion.String.
func ParseExpansion(s string) (Expansion, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "none") {
		return None(), nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return Expansion{}, fmt.Errorf("faq: parse expansion %q: %w", s, err)
	}
	if i < 0 {
		return Expansion{}, fmt.Errorf("faq: parse expansion %q: %w", s, ErrIndexOutOfRange)
	}
	return At(i), nil
}

// Accordion is an ordered list of entries with at most one expanded.
type Accordion struct {
	entries []Entry
	open    Expansion
}

// New returns the initial accordion: the first entry expanded, or nothing
// expanded when entries is empty.
func New(entries []Entry) Accordion {
	a := Accordion{entries: entries}
	if len(entries) > 0 {
		a.open = At(0)
	}
	return a
}

// Len returns the number of entries.
func (a Accordion) Len() int { return len(a.entries) }

// Entries returns the entries in display order. Callers must not modify it.
func (a Accordion) Entries() []Entry { return a.entries }

// Expansion returns the current expansion.
func (a Accordion) Expansion() Expansion { return a.open }

// IsExpanded reports whether entry i is the expanded one.
func (a Accordion) IsExpanded(i int) bool {
	idx, ok := a.open.Index()
	return ok && idx == i
}

// WithExpansion returns a copy of a with e as the expanded entry.
func (a Accordion) WithExpansion(e Expansion) (Accordion, error) {
	if idx, ok := e.Index(); ok && !a.valid(idx) {
		return a, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, idx, len(a.entries))
	}
	a.open = e
	return a, nil
}

// Toggle activates the header of entry i. If i is expanded the accordion
// collapses entirely; otherwise i becomes the only expanded entry.
func (a Accordion) Toggle(i int) (Accordion, error) {
	if !a.valid(i) {
		return a, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(a.entries))
	}
	if a.IsExpanded(i) {
		a.open = None()
	} else {
		a.open = At(i)
	}
	return a, nil
}

// Item is an entry as the renderer sees it.
type Item struct {
	Index    int
	Entry    Entry
	Expanded bool
	// Next is the expansion that activating this item's header produces.
	Next Expansion
}

// Items returns every entry with its rendered state.
func (a Accordion) Items() []Item {
	items := make([]Item, len(a.entries))
	for i, e := range a.entries {
		next, _ := a.Toggle(i)
		items[i] = Item{
			Index:    i,
			Entry:    e,
			Expanded: a.IsExpanded(i),
			Next:     next.open,
		}
	}
	return items
}

func (a Accordion) valid(i int) bool {
	return i >= 0 && i < len(a.entries)
}
