// Package search filters the public listings (houses and their unit
// groups) by a single free-text term.
package search

import (
	"strings"
	"sync"

	"github.com/Simatwa/house-rental-management-system/internal/models"
)

// Result is the filtered view of the listings.
type Result struct {
	Houses     []models.House             `json:"houses"`
	UnitGroups models.HouseUnitGroupIndex `json:"unitGroups"`
}

// Filter narrows houses and their unit groups to those matching term.
//
// A blank term returns the inputs unchanged. Otherwise houses are matched
// on Name, and unit groups on Name or AbbreviatedName, case-insensitively.
// The two axes are filtered independently: a house key stays in
// UnitGroups whenever any of its groups match, even if the house itself
// was dropped from Houses.
func Filter(houses []models.House, unitGroupsByHouse models.HouseUnitGroupIndex, term string) Result {
	if strings.TrimSpace(term) == "" {
		return Result{Houses: houses, UnitGroups: unitGroupsByHouse}
	}
	needle := strings.ToLower(term)

	matched := make([]models.House, 0, len(houses))
	for _, h := range houses {
		if strings.Contains(strings.ToLower(h.Name), needle) {
			matched = append(matched, h)
		}
	}

	groups := make(models.HouseUnitGroupIndex)
	for houseID, list := range unitGroupsByHouse {
		var kept []models.UnitGroup
		for _, g := range list {
			if groupMatches(g, needle) {
				kept = append(kept, g)
			}
		}
		if len(kept) > 0 {
			groups[houseID] = kept
		}
	}

	return Result{Houses: matched, UnitGroups: groups}
}

func groupMatches(g models.UnitGroup, needle string) bool {
	return strings.Contains(strings.ToLower(g.Name), needle) ||
		strings.Contains(strings.ToLower(g.AbbreviatedName), needle)
}

// Engine holds the current listings and term and keeps the filtered
// result up to date as any of them changes.
type Engine struct {
	mu      sync.RWMutex
	houses  []models.House
	index   models.HouseUnitGroupIndex
	term    string
	current Result
}

func NewEngine() *Engine {
	e := &Engine{index: models.HouseUnitGroupIndex{}}
	e.current = Filter(e.houses, e.index, e.term)
	return e
}

func (e *Engine) SetHouses(houses []models.House) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.houses = houses
	e.recompute()
}

func (e *Engine) SetIndex(index models.HouseUnitGroupIndex) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if index == nil {
		index = models.HouseUnitGroupIndex{}
	}
	e.index = index
	e.recompute()
}

// SetListings replaces houses and index together, so no lookup ever
// pairs one load's houses with another load's unit groups.
func (e *Engine) SetListings(houses []models.House, index models.HouseUnitGroupIndex) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if index == nil {
		index = models.HouseUnitGroupIndex{}
	}
	e.houses = houses
	e.index = index
	e.recompute()
}

func (e *Engine) SetTerm(term string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.term = term
	e.recompute()
}

// Term returns the term the current result was computed for.
func (e *Engine) Term() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.term
}

func (e *Engine) Result() Result {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current
}

// Lookup filters the held listings by term without changing the
// engine's own term.
func (e *Engine) Lookup(term string) Result {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Filter(e.houses, e.index, term)
}

func (e *Engine) recompute() {
	e.current = Filter(e.houses, e.index, e.term)
}
