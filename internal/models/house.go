package models

import "sort"

// House is a rentable property as listed publicly.
type House struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Picture     string `json:"picture"`
}

// HousePrivate is the tenant's own house, with its communities and office.
type HousePrivate struct {
	House
	Communities []Community `json:"communities"`
	Office      *HouseOffice `json:"office,omitempty"`
}

type Community struct {
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	SocialMediaLink string    `json:"social_media_link"`
	CreatedAt       Timestamp `json:"created_at"`
}

type HouseOffice struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number,omitempty"`
	Email         string `json:"email,omitempty"`
}

// HouseUnitGroupIndex maps a house id to its unit groups, in the order the
// API returned them.
type HouseUnitGroupIndex map[int][]UnitGroup

// Keys returns the house ids in ascending order.
func (idx HouseUnitGroupIndex) Keys() []int {
	keys := make([]int, 0, len(idx))
	for k := range idx {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Count is the total number of unit groups across all houses.
func (idx HouseUnitGroupIndex) Count() int {
	n := 0
	for _, groups := range idx {
		n += len(groups)
	}
	return n
}
