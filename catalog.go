package main

import (
	"fmt"
	"sort"
)

// ShapeID identifies a shape: -1 is empty, 0-10 are the built-in
// primitives and 11+ index the custom asset list.
type ShapeID int

const (
	EmptyShape   ShapeID = -1
	BuiltinCount         = 11
	FirstCustom  ShapeID = BuiltinCount
)

func (id ShapeID) IsBuiltin() bool {
	return id >= 0 && id < FirstCustom
}

func (id ShapeID) IsCustom() bool {
	return id >= FirstCustom
}

// Catalog holds the custom assets and the ordered set of enabled shape
// ids. Custom ids are positional: 11 + index in the asset list.
type Catalog struct {
	enabled []ShapeID
	assets  []*Asset
}

// NewCatalog returns a catalog with every built-in shape enabled.
func NewCatalog() *Catalog {
	c := &Catalog{}
	for i := 0; i < BuiltinCount; i++ {
		c.enabled = append(c.enabled, ShapeID(i))
	}
	return c
}

func (c *Catalog) Len() int {
	return len(c.enabled)
}

// Enabled returns a copy of the enabled ids in ascending order.
func (c *Catalog) Enabled() []ShapeID {
	return append([]ShapeID(nil), c.enabled...)
}

func (c *Catalog) At(i int) ShapeID {
	return c.enabled[i]
}

func (c *Catalog) IndexOf(id ShapeID) int {
	for i, e := range c.enabled {
		if e == id {
			return i
		}
	}
	return -1
}

func (c *Catalog) Contains(id ShapeID) bool {
	return c.IndexOf(id) >= 0
}

// Next returns the entry after id, wrapping around. Ids not in the
// catalog map to the first entry. An empty catalog yields EmptyShape.
func (c *Catalog) Next(id ShapeID) ShapeID {
	if len(c.enabled) == 0 {
		return EmptyShape
	}
	i := c.IndexOf(id)
	return c.enabled[(i+1)%len(c.enabled)]
}

// Known reports whether id names an existing built-in or custom shape.
func (c *Catalog) Known(id ShapeID) bool {
	return id.IsBuiltin() || (id.IsCustom() && int(id-FirstCustom) < len(c.assets))
}

func (c *Catalog) Enable(id ShapeID) error {
	if !c.Known(id) {
		return fmt.Errorf("shape %d: %w", id, ErrUnknownShape)
	}
	if c.Contains(id) {
		return nil
	}
	c.enabled = append(c.enabled, id)
	sort.Slice(c.enabled, func(i, j int) bool { return c.enabled[i] < c.enabled[j] })
	return nil
}

// SetEnabled replaces the enabled set with ids. Unknown ids are rejected
// and the catalog is left untouched.
func (c *Catalog) SetEnabled(ids []ShapeID) error {
	for _, id := range ids {
		if !c.Known(id) {
			return fmt.Errorf("shape %d: %w", id, ErrUnknownShape)
		}
	}
	c.enabled = nil
	for _, id := range ids {
		if !c.Contains(id) {
			c.enabled = append(c.enabled, id)
		}
	}
	sort.Slice(c.enabled, func(i, j int) bool { return c.enabled[i] < c.enabled[j] })
	return nil
}

// Disable removes id from the enabled set. The last shape may be disabled,
// leaving an empty catalog.
func (c *Catalog) Disable(id ShapeID) error {
	if !c.Known(id) {
		return fmt.Errorf("shape %d: %w", id, ErrUnknownShape)
	}
	if i := c.IndexOf(id); i >= 0 {
		c.enabled = append(c.enabled[:i], c.enabled[i+1:]...)
	}
	return nil
}

// Assets returns the custom assets in id order.
func (c *Catalog) Assets() []*Asset {
	return append([]*Asset(nil), c.assets...)
}

func (c *Catalog) Asset(id ShapeID) (*Asset, bool) {
	if !id.IsCustom() || int(id-FirstCustom) >= len(c.assets) {
		return nil, false
	}
	return c.assets[id-FirstCustom], true
}

// AddCustom appends asset under name, enables it and returns its id.
func (c *Catalog) AddCustom(asset *Asset, name string) ShapeID {
	if name != "" {
		asset.Name = name
	}
	c.assets = append(c.assets, asset)
	id := FirstCustom + ShapeID(len(c.assets)-1)
	c.enabled = append(c.enabled, id)
	return id
}

// RemoveCustom deletes the asset at index and re-derives the ids of every
// later asset as 11 + new position. Callers must invalidate cells holding
// custom ids, since any of them may now name a different asset.
func (c *Catalog) RemoveCustom(index int) error {
	if index < 0 || index >= len(c.assets) {
		return fmt.Errorf("custom shape %d: %w", index, ErrUnknownShape)
	}
	removed := FirstCustom + ShapeID(index)
	c.assets = append(c.assets[:index], c.assets[index+1:]...)

	enabled := c.enabled[:0]
	for _, id := range c.enabled {
		switch {
		case id == removed:
			continue
		case id > removed:
			id--
		}
		enabled = append(enabled, id)
	}
	c.enabled = enabled
	return nil
}

// Name returns a display name for id.
func (c *Catalog) Name(id ShapeID) string {
	if id.IsBuiltin() {
		return primitives[id].name
	}
	if a, ok := c.Asset(id); ok {
		return a.Name
	}
	return "empty"
}

// All returns every known id, enabled or not, in ascending order.
func (c *Catalog) All() []ShapeID {
	ids := make([]ShapeID, 0, BuiltinCount+len(c.assets))
	for i := 0; i < BuiltinCount+len(c.assets); i++ {
		ids = append(ids, ShapeID(i))
	}
	return ids
}
