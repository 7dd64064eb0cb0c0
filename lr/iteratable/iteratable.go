package iteratable

// Set is an iteratable set of (comparable) items. Sets are created empty and
// grow by Add. Elements keep their insertion order, which makes iteration
// deterministic and allows algorithms to append to a set while iterating over
// it (a common pattern for closure computations).
//
// Sets are not safe for concurrent use.
type Set struct {
	items  []interface{}
	cursor int
}

// NewSet creates a set, pre-allocating space for size items.
func NewSet(size int) *Set {
	if size <= 0 {
		size = 4
	}
	return &Set{
		items:  make([]interface{}, 0, size),
		cursor: -1,
	}
}

// Add adds an item to the set, unless it is already present.
func (s *Set) Add(item interface{}) {
	if s == nil || item == nil {
		return
	}
	if s.Contains(item) {
		return
	}
	s.items = append(s.items, item)
}

// Remove removes an item from the set, returning it. Returns nil if the item
// is not contained in the set.
func (s *Set) Remove(item interface{}) interface{} {
	if s == nil {
		return nil
	}
	for i, m := range s.items {
		if m == item {
			s.items = append(s.items[:i], s.items[i+1:]...)
			if i <= s.cursor {
				s.cursor--
			}
			return item
		}
	}
	return nil
}

// Contains reports set membership of an item.
func (s *Set) Contains(item interface{}) bool {
	if s == nil {
		return false
	}
	for _, m := range s.items {
		if m == item {
			return true
		}
	}
	return false
}

// Size returns the number of items in the set.
func (s *Set) Size() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Empty reports whether the set contains no items.
func (s *Set) Empty() bool {
	return s.Size() == 0
}

// Values returns the items of the set in insertion order.
func (s *Set) Values() []interface{} {
	if s == nil {
		return nil
	}
	return append([]interface{}{}, s.items...)
}

// Copy returns a copy of the set. The iteration cursor is not copied.
func (s *Set) Copy() *Set {
	if s == nil {
		return nil
	}
	c := NewSet(len(s.items))
	c.items = append(c.items, s.items...)
	return c
}

// Union adds all items of other to the set.
func (s *Set) Union(other *Set) *Set {
	if s == nil || other == nil {
		return s
	}
	for _, m := range other.items {
		s.Add(m)
	}
	return s
}

// Difference returns the items of the set which are not contained in other,
// as a new set. The receiver is left unchanged.
func (s *Set) Difference(other *Set) *Set {
	if s == nil {
		return nil
	}
	d := NewSet(len(s.items))
	for _, m := range s.items {
		if !other.Contains(m) {
			d.Add(m)
		}
	}
	return d
}

// Equals reports whether two sets contain the same items, irrespective of
// their insertion order.
func (s *Set) Equals(other *Set) bool {
	if s.Size() != other.Size() {
		return false
	}
	if s == nil || other == nil {
		return true
	}
	for _, m := range s.items {
		if !other.Contains(m) {
			return false
		}
	}
	return true
}

// IterateOnce starts an iteration over the items of the set. Items added
// during the iteration will be included. Iterate with Next and Item:
//
//     S.IterateOnce()
//     for S.Next() {
//         item := S.Item()
//         …
//     }
//
func (s *Set) IterateOnce() {
	if s == nil {
		return
	}
	s.cursor = -1
}

// Next advances the iteration, returning false when the set is exhausted.
func (s *Set) Next() bool {
	if s == nil {
		return false
	}
	s.cursor++
	return s.cursor < len(s.items)
}

// Item returns the item at the current iteration position.
func (s *Set) Item() interface{} {
	if s == nil || s.cursor < 0 || s.cursor >= len(s.items) {
		return nil
	}
	return s.items[s.cursor]
}

// First resets the iteration and returns the first item of the set, or nil
// for an empty set.
func (s *Set) First() interface{} {
	if s.Empty() {
		return nil
	}
	s.cursor = 0
	return s.items[0]
}
