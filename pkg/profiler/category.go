package profiler

import "fmt"

// Category identifies one measured phase. Values are dense indices into the
// owning CategorySet, assigned in declaration order, so they double as array
// indices into the accumulator table.
type Category int

// Index returns the dense index of the category.
func (c Category) Index() int { return int(c) }

// CategorySet is the closed domain of phases a Profiler can measure. It is
// built once, before profiling begins, and is immutable afterwards. Names and
// indices form a total bijection over [0, N).
type CategorySet struct {
	names  []string
	byName map[string]Category
}

// NewCategorySet builds a category set from phase names in declaration order.
// Names must be non-empty and unique.
func NewCategorySet(names ...string) (*CategorySet, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("category set requires at least one name")
	}

	set := &CategorySet{
		names:  make([]string, 0, len(names)),
		byName: make(map[string]Category, len(names)),
	}
	for _, name := range names {
		if name == "" {
			return nil, fmt.Errorf("category name cannot be empty")
		}
		if _, exists := set.byName[name]; exists {
			return nil, fmt.Errorf("duplicate category name %q", name)
		}
		set.byName[name] = Category(len(set.names))
		set.names = append(set.names, name)
	}
	return set, nil
}

// MustCategorySet is NewCategorySet that panics on error, for use at init time
// with a fixed name list.
func MustCategorySet(names ...string) *CategorySet {
	set, err := NewCategorySet(names...)
	if err != nil {
		panic(err)
	}
	return set
}

// Len returns the number of categories in the set.
func (s *CategorySet) Len() int { return len(s.names) }

// FromIndex converts a dense index back to its Category. It fails with
// ErrInvalidCategory for indices outside [0, N).
func (s *CategorySet) FromIndex(i int) (Category, error) {
	if i < 0 || i >= len(s.names) {
		return 0, fmt.Errorf("index %d outside [0, %d): %w", i, len(s.names), ErrInvalidCategory)
	}
	return Category(i), nil
}

// Name returns the declared name of a category.
func (s *CategorySet) Name(c Category) (string, error) {
	if int(c) < 0 || int(c) >= len(s.names) {
		return "", fmt.Errorf("category %d outside [0, %d): %w", int(c), len(s.names), ErrInvalidCategory)
	}
	return s.names[c], nil
}

// Lookup returns the category declared under name.
func (s *CategorySet) Lookup(name string) (Category, bool) {
	c, ok := s.byName[name]
	return c, ok
}

// Names returns the declared names in declaration order.
func (s *CategorySet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}
