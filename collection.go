package steamid

import (
	"errors"
	"slices"
)

// Collection is an ordered list of identifiers, typically the batch passed to
// a multi-player lookup.
type Collection []SteamID

// ParseCollection parses every input. All failures are returned together,
// joined with errors.Join; the collection holds the inputs that did parse, in
// input order.
func ParseCollection(inputs []string) (Collection, error) {
	c := make(Collection, 0, len(inputs))
	var errs []error
	for _, s := range inputs {
		id, err := Parse(s)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		c = append(c, id)
	}
	return c, errors.Join(errs...)
}

// ToStringSlice returns the 64-bit decimal form of every element.
func (c Collection) ToStringSlice() []string {
	out := make([]string, len(c))
	for i, id := range c {
		out[i] = id.String()
	}
	return out
}

// Contains reports whether id is in the collection.
func (c Collection) Contains(id SteamID) bool {
	return slices.Contains(c, id)
}

// Unique returns a copy without duplicates, keeping first occurrences.
func (c Collection) Unique() Collection {
	seen := make(map[SteamID]struct{}, len(c))
	out := make(Collection, 0, len(c))
	for _, id := range c {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Sort orders the collection in place by packed value.
func (c Collection) Sort() {
	slices.Sort(c)
}
