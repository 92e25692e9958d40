package zone

import (
	"errors"
	"fmt"

	"github.com/woozymasta/uaszones/internal/ed269"
)

// ErrAmbiguousIdentifier marks datasets whose features cannot be matched
// uniquely by identifier.
var ErrAmbiguousIdentifier = errors.New("ambiguous feature identifier")

// Diff splits two collections into the features present only in a and only
// in b. Features match by identifier; features without one fall back to
// full attribute equality. The outputs are disjoint and, together with the
// common features, reconstruct both inputs.
func Diff(a, b *ed269.Collection) (onlyA, onlyB *ed269.Collection, err error) {
	idxA, err := indexByIdentifier(a)
	if err != nil {
		return nil, nil, err
	}
	idxB, err := indexByIdentifier(b)
	if err != nil {
		return nil, nil, err
	}

	onlyA = a.WithFeatures(uniqueFeatures(a, idxB, b))
	onlyB = b.WithFeatures(uniqueFeatures(b, idxA, a))

	return onlyA, onlyB, nil
}

// indexByIdentifier maps features by identifier. Duplicate identifiers are
// tolerated only when the duplicates are identical records.
func indexByIdentifier(c *ed269.Collection) (map[string]*ed269.Feature, error) {
	idx := make(map[string]*ed269.Feature, len(c.Features))

	for i := range c.Features {
		f := &c.Features[i]
		if f.Identifier == "" {
			continue
		}

		if prev, ok := idx[f.Identifier]; ok && !prev.Equal(f) {
			return nil, fmt.Errorf("%w: %q appears with differing content", ErrAmbiguousIdentifier, f.Identifier)
		}
		idx[f.Identifier] = f
	}

	return idx, nil
}

// uniqueFeatures returns, in order, the features of c without a counterpart
// on the other side.
func uniqueFeatures(c *ed269.Collection, otherIdx map[string]*ed269.Feature, other *ed269.Collection) []ed269.Feature {
	unique := make([]ed269.Feature, 0, len(c.Features))

	for i := range c.Features {
		f := &c.Features[i]

		if f.Identifier != "" {
			if _, ok := otherIdx[f.Identifier]; !ok {
				unique = append(unique, f.Clone())
			}
			continue
		}

		if !containsAnonymous(other, f) {
			unique = append(unique, f.Clone())
		}
	}

	return unique
}

// containsAnonymous reports whether c holds an identifier-less feature with
// identical content.
func containsAnonymous(c *ed269.Collection, f *ed269.Feature) bool {
	for i := range c.Features {
		o := &c.Features[i]
		if o.Identifier == "" && o.Equal(f) {
			return true
		}
	}

	return false
}
