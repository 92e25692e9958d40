package zone

import (
	"github.com/paulmach/orb"

	"github.com/woozymasta/uaszones/internal/ed269"
)

// SaveFunc persists the currently selected collection.
type SaveFunc func(*ed269.Collection) error

// Session tracks the interactive selection state for one loaded dataset.
// The browser flow is strictly sequential, one user action at a time, so
// the session needs no locking.
type Session struct {
	original *ed269.Collection
	current  *ed269.Collection
	save     SaveFunc
}

// NewSession starts a session over the loaded dataset. save may be nil when
// selections should not be persisted.
func NewSession(c *ed269.Collection, save SaveFunc) *Session {
	return &Session{original: c, current: c, save: save}
}

// CircleDrawn filters the original dataset by the drawn circle, persists
// the result and makes it the current selection. The original dataset stays
// untouched so consecutive circles never compound.
func (s *Session) CircleDrawn(center orb.Point, radiusKm float64) (*ed269.Collection, error) {
	filtered, err := Filter(s.original, center, radiusKm)
	if err != nil {
		return nil, err
	}

	if s.save != nil {
		if err := s.save(filtered); err != nil {
			return nil, err
		}
	}

	s.current = filtered
	return filtered, nil
}

// Reset discards the selection and returns the unfiltered original.
func (s *Session) Reset() *ed269.Collection {
	s.current = s.original
	return s.current
}

// Current returns the collection the map should display.
func (s *Session) Current() *ed269.Collection {
	return s.current
}
