// Package system provides the wall clock used to stamp reports.
package system

import "time"

// Clock reads time.Now in a fixed location.
type Clock struct {
	loc *time.Location
}

// New returns a Clock reporting times in loc. A nil loc means time.Local.
func New(loc *time.Location) *Clock {
	if loc == nil {
		loc = time.Local
	}
	return &Clock{loc: loc}
}

// Now returns the current time in the clock's location.
func (c *Clock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Location reports the location Now uses.
func (c *Clock) Location() *time.Location {
	return c.loc
}
