// Package datefmt formats timestamps the way Spanish (es-ES) readers expect them.
package datefmt

import (
	"fmt"
	"time"
)

var monthsES = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"}

// MediumDateShortTime renders t in loc as "2 ene 2024, 10:05"
// (es-ES medium date followed by short time). A nil loc means time.Local.
func MediumDateShortTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return fmt.Sprintf("%d %s %d, %02d:%02d", t.Day(), monthsES[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}
