package board

import (
	"strings"
	"time"
)

const (
	dateLayout    = "2006-01-02"
	dueTimeLayout = "3:04 PM"
)

// ParseDueInstant combines a YYYY-MM-DD date and a 12-hour clock time
// ("11:59 PM") into one timestamp in local time. On any parse failure it
// returns now and false instead of dropping the value, so every
// assignment can still be bucketed into a board.
func ParseDueInstant(dueDate, dueTime string, now time.Time) (time.Time, bool) {
	raw := strings.TrimSpace(dueDate) + " " + strings.ToUpper(strings.TrimSpace(dueTime))
	t, err := time.ParseInLocation(dateLayout+" "+dueTimeLayout, raw, time.Local)
	if err != nil {
		return now, false
	}
	return t, true
}
