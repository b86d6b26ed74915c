package changelog

import (
	"regexp"
	"strings"
	"time"
)

// TimestampLayout is the fixed date-time format used inside annotation
// cells: day first, 24-hour clock, second precision.
const TimestampLayout = "02/01/2006 15:04:05"

// annotationPattern matches "<name> - <DD/MM/YYYY HH:MM:SS>". The search is
// unanchored, matching the source system's behaviour for cells with trailing
// text after the timestamp.
var annotationPattern = regexp.MustCompile(`(.+) - (\d{2}/\d{2}/\d{4} \d{2}:\d{2}:\d{2})`)

// ParseAnnotation extracts the (person, timestamp) pair from one annotation
// cell. Blank cells, cells that do not match the pattern and cells whose
// date-time segment is not a real calendar instant all return ok == false:
// malformed log entries are expected noise in hand-edited sheets and are
// dropped silently, never surfaced as errors.
//
// On success the name segment is trimmed of surrounding whitespace and
// otherwise returned verbatim. Case and diacritics are preserved, so two
// spellings of one person are two identities unless the caller opts into a
// Normalizer.
func ParseAnnotation(cell string) (person string, ts time.Time, ok bool) {
	if strings.TrimSpace(cell) == "" {
		return "", time.Time{}, false
	}

	m := annotationPattern.FindStringSubmatch(cell)
	if m == nil {
		return "", time.Time{}, false
	}

	person = strings.TrimSpace(m[1])
	if person == "" {
		return "", time.Time{}, false
	}

	// time.Parse rejects impossible instants such as 31/02 or hour 25, which
	// the digit pattern alone cannot.
	ts, err := time.Parse(TimestampLayout, m[2])
	if err != nil {
		return "", time.Time{}, false
	}

	return person, ts, true
}
