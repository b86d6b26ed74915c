package changelog

import (
	"fmt"
	"strings"
)

// Drilldown recovers the exact linked events behind one aggregate bucket.
type Drilldown struct {
	identity *Normalizer
}

// NewDrilldown creates a resolver sharing the aggregator's identity hook so
// a clicked person bucket resolves with the same identity rules it was
// grouped under.
func NewDrilldown(identity *Normalizer) *Drilldown {
	return &Drilldown{identity: identity}
}

// Resolve returns the events whose key along d matches the bucket key,
// plus a title for the detail view. Day, week, month and tag match by exact
// equality; person matches whole tokens, so "Ana" finds "Ana Silva" but
// never "Mariana". A key matching zero events yields an empty slice and a
// title naming the searched key. That is an empty state, not an error.
func (r *Drilldown) Resolve(events []LinkedEvent, d Dimension, key string) ([]LinkedEvent, string) {
	var out []LinkedEvent
	for _, ev := range events {
		if r.matches(ev, d, key) {
			out = append(out, ev)
		}
	}

	if len(out) == 0 {
		return nil, fmt.Sprintf("No events for %s %q", d, key)
	}
	return out, fmt.Sprintf("Details for %s %q", d, key)
}

func (r *Drilldown) matches(ev LinkedEvent, d Dimension, key string) bool {
	if d == DimensionPerson {
		return tokenMatch(r.identity.Normalize(ev.Person), r.identity.Normalize(key))
	}
	return bucketKey(ev, d, r.identity) == key
}

// tokenMatch reports whether key occurs in person as a contiguous run of
// whole whitespace-delimited tokens.
func tokenMatch(person, key string) bool {
	pt := strings.Fields(person)
	kt := strings.Fields(key)
	if len(kt) == 0 || len(kt) > len(pt) {
		return false
	}
	for i := 0; i+len(kt) <= len(pt); i++ {
		found := true
		for j := range kt {
			if pt[i+j] != kt[j] {
				found = false
				break
			}
		}
		if found {
			return true
		}
	}
	return false
}
