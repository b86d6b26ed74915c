package changelog

import (
	"sort"
	"strings"
)

// Dimension selects the grouping key for aggregation and drill-down.
type Dimension string

const (
	DimensionWeek   Dimension = "week"
	DimensionDay    Dimension = "day"
	DimensionMonth  Dimension = "month"
	DimensionPerson Dimension = "person"
	DimensionTag    Dimension = "tag"
)

// Valid reports whether d is one of the five supported dimensions.
func (d Dimension) Valid() bool {
	switch d {
	case DimensionWeek, DimensionDay, DimensionMonth, DimensionPerson, DimensionTag:
		return true
	}
	return false
}

// Title is the human-readable heading for an aggregation over d.
func (d Dimension) Title() string {
	switch d {
	case DimensionWeek:
		return "Weekly summary"
	case DimensionDay:
		return "Daily summary"
	case DimensionMonth:
		return "Monthly summary"
	case DimensionPerson:
		return "Summary by person"
	case DimensionTag:
		return "Summary by tag"
	}
	return "Summary"
}

// Bucket is one aggregate row: a dimension key and its metrics.
type Bucket struct {
	Key             string `json:"key"`
	Events          int    `json:"events"`
	DistinctTags    int    `json:"distinct_tags"`
	DistinctPersons int    `json:"distinct_persons"`
	// People is the sorted, de-duplicated, comma-joined list of person
	// identities in the bucket.
	People string `json:"people"`
}

// Total is the grand-total summary over an entire filtered collection. The
// distinct-tag count is computed over the whole set, not summed per bucket:
// a tag touched in two weeks must count once.
type Total struct {
	Events       int `json:"events"`
	DistinctTags int `json:"distinct_tags"`
}

// Aggregator groups linked events along one dimension. The identity
// normalizer, when configured, governs every person-keyed operation:
// grouping, distinct counts and membership lists. A nil normalizer keeps
// raw-text identity.
type Aggregator struct {
	identity *Normalizer
}

// NewAggregator creates an aggregator with the given identity hook
// (nil for raw-text identity).
func NewAggregator(identity *Normalizer) *Aggregator {
	return &Aggregator{identity: identity}
}

// bucketKey returns the grouping key of ev along d. Events without a tag
// have no key on the tag dimension and are skipped by the caller, matching
// how the source system's grouping dropped rows with missing TAG.
func bucketKey(ev LinkedEvent, d Dimension, identity *Normalizer) string {
	switch d {
	case DimensionWeek:
		return ev.WeekBucket
	case DimensionDay:
		return ev.Date.Format(dayLayout)
	case DimensionMonth:
		return ev.MonthBucket
	case DimensionPerson:
		return identity.Normalize(ev.Person)
	case DimensionTag:
		return ev.Tag
	}
	return ""
}

type accumulator struct {
	events  int
	tags    map[string]struct{}
	persons map[string]struct{}
}

// Aggregate groups events by the dimension key and computes per-group
// metrics. Keys that never occurred produce no row: the output is sparse,
// and callers needing a dense calendar axis must synthesize missing buckets
// themselves.
//
// Time dimensions sort ascending by key; person and tag sort by event count
// descending, then key, matching the presentation order of the source
// system.
func (a *Aggregator) Aggregate(events []LinkedEvent, d Dimension) []Bucket {
	groups := make(map[string]*accumulator)

	for _, ev := range events {
		key := bucketKey(ev, d, a.identity)
		if key == "" {
			continue
		}
		acc := groups[key]
		if acc == nil {
			acc = &accumulator{
				tags:    make(map[string]struct{}),
				persons: make(map[string]struct{}),
			}
			groups[key] = acc
		}
		acc.events++
		if ev.Tag != "" {
			acc.tags[ev.Tag] = struct{}{}
		}
		acc.persons[a.identity.Normalize(ev.Person)] = struct{}{}
	}

	buckets := make([]Bucket, 0, len(groups))
	for key, acc := range groups {
		people := make([]string, 0, len(acc.persons))
		for p := range acc.persons {
			people = append(people, p)
		}
		sort.Strings(people)

		buckets = append(buckets, Bucket{
			Key:             key,
			Events:          acc.events,
			DistinctTags:    len(acc.tags),
			DistinctPersons: len(acc.persons),
			People:          strings.Join(people, ", "),
		})
	}

	switch d {
	case DimensionPerson, DimensionTag:
		sort.Slice(buckets, func(i, j int) bool {
			if buckets[i].Events != buckets[j].Events {
				return buckets[i].Events > buckets[j].Events
			}
			return buckets[i].Key < buckets[j].Key
		})
	default:
		sort.Slice(buckets, func(i, j int) bool {
			return buckets[i].Key < buckets[j].Key
		})
	}

	return buckets
}

// GrandTotal computes the summary row over the entire filtered collection.
func (a *Aggregator) GrandTotal(events []LinkedEvent) Total {
	tags := make(map[string]struct{})
	for _, ev := range events {
		if ev.Tag != "" {
			tags[ev.Tag] = struct{}{}
		}
	}
	return Total{Events: len(events), DistinctTags: len(tags)}
}
