package service

import (
	"sort"
	"strings"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// parseTimestamp accepts the formats sqlite and postgres hand back as text.
// Values without a zone are read as UTC; a stated offset is kept.
func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// isHourlyBucketing reports whether a range spanning at most two whole days
// should be bucketed by hour instead of by day.
func isHourlyBucketing(first, last time.Time) bool {
	wholeDays := int(last.Sub(first) / (24 * time.Hour))
	return wholeDays <= 2
}

// bucketTimes counts stamps per hour or per day, oldest bucket first.
func bucketTimes(stamps []time.Time) Timeline {
	first, last := stamps[0], stamps[0]
	for _, t := range stamps[1:] {
		if t.Before(first) {
			first = t
		}
		if t.After(last) {
			last = t
		}
	}

	granularity, layout := Daily, "2006-01-02"
	if isHourlyBucketing(first, last) {
		granularity, layout = Hourly, "2006-01-02 15:00"
	}

	// Buckets follow each stamp's own wall clock, so an evening in
	// UTC-06:00 stays on its local day.
	counts := make(map[string]int)
	for _, t := range stamps {
		counts[t.Format(layout)]++
	}

	periods := make([]string, 0, len(counts))
	for p := range counts {
		periods = append(periods, p)
	}
	sort.Strings(periods)

	points := make([]TimelinePoint, len(periods))
	for i, p := range periods {
		points[i] = TimelinePoint{Period: p, Count: counts[p]}
	}
	return Timeline{Granularity: granularity, Points: points}
}
