// internal/domain/tracking/timeline.go
package tracking

import (
	"time"
)

// Milestones are the shipping stages shown to shoppers, in order
var Milestones = []string{
	"Order Placed",
	"Shipped",
	"Out for Delivery",
	"Delivered",
}

// HistoryEntry is one row of an order's status history
type HistoryEntry struct {
	HistoryStatus string `json:"historyStatus"`
	UpdatedAt     string `json:"updatedAt"`
}

// Milestone is a timeline stage; UpdatedAt is empty when not reached
type Milestone struct {
	Status    string `json:"status"`
	UpdatedAt string `json:"updatedAt,omitempty"`
	Reached   bool   `json:"reached"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// BuildTimeline maps status history onto the fixed milestones. A milestone
// counts as reached only when it and every earlier one have a timestamp, so
// a gap hides all later stages. Unknown statuses are ignored; when a status
// repeats, the latest timestamp wins.
func BuildTimeline(history []HistoryEntry) []Milestone {
	known := make(map[string]bool, len(Milestones))
	for _, status := range Milestones {
		known[status] = true
	}

	latest := make(map[string]string, len(Milestones))
	for _, entry := range history {
		if !known[entry.HistoryStatus] || entry.UpdatedAt == "" {
			continue
		}
		current, ok := latest[entry.HistoryStatus]
		if !ok || !isBefore(entry.UpdatedAt, current) {
			latest[entry.HistoryStatus] = entry.UpdatedAt
		}
	}

	timeline := make([]Milestone, 0, len(Milestones))
	allowNext := true
	for _, status := range Milestones {
		updatedAt, ok := latest[status]
		if allowNext && ok {
			timeline = append(timeline, Milestone{Status: status, UpdatedAt: updatedAt, Reached: true})
			continue
		}
		allowNext = false
		timeline = append(timeline, Milestone{Status: status})
	}
	return timeline
}

// PlacedAt returns the first milestone's timestamp
func PlacedAt(timeline []Milestone) string {
	if len(timeline) == 0 || !timeline[0].Reached {
		return ""
	}
	return timeline[0].UpdatedAt
}

// LastUpdatedAt returns the timestamp of the furthest reached milestone
func LastUpdatedAt(timeline []Milestone) string {
	last := ""
	for _, milestone := range timeline {
		if milestone.Reached {
			last = milestone.UpdatedAt
		}
	}
	return last
}

// isBefore reports whether a is strictly earlier than b. Unparseable
// timestamps compare as not before, so the later row wins.
func isBefore(a, b string) bool {
	ta, okA := parseTimestamp(a)
	tb, okB := parseTimestamp(b)
	if !okA || !okB {
		return false
	}
	return ta.Before(tb)
}

func parseTimestamp(value string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
