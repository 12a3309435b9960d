package arrivals

import (
	"strings"
	"time"
)

// DefaultCutoff is the number of arrivals included in a summary
const DefaultCutoff = 5

// Snapshot holds the result of the most recent successful arrivals lookup.
// CollectedAt is nil until the arrivals API has returned data for the line, ArrivalTimes is only meaningful
// once CollectedAt is set.
type Snapshot struct {
	StopName     string     `json:"stop_name"`
	CollectedAt  *time.Time `json:"collected_at"`
	ArrivalTimes []string   `json:"arrival_times"`
}

// HasData returns true if the snapshot was populated from the arrivals API
func (s *Snapshot) HasData() bool {
	return s.CollectedAt != nil
}

// Arrivals returns up to cutoff arrival times in the order they were reported
func (s *Snapshot) Arrivals(cutoff int) []string {
	if cutoff <= 0 {
		return []string{}
	}
	if cutoff > len(s.ArrivalTimes) {
		cutoff = len(s.ArrivalTimes)
	}
	result := make([]string, cutoff)
	copy(result, s.ArrivalTimes[:cutoff])
	return result
}

// Summary produces the text shown to the user and sent by SMS.
// Without data only the line and stop are named.
func (s *Snapshot) Summary(query Query) string {
	if !s.HasData() {
		return "Arrivals for " + query.String() + "."
	}
	arrivalTimes := s.Arrivals(DefaultCutoff)
	displayed := make([]string, len(arrivalTimes))
	for i, arrivalTime := range arrivalTimes {
		displayed[i] = trimSeconds(arrivalTime)
	}
	var b strings.Builder
	b.WriteString("Arrivals for ")
	b.WriteString(query.String())
	b.WriteString(": ")
	b.WriteString(strings.Join(displayed, ", "))
	b.WriteString(". Collected ")
	b.WriteString(s.CollectedAt.Format("15:04:05"))
	b.WriteString(".")
	return b.String()
}

// trimSeconds keeps the text before the first colon of an arrival time, "08:15:30" is shown as "08".
func trimSeconds(arrivalTime string) string {
	return strings.Split(arrivalTime, ":")[0]
}
