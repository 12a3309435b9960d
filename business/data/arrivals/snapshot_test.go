package arrivals

import (
	"github.com/matryer/is"
	"strconv"
	"testing"
	"time"
)

func makeTestSnapshot(arrivalTimes ...string) *Snapshot {
	collectedAt := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	return &Snapshot{
		StopName:     "Test Stop",
		CollectedAt:  &collectedAt,
		ArrivalTimes: arrivalTimes,
	}
}

func TestSnapshot_Arrivals(t *testing.T) {
	snapshot := makeTestSnapshot("08:01:00", "08:02:00", "08:03:00", "08:04:00", "08:05:00", "08:06:00", "08:07:00")
	for cutoff := 0; cutoff <= 9; cutoff++ {
		t.Run("cutoff: "+strconv.Itoa(cutoff), func(t *testing.T) {
			is := is.New(t)
			got := snapshot.Arrivals(cutoff)
			want := cutoff
			if want > len(snapshot.ArrivalTimes) {
				want = len(snapshot.ArrivalTimes)
			}
			is.Equal(len(got), want)
			for i := range got {
				is.Equal(got[i], snapshot.ArrivalTimes[i])
			}
		})
	}
}

func TestSnapshot_ArrivalsDoesNotShareStorage(t *testing.T) {
	is := is.New(t)
	snapshot := makeTestSnapshot("08:01:00", "08:02:00")
	got := snapshot.Arrivals(DefaultCutoff)
	got[0] = "changed"
	is.Equal(snapshot.ArrivalTimes[0], "08:01:00")
}

func TestSnapshot_ArrivalsEmpty(t *testing.T) {
	is := is.New(t)
	snapshot := &Snapshot{}
	is.Equal(len(snapshot.Arrivals(DefaultCutoff)), 0)
	is.Equal(len(snapshot.Arrivals(-1)), 0)
}

func TestSnapshot_Summary(t *testing.T) {
	query := Query{LineNumber: 304, StopNumber: 2688}
	tests := []struct {
		name     string
		snapshot *Snapshot
		want     string
	}{
		{
			name:     "no data",
			snapshot: &Snapshot{},
			want:     "Arrivals for bus 304 @ 2688.",
		},
		{
			name:     "keeps text before first colon",
			snapshot: makeTestSnapshot("08:15:30", "08:30:00"),
			want:     "Arrivals for bus 304 @ 2688: 08, 08. Collected 08:00:00.",
		},
		{
			name:     "only first five arrivals",
			snapshot: makeTestSnapshot("08:01:00", "09:02:00", "10:03:00", "11:04:00", "12:05:00", "13:06:00"),
			want:     "Arrivals for bus 304 @ 2688: 08, 09, 10, 11, 12. Collected 08:00:00.",
		},
		{
			name:     "times without colon kept whole",
			snapshot: makeTestSnapshot("soon", "0815"),
			want:     "Arrivals for bus 304 @ 2688: soon, 0815. Collected 08:00:00.",
		},
		{
			name:     "no arrivals",
			snapshot: makeTestSnapshot(),
			want:     "Arrivals for bus 304 @ 2688: . Collected 08:00:00.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			is.Equal(tt.snapshot.Summary(query), tt.want)
		})
	}
}
