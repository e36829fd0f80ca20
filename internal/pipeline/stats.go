package pipeline

import "time"

// RunStats tracks aggregate counters and elapsed time across a run.
type RunStats struct {
	Total     int
	Converted int
	Skipped   int
	Failed    int
	TotalTime time.Duration
}

// AverageTime returns the mean conversion time per converted image,
// or zero when nothing converted.
func (s *RunStats) AverageTime() time.Duration {
	if s.Converted == 0 {
		return 0
	}
	return s.TotalTime / time.Duration(s.Converted)
}
