package main

import (
	"sync"
	"time"
)

const (
	statServed = "served"
	statFailed = "failed"
)

// Stats tracks service statistics
type Stats struct {
	PagesServed      int64                 `json:"pages_served"`
	PagesFailed      int64                 `json:"pages_failed"`
	WordsHighlighted int64                 `json:"words_highlighted"`
	StartTime        time.Time             `json:"start_time"`
	RootStats        map[string]*RootStats `json:"root_stats"`
	mutex            sync.RWMutex
}

// RootStats tracks per-source-site statistics
type RootStats struct {
	PagesServed         int64   `json:"pages_served"`
	PagesFailed         int64   `json:"pages_failed"`
	WordsHighlighted    int64   `json:"words_highlighted"`
	TotalProcessingTime float64 `json:"total_processing_time"`
}

// StatsSnapshot is a point-in-time copy of Stats
type StatsSnapshot struct {
	PagesServed      int64                `json:"pages_served"`
	PagesFailed      int64                `json:"pages_failed"`
	WordsHighlighted int64                `json:"words_highlighted"`
	UptimeSeconds    float64              `json:"uptime_seconds"`
	RootStats        map[string]RootStats `json:"root_stats"`
}

// NewStats creates empty statistics starting now
func NewStats() *Stats {
	return &Stats{
		StartTime: time.Now(),
		RootStats: make(map[string]*RootStats),
	}
}

// update records the outcome of one request for root
func (s *Stats) update(root, action string, highlights int, processingTime float64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if root != "" && s.RootStats[root] == nil {
		s.RootStats[root] = &RootStats{}
	}
	rs := s.RootStats[root]

	switch action {
	case statServed:
		s.PagesServed++
		s.WordsHighlighted += int64(highlights)
		if rs != nil {
			rs.PagesServed++
			rs.WordsHighlighted += int64(highlights)
			rs.TotalProcessingTime += processingTime
		}
	case statFailed:
		s.PagesFailed++
		if rs != nil {
			rs.PagesFailed++
		}
	}
}

// Snapshot returns a copy safe to serialise
func (s *Stats) Snapshot() StatsSnapshot {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	roots := make(map[string]RootStats, len(s.RootStats))
	for root, rs := range s.RootStats {
		roots[root] = *rs
	}
	return StatsSnapshot{
		PagesServed:      s.PagesServed,
		PagesFailed:      s.PagesFailed,
		WordsHighlighted: s.WordsHighlighted,
		UptimeSeconds:    time.Since(s.StartTime).Seconds(),
		RootStats:        roots,
	}
}
