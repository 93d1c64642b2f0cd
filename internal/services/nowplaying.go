package services

import (
	"math/rand"
	"sync"
)

// NowPlayingService keeps the cosmetic "families playing right now" numbers.
// The counts are ephemeral and process-local: they reset on restart and are
// never persisted or synchronized across instances.
type NowPlayingService interface {
	// GlobalCount returns a fresh global count on every call.
	GlobalCount() int
	// AreaCounts returns one count per area id, unique within the batch.
	// Counts are resampled on every call.
	AreaCounts(areaIDs []uint) map[uint]int
	// Snapshot returns the last values handed out, for debug inspection.
	Snapshot() (global int, areas map[uint]int)
}

type nowPlayingService struct {
	mu         sync.Mutex
	rng        *rand.Rand
	lastGlobal int
	lastAreas  map[uint]int
}

func NewNowPlayingService(seed int64) NowPlayingService {
	return &nowPlayingService{
		rng:       rand.New(rand.NewSource(seed)),
		lastAreas: map[uint]int{},
	}
}

func (nps *nowPlayingService) GlobalCount() int {
	nps.mu.Lock()
	defer nps.mu.Unlock()
	nps.lastGlobal = 101 + nps.rng.Intn(899)
	return nps.lastGlobal
}

func (nps *nowPlayingService) AreaCounts(areaIDs []uint) map[uint]int {
	nps.mu.Lock()
	defer nps.mu.Unlock()

	counts := make(map[uint]int, len(areaIDs))
	used := make(map[int]bool, len(areaIDs))
	for _, id := range areaIDs {
		n := 100 + nps.rng.Intn(900)
		for used[n] {
			n = 100 + nps.rng.Intn(900)
		}
		used[n] = true
		counts[id] = n
	}
	nps.lastAreas = counts
	return counts
}

func (nps *nowPlayingService) Snapshot() (int, map[uint]int) {
	nps.mu.Lock()
	defer nps.mu.Unlock()
	areas := make(map[uint]int, len(nps.lastAreas))
	for id, n := range nps.lastAreas {
		areas[id] = n
	}
	return nps.lastGlobal, areas
}
