package services

import "testing"

func TestGlobalCount_Bounds(t *testing.T) {
	svc := NewNowPlayingService(1)
	for i := 0; i < 1000; i++ {
		n := svc.GlobalCount()
		if n < 101 || n > 999 {
			t.Fatalf("global count %d out of range 101-999", n)
		}
	}
}

func TestAreaCounts_UniqueAndBounded(t *testing.T) {
	svc := NewNowPlayingService(1)
	areaIDs := []uint{1, 2, 3, 4, 5, 6, 7, 8}

	counts := svc.AreaCounts(areaIDs)
	if len(counts) != len(areaIDs) {
		t.Fatalf("expected %d counts, got %d", len(areaIDs), len(counts))
	}
	seen := make(map[int]bool, len(counts))
	for id, n := range counts {
		if n < 100 || n > 999 {
			t.Errorf("area %d count %d out of range 100-999", id, n)
		}
		if seen[n] {
			t.Errorf("count %d repeated within batch", n)
		}
		seen[n] = true
	}
}

func TestAreaCounts_ResampledPerCall(t *testing.T) {
	svc := NewNowPlayingService(1)
	areaIDs := []uint{1, 2, 3, 4, 5}

	first := svc.AreaCounts(areaIDs)
	second := svc.AreaCounts(areaIDs)

	same := true
	for id := range first {
		if first[id] != second[id] {
			same = false
			break
		}
	}
	if same {
		t.Errorf("counts should resample between visits")
	}
}

func TestSnapshot_ReflectsLastValues(t *testing.T) {
	svc := NewNowPlayingService(1)

	global := svc.GlobalCount()
	areas := svc.AreaCounts([]uint{10, 20})

	snapGlobal, snapAreas := svc.Snapshot()
	if snapGlobal != global {
		t.Errorf("snapshot global = %d, want %d", snapGlobal, global)
	}
	for id, n := range areas {
		if snapAreas[id] != n {
			t.Errorf("snapshot area %d = %d, want %d", id, snapAreas[id], n)
		}
	}

	// Snapshot hands out a copy, not the live map.
	snapAreas[10] = -1
	_, again := svc.Snapshot()
	if again[10] == -1 {
		t.Errorf("snapshot must not expose internal state")
	}
}
