package core

import "testing"

// TestIndexAlpha_FirstSliceStaysInLane verifies that during the first
// slice of the first pass no cross-lane references are produced, whatever
// the upper half of the pseudo-random value selects.
func TestIndexAlpha_FirstSliceStaysInLane(t *testing.T) {
	const (
		lanes         = 4
		laneLength    = 32
		segmentLength = laneLength / SyncPoints
	)

	for lane := uint32(0); lane < lanes; lane++ {
		pos := &Position{Pass: 0, Lane: lane, Slice: 0, Index: 5}
		for _, rand := range []uint64{0, 1 << 32, 3 << 32, ^uint64(0)} {
			ref := indexAlpha(rand, pos, segmentLength, laneLength, lanes)
			if ref/laneLength != lane {
				t.Fatalf("lane %d: reference %d escaped the lane on pass 0 slice 0", lane, ref)
			}
		}
	}
}

// TestIndexAlpha_WithinBounds exhaustively walks a small geometry and
// checks every produced reference is inside the arena and, on the first
// pass, never ahead of the write frontier of the referenced lane.
func TestIndexAlpha_WithinBounds(t *testing.T) {
	const (
		lanes         = 2
		laneLength    = 16
		segmentLength = laneLength / SyncPoints
		passes        = 2
	)

	randoms := []uint64{0, 1, 0x00000001FFFFFFFF, 0xABCDEF0123456789, ^uint64(0)}

	for pass := uint32(0); pass < passes; pass++ {
		for slice := uint32(0); slice < SyncPoints; slice++ {
			for lane := uint32(0); lane < lanes; lane++ {
				start := uint32(0)
				if pass == 0 && slice == 0 {
					start = 2 // first two blocks come from seed expansion
				}
				for index := start; index < segmentLength; index++ {
					pos := &Position{Pass: pass, Lane: lane, Slice: slice, Index: index}
					for _, r := range randoms {
						ref := indexAlpha(r, pos, segmentLength, laneLength, lanes)
						if ref >= lanes*laneLength {
							t.Fatalf("pass %d slice %d lane %d index %d: reference %d out of arena",
								pass, slice, lane, index, ref)
						}
						if pass == 0 {
							refLane := ref / laneLength
							col := ref % laneLength
							frontier := slice * segmentLength
							if refLane == lane {
								frontier += index
							}
							if col >= frontier {
								t.Fatalf("pass 0 slice %d lane %d index %d: reference col %d beyond frontier %d",
									slice, lane, index, col, frontier)
							}
						}
					}
				}
			}
		}
	}
}

// TestIndexAlpha_RecencyBias verifies the quadratic mapping favors the
// newest eligible block when the pseudo-random value is zero: r = 0 maps
// to the far (recent) end of the window, which for a same-lane first-pass
// reference is the block two positions back (the immediate predecessor is
// excluded).
func TestIndexAlpha_RecencyBias(t *testing.T) {
	const (
		lanes         = 1
		laneLength    = 64
		segmentLength = laneLength / SyncPoints
	)

	pos := &Position{Pass: 0, Lane: 0, Slice: 2, Index: 7}
	current := pos.Slice*segmentLength + pos.Index

	ref := indexAlpha(0, pos, segmentLength, laneLength, lanes)
	if ref != current-2 {
		t.Errorf("r=0 selected block %d, want most recent eligible %d", ref, current-2)
	}

	// The oldest end of the window is reached as r approaches 2^32-1.
	old := indexAlpha(0xFFFFFFFF, pos, segmentLength, laneLength, lanes)
	if old > ref {
		t.Errorf("r=2^32-1 selected block %d, newer than r=0's %d", old, ref)
	}
}

// TestIndexAlpha_LaterPassWindow verifies that on later passes the window
// excludes the segment currently being overwritten and starts right after
// it, wrapping around the lane.
func TestIndexAlpha_LaterPassWindow(t *testing.T) {
	const (
		lanes         = 1
		laneLength    = 16
		segmentLength = laneLength / SyncPoints
	)

	for slice := uint32(0); slice < SyncPoints; slice++ {
		pos := &Position{Pass: 1, Lane: 0, Slice: slice, Index: 1}
		segStart := slice * segmentLength
		for _, r := range []uint64{0, 0x7FFFFFFF, 0xFFFFFFFE} {
			ref := indexAlpha(r, pos, segmentLength, laneLength, lanes)
			// Only columns before the current position within the segment
			// being overwritten are eligible; untouched remainder is not.
			if ref > segStart && ref < segStart+segmentLength && ref > segStart+pos.Index {
				t.Fatalf("slice %d: reference %d landed in the unwritten part of the current segment", slice, ref)
			}
		}
	}
}
