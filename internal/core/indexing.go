package core

const (
	// SyncPoints is the number of segments (slices) per pass. Argon2 divides
	// each lane into 4 segments so lanes can be computed in parallel between
	// synchronization barriers.
	SyncPoints = 4
)

// Position tracks the current location in Argon2 memory during filling:
// which pass, which lane, which slice of the lane, and the index of the
// block within the slice.
type Position struct {
	Pass  uint32 // Current pass number (0 to timeCost-1)
	Lane  uint32 // Current lane number (0 to lanes-1)
	Slice uint32 // Current slice number (0 to SyncPoints-1)
	Index uint32 // Current index within the slice
}

// indexAlpha maps a 64-bit pseudo-random value to the absolute arena index
// of the reference block for the position under construction.
//
// The upper 32 bits select the reference lane; the lower 32 bits select a
// block within the eligible window of that lane via a quadratic
// distribution that favors recently written blocks:
//
//	rel = area - 1 - (area * (r^2 >> 32)) >> 32
//
// The eligible window is every block already finished in the current pass
// plus, on later passes, the rest of the matrix excluding the segment
// currently being overwritten. Same-lane references may additionally reach
// the blocks just written in the current segment (minus the immediate
// predecessor). The constant factors here must match the reference
// specification exactly; outputs feed back into the addressing entropy, so
// an approximation produces plausible-looking but incompatible tags.
//
// Where the pseudo-random value comes from differs by variant and is
// decided by the caller (fillSegment): the previous block's first word for
// data-dependent addressing, a precomputed address block for
// data-independent addressing.
func indexAlpha(rand uint64, pos *Position, segmentLength, laneLength, lanes uint32) uint32 {
	refLane := uint32(rand>>32) % lanes
	if pos.Pass == 0 && pos.Slice == 0 {
		// First slice of the first pass: nothing exists in other lanes yet.
		refLane = pos.Lane
	}

	// Reference area size and window start for passes after the first:
	// the whole lane minus the segment being overwritten, starting just
	// after that segment (modulo the lane).
	area := 3 * segmentLength
	start := ((pos.Slice + 1) % SyncPoints) * segmentLength
	if pos.Lane == refLane {
		area += pos.Index
	}

	if pos.Pass == 0 {
		// First pass: only blocks written so far in this pass exist.
		area = pos.Slice * segmentLength
		start = 0
		if pos.Slice == 0 || pos.Lane == refLane {
			area += pos.Index
		}
	}

	// The immediate predecessor is always an input already; exclude it.
	if pos.Index == 0 || pos.Lane == refLane {
		area--
	}

	// Quadratic skew toward the most recently written end of the window.
	p := rand & 0xFFFFFFFF
	p = (p * p) >> 32
	p = (p * uint64(area)) >> 32
	rel := uint64(area) - 1 - p

	return refLane*laneLength + uint32((uint64(start)+rel)%uint64(laneLength))
}
