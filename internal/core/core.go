// Package core implements the Argon2 memory-hard key-derivation engine:
// the memory arena, the BlaMka compression function, the per-variant
// reference addressing, the lane scheduler, and the finalizer.
//
// The package is deliberately free of policy: parameter validation, error
// taxonomy, and the textual hash encoding live in the public package.
// Callers must hand this package already-validated geometry; violations
// are programmer errors and panic before any memory is touched.
package core

import "sync"

// Argon2 variant identifiers, as encoded into H0 and the PHC string.
const (
	VariantD  = 0 // Argon2d: data-dependent addressing
	VariantI  = 1 // Argon2i: data-independent addressing
	VariantID = 2 // Argon2id: hybrid addressing
)

// Supported Argon2 revisions.
const (
	Version10 = 0x10
	Version13 = 0x13
)

// params carries the validated derivation geometry through the fill. One
// instance per derivation; never shared across calls.
type params struct {
	variant uint32
	version uint32
	passes  uint32
	memory  uint32 // total blocks, a multiple of SyncPoints*lanes
	lanes   uint32
}

func (p *params) laneLength() uint32    { return p.memory / p.lanes }
func (p *params) segmentLength() uint32 { return p.laneLength() / SyncPoints }

// fillMemory drives the (pass, slice, lane, position) iteration order over
// the arena. Within one (pass, slice) all lanes are independent: segment
// boundaries guarantee that cross-lane references only read slices already
// completed in the current pass or the entirety of the previous pass. A
// WaitGroup barrier between slices enforces the read-after-write safety the
// addressing scheme assumes.
//
// With a single lane the goroutine spawn is pure overhead, so that case
// runs inline.
func fillMemory(memory []Block, p *params) {
	if uint32(len(memory)) != p.memory || p.memory%(SyncPoints*p.lanes) != 0 {
		panic("core: arena size does not match configured geometry")
	}

	for pass := uint32(0); pass < p.passes; pass++ {
		for slice := uint32(0); slice < SyncPoints; slice++ {
			if p.lanes == 1 {
				fillSegment(memory, p, pass, 0, slice)
				continue
			}

			var wg sync.WaitGroup
			for lane := uint32(0); lane < p.lanes; lane++ {
				wg.Add(1)
				go func(lane uint32) {
					defer wg.Done()
					fillSegment(memory, p, pass, lane, slice)
				}(lane)
			}
			// Barrier: no lane may start the next slice until every
			// lane has finished this one.
			wg.Wait()
		}
	}
}

// fillSegment computes one segment: segmentLength consecutive blocks of one
// lane within one slice.
//
// Each block is produced by compressing its predecessor in the lane with a
// reference block chosen by indexAlpha. The pseudo-random value feeding
// indexAlpha is variant-dependent:
//   - Argon2d: the first word of the block just written (data-dependent)
//   - Argon2i: drawn from address blocks generated by running the
//     compression function twice over a counter-seeded input block,
//     regenerated every QWordsInBlock positions (data-independent)
//   - Argon2id: data-independent for the first two slices of pass 0,
//     data-dependent everywhere else
func fillSegment(memory []Block, p *params, pass, lane, slice uint32) {
	laneLength := p.laneLength()
	segmentLength := p.segmentLength()

	dataIndependent := p.variant == VariantI ||
		(p.variant == VariantID && pass == 0 && slice < SyncPoints/2)

	var addresses, input, zero Block
	if dataIndependent {
		input[0] = uint64(pass)
		input[1] = uint64(lane)
		input[2] = uint64(slice)
		input[3] = uint64(p.memory)
		input[4] = uint64(p.passes)
		input[5] = uint64(p.variant)
	}

	index := uint32(0)
	if pass == 0 && slice == 0 {
		// The first two blocks of every lane were expanded from H0.
		index = 2
		if dataIndependent {
			input[6]++
			fillBlock(&input, &zero, &addresses, false)
			fillBlock(&addresses, &zero, &addresses, false)
		}
	}

	offset := lane*laneLength + slice*segmentLength + index

	for index < segmentLength {
		prev := offset - 1
		if index == 0 && slice == 0 {
			// Wrap to the last block of the lane.
			prev += laneLength
		}

		var random uint64
		if dataIndependent {
			if index%QWordsInBlock == 0 {
				input[6]++
				fillBlock(&input, &zero, &addresses, false)
				fillBlock(&addresses, &zero, &addresses, false)
			}
			random = addresses[index%QWordsInBlock]
		} else {
			random = memory[prev][0]
		}

		pos := Position{Pass: pass, Lane: lane, Slice: slice, Index: index}
		ref := indexAlpha(random, &pos, segmentLength, laneLength, p.lanes)

		// Version 1.3 accumulates into the overwritten block on later
		// passes; version 1.0 plainly overwrites.
		withXOR := pass > 0 && p.version != Version10
		fillBlock(&memory[prev], &memory[ref], &memory[offset], withXOR)

		index++
		offset++
	}
}
