package core

import "math/bits"

// fBlaMka is the multiplication-hardened addition used by Argon2's
// permutation in place of Blake2b's plain addition:
//
//	fBlaMka(x, y) = x + y + 2 * lo32(x) * lo32(y)  (mod 2^64)
//
// The 32x32->64 multiplication makes the round function latency-bound on
// multipliers, which is the property Argon2 relies on for GPU/ASIC
// resistance. Plain Blake2b G is NOT a substitute: the two constructions
// diverge after a single round.
//
// Reference: Argon2 specification section 3.4 (the BlaMka permutation).
func fBlaMka(x, y uint64) uint64 {
	return x + y + 2*(x&0xFFFFFFFF)*(y&0xFFFFFFFF)
}

// mix applies the BlaMka G function to four words of the permutation state.
// Structure follows Blake2b's G (two add/xor/rotate half-rounds with
// rotations 32, 24, 16, 63) with fBlaMka replacing the additions.
func mix(a, b, c, d uint64) (uint64, uint64, uint64, uint64) {
	a = fBlaMka(a, b)
	d = bits.RotateLeft64(d^a, -32)
	c = fBlaMka(c, d)
	b = bits.RotateLeft64(b^c, -24)

	a = fBlaMka(a, b)
	d = bits.RotateLeft64(d^a, -16)
	c = fBlaMka(c, d)
	b = bits.RotateLeft64(b^c, -63)

	return a, b, c, d
}

// blamkaRound applies one full BlaMka round to a 16-word state: G over the
// four columns of the 4x4 word arrangement, then G over the four diagonals.
// The pattern matches Blake2b's round function exactly (minus the message
// schedule), operating in place on v.
func blamkaRound(v []uint64) {
	// Column step
	v[0], v[4], v[8], v[12] = mix(v[0], v[4], v[8], v[12])
	v[1], v[5], v[9], v[13] = mix(v[1], v[5], v[9], v[13])
	v[2], v[6], v[10], v[14] = mix(v[2], v[6], v[10], v[14])
	v[3], v[7], v[11], v[15] = mix(v[3], v[7], v[11], v[15])

	// Diagonal step
	v[0], v[5], v[10], v[15] = mix(v[0], v[5], v[10], v[15])
	v[1], v[6], v[11], v[12] = mix(v[1], v[6], v[11], v[12])
	v[2], v[7], v[8], v[13] = mix(v[2], v[7], v[8], v[13])
	v[3], v[4], v[9], v[14] = mix(v[3], v[4], v[9], v[14])
}

// permute applies the Argon2 P permutation to a 1024-byte block.
//
// The block is viewed as an 8x8 matrix of 16-byte registers. One round of
// BlaMka is applied to each of the 8 rows (16 consecutive words), then one
// round to each of the 8 column groups, where a column group gathers the
// word pair (2i, 2i+1) from every row. Exactly this two-stage structure,
// applied once, forms the core of the compression function; outputs feed
// both the next block and (variant-dependent) the addressing scheme, so it
// must remain bit-exact with the reference construction.
func permute(b *Block) {
	// Row pass: 8 rounds over 16 contiguous words each.
	for i := 0; i < QWordsInBlock; i += 16 {
		blamkaRound(b[i : i+16])
	}

	// Column pass: gather the paired columns, round them, scatter back.
	var t [16]uint64
	for i := 0; i < QWordsInBlock/8; i += 2 {
		for j := 0; j < 8; j++ {
			t[2*j] = b[16*j+i]
			t[2*j+1] = b[16*j+i+1]
		}
		blamkaRound(t[:])
		for j := 0; j < 8; j++ {
			b[16*j+i] = t[2*j]
			b[16*j+i+1] = t[2*j+1]
		}
	}
}
