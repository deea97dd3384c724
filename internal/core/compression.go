package core

// fillBlock is the Argon2 compression function G: it combines the previous
// block in the lane with a reference block chosen by the addressing scheme
// and writes the result over next.
//
// Algorithm per the Argon2 specification:
//  1. X = prev XOR ref
//  2. Y = P(X)            (the two-stage BlaMka permutation)
//  3. result = Y XOR X    (feed-forward)
//  4. next = result, or next = next XOR result when withXOR is set
//
// withXOR is set on passes after the first (version 1.3): the overwritten
// block is accumulated rather than replaced, which is what gives later
// passes their additional mixing depth. Version 1.0 overwrites uncondi-
// tionally, so its callers never set withXOR.
//
// Pure function, no hidden state: the same (prev, ref, next, withXOR)
// always produces the same output block.
func fillBlock(prev, ref, next *Block, withXOR bool) {
	var t Block
	for i := range t {
		t[i] = prev[i] ^ ref[i]
	}

	permute(&t)

	if withXOR {
		for i := range t {
			next[i] ^= prev[i] ^ ref[i] ^ t[i]
		}
	} else {
		for i := range t {
			next[i] = prev[i] ^ ref[i] ^ t[i]
		}
	}
}
