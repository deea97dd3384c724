package core

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// blake2bLong is the variable-length hash H' from the Argon2 specification,
// used to expand the initial seed into the first blocks of each lane and to
// compress the final block down to the requested tag length.
//
// Algorithm from Argon2 spec section 3.1:
//   - If outlen <= 64: return Blake2b(uint32_le(outlen) || input, outlen)
//   - If outlen > 64:
//     1. V1 = Blake2b(uint32_le(outlen) || input, 64)
//     2. result = V1[0:32]
//     3. Vi = Blake2b(Vi-1, 64), appending 32 bytes per step
//     4. The final V produces exactly the remaining bytes (not 64)
//
// Returns a slice of exactly outlen bytes. outlen of zero yields nil.
func blake2bLong(input []byte, outlen uint32) []byte {
	if outlen == 0 {
		return nil
	}

	// The desired output length is prepended as a 4-byte little-endian
	// value for ALL output lengths, per the specification.
	prefixed := make([]byte, 4+len(input))
	binary.LittleEndian.PutUint32(prefixed[0:4], outlen)
	copy(prefixed[4:], input)

	// Simple case: output fits in a single Blake2b hash.
	if outlen <= blake2b.Size {
		h, err := blake2b.New(int(outlen), nil)
		if err != nil {
			// Unreachable for outlen in 1..64.
			panic("core: blake2b.New failed: " + err.Error())
		}
		h.Write(prefixed)
		return h.Sum(nil)
	}

	// Extended output: chain full-width Blake2b hashes, keeping the first
	// half of each intermediate value.
	output := make([]byte, outlen)

	v := blake2b.Sum512(prefixed)
	copied := copy(output, v[:32])

	for uint32(copied) < outlen {
		remaining := outlen - uint32(copied)
		if remaining > blake2b.Size {
			v = blake2b.Sum512(v[:])
			copied += copy(output[copied:], v[:32])
		} else {
			// Last step produces exactly the remaining bytes.
			h, err := blake2b.New(int(remaining), nil)
			if err != nil {
				panic("core: blake2b.New failed: " + err.Error())
			}
			h.Write(v[:])
			copied += copy(output[copied:], h.Sum(nil))
		}
	}

	return output
}
