package core

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// initialHash computes H0, the 64-byte seed every derivation starts from.
//
// H0 = Blake2b-512(lanes, tagLen, memory, passes, version, variant,
//
//	len(password), password, len(salt), salt,
//	len(secret), secret, len(data), data)
//
// All fixed fields and length prefixes are little-endian uint32. Every
// parameter is bound into the seed, so changing any one of them changes
// the entire derivation.
func initialHash(p *params, tagLen uint32, password, salt, secret, data []byte) [64]byte {
	input := make([]byte, 0, 10*4+len(password)+len(salt)+len(secret)+len(data))

	var tmp [4]byte
	putUint32 := func(v uint32) {
		binary.LittleEndian.PutUint32(tmp[:], v)
		input = append(input, tmp[:]...)
	}

	putUint32(p.lanes)
	putUint32(tagLen)
	putUint32(p.memory)
	putUint32(p.passes)
	putUint32(p.version)
	putUint32(p.variant)

	putUint32(uint32(len(password)))
	input = append(input, password...)

	putUint32(uint32(len(salt)))
	input = append(input, salt...)

	putUint32(uint32(len(secret)))
	input = append(input, secret...)

	putUint32(uint32(len(data)))
	input = append(input, data...)

	return blake2b.Sum512(input)
}

// initBlocks expands H0 into the first two blocks of every lane:
//
//	Block[lane][0] = H'(H0 || LE32(0) || LE32(lane), 1024)
//	Block[lane][1] = H'(H0 || LE32(1) || LE32(lane), 1024)
//
// The 0/1 discriminator and the lane index make every seed block distinct.
func initBlocks(memory []Block, p *params, h0 [64]byte) {
	laneLength := p.laneLength()

	var input [72]byte // 64-byte seed + block index + lane index
	copy(input[:64], h0[:])

	for lane := uint32(0); lane < p.lanes; lane++ {
		binary.LittleEndian.PutUint32(input[68:72], lane)

		binary.LittleEndian.PutUint32(input[64:68], 0)
		memory[lane*laneLength].FromBytes(blake2bLong(input[:], BlockSize))

		binary.LittleEndian.PutUint32(input[64:68], 1)
		memory[lane*laneLength+1].FromBytes(blake2bLong(input[:], BlockSize))
	}
}

// extractTag folds the last block of every lane together with XOR and
// expands the result through H' to the requested tag length.
func extractTag(memory []Block, p *params, tagLen uint32) []byte {
	laneLength := p.laneLength()

	var final Block
	final = memory[laneLength-1]
	for lane := uint32(1); lane < p.lanes; lane++ {
		final.XOR(&memory[lane*laneLength+laneLength-1])
	}

	tag := blake2bLong(final.ToBytes(), tagLen)
	final.Zero()
	return tag
}

// Hash runs one complete Argon2 derivation and returns the tag.
//
// The caller is responsible for parameter validation; this function only
// enforces the geometric preconditions it cannot work without and panics
// on violations, before any memory is allocated:
//   - variant is one of VariantD, VariantI, VariantID
//   - version is Version10 or Version13
//   - passes, lanes and tagLen are nonzero
//   - memoryKB is at least 2*SyncPoints blocks per lane
//
// memoryKB is rounded down to a multiple of SyncPoints*lanes before use,
// per the specification. The working arena is exclusively owned by this
// call and is zeroized before return, whatever path is taken.
func Hash(password, salt, secret, data []byte, variant, version, passes, memoryKB, lanes, tagLen uint32) []byte {
	switch {
	case variant != VariantD && variant != VariantI && variant != VariantID:
		panic("core: unknown variant")
	case version != Version10 && version != Version13:
		panic("core: unknown version")
	case passes == 0 || lanes == 0 || tagLen == 0:
		panic("core: zero cost parameter")
	case memoryKB < 2*SyncPoints*lanes:
		panic("core: memory below minimum of 8 blocks per lane")
	}

	p := &params{
		variant: variant,
		version: version,
		passes:  passes,
		memory:  memoryKB,
		lanes:   lanes,
	}

	// H0 binds the requested memory cost; only the arena geometry uses
	// the rounded block count.
	h0 := initialHash(p, tagLen, password, salt, secret, data)
	p.memory = memoryKB / (SyncPoints * lanes) * (SyncPoints * lanes)

	memory := newArena(p.memory)
	defer wipeArena(memory)

	initBlocks(memory, p, h0)
	fillMemory(memory, p)

	return extractTag(memory, p, tagLen)
}
