package core

import (
	"encoding/binary"
)

// Block size constants from the Argon2 specification.
const (
	// BlockSize is the size of an Argon2 memory block in bytes (1024 bytes = 1 KiB)
	BlockSize = 1024

	// QWordsInBlock is the number of 64-bit words (uint64) in a block (1024 / 8 = 128)
	QWordsInBlock = 128
)

// Block represents a 1024-byte Argon2 memory block as an array of 128 uint64 values.
// It is the atomic unit of the memory matrix: blocks are produced only by the
// compression function or by expansion of the initial seed.
//
// Memory layout: [uint64 x 128] = 1024 bytes, little-endian at the byte
// boundaries. Argon2 operates on 64-bit words, so the word array is the
// native representation; bytes appear only at the H' seams.
type Block [QWordsInBlock]uint64

// XOR performs in-place XOR of this block with another block:
// b[i] = b[i] XOR other[i] for all i.
//
// Used during block compression (feed-forward mixing) and when the
// finalizer folds the terminal blocks of all lanes together.
func (b *Block) XOR(other *Block) {
	for i := range b {
		b[i] ^= other[i]
	}
}

// Zero clears all data in the block by setting every uint64 to 0.
//
// Intermediate material must not survive a derivation, so the arena is
// overwritten, not merely released, once the tag has been extracted.
func (b *Block) Zero() {
	for i := range b {
		b[i] = 0
	}
}

// FromBytes loads a block from a byte slice of exactly BlockSize bytes,
// interpreted as 128 little-endian uint64 values. Bytes [0:8] become b[0],
// bytes [8:16] become b[1], and so on.
//
// The caller owns the length invariant; a short or long slice is a
// programmer error and panics via the slice bounds check.
func (b *Block) FromBytes(data []byte) {
	_ = data[BlockSize-1]
	for i := 0; i < QWordsInBlock; i++ {
		b[i] = binary.LittleEndian.Uint64(data[i*8 : (i+1)*8])
	}
}

// ToBytes converts the block to a freshly allocated 1024-byte slice with
// each uint64 encoded little-endian.
func (b *Block) ToBytes() []byte {
	data := make([]byte, BlockSize)
	for i := 0; i < QWordsInBlock; i++ {
		binary.LittleEndian.PutUint64(data[i*8:(i+1)*8], b[i])
	}
	return data
}

// newArena allocates the working memory matrix as one contiguous slice of
// blocks. A contiguous arena indexed by lane*laneLength+position preserves
// cache locality and gives every lane a bounds-checked, alias-free view of
// its own columns during a slice.
func newArena(blocks uint32) []Block {
	return make([]Block, blocks)
}

// wipeArena overwrites every block in the arena with zeros. Called after
// the tag has been extracted so intermediate state cannot leak through
// reused memory.
func wipeArena(memory []Block) {
	for i := range memory {
		memory[i].Zero()
	}
}
