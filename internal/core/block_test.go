package core

import (
	"bytes"
	"testing"
)

// TestBlock_XOR verifies the in-place XOR combination.
func TestBlock_XOR(t *testing.T) {
	var a, b Block
	for i := range a {
		a[i] = uint64(i)
		b[i] = uint64(i * 3)
	}

	want := a
	a.XOR(&b)
	for i := range a {
		if a[i] != want[i]^b[i] {
			t.Fatalf("XOR mismatch at word %d: got %#x, want %#x", i, a[i], want[i]^b[i])
		}
	}

	// XOR with itself must clear the block.
	a.XOR(&a)
	for i := range a {
		if a[i] != 0 {
			t.Fatalf("self-XOR left word %d = %#x", i, a[i])
		}
	}
}

// TestBlock_BytesRoundTrip verifies that ToBytes and FromBytes are exact
// inverses using little-endian word order.
func TestBlock_BytesRoundTrip(t *testing.T) {
	var b Block
	for i := range b {
		b[i] = uint64(i)*0x0123456789ABCDEF + 1
	}

	data := b.ToBytes()
	if len(data) != BlockSize {
		t.Fatalf("ToBytes returned %d bytes, want %d", len(data), BlockSize)
	}

	// Word 0 low byte appears first (little-endian).
	if data[0] != byte(b[0]) {
		t.Errorf("byte 0 = %#x, want low byte of word 0 (%#x)", data[0], byte(b[0]))
	}

	var back Block
	back.FromBytes(data)
	if back != b {
		t.Error("FromBytes(ToBytes(b)) != b")
	}
}

// TestBlock_Zero verifies the zeroization path.
func TestBlock_Zero(t *testing.T) {
	var b Block
	for i := range b {
		b[i] = ^uint64(0)
	}
	b.Zero()
	for i := range b {
		if b[i] != 0 {
			t.Fatalf("word %d not cleared", i)
		}
	}
}

// TestWipeArena verifies that every block of the arena is overwritten.
func TestWipeArena(t *testing.T) {
	memory := newArena(16)
	for i := range memory {
		for j := range memory[i] {
			memory[i][j] = uint64(i + j + 1)
		}
	}

	wipeArena(memory)

	var zero Block
	for i := range memory {
		if memory[i] != zero {
			t.Fatalf("block %d not wiped", i)
		}
	}

	zeroBytes := make([]byte, BlockSize)
	if !bytes.Equal(memory[0].ToBytes(), zeroBytes) {
		t.Error("wiped block serializes to non-zero bytes")
	}
}
