// Package argon2 provides a pure-Go implementation of the Argon2
// password-hashing function (RFC 9106) in all three variants: Argon2d
// (data-dependent addressing), Argon2i (data-independent addressing), and
// the hybrid Argon2id. Both deployed revisions of the algorithm, 1.0
// (0x10) and 1.3 (0x13), are supported.
//
// Example usage:
//
//	params := argon2.Params{
//	    Variant:     argon2.VariantID,
//	    Time:        3,
//	    Memory:      64 * 1024, // 64 MiB
//	    Parallelism: 4,
//	    KeyLength:   32,
//	}
//	encoded, err := argon2.HashEncoded([]byte("password"), salt, params)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ok, err := argon2.Verify(encoded, []byte("password"))
//
// The engine is entirely reentrant: every call owns its parameters, its
// memory matrix, and its output buffer, and the matrix is zeroized before
// release.
package argon2

import (
	"fmt"
	"math"

	"github.com/opd-ai/go-argon2/internal/core"
)

// Variant selects the Argon2 addressing mode.
type Variant int

const (
	// VariantD is Argon2d: data-dependent memory access. Fastest and most
	// GPU-resistant, but vulnerable to side-channel attacks; unsuitable
	// for hashing secrets on shared hardware.
	VariantD Variant = core.VariantD

	// VariantI is Argon2i: data-independent memory access, safe against
	// cache-timing side channels.
	VariantI Variant = core.VariantI

	// VariantID is Argon2id: data-independent for the first half of the
	// first pass, data-dependent afterwards. The recommended default.
	VariantID Variant = core.VariantID
)

// String returns the PHC identifier of the variant ("argon2d", "argon2i",
// "argon2id"), or "argon2(n)" for values outside the known set.
func (v Variant) String() string {
	switch v {
	case VariantD:
		return "argon2d"
	case VariantI:
		return "argon2i"
	case VariantID:
		return "argon2id"
	default:
		return fmt.Sprintf("argon2(%d)", int(v))
	}
}

// Supported algorithm revisions.
const (
	// Version10 is Argon2 1.0 (0x10): later passes overwrite blocks.
	Version10 = core.Version10

	// Version13 is Argon2 1.3 (0x13): later passes XOR-accumulate into
	// blocks. This is the current revision and the default.
	Version13 = core.Version13

	// Version is the most recent supported revision.
	Version = Version13
)

// Limits enforced before any memory is touched.
const (
	// MinSaltLength is the minimum salt size in bytes.
	MinSaltLength = 8

	// MinMemoryPerLane is the minimum number of 1 KiB blocks per lane.
	MinMemoryPerLane = 8

	// MaxParallelism is the largest representable lane count.
	MaxParallelism = 1<<24 - 1

	// MaxInputLength is the largest password, salt, secret, or
	// associated-data size in bytes the parameter encoding can bind.
	MaxInputLength = math.MaxUint32
)

// Params configures one derivation. Parameters are bound into the initial
// hash, so any change to any field changes the resulting tag.
//
// The zero value is not usable: Time, Memory, Parallelism, and KeyLength
// must all be positive. A zero Version is treated as Version (the most
// recent revision).
type Params struct {
	// Variant selects the addressing mode. Defaults to VariantD (0);
	// most callers want VariantID.
	Variant Variant

	// Version is the algorithm revision, Version10 or Version13.
	// Zero means Version13.
	Version uint32

	// Time is the number of passes over memory.
	Time uint32

	// Memory is the memory cost in KiB (one 1024-byte block per KiB).
	// Must be at least 8*Parallelism; it is rounded down to a multiple
	// of 4*Parallelism before use.
	Memory uint32

	// Parallelism is the number of independent lanes.
	Parallelism uint32

	// KeyLength is the tag (output) length in bytes.
	KeyLength uint32

	// Secret is an optional pepper folded into the initial hash.
	// Not part of the encoded string; both sides must supply it.
	Secret []byte

	// AssociatedData is optional additional input folded into the
	// initial hash. Not part of the encoded string.
	AssociatedData []byte
}

// withDefaults resolves the defaulted fields without mutating the caller's
// copy of the struct.
func (p Params) withDefaults() Params {
	if p.Version == 0 {
		p.Version = Version
	}
	return p
}

// validate checks the cost parameters. All violations surface as wrapped
// ErrInvalidParameters before any allocation.
func (p Params) validate() error {
	switch p.Variant {
	case VariantD, VariantI, VariantID:
	default:
		return fmt.Errorf("%w: unknown variant %d", ErrInvalidParameters, int(p.Variant))
	}
	if p.Version != Version10 && p.Version != Version13 {
		return fmt.Errorf("%w: unsupported version 0x%x", ErrInvalidParameters, p.Version)
	}
	if p.Time == 0 {
		return fmt.Errorf("%w: time cost must be positive", ErrInvalidParameters)
	}
	if p.Parallelism == 0 {
		return fmt.Errorf("%w: parallelism must be positive", ErrInvalidParameters)
	}
	if p.Parallelism > MaxParallelism {
		return fmt.Errorf("%w: parallelism %d exceeds maximum %d", ErrInvalidParameters, p.Parallelism, MaxParallelism)
	}
	if p.KeyLength == 0 {
		return fmt.Errorf("%w: output length must be positive", ErrInvalidParameters)
	}
	if p.Memory < MinMemoryPerLane*p.Parallelism {
		return fmt.Errorf("%w: memory cost %d KiB below minimum %d for %d lanes",
			ErrInvalidParameters, p.Memory, MinMemoryPerLane*p.Parallelism, p.Parallelism)
	}
	if uint64(len(p.Secret)) > MaxInputLength {
		return fmt.Errorf("%w: secret exceeds %d bytes", ErrInputTooLarge, uint64(MaxInputLength))
	}
	if uint64(len(p.AssociatedData)) > MaxInputLength {
		return fmt.Errorf("%w: associated data exceeds %d bytes", ErrInputTooLarge, uint64(MaxInputLength))
	}
	return nil
}

// checkInputs validates password and salt ahead of any computation.
func checkInputs(password, salt []byte) error {
	if uint64(len(password)) > MaxInputLength {
		return fmt.Errorf("%w: password exceeds %d bytes", ErrInputTooLarge, uint64(MaxInputLength))
	}
	if uint64(len(salt)) > MaxInputLength {
		return fmt.Errorf("%w: salt exceeds %d bytes", ErrInputTooLarge, uint64(MaxInputLength))
	}
	if len(salt) < MinSaltLength {
		return fmt.Errorf("%w: got %d bytes, need at least %d", ErrSaltTooShort, len(salt), MinSaltLength)
	}
	return nil
}

// Key derives the raw tag for the given password and salt.
//
// It fails with ErrInvalidParameters, ErrSaltTooShort, or ErrInputTooLarge;
// every failure is detected before the memory matrix is allocated. The
// returned slice is exactly p.KeyLength bytes and owned by the caller.
func Key(password, salt []byte, p Params) ([]byte, error) {
	p = p.withDefaults()
	if err := p.validate(); err != nil {
		return nil, err
	}
	if err := checkInputs(password, salt); err != nil {
		return nil, err
	}

	tag := core.Hash(password, salt, p.Secret, p.AssociatedData,
		uint32(p.Variant), p.Version, p.Time, p.Memory, p.Parallelism, p.KeyLength)
	return tag, nil
}
