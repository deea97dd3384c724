package argon2

import "errors"

// Error taxonomy. All failures are detected before the memory arena is
// allocated; nothing is retried or silently recovered. Callers can match
// these sentinels with errors.Is, and wrapped variants carry detail about
// the offending field.
var (
	// ErrInvalidParameters reports caller misconfiguration: a zero cost
	// parameter, an unknown variant or version, or a memory cost below
	// 8 blocks per lane.
	ErrInvalidParameters = errors.New("argon2: invalid parameters")

	// ErrSaltTooShort reports a salt below the 8-byte minimum.
	ErrSaltTooShort = errors.New("argon2: salt too short")

	// ErrInputTooLarge reports a password, salt, secret, or associated-data
	// value longer than the 2^32-1 byte maximum the format can bind.
	ErrInputTooLarge = errors.New("argon2: input too large")

	// ErrMalformedEncoding reports an encoded hash string that cannot be
	// parsed: a missing field, an unknown variant tag, an out-of-range
	// numeric field, or invalid base64. It is returned at parse time only,
	// never during hashing.
	ErrMalformedEncoding = errors.New("argon2: malformed encoded hash")
)
