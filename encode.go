package argon2

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// b64 is the PHC base64 alphabet: the standard alphabet without padding.
// The exact alphabet and the field order below must match byte for byte
// across implementations, since the encoded string is the sole durable
// artifact of a derivation.
var b64 = base64.StdEncoding.WithPadding(base64.NoPadding)

// Encode renders parameters, salt, and tag into the canonical PHC form:
//
//	$argon2{d,i,id}$v=N$m=M,t=T,p=P$<base64 salt>$<base64 tag>
//
// Secret and AssociatedData are never part of the encoding; a verifier
// using them must supply them out of band.
func Encode(p Params, salt, tag []byte) (string, error) {
	p = p.withDefaults()
	if err := p.validate(); err != nil {
		return "", err
	}

	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		p.Variant,
		p.Version,
		p.Memory,
		p.Time,
		p.Parallelism,
		b64.EncodeToString(salt),
		b64.EncodeToString(tag),
	), nil
}

// Decode parses an encoded hash back into its parameters, salt, and tag.
// It is the exact inverse of Encode: for any string Encode produces,
// Decode recovers the inputs byte for byte.
//
// Fails with ErrMalformedEncoding on a missing field, an unknown variant
// tag, an out-of-range numeric field, or invalid base64. Decode performs
// no semantic validation beyond representability; cost-parameter checks
// happen when the decoded Params are used.
func Decode(encoded string) (Params, []byte, []byte, error) {
	var p Params

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return p, nil, nil, fmt.Errorf("%w: want 5 '$'-separated fields", ErrMalformedEncoding)
	}

	switch parts[1] {
	case "argon2d":
		p.Variant = VariantD
	case "argon2i":
		p.Variant = VariantI
	case "argon2id":
		p.Variant = VariantID
	default:
		return p, nil, nil, fmt.Errorf("%w: unknown variant %q", ErrMalformedEncoding, parts[1])
	}

	version, err := parseField(parts[2], "v")
	if err != nil {
		return p, nil, nil, err
	}
	if version != Version10 && version != Version13 {
		return p, nil, nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedEncoding, version)
	}
	p.Version = version

	costs := strings.Split(parts[3], ",")
	if len(costs) != 3 {
		return p, nil, nil, fmt.Errorf("%w: want m=,t=,p= cost fields", ErrMalformedEncoding)
	}
	if p.Memory, err = parseField(costs[0], "m"); err != nil {
		return p, nil, nil, err
	}
	if p.Time, err = parseField(costs[1], "t"); err != nil {
		return p, nil, nil, err
	}
	if p.Parallelism, err = parseField(costs[2], "p"); err != nil {
		return p, nil, nil, err
	}

	salt, err := b64.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, fmt.Errorf("%w: bad salt base64: %v", ErrMalformedEncoding, err)
	}
	tag, err := b64.DecodeString(parts[5])
	if err != nil {
		return p, nil, nil, fmt.Errorf("%w: bad tag base64: %v", ErrMalformedEncoding, err)
	}
	if len(salt) == 0 || len(tag) == 0 {
		return p, nil, nil, fmt.Errorf("%w: empty salt or tag", ErrMalformedEncoding)
	}

	p.KeyLength = uint32(len(tag))
	return p, salt, tag, nil
}

// parseField parses one "key=decimal" field, enforcing the fixed key name
// and the uint32 range.
func parseField(field, key string) (uint32, error) {
	value, ok := strings.CutPrefix(field, key+"=")
	if !ok {
		return 0, fmt.Errorf("%w: missing %s= field", ErrMalformedEncoding, key)
	}
	n, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: bad %s= field: %v", ErrMalformedEncoding, key, err)
	}
	return uint32(n), nil
}

// HashEncoded derives the tag for password and salt and returns it in the
// canonical encoded form. Failure modes are those of Key.
func HashEncoded(password, salt []byte, p Params) (string, error) {
	tag, err := Key(password, salt, p)
	if err != nil {
		return "", err
	}
	return Encode(p, salt, tag)
}

// Verify decodes an encoded hash, recomputes the tag for the supplied
// password with the recovered parameters and salt, and compares in
// constant time.
//
// Returns (false, nil) on a correct parse with a mismatched tag; an error
// is returned only for unparsable input (ErrMalformedEncoding) or decoded
// parameters the engine rejects.
func Verify(encoded string, password []byte) (bool, error) {
	p, salt, tag, err := Decode(encoded)
	if err != nil {
		return false, err
	}

	computed, err := Key(password, salt, p)
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare(computed, tag) == 1, nil
}
