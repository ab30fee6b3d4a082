package checksum

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/goombaio/namegenerator"
	"github.com/gowebpki/jcs"
	"github.com/modern-go/reflect2"

	"github.com/mandelsoft/relplan/pkg/utils"
)

const Size = sha256.Size

// Checksum is the SHA-256 digest of the canonical serialization
// of some data.
type Checksum [Size]byte

// Of calculates the checksum of the JSON serialization of d after
// canonicalization according to RFC 8785, so that map iteration
// order and formatting do not influence the result. Byte slices and
// strings are hashed as they are.
func Of(d interface{}) (Checksum, error) {
	if reflect2.IsNil(d) {
		return Checksum{}, nil
	}
	var err error
	var data []byte
	switch b := d.(type) {
	case []byte:
		data = b
	case string:
		data = []byte(b)
	default:
		data, err = json.Marshal(d)
		if err != nil {
			return Checksum{}, err
		}
		data, err = jcs.Transform(data)
		if err != nil {
			return Checksum{}, err
		}
	}
	return sha256.Sum256(data), nil
}

func MustOf(d interface{}) Checksum {
	c, err := Of(d)
	if err != nil {
		panic(err)
	}
	return c
}

func Parse(s string) (Checksum, error) {
	var c Checksum
	data, err := hex.DecodeString(s)
	if err != nil {
		return c, fmt.Errorf("invalid checksum %q: %w", s, err)
	}
	if len(data) != Size {
		return c, fmt.Errorf("invalid checksum %q: %d bytes expected", s, Size)
	}
	copy(c[:], data)
	return c, nil
}

func (c Checksum) String() string {
	return hex.EncodeToString(c[:])
}

func (c Checksum) IsZero() bool {
	return c == Checksum{}
}

func (c Checksum) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Checksum) UnmarshalText(data []byte) error {
	p, err := Parse(string(data))
	if err != nil {
		return err
	}
	*c = p
	return nil
}

// Seed derives a random seed from the leading digest bytes.
func (c Checksum) Seed() int64 {
	return int64(binary.BigEndian.Uint64(c[:8]))
}

////////////////////////////////////////////////////////////////////////////////

// NameGenerator provides a word generator for a random seed. The same
// seed must always yield the same words.
type NameGenerator func(seed int64) namegenerator.Generator

// Codename returns a human readable name determined by the checksum.
// Without explicit generator a seeded word list generator is used.
func (c Checksum) Codename(gens ...NameGenerator) string {
	gen := utils.OptionalDefaulted(NameGenerator(namegenerator.NewNameGenerator), gens...)
	return gen(c.Seed()).Generate()
}
