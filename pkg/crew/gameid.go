package crew

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
)

// game ids are 40-bit integers; 5 bytes encode to exactly 8 base-32
// characters with no padding
const gameIDBytes = 5

// GameIDLength is the length of a human-readable game id
const GameIDLength = 8

// ErrInvalidGameID is an error when a game id string cannot be decoded
var ErrInvalidGameID = errors.New("invalid game id")

// EncodeGameID returns the human-shareable form of a numeric game id
func EncodeGameID(id int64) string {
	b := make([]byte, gameIDBytes)
	for i := gameIDBytes - 1; i >= 0; i-- {
		b[i] = byte(id)
		id >>= 8
	}

	return base32.StdEncoding.EncodeToString(b)
}

// DecodeGameID parses a human-readable game id back to its numeric form
func DecodeGameID(s string) (int64, error) {
	if len(s) != GameIDLength {
		return 0, fmt.Errorf("%w: must be %d characters", ErrInvalidGameID, GameIDLength)
	}

	b, err := base32.StdEncoding.DecodeString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidGameID, err)
	}

	var id int64
	for _, c := range b {
		id = id<<8 | int64(c)
	}

	return id, nil
}

// RandomGameID draws a uniform 40-bit game id
func RandomGameID() int64 {
	b := make([]byte, gameIDBytes)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}

	var id int64
	for _, c := range b {
		id = id<<8 | int64(c)
	}

	return id
}
