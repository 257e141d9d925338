package crypto

import "errors"

// scrypt parameters for the local keystore
// Security is prioritized over performance
//
// N=2^18 (~256MB RAM, 0.5-2s) keeps brute force expensive while still
// working on machines with little memory.
var (
	scryptN = 1 << 18
	scryptR = 8
	scryptP = 1
)

const (
	scryptKeyLen = 32
	saltLen      = 32
	nonceLen     = 12
	extension    = ".cwt"
)

var (
	// ErrInvalidPassword is returned when the keystore cannot be opened with the given password
	ErrInvalidPassword = errors.New("invalid password")
	// ErrFileExists is returned when the target keystore file already has content
	ErrFileExists = errors.New("file is not empty")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}
