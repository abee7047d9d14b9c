// Package auth hashes passwords the way the biogas_server user table stores them.
package auth

import (
	"crypto/md5"
	"encoding/hex"
)

const (
	saltPrefix = "a6b9"
	saltSuffix = "x7d8"
)

// HashPassword returns the hex-encoded salted MD5 digest stored in the
// password column.
func HashPassword(plaintext string) string {
	h := md5.Sum([]byte(saltPrefix + plaintext + saltSuffix))
	return hex.EncodeToString(h[:])
}
