package helpers

import (
	"crypto/rand"
	"encoding/hex"
)

// Redis key builders for short-lived auth artifacts.

// KeySession is the Redis key for a user's active login session.
func KeySession(uid string) string {
	return "session:" + uid
}

// KeyVerifyToken is the Redis key for a pending email verification token.
func KeyVerifyToken(token string) string {
	return "verify:" + token
}

// KeyResetToken is the Redis key for a pending password reset token.
func KeyResetToken(token string) string {
	return "reset:" + token
}

// GenToken returns a 32-byte random token as hex.
func GenToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
