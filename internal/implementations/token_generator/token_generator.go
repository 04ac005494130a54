package tokengenerator

import (
	"crypto/rand"
	"encoding/hex"

	"taskminder/internal/core/domain/user"
)

const TOKEN_BYTE_LEN = 32

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) GenerateToken() user.SessionToken {
	buf := make([]byte, TOKEN_BYTE_LEN)
	if _, err := rand.Read(buf); err != nil {
		panic("could not read random bytes")
	}
	return user.SessionToken(hex.EncodeToString(buf))
}
