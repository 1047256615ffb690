package otp

import (
	"strings"

	"github.com/xlzd/gotp"
)

// Generator produces random tokens.
type Generator interface {
	RandomSecret(length int) string
}

type GOTPGenerator struct{}

func NewGOTPGenerator() *GOTPGenerator {
	return &GOTPGenerator{}
}

// RandomSecret returns a lowercase base32 string of the given length.
func (g *GOTPGenerator) RandomSecret(length int) string {
	return strings.ToLower(gotp.RandomSecret(length))
}
