package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateJoinCodeFormat(t *testing.T) {
	codePattern := regexp.MustCompile(`^[0-9A-F]{8}$`)

	for i := 0; i < 20; i++ {
		code := GenerateJoinCode()
		assert.Regexp(t, codePattern, code)
	}
}

func TestGenerateJoinCodeVaries(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 50; i++ {
		seen[GenerateJoinCode()] = true
	}

	assert.Greater(t, len(seen), 1)
}
