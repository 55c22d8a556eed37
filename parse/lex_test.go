package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	args, err := Split(`clone --depth 1 "my repo"`)
	assert.Nil(t, err)
	assert.Equal(t, []string{"clone", "--depth", "1", "my repo"}, args)
}

func TestSplit_SingleQuotesAndEscapes(t *testing.T) {
	args, err := Split(`--name 'Ada Lovelace' --title a\ b`)
	assert.Nil(t, err)
	assert.Equal(t, []string{"--name", "Ada Lovelace", "--title", "a b"}, args)
}

func TestSplit_Empty(t *testing.T) {
	args, err := Split("")
	assert.Nil(t, err)
	assert.Empty(t, args)
}

func TestSplit_UnterminatedQuote(t *testing.T) {
	_, err := Split(`--name "unterminated`)
	assert.NotNil(t, err)
}
