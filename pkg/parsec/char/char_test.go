package char_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/consensys/go-parsec/pkg/parsec"
	"github.com/consensys/go-parsec/pkg/parsec/char"
)

func TestNumberParsesDigitsIntoAnInteger(t *testing.T) {
	v, err := parsec.Run(char.Number[int](), []rune("12345"))
	assert.NoError(t, err)
	assert.Equal(t, 12345, v)
}

func TestNumberRejectsNonDigits(t *testing.T) {
	_, err := parsec.Run(char.Number[int](), []rune("abc"))
	assert.Error(t, err)
}

func TestNumberOverflowsReportedAsError(t *testing.T) {
	_, err := parsec.Run(char.Number[int8](), []rune("200"))
	assert.Error(t, err)
}
