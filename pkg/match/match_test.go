package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileValidPattern(t *testing.T) {
	m, err := Compile(`err(or)?`)
	require.NoError(t, err)

	spans := m.FindAll("error: disk err")
	require.Len(t, spans, 2)
	assert.Equal(t, []int{0, 5}, spans[0])
	assert.Equal(t, []int{12, 15}, spans[1])
}

func TestCompileInvalidPattern(t *testing.T) {
	m, err := Compile("[")
	assert.Error(t, err)
	assert.Nil(t, m)
}

func TestCompileNoMatch(t *testing.T) {
	m, err := Compile("warn")
	require.NoError(t, err)
	assert.Nil(t, m.FindAll("all quiet"))
}

func TestLiteralFindsAllOccurrences(t *testing.T) {
	m := Literal("ab")

	spans := m.FindAll("ab abab")
	require.Len(t, spans, 3)
	assert.Equal(t, []int{0, 2}, spans[0])
	assert.Equal(t, []int{3, 5}, spans[1])
	assert.Equal(t, []int{5, 7}, spans[2])
}

func TestLiteralDoesNotInterpretMetaCharacters(t *testing.T) {
	m := Literal("a.c")

	assert.Nil(t, m.FindAll("abc"))
	spans := m.FindAll("a.c")
	require.Len(t, spans, 1)
	assert.Equal(t, []int{0, 3}, spans[0])
}

func TestLiteralEmptyPattern(t *testing.T) {
	m := Literal("")
	assert.Nil(t, m.FindAll("anything"))
}
