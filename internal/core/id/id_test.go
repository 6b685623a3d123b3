package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IsVersion7AndOrdered(t *testing.T) {
	a, b := New(), New()
	assert.EqualValues(t, 7, a.Version())
	assert.Less(t, a.String(), b.String())
	assert.False(t, IsNil(a))
}

func TestParse(t *testing.T) {
	v := New()

	got, err := Parse("  " + v.String() + "\n")
	require.NoError(t, err)
	assert.Equal(t, v, got)

	_, err = Parse("LBL-1")
	assert.ErrorContains(t, err, `invalid id "LBL-1"`)
}

func TestParseOptional(t *testing.T) {
	got, err := ParseOptional(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	blank := " "
	got, err = ParseOptional(&blank)
	require.NoError(t, err)
	assert.Nil(t, got)

	s := "0190d1a8-7f3e-7c11-9a4b-5d2e8f6a1b20"
	got, err = ParseOptional(&s)
	require.NoError(t, err)
	assert.Equal(t, MustParse(s), *got)

	bad := "nope"
	_, err = ParseOptional(&bad)
	assert.Error(t, err)
}
