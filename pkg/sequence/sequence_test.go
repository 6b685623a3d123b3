package sequence

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		quantity int
		want     []string
	}{
		{"simple run", "PA00001", 3, []string{"PA00001", "PA00002", "PA00003"}},
		{"width grows", "ITEM099", 3, []string{"ITEM099", "ITEM100", "ITEM101"}},
		{"short width", "X99", 5, []string{"X99", "X100", "X101", "X102", "X103"}},
		{"digits inside prefix", "LOT7-B0009", 2, []string{"LOT7-B0009", "LOT7-B0010"}},
		{"start at zero", "Z000", 2, []string{"Z000", "Z001"}},
		{"single", "A1", 1, []string{"A1"}},
		{"all digits keeps one prefix char", "12345", 2, []string{"12345", "12346"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Generate(tt.pattern, tt.quantity)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerate_ZeroQuantity(t *testing.T) {
	got, err := Generate("PA00001", 0)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGenerate_ZeroQuantityStillValidatesPattern(t *testing.T) {
	got, err := Generate("NoDigitsHere", 0)
	assert.ErrorIs(t, err, ErrInvalidPattern)
	assert.Nil(t, got)
}

func TestGenerate_InvalidPattern(t *testing.T) {
	for _, pattern := range []string{"NoDigitsHere", "", "7", "ABC-", "12A"} {
		t.Run(pattern, func(t *testing.T) {
			got, err := Generate(pattern, 5)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, ErrInvalidPattern)

			var pe *PatternError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, pattern, pe.Pattern)
		})
	}
}

func TestGenerate_NegativeQuantity(t *testing.T) {
	_, err := Generate("PA1", -1)
	assert.ErrorIs(t, err, ErrNegativeQuantity)
}

func TestGenerate_Overflow(t *testing.T) {
	pattern := "X" + strconv.FormatInt(math.MaxInt64-1, 10)

	got, err := Generate(pattern, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = Generate(pattern, 3)
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = Generate("X99999999999999999999", 1)
	assert.ErrorIs(t, err, ErrInvalidPattern)
}

func TestParse(t *testing.T) {
	p, err := Parse("PA00042")
	require.NoError(t, err)
	assert.Equal(t, Pattern{Prefix: "PA", Digits: "00042", Start: 42, Width: 5}, p)
	assert.Equal(t, "PA00042", p.String())
	assert.Equal(t, "PA00045", p.Code(3))
	assert.Equal(t, int64(45), p.SequenceNumber(3))
}

func TestPattern_Number(t *testing.T) {
	p := MustParse("PA00001")

	n, ok := p.Number("PA00123")
	assert.True(t, ok)
	assert.Equal(t, int64(123), n)

	n, ok = p.Number("PA123456")
	assert.True(t, ok)
	assert.Equal(t, int64(123456), n)

	for _, code := range []string{"PB00001", "PA", "PA12X", "XPA001"} {
		_, ok := p.Number(code)
		assert.False(t, ok, code)
		assert.False(t, p.Matches(code), code)
	}
	assert.True(t, p.Matches("PA00002"))
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("nope") })
}

func TestGenerate_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	prefixGen := gen.AlphaString().SuchThat(func(s string) bool { return s != "" })

	properties.Property("yields quantity codes that step by one", prop.ForAll(
		func(prefix string, start int, width int, quantity int) bool {
			pattern := prefix + pad(int64(start), width)
			codes, err := Generate(pattern, quantity)
			if err != nil || len(codes) != quantity {
				return false
			}

			p := MustParse(pattern)
			prev := int64(-1)
			for i, code := range codes {
				if !strings.HasPrefix(code, prefix) {
					return false
				}
				if len(code)-len(prefix) < p.Width {
					return false
				}
				n, ok := p.Number(code)
				if !ok {
					return false
				}
				if i > 0 && n != prev+1 {
					return false
				}
				prev = n
			}
			return true
		},
		prefixGen,
		gen.IntRange(0, 99999),
		gen.IntRange(1, 8),
		gen.IntRange(0, 300),
	))

	properties.Property("is deterministic", prop.ForAll(
		func(prefix string, start int, quantity int) bool {
			pattern := prefix + strconv.Itoa(start)
			a, errA := Generate(pattern, quantity)
			b, errB := Generate(pattern, quantity)
			if errA != nil || errB != nil {
				return false
			}
			return strings.Join(a, ",") == strings.Join(b, ",")
		},
		prefixGen,
		gen.IntRange(0, 1_000_000),
		gen.IntRange(0, 50),
	))

	properties.Property("patterns without trailing digits are rejected", prop.ForAll(
		func(s string) bool {
			_, err := Generate(s, 1)
			return errors.Is(err, ErrInvalidPattern)
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
