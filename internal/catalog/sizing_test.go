package catalog

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizeRank_NamedOrder(t *testing.T) {
	ordered := []string{"XS", "S", "M", "L", "XL", "XXL", "XXXL", "4XL", "5XL", "6XL"}
	for i := 1; i < len(ordered); i++ {
		assert.Less(t, SizeRank(ordered[i-1]), SizeRank(ordered[i]),
			"%s should rank before %s", ordered[i-1], ordered[i])
	}
}

func TestSizeRank_Aliases(t *testing.T) {
	assert.Equal(t, SizeRank("XXL"), SizeRank("2XL"))
	assert.Equal(t, SizeRank("XXXL"), SizeRank("3XL"))
}

func TestSizeRank_WaistAfterLetters(t *testing.T) {
	assert.Greater(t, SizeRank("28"), SizeRank("6XL"))
	assert.Greater(t, SizeRank("34"), SizeRank("XXXL"))
	for waist := 30; waist <= 50; waist += 2 {
		prev := SizeRank(strconv.Itoa(waist - 2))
		curr := SizeRank(strconv.Itoa(waist))
		assert.Less(t, prev, curr, "waist %d should rank before %d", waist-2, waist)
	}
}

func TestSizeRank_NumericOutsideWaistTable(t *testing.T) {
	// Odd or out-of-range numerics still order by value, after named sizes.
	assert.Greater(t, SizeRank("29"), SizeRank("50"))
	assert.Less(t, SizeRank("29"), SizeRank("31"))
	assert.Greater(t, SizeRank("52"), SizeRank("50"))
}

func TestSizeRank_UnknownLast(t *testing.T) {
	unknown := SizeRank("FREESIZE")
	assert.Equal(t, unknownSizeRank, unknown)
	assert.Greater(t, unknown, SizeRank("52"))
	assert.Greater(t, unknown, SizeRank("6XL"))
}

func TestSizeRank_Normalization(t *testing.T) {
	assert.Equal(t, SizeRank("M"), SizeRank(" m "))
	assert.Equal(t, SizeRank("XXL"), SizeRank("xxl"))
	assert.Equal(t, SizeRank("34"), SizeRank(" 34"))
}
