package catalog

import (
	"strconv"
	"strings"
)

const (
	// numericSizeOffset keeps numeric sizes outside the waist table ordered
	// after every named size.
	numericSizeOffset = 100
	// unknownSizeRank pushes unrecognized labels to the end; ties keep their
	// input order because grouping uses a stable sort.
	unknownSizeRank = 1000
)

// namedSizeRanks fixes the display order for standard apparel sizes and
// even waist sizes 28 through 50. 2XL/XXL and 3XL/XXXL are aliases.
var namedSizeRanks = map[string]int{
	"XS":   0,
	"S":    1,
	"M":    2,
	"L":    3,
	"XL":   4,
	"XXL":  5,
	"2XL":  5,
	"XXXL": 6,
	"3XL":  6,
	"4XL":  7,
	"5XL":  8,
	"6XL":  9,
	"28":   10,
	"30":   11,
	"32":   12,
	"34":   13,
	"36":   14,
	"38":   15,
	"40":   16,
	"42":   17,
	"44":   18,
	"46":   19,
	"48":   20,
	"50":   21,
}

// SizeRank maps a size label to its position in the domain size order.
// Labels are matched after trimming and uppercasing. Numeric labels outside
// the waist table rank after all named sizes, ordered by value.
func SizeRank(label string) int {
	normalized := strings.ToUpper(strings.TrimSpace(label))
	if rank, ok := namedSizeRanks[normalized]; ok {
		return rank
	}
	if value, err := strconv.Atoi(normalized); err == nil {
		return value + numericSizeOffset
	}
	return unknownSizeRank
}
