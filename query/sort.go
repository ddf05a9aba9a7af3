package query

import (
	"fmt"
	"strings"

	"github.com/cafecito/beansack/core"
)

// SortOrder names a total order over beans. Each order is a multi-key
// descending comparison with a stable URL tie-break so that repeated queries
// over unchanged data produce identical sequences.
type SortOrder int

const (
	// Newest orders by created time descending, trend score as tie-break.
	Newest SortOrder = iota
	// Latest orders by updated time descending, trend score as tie-break.
	Latest
	// Trending orders by trend score descending, updated time as tie-break.
	Trending
)

// ParseSortOrder resolves a sort-order token from a caller surface.
func ParseSortOrder(name string) (SortOrder, error) {
	switch strings.ToLower(name) {
	case "newest":
		return Newest, nil
	case "latest":
		return Latest, nil
	case "trending":
		return Trending, nil
	default:
		return Newest, fmt.Errorf("%w: unknown sort order %q", core.ErrInvalidParameter, name)
	}
}

func (o SortOrder) String() string {
	switch o {
	case Newest:
		return "newest"
	case Latest:
		return "latest"
	case Trending:
		return "trending"
	default:
		return fmt.Sprintf("sortorder(%d)", int(o))
	}
}

// Compare reports the relative order of two beans under the policy: negative
// when a sorts before b. Suitable for slices.SortStableFunc.
func (o SortOrder) Compare(a, b *core.Bean) int {
	switch o {
	case Latest:
		if c := compareTimeDesc(a.Updated.UnixMicro(), b.Updated.UnixMicro()); c != 0 {
			return c
		}
		if c := compareFloatDesc(a.TrendScore, b.TrendScore); c != 0 {
			return c
		}
	case Trending:
		if c := compareFloatDesc(a.TrendScore, b.TrendScore); c != 0 {
			return c
		}
		if c := compareTimeDesc(a.Updated.UnixMicro(), b.Updated.UnixMicro()); c != 0 {
			return c
		}
	default: // Newest
		if c := compareTimeDesc(a.Created.UnixMicro(), b.Created.UnixMicro()); c != 0 {
			return c
		}
		if c := compareFloatDesc(a.TrendScore, b.TrendScore); c != 0 {
			return c
		}
	}
	return strings.Compare(a.URL, b.URL)
}

func compareTimeDesc(a, b int64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}

func compareFloatDesc(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}
