package align

import (
	"errors"
	"fmt"
)

// ErrOversizedAlignment reports that the cost matrix for a pair of sequences
// would exceed the configured cell ceiling.
var ErrOversizedAlignment = errors.New("alignment exceeds size ceiling")

func oversized(lenA, lenB int, cells, limit int64) error {
	return fmt.Errorf("%w: %d x %d tokens need %d cells, limit %d", ErrOversizedAlignment, lenA, lenB, cells, limit)
}
