package comparer

import (
	"time"

	"github.com/google/go-cmp/cmp"
)

// TimeWithin considera iguais instantes separados por no máximo tolerance.
func TimeWithin(tolerance time.Duration) cmp.Option {
	return cmp.Comparer(func(x, y time.Time) bool {
		diff := x.Sub(y)
		if diff < 0 {
			diff = -diff
		}
		return diff <= tolerance
	})
}
