package summarizer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/recap/internal/errors"
)

// Separator goes between fragments in the combined summary.
const Separator = "\n\n"

// Combine orders fragments by index and joins them. Indices must run
// 0..n-1 with no gaps or repeats. A single fragment is returned unchanged.
func Combine(fragments []Fragment) (string, error) {
	if len(fragments) == 0 {
		return "", errors.NewAggregation(fmt.Errorf("no fragments to combine"))
	}

	sorted := make([]Fragment, len(fragments))
	copy(sorted, fragments)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Index < sorted[j].Index
	})

	texts := make([]string, len(sorted))
	for i, f := range sorted {
		if f.Index != i {
			return "", errors.NewAggregation(fmt.Errorf("missing fragment %d (found %d)", i, f.Index))
		}
		texts[i] = f.Text
	}

	return strings.Join(texts, Separator), nil
}
