package render

import (
	"fmt"

	"github.com/coolbeans/actscan/pkg/scan"
)

// AnchorIDs derives the anchor identifier for every article in the result,
// keyed by ordinal. The identifier is "art-<label>" when the parsed label
// is present and unique, and "art-ord-<ordinal>" otherwise. Index links and
// per-article section anchors both use this derivation; the two matching
// exactly is a hard contract for downstream navigation.
func AnchorIDs(res *scan.Result) map[int]string {
	labelCounts := make(map[string]int)
	for _, article := range res.Articles {
		if article.Label != "" {
			labelCounts[article.Label]++
		}
	}
	ids := make(map[int]string, len(res.Articles))
	for _, article := range res.Articles {
		if article.Label != "" && labelCounts[article.Label] == 1 {
			ids[article.Ordinal] = "art-" + article.Label
		} else {
			ids[article.Ordinal] = fmt.Sprintf("art-ord-%d", article.Ordinal)
		}
	}
	return ids
}
