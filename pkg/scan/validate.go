package scan

import (
	"fmt"
	"sort"
	"strconv"
)

// validateArticles runs the non-fatal consistency checks over the extracted
// articles and appends one diagnostic per finding. Nothing here ever aborts
// a scan.
func validateArticles(res *Result) {
	seen := make(map[string]int)
	var numericLabels []int

	for _, article := range res.Articles {
		if article.Label != "" {
			seen[article.Label]++
			if n, err := strconv.Atoi(article.Label); err == nil {
				numericLabels = append(numericLabels, n)
			}
		}
		if len([]rune(article.Text)) < MinContentLength {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Code:    DiagShortContent,
				Message: fmt.Sprintf("%s: body shorter than %d characters", article.Title(), MinContentLength),
			})
		}
	}

	labels := make([]string, 0, len(seen))
	for label, count := range seen {
		if count > 1 {
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)
	for _, label := range labels {
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Code:    DiagDuplicateLabel,
			Message: fmt.Sprintf("label %s used by %d articles", label, seen[label]),
		})
	}

	sort.Ints(numericLabels)
	for i := 1; i < len(numericLabels); i++ {
		prev, next := numericLabels[i-1], numericLabels[i]
		if next > prev+1 {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Code:    DiagLabelGap,
				Message: fmt.Sprintf("label sequence gap between %d and %d", prev, next),
			})
		}
	}
}
