package scan

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	romanTokenPattern  = regexp.MustCompile(`\b[IVXLCDM]+\b`)
	arabicTokenPattern = regexp.MustCompile(`\d+`)
)

var romanValues = map[byte]int{
	'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100, 'D': 500, 'M': 1000,
}

// romanToInt decodes a Roman numeral using standard subtractive notation.
// Invalid input yields 0.
func romanToInt(s string) int {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0
	}
	total := 0
	for i := 0; i < len(s); i++ {
		value, ok := romanValues[s[i]]
		if !ok {
			return 0
		}
		if i+1 < len(s) {
			if next, ok := romanValues[s[i+1]]; ok && next > value {
				total -= value
				continue
			}
		}
		total += value
	}
	return total
}

// headingNumber extracts the numeric value of a structural heading label:
// a Roman numeral token when present, an Arabic one otherwise, 0 when the
// text carries no number at all.
func headingNumber(text string) int {
	upper := strings.ToUpper(text)
	if token := romanTokenPattern.FindString(upper); token != "" {
		if n := romanToInt(token); n > 0 {
			return n
		}
	}
	if token := arabicTokenPattern.FindString(text); token != "" {
		if n, err := strconv.Atoi(token); err == nil {
			return n
		}
	}
	return 0
}
