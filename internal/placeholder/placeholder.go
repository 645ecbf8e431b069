// Package placeholder finds format variables in line text so that a
// translation can be checked for dropped or invented ones.
package placeholder

import (
	"regexp"
	"slices"
	"sort"
)

// patterns to detect interpolation variables in game strings.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\{[a-zA-Z_][a-zA-Z0-9_]*\}`),         // ${value}
	regexp.MustCompile(`\{[0-9]+\}`),                           // {0}, {1}
	regexp.MustCompile(`%[-+0-9]*\.?[0-9]*[dsfieEgGxXoubcpq]`), // %d, %s, %f, %2d, etc.
	regexp.MustCompile(`%%`),                                   // escaped percent literal
}

type match struct {
	start, end int
}

// Find returns the variables of text in order of appearance. Overlapping
// matches keep the earliest, longest one.
func Find(text string) []string {
	var all []match
	for _, p := range patterns {
		for _, loc := range p.FindAllStringIndex(text, -1) {
			all = append(all, match{start: loc[0], end: loc[1]})
		}
	}
	if len(all) == 0 {
		return nil
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].start != all[j].start {
			return all[i].start < all[j].start
		}
		return all[i].end-all[i].start > all[j].end-all[j].start
	})

	var out []string
	lastEnd := -1
	for _, m := range all {
		if m.start >= lastEnd {
			out = append(out, text[m.start:m.end])
			lastEnd = m.end
		}
	}
	return out
}

// Diff compares the variables of a source line and its translation. It
// returns the ones the translation lost and the ones it added, counting
// repeats.
func Diff(source, translated string) (missing, extra []string) {
	counts := map[string]int{}
	for _, v := range Find(source) {
		counts[v]++
	}
	for _, v := range Find(translated) {
		if counts[v] > 0 {
			counts[v]--
			continue
		}
		extra = append(extra, v)
	}
	for v, n := range counts {
		for range n {
			missing = append(missing, v)
		}
	}
	slices.Sort(missing)
	return missing, extra
}
