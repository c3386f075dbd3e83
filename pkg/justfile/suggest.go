// SPDX-License-Identifier: MPL-2.0

package justfile

import "github.com/agext/levenshtein"

// suggestionDistance is the maximum edit distance at which a candidate is
// still offered as a "did you mean" suggestion.
const suggestionDistance = 2

// Suggest returns the known recipe or alias name closest to name by edit
// distance, or "" when nothing is close enough to be a plausible typo.
func (j *Justfile) Suggest(name string) string {
	best := ""
	bestDistance := suggestionDistance + 1
	for _, candidate := range j.Names() {
		distance := levenshtein.Distance(name, candidate, nil)
		if distance < bestDistance {
			best = candidate
			bestDistance = distance
		}
	}
	return best
}
