package textutil

// Distance computes the Levenshtein edit distance between a and b.
// Insertions, deletions, and substitutions each cost 1. The computation uses
// the single-row dynamic programming recurrence, keeping O(min(len(a),len(b)))
// extra space.
func Distance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	// Keep the row sized by the shorter string.
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	if len(rb) == 0 {
		return len(ra)
	}

	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}

	for i, ca := range ra {
		prev := row[0] // row[j-1] from the previous row
		row[0] = i + 1
		for j, cb := range rb {
			insertion := row[j+1] + 1
			deletion := row[j] + 1
			substitution := prev
			if ca != cb {
				substitution++
			}
			prev = row[j+1]
			row[j+1] = minInt(insertion, deletion, substitution)
		}
	}

	return row[len(rb)]
}

func minInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
