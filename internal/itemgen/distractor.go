package itemgen

// distinctInts repairs distractor collisions: any candidate equal to
// the answer or to an earlier candidate is replaced with the nearest
// unused integer offset from the answer. The scan order is fixed, so
// the repair is deterministic for a given input.
func distinctInts(sol int, cands ...int) []int {
	used := map[int]bool{sol: true}
	out := make([]int, 0, len(cands))
	for _, c := range cands {
		if used[c] {
			for delta := 1; ; delta++ {
				if !used[sol+delta] {
					c = sol + delta
					break
				}
				if !used[sol-delta] {
					c = sol - delta
					break
				}
			}
		}
		used[c] = true
		out = append(out, c)
	}
	return out
}
