package linkage

// applyOptimalOrdering returns the steps with child subtrees oriented so
// the two leaves meeting at each junction are close in the original
// metric. Orientation choices are strict improvements only, so ties keep
// the current layout and the pass is deterministic.
func applyOptimalOrdering(steps []Step, n int, dist [][]float64) []Step {
	out := make([]Step, len(steps))
	copy(out, steps)

	// leafSeq[id] holds the left-to-right leaf sequence of the subtree
	// rooted at id, maintained as nodes are processed bottom-up.
	leafSeq := make([][]int, 2*n-1)
	for i := 0; i < n; i++ {
		leafSeq[i] = []int{i}
	}

	for k := range out {
		l := leafSeq[out[k].A]
		r := leafSeq[out[k].B]

		best := dist[l[len(l)-1]][r[0]]
		flipL, flipR := false, false
		if v := dist[l[0]][r[0]]; v < best {
			best = v
			flipL, flipR = true, false
		}
		if v := dist[l[len(l)-1]][r[len(r)-1]]; v < best {
			best = v
			flipL, flipR = false, true
		}
		if v := dist[l[0]][r[len(r)-1]]; v < best {
			flipL, flipR = true, true
		}

		if flipL {
			mirror(out, n, out[k].A, leafSeq)
		}
		if flipR {
			mirror(out, n, out[k].B, leafSeq)
		}

		seq := make([]int, 0, len(l)+len(r))
		seq = append(seq, leafSeq[out[k].A]...)
		seq = append(seq, leafSeq[out[k].B]...)
		leafSeq[n+k] = seq
	}
	return out
}

// mirror reverses the leaf order of the subtree rooted at id by swapping
// children all the way down.
func mirror(steps []Step, n, id int, leafSeq [][]int) {
	if id >= n {
		k := id - n
		steps[k].A, steps[k].B = steps[k].B, steps[k].A
		mirror(steps, n, steps[k].A, leafSeq)
		mirror(steps, n, steps[k].B, leafSeq)
	}
	seq := leafSeq[id]
	for i, j := 0, len(seq)-1; i < j; i, j = i+1, j-1 {
		seq[i], seq[j] = seq[j], seq[i]
	}
}
