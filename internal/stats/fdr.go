package stats

import "sort"

// BenjaminiHochberg converts p-values to FDR q-values. The returned slice is
// aligned with the input; values are clipped to [0,1] and are monotone
// non-decreasing when visited in p-value rank order.
func BenjaminiHochberg(pValues []float64) []float64 {
	m := len(pValues)
	if m == 0 {
		return nil
	}

	order := make([]int, m)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return pValues[order[a]] < pValues[order[b]] })

	q := make([]float64, m)
	for rank, idx := range order {
		q[rank] = pValues[idx] * float64(m) / float64(rank+1)
	}

	// enforce monotonicity from the largest rank down
	for i := m - 2; i >= 0; i-- {
		if q[i] > q[i+1] {
			q[i] = q[i+1]
		}
	}

	out := make([]float64, m)
	for rank, idx := range order {
		v := q[rank]
		if v > 1 {
			v = 1
		}
		if v < 0 {
			v = 0
		}
		out[idx] = v
	}

	return out
}
