package prakt

// RatioItem is one demand on a shared total: either a fixed size or a
// flexible ratio share, with a minimum floor. The zero value is a
// flexible item with ratio 1 and minimum 1.
type RatioItem struct {
	// Fixed marks Size as a hard demand; Ratio is then ignored.
	Fixed bool
	// Size is the fixed size demand when Fixed is set.
	Size int
	// Ratio is the flexible share weight. Values below 1 count as 1.
	Ratio int
	// Minimum is the smallest acceptable size. Values below 1 count
	// as 1.
	Minimum int
}

// RatioResolve splits total among items. Fixed items get their size,
// flexible items share the remainder proportional to their ratios with
// the last flexible item absorbing the rounding remainder, and the
// result is shrunk when minimums alone exceed the total. The sum of
// the result never exceeds total, and equals it whenever the minimums
// fit.
func RatioResolve(total int, items []RatioItem) []int {
	if len(items) == 0 {
		return nil
	}
	if total < 0 {
		total = 0
	}

	sizes := make([]int, len(items))
	mins := make([]int, len(items))
	ratios := make([]int, len(items))

	fixedTotal := 0
	flexMinTotal := 0

	for i, item := range items {
		min := item.Minimum
		if min < 1 {
			min = 1
		}
		mins[i] = min
		if item.Fixed {
			size := item.Size
			if size < min {
				size = min
			}
			sizes[i] = size
			ratios[i] = 0
			fixedTotal += size
		} else {
			sizes[i] = min
			ratio := item.Ratio
			if ratio < 1 {
				ratio = 1
			}
			ratios[i] = ratio
			flexMinTotal += min
		}
	}

	remaining := total - fixedTotal - flexMinTotal
	if remaining < 0 {
		remaining = 0
	}

	totalRatio := 0
	flexCount := 0
	for _, r := range ratios {
		totalRatio += r
		if r > 0 {
			flexCount++
		}
	}

	if totalRatio > 0 && remaining > 0 {
		distributed := 0
		flexIdx := 0
		for i, ratio := range ratios {
			if ratio == 0 {
				continue
			}
			flexIdx++
			var extra int
			if flexIdx == flexCount {
				extra = remaining - distributed
			} else {
				extra = roundRatio(ratio*remaining, totalRatio)
				if distributed+extra > remaining {
					extra = remaining - distributed
				}
			}
			sizes[i] += extra
			distributed += extra
		}
		remaining -= distributed
		if remaining < 0 {
			remaining = 0
		}
	}

	for i := 0; remaining > 0; i = (i + 1) % len(sizes) {
		sizes[i]++
		remaining--
	}

	return clampSizes(sizes, mins, total)
}

// roundRatio rounds p/q to the nearest integer, halves away from zero.
// Both arguments must be positive.
func roundRatio(p, q int) int {
	return (2*p + q) / (2 * q)
}

func clampSizes(sizes, mins []int, total int) []int {
	sum := 0
	for _, s := range sizes {
		sum += s
	}
	if sum <= total {
		return sizes
	}

	// First shrink each item proportional to its share of the total
	// shrinkable space, rounding down so the pass never overshoots.
	excess := sum - total
	totalShrinkable := 0
	for i := range sizes {
		if sizes[i] > mins[i] {
			totalShrinkable += sizes[i] - mins[i]
		}
	}
	if totalShrinkable > 0 {
		for i := range sizes {
			shrinkable := sizes[i] - mins[i]
			if shrinkable <= 0 {
				continue
			}
			cut := excess * shrinkable / totalShrinkable
			if cut > shrinkable {
				cut = shrinkable
			}
			sizes[i] -= cut
			sum -= cut
		}
	}

	// Remove the remaining overshoot one unit at a time from the last
	// items first, never going below a minimum.
	for sum > total {
		reduced := false
		for i := len(sizes) - 1; i >= 0; i-- {
			if sizes[i] > mins[i] {
				sizes[i]--
				sum--
				reduced = true
				if sum == total {
					break
				}
			}
		}
		if !reduced {
			break
		}
	}

	// Minimums alone exceed the total: give up on the floors.
	for i := 0; sum > total; i = (i + 1) % len(sizes) {
		if sizes[i] > 0 {
			sizes[i]--
			sum--
		}
	}

	return sizes
}
