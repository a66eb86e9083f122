package arbitrage

// Ratio is a Ratcliff-Obershelp similarity over two strings: twice the
// total length of matching blocks divided by the combined length, in [0,1].
func Ratio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	matched := matchingBlocks([]byte(a), []byte(b))
	return 2 * float64(matched) / float64(len(a)+len(b))
}

func matchingBlocks(a, b []byte) int {
	ai, bi, size := longestMatch(a, b)
	if size == 0 {
		return 0
	}
	total := size
	total += matchingBlocks(a[:ai], b[:bi])
	total += matchingBlocks(a[ai+size:], b[bi+size:])
	return total
}

func longestMatch(a, b []byte) (bestA, bestB, bestSize int) {
	// j2len[j] is the length of the common run ending at a[i-1], b[j-1].
	j2len := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		// Walk j backwards so j2len[j-1] still holds the previous row.
		for j := len(b); j >= 1; j-- {
			if a[i-1] == b[j-1] {
				k := j2len[j-1] + 1
				j2len[j] = k
				if k > bestSize {
					bestA, bestB, bestSize = i-k, j-k, k
				}
			} else {
				j2len[j] = 0
			}
		}
	}
	return bestA, bestB, bestSize
}
