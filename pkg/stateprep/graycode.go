package stateprep

// GrayCode returns the reflected binary Gray code of the given rank as
// 2^rank bit strings, most significant bit first. Consecutive entries,
// including the last and the first, differ in exactly one bit.
// Rank 0 yields the single empty string; negative ranks are treated as 0.
func GrayCode(rank int) []string {
	codes := []string{""}
	for r := 0; r < rank; r++ {
		next := make([]string, 0, 2*len(codes))
		for _, c := range codes {
			next = append(next, "0"+c)
		}
		for i := len(codes) - 1; i >= 0; i-- {
			next = append(next, "1"+codes[i])
		}
		codes = next
	}
	return codes
}

// grayValues returns the Gray code of the given rank as integers.
func grayValues(rank int) []int {
	codes := GrayCode(rank)
	values := make([]int, len(codes))
	for i, c := range codes {
		v := 0
		for _, b := range c {
			v <<= 1
			if b == '1' {
				v |= 1
			}
		}
		values[i] = v
	}
	return values
}
