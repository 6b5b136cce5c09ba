package service

// AverageRating computes the arithmetic mean of the given ratings, ignoring
// unrated entries (0 or less). An all-unrated or empty collection averages
// to 0. Rounding to one decimal place is a display concern, not done here.
func AverageRating(ratings []int) float64 {
	var sum, count int
	for _, r := range ratings {
		if r > 0 {
			sum += r
			count++
		}
	}

	if count == 0 {
		return 0.0
	}

	return float64(sum) / float64(count)
}
