package services

// SortEnrollStudent is the only supported ranking key for top classes.
const SortEnrollStudent = "enrollStudent"

// RankingKey returns the supported sort key or "" when sortBy is not one.
func RankingKey(sortBy string) string {
	if sortBy == SortEnrollStudent {
		return SortEnrollStudent
	}
	return ""
}
