package punter

import (
	"fmt"
	"strconv"
)

// ParseSeason canonicalizes the season formats seen in source data to
// YYYY/YYYY. Accepted inputs: "2023/2024", "2023-2024", "2023/24", "2023-24".
func ParseSeason(s string) (string, error) {
	if len(s) == 9 && (s[4] == '-' || s[4] == '/') {
		first, err := strconv.Atoi(s[:4])
		if err != nil {
			return "", fmt.Errorf("invalid season format: %s", s)
		}
		second, err := strconv.Atoi(s[5:])
		if err != nil {
			return "", fmt.Errorf("invalid season format: %s", s)
		}
		if second != first+1 {
			return "", fmt.Errorf("season years are not consecutive: %s", s)
		}
		return fmt.Sprintf("%d/%d", first, second), nil
	}
	// short form of the type 2023/24
	if len(s) == 7 && (s[4] == '-' || s[4] == '/') {
		return ParseSeason(fmt.Sprintf("%s/%s%s", s[:4], s[:2], s[5:]))
	}
	return "", fmt.Errorf("invalid season format: %s", s)
}

// FirstYear returns the first year of a season of the form yyyy/yyyy+1
func FirstYear(season string) (int, error) {
	ss, err := ParseSeason(season)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(ss[:4])
}

// SeasonForYear returns the canonical season whose first year is the given year
func SeasonForYear(year int) string {
	return fmt.Sprintf("%d/%d", year, year+1)
}

// PreviousSeason returns the season immediately before the given one
func PreviousSeason(season string) (string, error) {
	year, err := FirstYear(season)
	if err != nil {
		return "", err
	}
	return SeasonForYear(year - 1), nil
}
