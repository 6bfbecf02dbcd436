package utils

import (
	"strconv"
)

// StringToInt converts string to int, returns fallback if error or not positive
func StringToInt(s string, fallback int) int {
	i, err := strconv.Atoi(s)
	if err != nil || i <= 0 {
		return fallback
	}
	return i
}
