package main

import "github.com/mattn/go-runewidth"

// truncate truncates a string to maxLen terminal cells, padding with spaces
// if shorter
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	return runewidth.FillRight(runewidth.Truncate(s, maxLen, "…"), maxLen)
}

// clamp limits v to [lo, hi]; hi below lo yields lo
func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
