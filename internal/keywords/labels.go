package keywords

import "strconv"

// LinkLabel formats a link count as "1 link" or "N links".
func LinkLabel(n int) string {
	if n == 1 {
		return "1 link"
	}
	return strconv.Itoa(n) + " links"
}

// ClickLabel formats a click count. The noun is always plural.
func ClickLabel(n int64) string {
	return strconv.FormatInt(n, 10) + " clicks"
}
