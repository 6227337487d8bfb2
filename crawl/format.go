package crawl

import (
	"fmt"
	"unicode/utf8"
)

// TruncateURL shortens a URL for progress lines to at most maxLen
// characters. The tail is kept since it names the document.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	n := utf8.RuneCountInString(url)
	if n <= maxLen {
		return url
	}
	runes := []rune(url)
	if maxLen < 4 {
		return string(runes[:maxLen])
	}
	return "..." + string(runes[n-maxLen+3:])
}

var byteUnits = []string{"KB", "MB", "GB", "TB"}

// FormatBytes formats a size with binary units, e.g. "1.5 MB".
func FormatBytes(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	v := float64(n) / 1024
	unit := 0
	for v >= 1024 && unit < len(byteUnits)-1 {
		v /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", v, byteUnits[unit])
}

// FormatTokens formats an approximate token count, e.g. "~12k tokens".
func FormatTokens(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("~%.1fB tokens", float64(n)/1e9)
	case n >= 1_000_000:
		return fmt.Sprintf("~%.1fM tokens", float64(n)/1e6)
	case n >= 1000:
		return fmt.Sprintf("~%dk tokens", (n+500)/1000)
	default:
		return fmt.Sprintf("~%d tokens", n)
	}
}
