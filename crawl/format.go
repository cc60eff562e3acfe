package crawl

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// ComputeHash returns the xxhash64 of content as 16 lowercase hex digits.
// Documents carry it as metadata only; the crawler never deduplicates on it.
func ComputeHash(content string) string {
	h := strconv.FormatUint(xxhash.Sum64String(content), 16)
	for len(h) < 16 {
		h = "0" + h
	}
	return h
}

var byteUnits = []string{"KB", "MB", "GB"}

// FormatBytes renders a byte count for the crawl summary log, e.g. "1.5 KB".
func FormatBytes(n int) string {
	if n < 1024 {
		return strconv.Itoa(n) + " B"
	}
	v := float64(n) / 1024
	unit := 0
	for v >= 1024 && unit < len(byteUnits)-1 {
		v /= 1024
		unit++
	}
	return strconv.FormatFloat(v, 'f', 1, 64) + " " + byteUnits[unit]
}
