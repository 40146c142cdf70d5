package transcript

import "fmt"

// FormatTimestamp renders a second offset as a zero-padded mm:ss string.
// The format carries no hours field, so offsets of an hour or more wrap the
// minute counter past 59 (e.g. 3600s renders as "60:00"). Downstream prompt
// templates reference this exact shape, so the wraparound is kept as-is.
func FormatTimestamp(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
