package transcript

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Event is one caption event in YouTube's json3 timed-text format. Offsets are
// in milliseconds; the visible text is split across segments.
type Event struct {
	StartMs    int64 `json:"tStartMs"`
	DurationMs int64 `json:"dDurationMs"`
	Segments   []Seg `json:"segs"`
}

// Seg is a single text fragment within an Event.
type Seg struct {
	UTF8 string `json:"utf8"`
}

// ParseJSON3 decodes a json3 timed-text payload into its event list.
func ParseJSON3(data []byte) ([]Event, error) {
	var doc struct {
		Events []Event `json:"events"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse json3 payload: %w", err)
	}
	return doc.Events, nil
}

// NormalizeEvents renders json3 events as "[mm:ss-mm:ss] text" lines joined by
// newlines. Events whose concatenated text trims to nothing are discarded;
// event order is preserved.
func NormalizeEvents(events []Event) string {
	var lines []string
	for _, event := range events {
		var b strings.Builder
		for _, seg := range event.Segments {
			b.WriteString(seg.UTF8)
		}
		text := strings.TrimSpace(b.String())
		if text == "" {
			continue
		}
		start := float64(event.StartMs) / 1000
		end := float64(event.StartMs+event.DurationMs) / 1000
		lines = append(lines, formatLine(start, end, text))
	}
	return strings.Join(lines, "\n")
}

// Segment is a caption fragment as returned natively by the first-party
// captions API, with offsets already in seconds.
type Segment struct {
	Start    float64
	Duration float64
	Text     string
}

// NormalizeSegments renders caption-API segments with the exact same line shape
// as NormalizeEvents, so both acquisition strategies emit identical output.
func NormalizeSegments(segments []Segment) string {
	var lines []string
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		lines = append(lines, formatLine(seg.Start, seg.Start+seg.Duration, text))
	}
	return strings.Join(lines, "\n")
}

func formatLine(start, end float64, text string) string {
	return fmt.Sprintf("[%s-%s] %s", FormatTimestamp(start), FormatTimestamp(end), text)
}
