package healing

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Scoring weights. They sum to exactly 1.0; tests assert on the values and
// on the "missing signal scores a neutral 0.5" policy, so they must not be
// tuned without updating callers that depend on the resulting ranking.
const (
	weightTagName    = 0.15
	weightID         = 0.20
	weightClass      = 0.15
	weightText       = 0.15
	weightPosition   = 0.10
	weightSize       = 0.10
	weightAttributes = 0.15
)

// positionFalloffPx is the euclidean distance at which the position
// sub-score reaches zero.
const positionFalloffPx = 200.0

// ScoreElement computes a similarity score in [0,1] between a live element
// and a reference snapshot. Without a snapshot it returns a base score
// derived only from the element's own state, so callers can still rank
// plausible elements when nothing was cached. Deterministic and pure.
func ScoreElement(el Element, snap *Snapshot) float64 {
	if snap == nil {
		return scoreWithoutSnapshot(el)
	}

	score := scoreTagName(el, snap)*weightTagName +
		scoreID(el, snap)*weightID +
		scoreClasses(el, snap)*weightClass +
		scoreText(el, snap)*weightText +
		scorePosition(el, snap)*weightPosition +
		scoreSize(el, snap)*weightSize +
		scoreTestAttributes(el, snap)*weightAttributes

	return clamp01(score)
}

// scoreWithoutSnapshot ranks an element on its own merits: enabled, visible
// and carrying an id are each weak evidence that this is the element a
// broken locator was pointing at.
func scoreWithoutSnapshot(el Element) float64 {
	score := 0.5
	if el.Enabled() {
		score += 0.2
	}
	if el.Visible() {
		score += 0.2
	}
	if el.Attribute("id") != "" {
		score += 0.1
	}
	return math.Min(1.0, score)
}

func scoreTagName(el Element, snap *Snapshot) float64 {
	if strings.EqualFold(el.TagName(), snap.TagName) {
		return 1.0
	}
	return 0.0
}

// scoreID treats a missing id on either side as neutral: absence is not
// evidence of mismatch.
func scoreID(el Element, snap *Snapshot) float64 {
	liveID := el.Attribute("id")
	if liveID == "" || snap.ID == "" {
		return 0.5
	}
	if liveID == snap.ID {
		return 1.0
	}
	return normalizedSimilarity(liveID, snap.ID)
}

func scoreClasses(el Element, snap *Snapshot) float64 {
	liveClasses := splitClasses(el.Attribute("class"))
	if len(liveClasses) == 0 || len(snap.ClassNames) == 0 {
		return 0.5
	}

	snapSet := make(map[string]struct{}, len(snap.ClassNames))
	for _, c := range snap.ClassNames {
		snapSet[c] = struct{}{}
	}

	matches := 0
	for _, c := range liveClasses {
		if _, ok := snapSet[c]; ok {
			matches++
		}
	}

	total := len(liveClasses)
	if len(snap.ClassNames) > total {
		total = len(snap.ClassNames)
	}
	return float64(matches) / float64(total)
}

func scoreText(el Element, snap *Snapshot) float64 {
	liveText := strings.ToLower(strings.TrimSpace(el.Text()))
	snapText := strings.ToLower(strings.TrimSpace(snap.Text))
	if liveText == "" || snapText == "" {
		return 0.5
	}
	if liveText == snapText {
		return 1.0
	}
	return normalizedSimilarity(liveText, snapText)
}

func scorePosition(el Element, snap *Snapshot) float64 {
	rect, ok := el.Rect()
	if !ok || snap.Geometry.IsZero() {
		return 0.5
	}
	dx := rect.X - snap.Geometry.X
	dy := rect.Y - snap.Geometry.Y
	distance := math.Sqrt(dx*dx + dy*dy)
	return math.Max(0, 1-distance/positionFalloffPx)
}

func scoreSize(el Element, snap *Snapshot) float64 {
	rect, ok := el.Rect()
	if !ok || snap.Geometry.Width == 0 || snap.Geometry.Height == 0 {
		return 0.5
	}
	if rect.Width == 0 || rect.Height == 0 {
		return 0.5
	}
	widthRatio := math.Min(rect.Width, snap.Geometry.Width) / math.Max(rect.Width, snap.Geometry.Width)
	heightRatio := math.Min(rect.Height, snap.Geometry.Height) / math.Max(rect.Height, snap.Geometry.Height)
	return (widthRatio + heightRatio) / 2
}

// scoreTestAttributes returns the fraction of the snapshot's captured
// test-identification attributes whose value still matches exactly.
func scoreTestAttributes(el Element, snap *Snapshot) float64 {
	if len(snap.CustomAttributes) == 0 {
		return 0.5
	}
	matches := 0
	for attr, want := range snap.CustomAttributes {
		if el.Attribute(attr) == want {
			matches++
		}
	}
	return float64(matches) / float64(len(snap.CustomAttributes))
}

// normalizedSimilarity is 1 - levenshtein(a, b) / max(len(a), len(b)), with
// lengths measured in runes to match the rune-based distance. Two empty
// strings are identical and score 1.0.
func normalizedSimilarity(a, b string) float64 {
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(a, b))/float64(maxLen)
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = minInt(curr[j-1]+1, minInt(prev[j]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clamp01(v float64) float64 {
	return math.Min(1.0, math.Max(0.0, v))
}
