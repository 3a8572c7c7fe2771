package analysis

import "math"

const (
	labelConsistentTiming = "Unnaturally consistent timing"
	labelNoHesitations    = "No natural hesitations detected"

	weightConsistentTiming = 25
	weightNoHesitations    = 15

	// Gap spread below which speech is considered machine-regular.
	consistentStdDev = 0.05
	// Consistency needs more than this many gaps to count.
	minConsistentGaps = 5
	// Hesitation check only applies to utterances longer than this.
	minHesitationWords = 10

	pauseMin = 0.5
	pauseMax = 2.0
)

// GapStats summarises the silences between consecutive words.
type GapStats struct {
	Count  int
	Mean   float64
	StdDev float64
}

// gaps returns start(i) - end(i-1) for every consecutive pair.
func gaps(words []Word) []float64 {
	if len(words) < 2 {
		return nil
	}
	out := make([]float64, 0, len(words)-1)
	for i := 1; i < len(words); i++ {
		out = append(out, words[i].Start-words[i-1].End)
	}
	return out
}

// gapStats computes mean and population standard deviation. ok is false
// when there are fewer than three gaps.
func gapStats(g []float64) (GapStats, bool) {
	if len(g) < 3 {
		return GapStats{Count: len(g)}, false
	}
	var sum float64
	for _, v := range g {
		sum += v
	}
	mean := sum / float64(len(g))

	var sq float64
	for _, v := range g {
		sq += (v - mean) * (v - mean)
	}
	return GapStats{
		Count:  len(g),
		Mean:   mean,
		StdDev: math.Sqrt(sq / float64(len(g))),
	}, true
}

// AnalyzeTiming scores inter-word timing. Very regular gaps over many
// samples and the absence of any natural pause both point to synthesis.
func AnalyzeTiming(words []Word) Signal {
	sig := newSignal()
	g := gaps(words)

	if stats, ok := gapStats(g); ok {
		if stats.StdDev < consistentStdDev && stats.Count > minConsistentGaps {
			sig.add(weightConsistentTiming, labelConsistentTiming)
		}
	}

	if len(words) > minHesitationWords && !hasPause(g) {
		sig.add(weightNoHesitations, labelNoHesitations)
	}
	return sig
}

func hasPause(g []float64) bool {
	for _, v := range g {
		if v > pauseMin && v < pauseMax {
			return true
		}
	}
	return false
}
