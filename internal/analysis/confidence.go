package analysis

import "github.com/swarakshak/vidhaan/internal/retrieval"

// confidenceCeiling caps the reported confidence.  The engine never claims
// certainty about a legal position.
const confidenceCeiling = 0.9

// Factors breaks the confidence score into its components.
type Factors struct {
	StatutorySupport float64 `json:"statutory_support"`
	Relevance        float64 `json:"relevance"`
	Coverage         float64 `json:"coverage"`
	Doctrine         float64 `json:"doctrine"`
}

// ComputeConfidence derives a bounded confidence score from the valid
// citations and the evidence coverage.  Statutory support saturates at four
// valid citations; the doctrine factor fires when a declaratory section is
// cited.  Only strictly positive factors enter the mean, so a missing signal
// does not drag the score to zero.
func ComputeConfidence(citations []retrieval.Citation, coverage float64) (float64, Factors) {
	var valid []retrieval.Citation
	for _, c := range citations {
		if c.ValidityScore > 0 {
			valid = append(valid, c)
		}
	}

	var f Factors
	f.StatutorySupport = float64(len(valid)) / 4
	if f.StatutorySupport > 1 {
		f.StatutorySupport = 1
	}
	if len(valid) > 0 {
		var sum float64
		for _, c := range valid {
			sum += c.RelevanceScore
		}
		f.Relevance = sum / float64(len(valid))
	}
	f.Coverage = coverage
	for _, c := range valid {
		if c.IsDeclaratory {
			f.Doctrine = 1
			break
		}
	}

	var sum float64
	n := 0
	for _, x := range []float64{f.StatutorySupport, f.Relevance, f.Coverage, f.Doctrine} {
		if x > 0 {
			sum += x
			n++
		}
	}
	confidence := 0.0
	if n > 0 {
		confidence = sum / float64(n)
	}
	if confidence > confidenceCeiling {
		confidence = confidenceCeiling
	}

	f.StatutorySupport = roundTo2(f.StatutorySupport)
	f.Relevance = roundTo2(f.Relevance)
	f.Coverage = roundTo2(f.Coverage)
	f.Doctrine = roundTo2(f.Doctrine)
	return roundTo2(confidence), f
}
