package retrieval

import (
	"strings"

	"github.com/swarakshak/vidhaan/internal/domain/corpus"
)

// allowedStatutes whitelists, per domain, the statutes whose sections may be
// cited.  Domains with no entry (general, criminal_confusion,
// foreign_jurisdiction) yield no candidates: those paths are refused or
// reported as unsourced before ranking ever runs.
var allowedStatutes = map[Domain][]string{
	DomainContractClause:     {"indian contract act"},
	DomainContractLaw:        {"indian contract act"},
	DomainEmploymentContract: {"indian contract act", "industrial disputes act"},
	DomainLabourLaw:          {"industrial disputes act"},
}

// CandidateIndices returns the corpus indices of every document whose statute
// field contains one of the domain's whitelisted statute names.  An empty
// result is a legitimate outcome, not an error.
func CandidateIndices(c *corpus.Corpus, domain Domain) []int {
	allowed := allowedStatutes[domain]
	if len(allowed) == 0 {
		return nil
	}
	var out []int
	for i := 0; i < c.Len(); i++ {
		doc, _ := c.Document(i)
		statute := strings.ToLower(doc.Statute)
		for _, a := range allowed {
			if strings.Contains(statute, a) {
				out = append(out, i)
				break
			}
		}
	}
	return out
}
