package retrieval

import "strings"

// InferRiskLevel derives a coarse risk level from the cited statutes.  The
// rules are ordered: no citations means the position is unknown, industrial
// disputes coverage raises employment stakes to medium, penal statutes are
// always high, general-domain chatter with citations is low.
func InferRiskLevel(domain Domain, citations []Citation) RiskLevel {
	if len(citations) == 0 {
		return RiskUnknown
	}
	for _, c := range citations {
		if strings.Contains(strings.ToLower(c.Statute), "industrial disputes act") {
			return RiskMedium
		}
	}
	for _, c := range citations {
		s := strings.ToLower(c.Statute)
		if strings.Contains(s, "penal") || strings.Contains(s, "ipc") || strings.Contains(s, "crpc") {
			return RiskHigh
		}
	}
	if domain == DomainGeneral {
		return RiskLow
	}
	return RiskMedium
}
