package memory

import (
	"sort"
	"strings"
)

// domainKeywords maps a stored legal domain to the retrieval hint injected
// into follow-up queries.
var domainKeywords = map[string]string{
	"contract_clause":      "contract",
	"contract_law":         "contract law",
	"employment_contract":  "employment",
	"labour_law":           "labour industrial",
	"criminal_confusion":   "criminal",
	"foreign_jurisdiction": "foreign",
}

// maxEnrichmentSections bounds how many section numbers feed the enrichment.
const maxEnrichmentSections = 2

// Context is the session-derived retrieval context for a follow-up query.
// The locked domain comes from the oldest retained turn: the session stays
// anchored to the topic it opened with until the user clearly moves on.
type Context struct {
	EnrichmentText string
	LockedDomain   string
	TopicSwitched  bool
}

// BuildContext derives retrieval enrichment from the session's turns.  A
// non-general current domain that differs from the locked one is a topic
// switch: the lock is reported but the enrichment is suppressed so stale
// statutes do not bleed into the new topic.
func BuildContext(turns []Turn, currentDomain string) Context {
	if len(turns) == 0 {
		return Context{}
	}
	locked := turns[0]
	ctx := Context{LockedDomain: locked.LegalDomain}

	if locked.LegalDomain != "" && currentDomain != locked.LegalDomain && currentDomain != "general" {
		ctx.TopicSwitched = true
		return ctx
	}

	var parts []string
	if kw := domainKeywords[locked.LegalDomain]; kw != "" {
		parts = append(parts, kw)
	}
	if len(locked.StatuteNames) > 0 {
		parts = append(parts, locked.StatuteNames[0])
	}
	if len(locked.SectionNumbers) > 0 {
		secs := make([]string, len(locked.SectionNumbers))
		copy(secs, locked.SectionNumbers)
		sort.Strings(secs)
		if len(secs) > maxEnrichmentSections {
			secs = secs[:maxEnrichmentSections]
		}
		for _, s := range secs {
			parts = append(parts, "Section "+s)
		}
	}
	if locked.PrimaryDoctrine != "" {
		parts = append(parts, locked.PrimaryDoctrine)
	}
	ctx.EnrichmentText = strings.Join(parts, " ")
	return ctx
}
