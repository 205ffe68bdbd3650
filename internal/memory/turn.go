// Package memory holds per-session conversation state: a bounded ring of
// turn metadata used to keep follow-up questions anchored to the legal
// context established earlier in the session.  Only derived metadata is
// stored, never the user's query text or the generated answer.
package memory

// Turn is the metadata retained for one answered query.
type Turn struct {
	VerdictType     string   `json:"verdict_type,omitempty"`
	LegalDomain     string   `json:"legal_domain,omitempty"`
	StatuteNames    []string `json:"statute_names,omitempty"`
	SectionNumbers  []string `json:"section_numbers,omitempty"`
	PrimaryDoctrine string   `json:"primary_doctrine,omitempty"`
}

// isEmpty reports whether the turn carries no metadata at all.  Empty turns
// are dropped rather than stored.
func (t Turn) isEmpty() bool {
	return t.VerdictType == "" && t.LegalDomain == "" &&
		len(t.StatuteNames) == 0 && len(t.SectionNumbers) == 0 &&
		t.PrimaryDoctrine == ""
}
