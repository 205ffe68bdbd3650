// Package corpus holds the read-only statutory document corpus and its
// embedding vectors.  Both are loaded once at startup and treated as aligned
// snapshots: index position is the join key between a document's metadata and
// its vector, so the two arrays are never reordered independently.
package corpus

// DocumentType distinguishes the three classes of source material.
type DocumentType string

const (
	TypeConstitution DocumentType = "constitution"
	TypeJudgment     DocumentType = "judgment"
	TypeStatute      DocumentType = "statute"
)

// Document is an immutable text unit: a constitution article, a judgment
// excerpt, or a statute section.  Statute is empty for non-statute types.
type Document struct {
	Type       DocumentType `json:"type"`
	Identifier string       `json:"identifier"`
	Statute    string       `json:"statute,omitempty"`
	Source     string       `json:"source"`
	Text       string       `json:"text"`
}

// SourceKey returns the canonical key used when a document is referenced from
// an evidence map: the explicit Source if present, else "<statute> <identifier>".
func (d Document) SourceKey() string {
	if d.Source != "" {
		return d.Source
	}
	key := d.Statute
	if d.Identifier != "" {
		if key != "" {
			key += " "
		}
		key += d.Identifier
	}
	return key
}
