// Package statute holds the registry of known Indian statutes and their valid
// section identifiers.  The registry is loaded once at startup from statute
// definition files and is read-only thereafter; it is the authority used to
// reject invented or malformed citations.
package statute

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/swarakshak/vidhaan/pkg/errors"
)

// definition mirrors one statute definition file on disk.  Only the name and
// the section-number keys are consumed; section text is ignored here.
type definition struct {
	Name     string            `json:"name"`
	Sections map[string]string `json:"sections"`
	Source   string            `json:"source"`
}

// Registry maps lower-cased statute name to its set of valid section numbers.
type Registry struct {
	sections map[string]map[string]struct{}
}

// NewRegistry builds a Registry from an in-memory mapping of statute name to
// section-number list.  Names are lower-cased on insertion.
func NewRegistry(entries map[string][]string) *Registry {
	r := &Registry{sections: make(map[string]map[string]struct{}, len(entries))}
	for name, secs := range entries {
		set := make(map[string]struct{}, len(secs))
		for _, s := range secs {
			set[s] = struct{}{}
		}
		r.sections[strings.ToLower(name)] = set
	}
	return r
}

// LoadDir reads every *.json statute definition file in dir.  Files that fail
// to parse are skipped; a missing directory yields an empty registry rather
// than an error, matching startup behaviour on a fresh deployment.
func LoadDir(dir string) (*Registry, error) {
	r := &Registry{sections: make(map[string]map[string]struct{})}

	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCorpusLoadFailed, "globbing statute directory").
			WithDetail("dir=" + dir)
	}
	for _, p := range paths {
		raw, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		var def definition
		if err := json.Unmarshal(raw, &def); err != nil {
			continue
		}
		name := strings.ToLower(def.Name)
		if name == "" {
			continue
		}
		set := make(map[string]struct{}, len(def.Sections))
		for k := range def.Sections {
			set[k] = struct{}{}
		}
		r.sections[name] = set
	}
	return r, nil
}

// Len returns the number of registered statutes.
func (r *Registry) Len() int { return len(r.sections) }

// SectionValid reports whether sectionNo is a known section of the registered
// statute whose name is a substring of the citation's statute field.  Both
// empty inputs fail.
func (r *Registry) SectionValid(statuteName, sectionNo string) bool {
	if statuteName == "" || sectionNo == "" {
		return false
	}
	s := strings.ToLower(statuteName)
	for regName, sections := range r.sections {
		if strings.Contains(s, regName) {
			_, ok := sections[sectionNo]
			return ok
		}
	}
	return false
}

var sectionNoRe = regexp.MustCompile(`section\s+(\d+[a-z]?)`)

// ExtractSectionNo pulls the section number out of an identifier string such
// as "Section 27" or "Section 33A bar on alteration".  Returns "" when no
// section reference is present.
func ExtractSectionNo(identifier string) string {
	if identifier == "" {
		return ""
	}
	m := sectionNoRe.FindStringSubmatch(strings.ToLower(identifier))
	if m == nil {
		return ""
	}
	return m[1]
}

// declaratorySectionsICA is the fixed set of Indian Contract Act sections that
// state a legal principle without independently creating liability.
var declaratorySectionsICA = map[string]struct{}{
	"11": {}, "25": {}, "27": {}, "28": {}, "30": {}, "56": {},
}

// IsDeclaratoryICA reports whether the (statute, section) pair is one of the
// declaratory Indian Contract Act sections.
func IsDeclaratoryICA(statuteName, sectionNo string) bool {
	if sectionNo == "" {
		return false
	}
	if !strings.Contains(strings.ToLower(statuteName), "indian contract act") {
		return false
	}
	_, ok := declaratorySectionsICA[sectionNo]
	return ok
}
