package clause

import "strings"

// overrideIndicators signal a clause attempting to override an external
// obligation.
var overrideIndicators = []string{
	"notwithstanding",
	"shall not be relieved",
	"regardless of",
	"even if required",
	"even when required",
	"irrespective of",
	"continue to be bound",
	"despite any requirement",
	"despite any order",
}

// authorityIndicators reference the legal authority being overridden.
var authorityIndicators = []string{
	"law",
	"court",
	"court order",
	"judicial",
	"regulatory",
	"administrative agency",
	"government authority",
	"statutory",
}

// validExceptions are carve-outs that save an otherwise overriding clause.
var validExceptions = []string{
	"except as required by law",
	"subject to applicable law",
	"to the extent required by law",
	"provided that disclosure is required by law",
	"as required by law",
}

// reasonMandatoryDisclosure is surfaced verbatim when the guard rejects.
const reasonMandatoryDisclosure = "A confidentiality clause cannot override or negate a legal or court-mandated disclosure. Such clauses are void under Indian law as they violate public policy."

// ViolatesMandatoryDisclosure rejects clauses that purport to override a
// legal or court-mandated disclosure.  The guard fires only when an override
// phrase and an authority reference co-occur without a recognized carve-out.
func ViolatesMandatoryDisclosure(clauseText string) bool {
	t := strings.ToLower(clauseText)

	override := false
	for _, o := range overrideIndicators {
		if strings.Contains(t, o) {
			override = true
			break
		}
	}
	if !override {
		return false
	}

	authority := false
	for _, a := range authorityIndicators {
		if strings.Contains(t, a) {
			authority = true
			break
		}
	}
	if !authority {
		return false
	}

	for _, v := range validExceptions {
		if strings.Contains(t, v) {
			return false
		}
	}
	return true
}
