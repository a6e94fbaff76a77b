package dossier

import (
	"fmt"
	"regexp"
)

var citationPattern = regexp.MustCompile(`\[[^\]]+\]`)

// ValidateCitations enforces that every fact and narrative line in the
// dossier is traceable to a source: facts and derived laws must carry a
// non-empty Source, and every narrative line must contain a bracketed
// citation token.
func ValidateCitations(d TheoryDossier) error {
	for _, fact := range d.Facts {
		if fact.Source == "" {
			return fmt.Errorf("dossier: facts must include citation sources")
		}
	}
	for _, law := range d.DerivedLaws {
		if law.Source == "" {
			return fmt.Errorf("dossier: derived_laws must include citation sources")
		}
	}
	for _, line := range d.Narrative {
		if !citationPattern.MatchString(line) {
			return fmt.Errorf("dossier: narrative lines must include citations")
		}
	}
	return nil
}
