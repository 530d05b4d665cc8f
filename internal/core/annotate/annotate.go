// Package annotate turns a paragraph plus the annotator's choices into a storable annotation
package annotate

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

const (
	// DisplaySep joins paragraph lines for what the annotator reads
	DisplaySep = "\n"

	// PersistSep joins paragraph lines for what is stored and hashed
	// differs from DisplaySep on purpose, both forms are part of the stored contract
	PersistSep = "/"

	// TargetSep joins the chosen labels
	TargetSep = ","
)

// Paragraph is the ordered lines of one corpus item
type Paragraph []string

// LabelSet is the deduplicated, sorted label vocabulary shared by the session
type LabelSet []string

// Has reports whether label is part of the set
func (ls LabelSet) Has(label string) bool {
	for _, l := range ls {
		if l == label {
			return true
		}
	}
	return false
}

// Annotation is one labeled paragraph as the store keeps it
type Annotation struct {
	Fingerprint string `json:"fingerprint" db:"fingerprint"`
	Content     string `json:"content"     db:"content"`
	Target      string `json:"target"      db:"target"`
}

// Flatten joins lines the way they are shown on screen
func Flatten(p Paragraph) string { return strings.Join(p, DisplaySep) }

// Persisted joins lines the way they are stored and fingerprinted
func Persisted(p Paragraph) string { return strings.Join(p, PersistSep) }

// Fingerprint returns the lowercase hex md5 of s
func Fingerprint(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Selection keeps the chosen labels that belong to labels, in label set order
// unknown labels and duplicates are dropped
func Selection(selected []string, labels LabelSet) []string {
	if len(selected) == 0 {
		return nil
	}
	chosen := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		chosen[s] = struct{}{}
	}
	out := make([]string, 0, len(chosen))
	for _, l := range labels {
		if _, ok := chosen[l]; ok {
			out = append(out, l)
		}
	}
	return out
}

// Target comma-joins the selection, empty selection yields ""
func Target(selected []string, labels LabelSet) string {
	return strings.Join(Selection(selected, labels), TargetSep)
}

// New builds the annotation for p with the given selection
func New(p Paragraph, selected []string, labels LabelSet) Annotation {
	content := Persisted(p)
	return Annotation{
		Fingerprint: Fingerprint(content),
		Content:     content,
		Target:      Target(selected, labels),
	}
}
