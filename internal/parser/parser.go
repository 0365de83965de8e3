// Package parser extracts wiki-link references from document text.
package parser

import (
	"iter"
	"regexp"
	"strings"

	"github.com/starford/vaultgraph/internal/identity"
	"github.com/starford/vaultgraph/internal/models"
)

var wikilinkRe = regexp.MustCompile(`\[\[(.*?)\]\]`)

const (
	aliasDelim   = "|"
	sectionDelim = "#"
)

// Extractor normalises wiki-link targets against a canonical document suffix.
type Extractor struct {
	suffix string
}

// NewExtractor returns an Extractor for suffix, falling back to identity.DefaultSuffix.
func NewExtractor(suffix string) Extractor {
	if suffix == "" {
		suffix = identity.DefaultSuffix
	}
	return Extractor{suffix: suffix}
}

// Targets yields the normalised target of every [[...]] occurrence in text,
// in order of appearance. Empty brackets yield the bare suffix.
func (e Extractor) Targets(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for ref := range e.References(text) {
			if !yield(ref.Target) {
				return
			}
		}
	}
}

// References yields every [[target|alias]] / [[target#section]] occurrence in text.
func (e Extractor) References(text string) iter.Seq[models.Reference] {
	return func(yield func(models.Reference) bool) {
		for _, m := range wikilinkRe.FindAllStringSubmatchIndex(text, -1) {
			if !yield(e.parse(text[m[2]:m[3]])) {
				return
			}
		}
	}
}

// parse splits inner link text. Only the part left of the first "|" and
// then left of the first "#" names the target.
func (e Extractor) parse(inner string) models.Reference {
	ref := models.Reference{Raw: inner}
	target := inner
	if before, after, ok := strings.Cut(target, aliasDelim); ok {
		target, ref.Alias = before, strings.TrimSpace(after)
	}
	if before, after, ok := strings.Cut(target, sectionDelim); ok {
		target, ref.Section = before, strings.TrimSpace(after)
	}
	ref.Target = e.Normalize(target)
	return ref
}

// Normalize trims and case-folds a raw target and completes the suffix.
func (e Extractor) Normalize(target string) string {
	t := strings.ToLower(strings.TrimSpace(target))
	if !strings.HasSuffix(t, e.suffix) {
		t += e.suffix
	}
	return t
}

var defaultExtractor = NewExtractor(identity.DefaultSuffix)

// Targets yields normalised targets using the default suffix.
func Targets(text string) iter.Seq[string] {
	return defaultExtractor.Targets(text)
}

// References yields references using the default suffix.
func References(text string) iter.Seq[models.Reference] {
	return defaultExtractor.References(text)
}
