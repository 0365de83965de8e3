// Package identity derives document identities, display labels and public
// deep-link addresses from vault-relative paths.
package identity

import (
	"net/url"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultSuffix is the canonical document suffix.
const DefaultSuffix = ".md"

const indexSegment = "index"

// ID returns the identity of the document at rel: forward slashes, case-folded.
// Reference tokens go through the same folding, which is what makes
// resolution well defined.
func ID(rel string) string {
	return strings.ToLower(filepath.ToSlash(rel))
}

// Label strips suffix from id and capitalises the result for display.
func Label(id, suffix string) string {
	return capitalize(strings.TrimSuffix(id, suffix))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// Addresser maps vault-relative paths into the public address space rooted at BaseURL.
type Addresser struct {
	BaseURL string
	Suffix  string
}

// NewAddresser returns an Addresser for baseURL, defaulting the suffix.
func NewAddresser(baseURL, suffix string) Addresser {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return Addresser{BaseURL: baseURL, Suffix: suffix}
}

// Address returns the deep-link address of the document at rel. An index
// document collapses to its parent's address.
func (a Addresser) Address(rel string) string {
	p := filepath.ToSlash(rel)
	if strings.HasSuffix(p, a.Suffix) {
		p = strings.TrimSuffix(p, a.Suffix) + "/"
	}
	if p == indexSegment+"/" {
		p = ""
	} else if strings.HasSuffix(p, "/"+indexSegment+"/") {
		p = strings.TrimSuffix(p, indexSegment+"/")
	}
	return a.base() + escapePath(p)
}

func (a Addresser) base() string {
	if a.BaseURL == "" || strings.HasSuffix(a.BaseURL, "/") {
		return a.BaseURL
	}
	return a.BaseURL + "/"
}

func escapePath(p string) string {
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}
