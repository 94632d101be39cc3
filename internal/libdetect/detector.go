// Package libdetect infers third-party front-end libraries from content
// conventions in composed markup. Generated sites reference libraries by
// class names and attribute prefixes without any manifest; detection is a
// substring heuristic, so false positives are accepted as the cost of
// zero-configuration resolution.
package libdetect

import "strings"

// Placement says where in the document a resource tag is injected.
type Placement string

const (
	PlacementHead      Placement = "head"
	PlacementBodyClose Placement = "body-close"
)

// TagKind is the kind of tag a resource is rendered as.
type TagKind string

const (
	TagLink   TagKind = "link"
	TagScript TagKind = "script"
)

// Resource is one injectable tag belonging to a rule.
type Resource struct {
	URL       string
	Placement Placement
	Tag       TagKind
	// Attrs carries extra attributes rendered into the tag, e.g.
	// `rel="preconnect"` or `defer`.
	Attrs string
}

// Rule maps trigger signatures to the resources a library needs. Signatures
// are matched as plain case-sensitive substrings.
type Rule struct {
	Name       string
	Signatures []string
	Resources  []Resource
}

// Detector produces the resource tags a markup document needs. Implemented
// by SignatureDetector; the interface exists so attribute-aware strategies
// can be substituted without touching composition.
type Detector interface {
	Detect(markup string) []Resource
}

// SignatureDetector is the substring-based Detector over a fixed rule
// table.
type SignatureDetector struct {
	rules []Rule
}

// New creates a SignatureDetector over the default rule table.
func New() *SignatureDetector {
	return NewWithRules(DefaultRules())
}

// NewWithRules creates a SignatureDetector over the given rules. Rule order
// is significant: resources are emitted in registration order, and the
// first rule to claim a URL wins.
func NewWithRules(rules []Rule) *SignatureDetector {
	return &SignatureDetector{rules: rules}
}

// Detect tests every rule against the markup and returns the resources of
// all triggered rules, de-duplicated by URL, each rule's resources in its
// fixed internal order. A signature occurring many times still emits its
// resources exactly once.
func (d *SignatureDetector) Detect(markup string) []Resource {
	var out []Resource
	seen := make(map[string]bool)

	for _, rule := range d.rules {
		if !triggered(markup, rule.Signatures) {
			continue
		}
		for _, res := range rule.Resources {
			if seen[res.URL] {
				continue
			}
			seen[res.URL] = true
			out = append(out, res)
		}
	}
	return out
}

func triggered(markup string, signatures []string) bool {
	for _, sig := range signatures {
		if strings.Contains(markup, sig) {
			return true
		}
	}
	return false
}

// HTML renders the resource as its document tag.
func (r Resource) HTML() string {
	attrs := ""
	if r.Attrs != "" {
		attrs = " " + r.Attrs
	}
	switch r.Tag {
	case TagLink:
		if strings.Contains(r.Attrs, "rel=") {
			return `<link href="` + r.URL + `"` + attrs + `>`
		}
		return `<link rel="stylesheet" href="` + r.URL + `"` + attrs + `>`
	default:
		return `<script src="` + r.URL + `"` + attrs + `></script>`
	}
}
