package svg

import "regexp"

// linkPattern matches a URL greedily up to the next whitespace.
var linkPattern = regexp.MustCompile(`(?i)(?:ftp|file|https?)://\S+`)

// Fragment is a piece of a text line, either plain text or a link.
type Fragment struct {
	Text string
	Link bool
}

// ParseLinks splits s into plain and link fragments in their original
// order. URLs use the ftp, file, http or https scheme.
func ParseLinks(s string) []Fragment {
	var out []Fragment
	last := 0
	for _, loc := range linkPattern.FindAllStringIndex(s, -1) {
		if loc[0] > last {
			out = append(out, Fragment{Text: s[last:loc[0]]})
		}
		out = append(out, Fragment{Text: s[loc[0]:loc[1]], Link: true})
		last = loc[1]
	}
	if last < len(s) {
		out = append(out, Fragment{Text: s[last:]})
	}
	return out
}

// linkSpecs converts fragments to tspan content.
func linkSpecs(fragments []Fragment) []Spec {
	specs := make([]Spec, 0, len(fragments))
	for _, f := range fragments {
		if !f.Link {
			specs = append(specs, Spec{Text: f.Text})
			continue
		}
		specs = append(specs, Spec{
			Kind:  "a",
			Attrs: Attrs{"xlink:href": f.Text, "target": "_blank"},
			Text:  f.Text,
		})
	}
	return specs
}
