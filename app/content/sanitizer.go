package content

import (
	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips scripts, event handlers and other unsafe markup from
// entry content before it is embedded in turbo:content.
type Sanitizer struct {
	policy *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption", "header")
	return &Sanitizer{policy: policy}
}

func (s *Sanitizer) Run(html string) string {
	return s.policy.Sanitize(html)
}
