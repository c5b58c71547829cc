package codelist

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formcodec/pkg/component"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// SanitizeOptions returns a copy of options with markup stripped from the
// label, description and help text. A small set of inline formatting elements
// survives. Option values are copied untouched.
func SanitizeOptions(options []component.Option) []component.Option {
	if options == nil {
		return nil
	}
	out := component.CloneOptions(options)
	for idx := range out {
		out[idx].Label = sanitizeText(out[idx].Label)
		out[idx].Description = sanitizeText(out[idx].Description)
		out[idx].HelpText = sanitizeText(out[idx].HelpText)
	}
	return out
}

func sanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(textSanitizer().Sanitize(trimmed))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "u", "br", "span")
		textPolicy = policy
	})
	return textPolicy
}
