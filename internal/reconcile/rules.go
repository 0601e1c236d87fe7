package reconcile

import (
	"strings"

	"github.com/hyunjinee/resume-extract/internal/schema"
)

// scalarRule maps fragment labels onto one scalar field of the result.
// The table is evaluated in order and a rule only fires while its target
// field is still empty, so the matching policy stays deterministic and
// auditable in one place.
type scalarRule struct {
	// keywords are matched case-insensitively as substrings of the
	// fragment label, in Korean and English.
	keywords []string
	isSet    func(r *schema.ResumeInfo) bool
	assign   func(r *schema.ResumeInfo, text string)
}

var scalarRules = []scalarRule{
	{
		keywords: []string{"이름", "name"},
		isSet:    func(r *schema.ResumeInfo) bool { return r.Name != "" },
		assign:   func(r *schema.ResumeInfo, text string) { r.Name = text },
	},
	{
		keywords: []string{"이메일", "email"},
		isSet:    func(r *schema.ResumeInfo) bool { return r.Contact.Email != "" },
		assign:   func(r *schema.ResumeInfo, text string) { r.Contact.Email = text },
	},
	{
		keywords: []string{"전화", "phone"},
		isSet:    func(r *schema.ResumeInfo) bool { return r.Contact.Phone != "" },
		assign:   func(r *schema.ResumeInfo, text string) { r.Contact.Phone = text },
	},
	{
		keywords: []string{"주소", "address"},
		isSet:    func(r *schema.ResumeInfo) bool { return r.Contact.Address != "" },
		assign:   func(r *schema.ResumeInfo, text string) { r.Contact.Address = text },
	},
	{
		keywords: []string{"linkedin"},
		isSet:    func(r *schema.ResumeInfo) bool { return r.Contact.LinkedIn != "" },
		assign:   func(r *schema.ResumeInfo, text string) { r.Contact.LinkedIn = text },
	},
	{
		keywords: []string{"github"},
		isSet:    func(r *schema.ResumeInfo) bool { return r.Contact.GitHub != "" },
		assign:   func(r *schema.ResumeInfo, text string) { r.Contact.GitHub = text },
	},
	{
		keywords: []string{"웹사이트", "website"},
		isSet:    func(r *schema.ResumeInfo) bool { return r.Contact.Website != "" },
		assign:   func(r *schema.ResumeInfo, text string) { r.Contact.Website = text },
	},
	{
		keywords: []string{"요약", "자기소개", "summary"},
		isSet:    func(r *schema.ResumeInfo) bool { return r.Summary != "" },
		assign:   func(r *schema.ResumeInfo, text string) { r.Summary = text },
	},
	{
		keywords: []string{"기술", "skill"},
		isSet:    func(r *schema.ResumeInfo) bool { return len(r.Skills) > 0 },
		assign:   func(r *schema.ResumeInfo, text string) { r.Skills = splitList(text) },
	},
	{
		keywords: []string{"언어", "language"},
		isSet:    func(r *schema.ResumeInfo) bool { return len(r.Languages) > 0 },
		assign:   func(r *schema.ResumeInfo, text string) { r.Languages = splitList(text) },
	},
}

func matchRule(rule scalarRule, label string) bool {
	label = strings.ToLower(label)
	for _, kw := range rule.keywords {
		if strings.Contains(label, kw) {
			return true
		}
	}
	return false
}

// splitList splits a comma-delimited fragment into trimmed pieces,
// dropping empties.
func splitList(text string) []string {
	var out []string
	for _, piece := range strings.Split(text, ",") {
		if trimmed := strings.TrimSpace(piece); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
