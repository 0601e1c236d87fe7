// Package reconcile maps the extraction service's loosely structured
// output into the strictly typed resume record. Labels are matched
// against an ordered keyword-rule table; list sections are rebuilt
// element by element with missing sub-fields defaulting to empty strings,
// since the extraction pass cannot guarantee completeness.
package reconcile

import (
	"github.com/hyunjinee/resume-extract/internal/errs"
	"github.com/hyunjinee/resume-extract/internal/langextract"
	"github.com/hyunjinee/resume-extract/internal/schema"
)

// Reconcile builds one validated ResumeInfo from a service result. The
// original normalized text is retained verbatim; when the service omits a
// confidence score, defaultConfidence is used. An out-of-range score
// fails here, at construction, and is never clamped.
func Reconcile(res langextract.Result, originalText string, defaultConfidence float64) (*schema.ResumeInfo, error) {
	info := &schema.ResumeInfo{
		RawText: originalText,
	}

	for _, frag := range res.Fragments {
		for i := range scalarRules {
			if !matchRule(scalarRules[i], frag.Label) {
				continue
			}
			if !scalarRules[i].isSet(info) {
				scalarRules[i].assign(info, frag.Text)
			}
			break
		}
	}

	if len(info.Languages) == 0 && len(res.Languages) > 0 {
		info.Languages = append(info.Languages, res.Languages...)
	}

	info.Experience = buildExperience(res.Experience)
	info.Education = buildEducation(res.Education)
	info.Projects = buildProjects(res.Projects)
	info.Certifications = buildCertifications(res.Certifications)

	score := defaultConfidence
	if res.Confidence != nil {
		score = *res.Confidence
	}
	info.ConfidenceScore = &score

	if err := info.Validate(); err != nil {
		return nil, &errs.ExtractionError{Reason: "invalid extraction result", Cause: err}
	}
	return info, nil
}

func buildExperience(entries []map[string]string) []schema.ExperienceInfo {
	var out []schema.ExperienceInfo
	for _, e := range entries {
		out = append(out, schema.ExperienceInfo{
			Company:      e["company"],
			Position:     e["position"],
			Duration:     e["duration"],
			Description:  e["description"],
			Technologies: splitList(e["technologies"]),
		})
	}
	return out
}

func buildEducation(entries []map[string]string) []schema.EducationInfo {
	var out []schema.EducationInfo
	for _, e := range entries {
		out = append(out, schema.EducationInfo{
			Institution: e["institution"],
			Degree:      e["degree"],
			Major:       e["major"],
			Duration:    e["duration"],
			GPA:         e["gpa"],
			Description: e["description"],
		})
	}
	return out
}

func buildProjects(entries []map[string]string) []schema.ProjectInfo {
	var out []schema.ProjectInfo
	for _, e := range entries {
		out = append(out, schema.ProjectInfo{
			Name:         e["name"],
			Description:  e["description"],
			Technologies: splitList(e["technologies"]),
			Duration:     e["duration"],
			URL:          e["url"],
			Role:         e["role"],
		})
	}
	return out
}

func buildCertifications(entries []map[string]string) []schema.CertificationInfo {
	var out []schema.CertificationInfo
	for _, e := range entries {
		out = append(out, schema.CertificationInfo{
			Name:           e["name"],
			Issuer:         e["issuer"],
			Date:           e["date"],
			ExpirationDate: e["expiration_date"],
			CredentialID:   e["credential_id"],
			URL:            e["url"],
		})
	}
	return out
}
