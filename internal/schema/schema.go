// Package schema defines the typed resume record produced by an
// extraction call. Values are built once per call by the reconciler and
// are not mutated afterward.
package schema

import (
	"encoding/json"
	"fmt"
)

// ContactInfo groups the optional contact fields of a resume.
type ContactInfo struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

// ExperienceInfo is one work-history entry.
type ExperienceInfo struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	Duration     string   `json:"duration"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// EducationInfo is one education entry.
type EducationInfo struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Major       string `json:"major,omitempty"`
	Duration    string `json:"duration"`
	GPA         string `json:"gpa,omitempty"`
	Description string `json:"description,omitempty"`
}

// ProjectInfo is one project entry.
type ProjectInfo struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies,omitempty"`
	Duration     string   `json:"duration,omitempty"`
	URL          string   `json:"url,omitempty"`
	Role         string   `json:"role,omitempty"`
}

// CertificationInfo is one certification entry.
type CertificationInfo struct {
	Name           string `json:"name"`
	Issuer         string `json:"issuer"`
	Date           string `json:"date,omitempty"`
	ExpirationDate string `json:"expiration_date,omitempty"`
	CredentialID   string `json:"credential_id,omitempty"`
	URL            string `json:"url,omitempty"`
}

// ResumeInfo is the aggregate extraction result. RawText retains the
// normalized input verbatim for auditability. ConfidenceScore, when
// present, must lie in [0.0, 1.0]; Validate enforces this and the
// reconciler refuses to return a record that fails it.
type ResumeInfo struct {
	Name            string              `json:"name,omitempty"`
	Contact         ContactInfo         `json:"contact"`
	Summary         string              `json:"summary,omitempty"`
	Skills          []string            `json:"skills,omitempty"`
	Experience      []ExperienceInfo    `json:"experience,omitempty"`
	Education       []EducationInfo     `json:"education,omitempty"`
	Projects        []ProjectInfo       `json:"projects,omitempty"`
	Certifications  []CertificationInfo `json:"certifications,omitempty"`
	Languages       []string            `json:"languages,omitempty"`
	RawText         string              `json:"raw_text,omitempty"`
	ConfidenceScore *float64            `json:"confidence_score,omitempty"`
}

// Validate checks the record invariants. An out-of-range confidence is an
// error, never clamped.
func (r *ResumeInfo) Validate() error {
	if r.ConfidenceScore != nil {
		if s := *r.ConfidenceScore; s < 0.0 || s > 1.0 {
			return fmt.Errorf("confidence score must be between 0.0 and 1.0, got %v", s)
		}
	}
	return nil
}

// ToMap converts the record to a plain key-value mapping.
func (r *ResumeInfo) ToMap() (map[string]any, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// ToJSON renders the record as indented JSON.
func (r *ResumeInfo) ToJSON() (string, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
