package reconcile

import (
	"errors"
	"reflect"
	"testing"

	"github.com/hyunjinee/resume-extract/internal/errs"
	"github.com/hyunjinee/resume-extract/internal/langextract"
)

func score(v float64) *float64 {
	return &v
}

func TestReconcile_KoreanLabels(t *testing.T) {
	res := langextract.Result{
		Fragments: []langextract.Fragment{
			{Label: "이름", Text: "김철수"},
			{Label: "이메일", Text: "chulsoo.kim@example.com"},
			{Label: "전화번호", Text: "010-1234-5678"},
			{Label: "주소", Text: "서울특별시 강남구"},
			{Label: "LinkedIn", Text: "linkedin.com/in/chulsookim"},
			{Label: "GitHub", Text: "github.com/chulsookim"},
		},
	}
	info, err := Reconcile(res, "raw", 0.8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Name != "김철수" {
		t.Fatalf("name = %q", info.Name)
	}
	if info.Contact.Email != "chulsoo.kim@example.com" {
		t.Fatalf("email = %q", info.Contact.Email)
	}
	if info.Contact.Phone != "010-1234-5678" {
		t.Fatalf("phone = %q", info.Contact.Phone)
	}
	if info.Contact.LinkedIn == "" || info.Contact.GitHub == "" {
		t.Fatalf("links not mapped: %+v", info.Contact)
	}
}

func TestReconcile_EnglishLabels(t *testing.T) {
	res := langextract.Result{
		Fragments: []langextract.Fragment{
			{Label: "Name", Text: "Jane Doe"},
			{Label: "Email Address", Text: "jane@example.com"},
			{Label: "Summary", Text: "Backend engineer"},
		},
	}
	info, err := Reconcile(res, "raw", 0.8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Name != "Jane Doe" || info.Contact.Email != "jane@example.com" || info.Summary != "Backend engineer" {
		t.Fatalf("unexpected mapping: %+v", info)
	}
}

func TestReconcile_FirstMatchWins(t *testing.T) {
	res := langextract.Result{
		Fragments: []langextract.Fragment{
			{Label: "이름", Text: "first"},
			{Label: "name", Text: "second"},
		},
	}
	info, err := Reconcile(res, "raw", 0.8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Name != "first" {
		t.Fatalf("expected the first fragment to win, got %q", info.Name)
	}
}

func TestReconcile_SkillsSplit(t *testing.T) {
	res := langextract.Result{
		Fragments: []langextract.Fragment{
			{Label: "기술", Text: "Go, Python , , React,"},
		},
	}
	info, err := Reconcile(res, "raw", 0.8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Go", "Python", "React"}
	if !reflect.DeepEqual(info.Skills, want) {
		t.Fatalf("skills = %v, want %v", info.Skills, want)
	}
}

func TestReconcile_ListSectionsDefaultMissingFields(t *testing.T) {
	res := langextract.Result{
		Experience: []map[string]string{
			{"company": "ABC 회사", "position": "엔지니어"},
		},
		Education: []map[string]string{
			{"institution": "서울대학교"},
		},
		Certifications: []map[string]string{
			{"name": "AWS SAA", "issuer": "Amazon Web Services", "date": "2021.03"},
		},
	}
	info, err := Reconcile(res, "raw", 0.8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(info.Experience) != 1 || info.Experience[0].Company != "ABC 회사" {
		t.Fatalf("experience = %+v", info.Experience)
	}
	if info.Experience[0].Duration != "" {
		t.Fatalf("missing sub-field must default to empty, got %q", info.Experience[0].Duration)
	}
	if len(info.Education) != 1 || info.Education[0].Degree != "" {
		t.Fatalf("education = %+v", info.Education)
	}
	if info.Certifications[0].Issuer != "Amazon Web Services" {
		t.Fatalf("certifications = %+v", info.Certifications)
	}
}

func TestReconcile_RawTextAndDefaultConfidence(t *testing.T) {
	original := "원본 이력서 텍스트"
	info, err := Reconcile(langextract.Result{}, original, 0.8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.RawText != original {
		t.Fatalf("raw text not retained verbatim: %q", info.RawText)
	}
	if info.ConfidenceScore == nil || *info.ConfidenceScore != 0.8 {
		t.Fatalf("expected default confidence, got %v", info.ConfidenceScore)
	}
}

func TestReconcile_ServiceConfidenceWins(t *testing.T) {
	info, err := Reconcile(langextract.Result{Confidence: score(0.95)}, "raw", 0.8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *info.ConfidenceScore != 0.95 {
		t.Fatalf("expected service confidence, got %v", *info.ConfidenceScore)
	}
}

func TestReconcile_OutOfRangeConfidenceFails(t *testing.T) {
	_, err := Reconcile(langextract.Result{Confidence: score(1.5)}, "raw", 0.8)
	var ee *errs.ExtractionError
	if !errors.As(err, &ee) {
		t.Fatalf("expected construction-time failure, got %v", err)
	}
}

func TestReconcile_LanguagesSection(t *testing.T) {
	info, err := Reconcile(langextract.Result{Languages: []string{"한국어", "English"}}, "raw", 0.8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(info.Languages, []string{"한국어", "English"}) {
		t.Fatalf("languages = %v", info.Languages)
	}
}
