package catalog

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseGrades(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"single grade", "3", []string{"3"}},
		{"comma list", "2,4", []string{"2", "4"}},
		{"comma list with whitespace", " 1 , 2 , ", []string{"1", "2"}},
		{"inclusive range", "2-4", []string{"2", "3", "4"}},
		{"malformed range stays one token", "a-b", []string{"a-b"}},
		{"empty defaults to grade 1", "", []string{"1"}},
		{"whitespace only defaults to grade 1", "   ", []string{"1"}},
		{"comma beats range", "1-2,4", []string{"1-2", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseGrades(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ParseGrades(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func testCatalog() *Catalog {
	return NewCatalog([]Entry{
		{Grade: "2", Medium: "Hindi", Subject: "Mathematics", Topic: "Addition", Link: "http://example.com/math-2-hi"},
		{Grade: "3", Medium: "Hindi", Subject: "Mathematics", Topic: "Multiplication", Link: "http://example.com/math-3-hi"},
		{Grade: "3", Medium: "English", Subject: "Science", Topic: "Plants", Link: "http://example.com/sci-3-en"},
		{Grade: "5", Medium: "Marathi", Subject: "Mathematics", Topic: "Fractions", Link: "http://example.com/math-5-mr"},
	})
}

func TestFindByCriteria_GradeSet(t *testing.T) {
	matches := testCatalog().FindByCriteria("2,3", "", "", "")
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches for grades 2,3, got %d", len(matches))
	}
	for _, m := range matches {
		if m.Grade != "2" && m.Grade != "3" {
			t.Errorf("match has grade %s outside the requested set", m.Grade)
		}
	}
}

func TestFindByCriteria_RangeExpansion(t *testing.T) {
	matches := testCatalog().FindByCriteria("2-5", "", "Math", "")
	if len(matches) != 3 {
		t.Fatalf("expected 3 math matches for 2-5, got %d", len(matches))
	}
}

func TestFindByCriteria_MediumSubstringBothDirections(t *testing.T) {
	c := testCatalog()

	// Query shorter than the catalog value.
	if got := len(c.FindByCriteria("3", "hind", "", "")); got != 1 {
		t.Errorf("query-in-value match: expected 1, got %d", got)
	}

	// Catalog value shorter than the query.
	if got := len(c.FindByCriteria("3", "Hindi medium", "", "")); got != 1 {
		t.Errorf("value-in-query match: expected 1, got %d", got)
	}

	if got := len(c.FindByCriteria("3", "Tamil", "", "")); got != 0 {
		t.Errorf("non-matching medium: expected 0, got %d", got)
	}
}

func TestFindByCriteria_TopicIsIgnored(t *testing.T) {
	c := testCatalog()
	with := c.FindByCriteria("3", "Hindi", "", "Multiplication")
	without := c.FindByCriteria("3", "Hindi", "", "A Topic Nothing Matches")
	if len(with) != len(without) {
		t.Errorf("topic must not affect filtering: %d vs %d", len(with), len(without))
	}
}

func TestLoad_MissingFileDegradesToEmpty(t *testing.T) {
	c := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if c.Len() != 0 {
		t.Errorf("expected empty catalog, got %d entries", c.Len())
	}
	if got := c.FindByCriteria("1,2,3", "Hindi", "Math", ""); len(got) != 0 {
		t.Errorf("empty catalog must match nothing, got %d", len(got))
	}
}

func TestLoad_CorruptFileDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte("{not valid json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if c := Load(path); c.Len() != 0 {
		t.Errorf("expected empty catalog for corrupt file, got %d entries", c.Len())
	}
}

func TestLoad_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	content := `{"resources": [
		{"grade": "1", "medium": "Hindi", "subject": "Mathematics", "topic": "Counting", "link": "http://example.com/1", "type": "image", "unique_id": "bb-1"}
	]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c := Load(path)
	if c.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", c.Len())
	}
	if c.Entries()[0].UniqueID != "bb-1" {
		t.Errorf("unexpected entry: %+v", c.Entries()[0])
	}
}
