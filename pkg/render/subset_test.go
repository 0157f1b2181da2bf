package render

import (
	"reflect"
	"testing"

	"github.com/goliatone/go-svgform/pkg/schema"
)

func sampleSubsetSchema() schema.Schema {
	return schema.Schema{
		{ID: "Company_Name", Kind: schema.FieldKindText, Editable: true},
		{ID: "Country", Kind: schema.FieldKindSelect, Editable: true},
		{ID: "Reference_Code", Kind: schema.FieldKindGenerated},
		{ID: "Notes", Kind: schema.FieldKindTextArea, Editable: true},
	}
}

func subsetIDs(s schema.Schema) []string {
	out := make([]string, 0, len(s))
	for _, field := range s {
		out = append(out, field.ID)
	}
	return out
}

func TestApplySubset_ByID(t *testing.T) {
	s := sampleSubsetSchema()

	ApplySubset(&s, FieldSubset{
		IDs: []string{"company_name, notes"},
	})

	want := []string{"Company_Name", "Notes"}
	if got := subsetIDs(s); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v after id filtering, got %v", want, got)
	}
}

func TestApplySubset_ByKind(t *testing.T) {
	s := sampleSubsetSchema()

	ApplySubset(&s, FieldSubset{
		Kinds: []string{"select"},
	})

	if len(s) != 1 || s[0].ID != "Country" {
		t.Fatalf("expected only the select field to remain, got %v", subsetIDs(s))
	}
}

func TestApplySubset_EditableOnly(t *testing.T) {
	s := sampleSubsetSchema()

	ApplySubset(&s, FieldSubset{EditableOnly: true})

	want := []string{"Company_Name", "Country", "Notes"}
	if got := subsetIDs(s); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected generated field dropped, got %v", got)
	}
}

func TestApplySubset_EditableGateAppliesFirst(t *testing.T) {
	s := sampleSubsetSchema()

	ApplySubset(&s, FieldSubset{
		IDs:          []string{"reference_code"},
		EditableOnly: true,
	})

	if s != nil {
		t.Fatalf("expected nil schema when the only id match is read-only, got %v", subsetIDs(s))
	}
}

func TestApplySubset_EmptyIsNoOp(t *testing.T) {
	s := sampleSubsetSchema()

	ApplySubset(&s, FieldSubset{})

	if len(s) != 4 {
		t.Fatalf("expected schema untouched by empty subset, got %v", subsetIDs(s))
	}
}

func TestApplySubset_NoMatches(t *testing.T) {
	s := sampleSubsetSchema()

	ApplySubset(&s, FieldSubset{IDs: []string{"missing"}})

	if s != nil {
		t.Fatalf("expected nil schema when nothing matches, got %v", subsetIDs(s))
	}
}
