package fieldmeta

import (
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-svgform/pkg/schema"
)

func overlayStore(t *testing.T) *Store {
	t.Helper()

	store, err := LoadFS(fstest.MapFS{
		"shipping.yaml": {Data: []byte(`
templates:
  shipping-label:
    fields:
      Company_Name:
        label: Company
        placeholder: Registered company name
        helpText: Appears in the upper-left corner.
      Ghost_Field:
        label: Never Applied
`)},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return store
}

func baseSchema() schema.Schema {
	return schema.Schema{
		{
			ID:           "Company_Name",
			Name:         "Company Name",
			Kind:         schema.FieldKindText,
			SVGElementID: "Company_Name.text",
			DefaultValue: schema.String("Acme"),
			CurrentValue: schema.String("Acme"),
		},
		{
			ID:           "Country",
			Name:         "Country",
			Kind:         schema.FieldKindSelect,
			SVGElementID: "Country.select_USA",
		},
	}
}

func TestDecorateAppliesOverlays(t *testing.T) {
	t.Parallel()

	in := baseSchema()
	got := NewDecorator(overlayStore(t)).Decorate("shipping-label", in)

	company, _ := got.ByID("Company_Name")
	if company.Name != "Company" {
		t.Fatalf("label override not applied: %q", company.Name)
	}
	if company.Meta[MetaPlaceholder] != "Registered company name" {
		t.Fatalf("placeholder missing: %v", company.Meta)
	}
	if company.Meta[MetaHelp] != "Appears in the upper-left corner." {
		t.Fatalf("help missing: %v", company.Meta)
	}
	if company.Kind != schema.FieldKindText || company.SVGElementID != "Company_Name.text" {
		t.Fatalf("grammar-derived identity must not change: %+v", company)
	}

	// Untouched field stays equal to its input descriptor.
	country, _ := got.ByID("Country")
	if diff := cmp.Diff(in[1], *country); diff != "" {
		t.Fatalf("country changed (-want +got):\n%s", diff)
	}
	if got.Has("Ghost_Field") {
		t.Fatalf("overlay-only ids must not create fields")
	}
}

func TestDecorateLeavesInputAlone(t *testing.T) {
	t.Parallel()

	in := baseSchema()
	want := in.Clone()
	_ = NewDecorator(overlayStore(t)).Decorate("shipping-label", in)

	if diff := cmp.Diff(want, in); diff != "" {
		t.Fatalf("input schema mutated (-want +got):\n%s", diff)
	}
}

func TestDecorateUnknownTemplateIsNoOp(t *testing.T) {
	t.Parallel()

	in := baseSchema()
	got := NewDecorator(overlayStore(t)).Decorate("unknown", in)
	if diff := cmp.Diff(in, got); diff != "" {
		t.Fatalf("unexpected changes (-want +got):\n%s", diff)
	}
}

func TestDecorateNilStoreIsNoOp(t *testing.T) {
	t.Parallel()

	in := baseSchema()
	if got := NewDecorator(nil).Decorate("shipping-label", in); len(got) != len(in) {
		t.Fatalf("nil store should pass schema through")
	}

	var d *Decorator
	if got := d.Decorate("shipping-label", in); len(got) != len(in) {
		t.Fatalf("nil decorator should pass schema through")
	}
}
