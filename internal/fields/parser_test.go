package fields

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgfields "github.com/goliatone/go-svgform/pkg/fields"
	"github.com/goliatone/go-svgform/pkg/schema"
	pkgsvg "github.com/goliatone/go-svgform/pkg/svg"
)

func parseFixture(t *testing.T, svgText string, options ...pkgfields.ParserOption) schema.Schema {
	t.Helper()

	doc, err := pkgsvg.DocumentFromString("fixture.svg", svgText)
	if err != nil {
		t.Fatalf("build document: %v", err)
	}
	parsed, err := New(pkgfields.NewParserOptions(options...)).Parse(context.Background(), doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return parsed
}

func TestParseMixedTemplate(t *testing.T) {
	t.Parallel()

	const fixture = `
<svg xmlns="http://www.w3.org/2000/svg">
    <text id="Company_Name.text">Sample Company</text>
    <text id="Country.select_USA">USA</text>
    <text id="Reference_Code.gen.max_8">ABC123</text>
    <text id="Country.select_Canada">Canada</text>
    <text id="City.depends_Country">New York</text>
    <text id="Tracking_ID.gen.max_12.link_https://example.com/track">TRK123456789</text>
</svg>`

	got := parseFixture(t, fixture)

	maxRef := 8
	maxTrack := 12
	want := schema.Schema{
		{
			ID:           "Company_Name",
			Name:         "Company Name",
			Kind:         schema.FieldKindText,
			SVGElementID: "Company_Name.text",
			DefaultValue: schema.String("Sample Company"),
			CurrentValue: schema.String("Sample Company"),
		},
		{
			ID:           "Country",
			Name:         "Country",
			Kind:         schema.FieldKindSelect,
			SVGElementID: "Country.select_USA",
			DefaultValue: schema.String("Country.select_USA"),
			// Both options render visible, so the last visible one wins.
			CurrentValue: schema.String("Country.select_Canada"),
			Options: []schema.SelectOption{
				{Value: "Country.select_USA", Label: "USA", SVGElementID: "Country.select_USA", DisplayText: "USA"},
				{Value: "Country.select_Canada", Label: "Canada", SVGElementID: "Country.select_Canada", DisplayText: "Canada"},
			},
		},
		{
			ID:           "Reference_Code",
			Name:         "Reference Code",
			Kind:         schema.FieldKindGenerated,
			SVGElementID: "Reference_Code.gen.max_8",
			DefaultValue: schema.String("ABC123"),
			CurrentValue: schema.String("ABC123"),
			Max:          &maxRef,
		},
		{
			ID:           "City",
			Name:         "City",
			Kind:         schema.FieldKind("City"),
			SVGElementID: "City.depends_Country",
			DefaultValue: schema.String("New York"),
			CurrentValue: schema.String("New York"),
			DependsOn:    "Country",
		},
		{
			ID:           "Tracking_ID",
			Name:         "Tracking Id",
			Kind:         schema.FieldKindGenerated,
			SVGElementID: "Tracking_ID.gen.max_12.link_https://example.com/track",
			DefaultValue: schema.String("TRK123456789"),
			CurrentValue: schema.String("TRK123456789"),
			Max:          &maxTrack,
			Link:         "https://example.com/track",
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSelectAnchorsAtFirstOption(t *testing.T) {
	t.Parallel()

	const fixture = `
<svg>
    <text id="Shipping.select_Express">Express</text>
    <text id="Notes.textarea">none</text>
    <text id="Shipping.select_Standard">Standard</text>
</svg>`

	got := parseFixture(t, fixture)

	ids := got.IDs()
	if diff := cmp.Diff([]string{"Shipping", "Notes"}, ids); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	shipping, _ := got.ByID("Shipping")
	if len(shipping.Options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(shipping.Options))
	}
	if shipping.SVGElementID != "Shipping.select_Express" {
		t.Fatalf("select bound to %q, want first option element", shipping.SVGElementID)
	}
	if shipping.DefaultValue != schema.String("Shipping.select_Express") {
		t.Fatalf("default = %q, want first option value", shipping.DefaultValue.String())
	}
}

func TestParseHiddenOptionsDoNotBecomeCurrent(t *testing.T) {
	t.Parallel()

	const fixture = `
<svg>
    <text id="Status.select_Pending" opacity="0">Pending</text>
    <text id="Status.select_Done">Done</text>
    <text id="Status.select_Archived" visibility="hidden">Archived</text>
    <text id="Status.select_Deleted" display="none">Deleted</text>
</svg>`

	got := parseFixture(t, fixture)
	status, _ := got.ByID("Status")

	if status.CurrentValue != schema.String("Status.select_Done") {
		t.Fatalf("current = %q, want the only visible option", status.CurrentValue.String())
	}
	if status.DefaultValue != schema.String("Status.select_Pending") {
		t.Fatalf("default = %q, want first option value", status.DefaultValue.String())
	}
}

func TestParseSelectTrackingAndEditable(t *testing.T) {
	t.Parallel()

	const fixture = `
<svg>
    <text id="Carrier.select_DHL.track_carrier">DHL</text>
    <text id="Carrier.select_UPS.editable">UPS</text>
</svg>`

	got := parseFixture(t, fixture)
	carrier, _ := got.ByID("Carrier")

	if carrier.TrackingRole != "carrier" {
		t.Fatalf("tracking role = %q", carrier.TrackingRole)
	}
	// One editable option makes the whole field editable.
	if !carrier.Editable {
		t.Fatalf("expected editable field")
	}
}

func TestParseTrackTokenMustBeLast(t *testing.T) {
	t.Parallel()

	const fixture = `
<svg>
    <text id="Sender.track_sender.text">skipped</text>
    <text id="Receiver.text.track_receiver">kept</text>
</svg>`

	got := parseFixture(t, fixture)

	if got.Has("Sender") {
		t.Fatalf("element with misplaced track_ token should be skipped")
	}
	receiver, ok := got.ByID("Receiver")
	if !ok {
		t.Fatalf("expected Receiver field")
	}
	if receiver.TrackingRole != "receiver" {
		t.Fatalf("tracking role = %q", receiver.TrackingRole)
	}
}

func TestParseTrackingIDForcesGeneratedKind(t *testing.T) {
	t.Parallel()

	const fixture = `
<svg>
    <text id="Waybill.tracking_id.text">WB-1</text>
</svg>`

	got := parseFixture(t, fixture)
	waybill, _ := got.ByID("Waybill")

	if waybill.Kind != schema.FieldKindGenerated {
		t.Fatalf("kind = %q, want gen", waybill.Kind)
	}
	if !waybill.TrackingID {
		t.Fatalf("expected tracking id flag")
	}
}

func TestParseHideDefaults(t *testing.T) {
	t.Parallel()

	const fixture = `
<svg>
    <g id="Stamp.hide_checked"/>
    <g id="Seal.hide_unchecked"/>
    <g id="Badge.hide"/>
    <g id="Note.hidden_extra"/>
</svg>`

	got := parseFixture(t, fixture)

	cases := []struct {
		id   string
		want schema.Value
	}{
		{"Stamp", schema.Bool(true)},
		{"Seal", schema.Bool(false)},
		{"Badge", schema.Bool(false)},
		{"Note", schema.Bool(false)},
	}
	for _, tc := range cases {
		field, ok := got.ByID(tc.id)
		if !ok {
			t.Fatalf("missing field %q", tc.id)
		}
		if field.Kind != schema.FieldKindHide {
			t.Fatalf("%s kind = %q, want hide", tc.id, field.Kind)
		}
		if field.DefaultValue != tc.want {
			t.Fatalf("%s default = %v, want %v", tc.id, field.DefaultValue, tc.want)
		}
	}
}

func TestParseCheckboxDefaultsFalse(t *testing.T) {
	t.Parallel()

	got := parseFixture(t, `<svg><text id="Agree.checkbox">ignored</text></svg>`)
	agree, _ := got.ByID("Agree")

	if agree.DefaultValue != schema.Bool(false) {
		t.Fatalf("checkbox default = %v, want false", agree.DefaultValue)
	}
}

func TestParseInvalidMaxIsIgnored(t *testing.T) {
	t.Parallel()

	got := parseFixture(t, `<svg><text id="Code.gen.max_lots">X</text></svg>`)
	code, _ := got.ByID("Code")

	if code.Max != nil {
		t.Fatalf("expected nil max, got %d", *code.Max)
	}
	if code.Kind != schema.FieldKindGenerated {
		t.Fatalf("kind = %q", code.Kind)
	}
}

func TestParseLastTypeTokenWins(t *testing.T) {
	t.Parallel()

	got := parseFixture(t, `<svg><text id="Note.text.textarea">body</text></svg>`)
	note, _ := got.ByID("Note")

	if note.Kind != schema.FieldKindTextArea {
		t.Fatalf("kind = %q, want textarea", note.Kind)
	}
}

func TestParseDuplicateBaseIDLastWriteWins(t *testing.T) {
	t.Parallel()

	const fixture = `
<svg>
    <text id="Label.text">first</text>
    <text id="Other.text">other</text>
    <text id="Label.textarea">second</text>
</svg>`

	got := parseFixture(t, fixture)

	if diff := cmp.Diff([]string{"Label", "Other"}, got.IDs()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	label, _ := got.ByID("Label")
	if label.Kind != schema.FieldKindTextArea || label.DefaultValue != schema.String("second") {
		t.Fatalf("later element should redefine the field, got kind=%q default=%q", label.Kind, label.DefaultValue.String())
	}
}

func TestParseSelectConvertsExistingField(t *testing.T) {
	t.Parallel()

	const fixture = `
<svg>
    <text id="Mode.text">manual</text>
    <text id="Other.text">other</text>
    <text id="Mode.select_Auto">Auto</text>
</svg>`

	got := parseFixture(t, fixture)

	if diff := cmp.Diff([]string{"Mode", "Other"}, got.IDs()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	mode, _ := got.ByID("Mode")
	if mode.Kind != schema.FieldKindSelect {
		t.Fatalf("kind = %q, want select", mode.Kind)
	}
	if len(mode.Options) != 1 || mode.Options[0].Value != "Mode.select_Auto" {
		t.Fatalf("options = %+v", mode.Options)
	}
}

func TestParseNestedElementsInDocumentOrder(t *testing.T) {
	t.Parallel()

	const fixture = `
<svg>
    <g>
        <g>
            <text id="First.text">1</text>
        </g>
        <text id="Second.text">2</text>
    </g>
    <text id="Third.text">3</text>
</svg>`

	got := parseFixture(t, fixture)
	if diff := cmp.Diff([]string{"First", "Second", "Third"}, got.IDs()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestParseUnknownKindFallsBackToBaseID(t *testing.T) {
	t.Parallel()

	got := parseFixture(t, `<svg><text id="Footer">fine print</text></svg>`)
	footer, _ := got.ByID("Footer")
	if footer.Kind != schema.FieldKind("Footer") {
		t.Fatalf("kind = %q, want base id fallback", footer.Kind)
	}

	normalized := parseFixture(t, `<svg><text id="Footer">fine print</text></svg>`, pkgfields.WithNormalizedKinds(true))
	footer, _ = normalized.ByID("Footer")
	if footer.Kind != schema.FieldKindText {
		t.Fatalf("normalized kind = %q, want text", footer.Kind)
	}
}

func TestParseIgnoresElementsWithoutID(t *testing.T) {
	t.Parallel()

	got := parseFixture(t, `<svg><text>anonymous</text><rect width="5"/></svg>`)
	if len(got) != 0 {
		t.Fatalf("expected empty schema, got %d fields", len(got))
	}
}

func TestParseMalformedDocument(t *testing.T) {
	t.Parallel()

	doc, err := pkgsvg.DocumentFromString("broken.svg", "<svg><text id=\"a.text\">oops</svg>")
	if err != nil {
		t.Fatalf("build document: %v", err)
	}

	_, err = New(pkgfields.ParserOptions{}).Parse(context.Background(), doc)
	if !errors.Is(err, pkgfields.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestParseRespectsContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc, err := pkgsvg.DocumentFromString("tpl.svg", "<svg/>")
	if err != nil {
		t.Fatalf("build document: %v", err)
	}
	if _, err := New(pkgfields.ParserOptions{}).Parse(ctx, doc); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}
