package htmlform_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-svgform/pkg/render"
	"github.com/goliatone/go-svgform/pkg/renderers/htmlform"
	"github.com/goliatone/go-svgform/pkg/schema"
)

func fixtureSchema() schema.Schema {
	max := 24
	return schema.Schema{
		{
			ID:       "Company_Name",
			Name:     "Company Name",
			Kind:     schema.FieldKindText,
			Max:      &max,
			Editable: true,
		},
		{
			ID:   "Country",
			Name: "Country",
			Kind: schema.FieldKindSelect,
			Options: []schema.SelectOption{
				{Value: "Country.select.USA", Label: "USA"},
				{Value: "Country.select.Canada", Label: "Canada"},
			},
			CurrentValue: schema.String("Country.select.USA"),
			Editable:     true,
		},
		{
			ID:           "Reference_Code",
			Name:         "Reference Code",
			Kind:         schema.FieldKindGenerated,
			CurrentValue: schema.String("AB12"),
		},
		{
			ID:       "Fragile",
			Name:     "Fragile",
			Kind:     schema.FieldKindCheckbox,
			Editable: true,
		},
	}
}

func TestRendererContract(t *testing.T) {
	renderer, err := htmlform.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	if renderer.Name() != "htmlform" {
		t.Fatalf("unexpected renderer name %q", renderer.Name())
	}
	if renderer.ContentType() != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", renderer.ContentType())
	}
}

func TestRenderFullForm(t *testing.T) {
	renderer, err := htmlform.New(htmlform.WithSubmitLabel("Fill document"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := renderer.Render(context.Background(), fixtureSchema(), render.RenderOptions{
		Action: "/documents/42/values",
		Method: "PUT",
		Values: map[string]any{
			"Company_Name": "ACME",
			"Fragile":      true,
			"Country":      "Country.select.Canada",
		},
		Errors: map[string][]string{
			"Company_Name":     {"Name too long"},
			"non_field_errors": {"Document already delivered"},
		},
		Hidden: map[string]string{"_csrf": "token123"},
		Theme: &theme.RendererConfig{
			Theme:   "delivery",
			Variant: "dark",
			CSSVars: map[string]string{"--svgform-accent": "#0f62fe"},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html := string(out)

	for _, want := range []string{
		`<form class="svgform" method="post" action="/documents/42/values" data-theme="delivery--dark" style="--svgform-accent: #0f62fe;">`,
		`<input type="hidden" name="_csrf" value="token123">`,
		`<input type="hidden" name="_method" value="PUT">`,
		`<li>Document already delivered</li>`,
		`<li>Name too long</li>`,
		`aria-invalid="true"`,
		`value="ACME"`,
		`<option value="Country.select.Canada" selected>Canada</option>`,
		` checked`,
		` readonly`,
		`value="AB12"`,
		`<button type="submit" class="svgform-submit">Fill document</button>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %s in rendered form, got:\n%s", want, html)
		}
	}
}

func TestRenderLocalizesOverlayKeys(t *testing.T) {
	renderer, err := htmlform.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	s := schema.Schema{
		{
			ID:   "Company_Name",
			Name: "Company Name",
			Kind: schema.FieldKindText,
			Meta: map[string]string{"labelKey": "fields.company.label"},
		},
	}

	out, err := renderer.Render(context.Background(), s, render.RenderOptions{
		Locale:     "es",
		Translator: mapTranslator{"fields.company.label": "Razón social"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !strings.Contains(string(out), ">Razón social</label>") {
		t.Fatalf("expected translated label, got:\n%s", out)
	}
}

func TestRenderCustomTemplates(t *testing.T) {
	templates := fstest.MapFS{
		"templates/form.html": &fstest.MapFile{
			Data: []byte("custom:{{ form.method }}:{{ fields|length }}"),
		},
	}

	renderer, err := htmlform.New(htmlform.WithTemplatesFS(templates))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := renderer.Render(context.Background(), fixtureSchema(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "custom:post:4" {
		t.Fatalf("expected custom template output, got %q", out)
	}
}

func TestRenderHonorsContextCancellation(t *testing.T) {
	renderer, err := htmlform.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := renderer.Render(ctx, fixtureSchema(), render.RenderOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type mapTranslator map[string]string

func (t mapTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if msg, ok := t[key]; ok {
		return msg, nil
	}
	return "", errors.New("missing translation")
}
