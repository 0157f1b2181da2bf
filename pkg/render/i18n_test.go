package render_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-svgform/pkg/render"
	"github.com/goliatone/go-svgform/pkg/schema"
)

type stubTranslator map[string]string

func (t stubTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if msg, ok := t[key]; ok {
		return msg, nil
	}
	return "", errors.New("missing translation")
}

func TestLocalizeSchemaUsesKeysAndFallbacks(t *testing.T) {
	s := schema.Schema{
		{
			ID:   "Company_Name",
			Name: "Company Name",
			Kind: schema.FieldKindText,
			Meta: map[string]string{
				"labelKey":       "fields.company.label",
				"placeholder":    "Enter company",
				"placeholderKey": "fields.company.placeholder",
				"helpKey":        "fields.company.help",
			},
		},
		{ID: "Country", Name: "Country", Kind: schema.FieldKindSelect},
	}

	out := render.LocalizeSchema(s, render.RenderOptions{
		Locale:     "es",
		Translator: stubTranslator{"fields.company.label": "Razón social"},
	})

	if out[0].Name != "Razón social" {
		t.Fatalf("expected translated label, got %q", out[0].Name)
	}
	if out[0].Meta["placeholder"] != "Enter company" {
		t.Fatalf("expected placeholder to fall back when missing, got %q", out[0].Meta["placeholder"])
	}
	if out[0].Meta["help"] != "fields.company.help" {
		t.Fatalf("expected help to default to the key when no fallback, got %q", out[0].Meta["help"])
	}
	if out[1].Name != "Country" {
		t.Fatalf("expected field without hints untouched, got %q", out[1].Name)
	}

	if s[0].Name != "Company Name" {
		t.Fatalf("input schema mutated: %q", s[0].Name)
	}
}

func TestLocalizeSchemaWithoutHintsReturnsInput(t *testing.T) {
	s := schema.Schema{
		{ID: "Company_Name", Name: "Company Name", Meta: map[string]string{"placeholder": "ACME"}},
	}

	out := render.LocalizeSchema(s, render.RenderOptions{})

	if &out[0] != &s[0] {
		t.Fatalf("expected the input schema back when no field carries a hint")
	}
}

func TestLocalizeSchemaMissingTranslator(t *testing.T) {
	s := schema.Schema{
		{ID: "Company_Name", Name: "Company Name", Meta: map[string]string{"labelKey": "fields.company.label"}},
	}

	var handlerErr error
	out := render.LocalizeSchema(s, render.RenderOptions{
		OnMissing: func(_, key string, _ []any, err error) string {
			handlerErr = err
			return "[[" + key + "]]"
		},
	})

	if out[0].Name != "[[fields.company.label]]" {
		t.Fatalf("expected handler output, got %q", out[0].Name)
	}
	if !errors.Is(handlerErr, render.ErrMissingTranslator) {
		t.Fatalf("expected ErrMissingTranslator, got %v", handlerErr)
	}
}

func TestTemplateI18nFuncs(t *testing.T) {
	funcs := render.TemplateI18nFuncs(stubTranslator{"actions.save": "Guardar"}, render.TemplateI18nConfig{})

	translate, ok := funcs["translate"].(func(any, string, ...any) string)
	if !ok {
		t.Fatalf("expected translate helper, got %T", funcs["translate"])
	}
	if got := translate("es", "actions.save"); got != "Guardar" {
		t.Fatalf("expected translated action, got %q", got)
	}
	if got := translate("es", "missing.key"); got != "missing.key" {
		t.Fatalf("expected key fallback, got %q", got)
	}

	currentLocale, ok := funcs["current_locale"].(func(any) string)
	if !ok {
		t.Fatalf("expected current_locale helper, got %T", funcs["current_locale"])
	}
	if got := currentLocale(map[string]string{"locale": "en-US"}); got != "en-US" {
		t.Fatalf("expected locale from map, got %q", got)
	}
}
