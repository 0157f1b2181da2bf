package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-svgform/pkg/schema"
)

const (
	fieldLabelKeyHint       = "labelKey"
	fieldPlaceholderKeyHint = "placeholderKey"
	fieldHelpKeyHint        = "helpKey"

	metaPlaceholderKey = "placeholder"
	metaHelpKey        = "help"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when a *Key
// hint is present but no Translator was configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves message keys into localized strings.
type Translator interface {
	Translate(locale, key string, params ...any) (string, error)
}

// MissingTranslationHandler decides what a failed lookup renders as. The
// params slice may carry a map with a "default" entry holding the fallback.
type MissingTranslationHandler func(locale, key string, params []any, err error) string

func missingTranslationDefault(_, key string, params []any, _ error) string {
	for _, param := range params {
		values, ok := param.(map[string]any)
		if !ok {
			continue
		}
		if fallback, ok := values["default"].(string); ok && strings.TrimSpace(fallback) != "" {
			return fallback
		}
	}
	return key
}

// LocalizeSchema resolves *Key hints carried in field metadata (labelKey,
// placeholderKey, helpKey) into localized display strings. The input schema
// is not mutated; when no field carries a hint it is returned as-is.
//
// This is best-effort: translation failures route through opts.OnMissing and
// fall back to the existing display string, then to the key itself.
func LocalizeSchema(s schema.Schema, opts RenderOptions) schema.Schema {
	if !hasLocalizationHints(s) {
		return s
	}

	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	out := s.Clone()
	for i := range out {
		localizeField(&out[i], opts.Locale, opts.Translator, onMissing)
	}
	return out
}

func hasLocalizationHints(s schema.Schema) bool {
	for _, field := range s {
		if len(field.Meta) == 0 {
			continue
		}
		for _, hint := range []string{fieldLabelKeyHint, fieldPlaceholderKeyHint, fieldHelpKeyHint} {
			if strings.TrimSpace(field.Meta[hint]) != "" {
				return true
			}
		}
	}
	return false
}

func localizeField(field *schema.FieldDescriptor, locale string, t Translator, onMissing MissingTranslationHandler) {
	if field == nil || len(field.Meta) == 0 {
		return
	}

	if key := strings.TrimSpace(field.Meta[fieldLabelKeyHint]); key != "" {
		field.Name = translate(locale, key, strings.TrimSpace(field.Name), t, onMissing)
	}
	if key := strings.TrimSpace(field.Meta[fieldPlaceholderKeyHint]); key != "" {
		field.Meta[metaPlaceholderKey] = translate(locale, key, strings.TrimSpace(field.Meta[metaPlaceholderKey]), t, onMissing)
	}
	if key := strings.TrimSpace(field.Meta[fieldHelpKeyHint]); key != "" {
		field.Meta[metaHelpKey] = translate(locale, key, strings.TrimSpace(field.Meta[metaHelpKey]), t, onMissing)
	}
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	if t == nil {
		if onMissing != nil {
			return onMissing(locale, key, []any{map[string]any{"default": fallback}}, ErrMissingTranslator)
		}
		if strings.TrimSpace(fallback) != "" {
			return fallback
		}
		return key
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}

	if onMissing != nil {
		return onMissing(locale, key, []any{map[string]any{"default": fallback}}, err)
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

// TemplateI18nConfig configures template-level translation helpers.
type TemplateI18nConfig struct {
	// LocaleKey selects the map key used to infer locale when templates pass a
	// context map instead of a raw string.
	LocaleKey string
	// FuncName customizes the translator helper name (defaults to "translate").
	FuncName string
	// OnMissing controls the string returned when a translation is missing.
	OnMissing MissingTranslationHandler
}

// TemplateI18nFuncs returns helper functions suitable for registering on a
// template engine. The main helper signature is:
//
//	translate(localeSrc, key, ...args) string
//
// where localeSrc is either a locale string (e.g. "en-US") or a map holding
// one under cfg.LocaleKey.
func TemplateI18nFuncs(t Translator, cfg TemplateI18nConfig) map[string]any {
	localeKey := strings.TrimSpace(cfg.LocaleKey)
	if localeKey == "" {
		localeKey = "locale"
	}

	translateName := strings.TrimSpace(cfg.FuncName)
	if translateName == "" {
		translateName = "translate"
	}

	onMissing := cfg.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	return map[string]any{
		translateName: func(localeSrc any, key string, params ...any) string {
			key = strings.TrimSpace(key)
			if key == "" {
				return ""
			}
			locale := resolveLocale(localeSrc, localeKey)
			if t == nil {
				return onMissing(locale, key, params, ErrMissingTranslator)
			}
			msg, err := t.Translate(locale, key, params...)
			if err != nil || strings.TrimSpace(msg) == "" {
				return onMissing(locale, key, params, err)
			}
			return msg
		},
		"current_locale": func(localeSrc any) string {
			return resolveLocale(localeSrc, localeKey)
		},
	}
}

func resolveLocale(src any, key string) string {
	switch data := src.(type) {
	case nil:
		return ""
	case string:
		return data
	case map[string]string:
		return data[key]
	case map[string]any:
		if v, ok := data[key]; ok {
			if str, ok := v.(string); ok {
				return str
			}
			return strings.TrimSpace(fmt.Sprint(v))
		}
	}
	return ""
}
