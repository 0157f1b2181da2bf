// Package tui renders a parsed field schema as an interactive terminal
// session. Instead of producing markup it walks the fields in document order,
// prompts for each value with a survey-backed driver, and serializes the
// collected answers as JSON, form-urlencoded pairs, or a plain text summary
// ready to feed into the update engine.
package tui

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-svgform/pkg/render"
	"github.com/goliatone/go-svgform/pkg/schema"
)

// Renderer implements render.Renderer for terminal-driven fill sessions.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver()
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format produced by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render prompts for every fillable field in schema order and returns the
// encoded answers. Generated and status fields are skipped since the engine
// manages their values itself. Server-side errors passed through options
// surface as printed lines: form-level messages up front, field-level ones
// right before the offending prompt.
func (r *Renderer) Render(ctx context.Context, s schema.Schema, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	s = render.LocalizeSchema(s, options)
	mapping := render.MapErrorPayload(s, options.Errors)

	for _, message := range mapping.Form {
		if err := r.notifyError(ctx, message); err != nil {
			return nil, err
		}
	}

	collected := newValueSet()
	for _, field := range s {
		if skipPrompt(field) {
			continue
		}
		for _, message := range mapping.Fields[field.ID] {
			if err := r.notifyError(ctx, fmt.Sprintf("%s: %s", field.Name, message)); err != nil {
				return nil, err
			}
		}
		value, err := r.promptField(ctx, field, options.Values)
		if err != nil {
			return nil, err
		}
		collected.add(field, value)
	}

	if r.submitTransformer != nil {
		transformed, err := r.submitTransformer(collected.values())
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
		collected.replace(transformed)
	}

	return r.serialize(collected)
}

func (r *Renderer) serialize(collected *valueSet) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return collected.encodeForm(), nil
	case OutputFormatPrettyText:
		return collected.encodePretty(), nil
	default:
		return collected.encodeJSON()
	}
}

// skipPrompt filters fields whose values the engine fills on its own.
func skipPrompt(field schema.FieldDescriptor) bool {
	switch field.Kind {
	case schema.FieldKindGenerated, schema.FieldKindStatus:
		return true
	}
	return false
}

func (r *Renderer) promptField(ctx context.Context, field schema.FieldDescriptor, overrides map[string]any) (any, error) {
	seed := seedValue(field, overrides)
	message := r.theme.PromptPrefix + field.Name
	help := fieldHelp(field)

	if field.HasOptions() {
		return r.promptSelect(ctx, field, seed, message, help)
	}

	switch promptControl(field) {
	case "checkbox", "hide":
		return r.driver.Confirm(ctx, ConfirmConfig{
			Message: message,
			Default: seed.Truthy(),
			Help:    help,
		})
	case "textarea":
		area := func(ctx context.Context, cfg InputConfig) (string, error) {
			return r.driver.TextArea(ctx, TextAreaConfig{
				Message: cfg.Message,
				Default: cfg.Default,
				Help:    cfg.Help,
			})
		}
		return r.promptText(ctx, area, field, seed, message, help, maxLengthValidator(field.Max))
	case "password":
		return r.promptText(ctx, r.driver.Password, field, seed, message, help, maxLengthValidator(field.Max))
	case "number", "range":
		return r.promptText(ctx, r.driver.Input, field, seed, message, help,
			chainValidators(numberValidator, maxLengthValidator(field.Max)))
	case "date":
		return r.promptText(ctx, r.driver.Input, field, seed, message, help,
			chainValidators(dateValidator, maxLengthValidator(field.Max)))
	case "email":
		return r.promptText(ctx, r.driver.Input, field, seed, message, help,
			chainValidators(emailValidator, maxLengthValidator(field.Max)))
	case "tel":
		return r.promptText(ctx, r.driver.Input, field, seed, message, help,
			chainValidators(telValidator, maxLengthValidator(field.Max)))
	case "color":
		return r.promptText(ctx, r.driver.Input, field, seed, message, help, colorValidator)
	case "upload", "file", "sign":
		if help == "" {
			help = "File path or URL"
		}
		input := func(ctx context.Context, cfg InputConfig) (string, error) {
			cfg.Suggest = filePathSuggestions
			return r.driver.Input(ctx, cfg)
		}
		return r.promptText(ctx, input, field, seed, message, help, nil)
	default:
		return r.promptText(ctx, r.driver.Input, field, seed, message, help, maxLengthValidator(field.Max))
	}
}

type textPrompt func(context.Context, InputConfig) (string, error)

// promptText runs a text-style prompt until the answer passes validation. The
// survey driver enforces the validator inline; the loop covers drivers that
// ignore it and reports the failure before asking again.
func (r *Renderer) promptText(ctx context.Context, prompt textPrompt, field schema.FieldDescriptor, seed schema.Value, message, help string, validate func(string) error) (string, error) {
	cfg := InputConfig{
		Message:     message,
		Default:     seedText(seed),
		Help:        help,
		Placeholder: strings.TrimSpace(field.Meta["placeholder"]),
		Validator:   validate,
	}
	for {
		value, err := prompt(ctx, cfg)
		if err != nil {
			return "", err
		}
		if validate != nil {
			if err := validate(value); err != nil {
				if infoErr := r.notifyError(ctx, fmt.Sprintf("%s: %v", field.Name, err)); infoErr != nil {
					return "", infoErr
				}
				continue
			}
		}
		return value, nil
	}
}

func (r *Renderer) promptSelect(ctx context.Context, field schema.FieldDescriptor, seed schema.Value, message, help string) (string, error) {
	labels := make([]string, len(field.Options))
	defaultIndex := -1
	for i, option := range field.Options {
		labels[i] = optionLabel(option)
		if defaultIndex < 0 && option.Value == seed.String() {
			defaultIndex = i
		}
	}
	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      labels,
			DefaultIndex: defaultIndex,
			Help:         help,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(field.Options) {
			if infoErr := r.notifyError(ctx, fmt.Sprintf("%s: selection out of range", field.Name)); infoErr != nil {
				return "", infoErr
			}
			continue
		}
		return field.Options[idx].Value, nil
	}
}

func (r *Renderer) notifyError(ctx context.Context, message string) error {
	return r.driver.Info(ctx, r.theme.ErrorPrefix+message)
}

// promptControl resolves which prompt style a field gets, letting a widget
// override in field metadata win over the parsed kind.
func promptControl(field schema.FieldDescriptor) string {
	if widget := strings.ToLower(strings.TrimSpace(field.Meta["widget"])); widget != "" {
		return widget
	}
	return strings.ToLower(string(field.Kind))
}

// seedValue mirrors the precedence the update engine applies when writing
// values into a document: explicit override, then current, then default.
func seedValue(field schema.FieldDescriptor, overrides map[string]any) schema.Value {
	if overrides != nil {
		if raw, ok := overrides[field.ID]; ok {
			return schema.ValueOf(raw)
		}
	}
	if !field.CurrentValue.IsZero() {
		return field.CurrentValue
	}
	return field.DefaultValue
}

func seedText(seed schema.Value) string {
	if seed.IsBool() {
		return ""
	}
	return seed.Text()
}

func fieldHelp(field schema.FieldDescriptor) string {
	if help := strings.TrimSpace(field.Meta["help"]); help != "" {
		return help
	}
	return strings.TrimSpace(field.Meta["placeholder"])
}

func optionLabel(option schema.SelectOption) string {
	if option.DisplayText != "" {
		return option.DisplayText
	}
	if option.Label != "" {
		return option.Label
	}
	return option.Value
}

func maxLengthValidator(max *int) func(string) error {
	if max == nil || *max <= 0 {
		return nil
	}
	limit := *max
	return func(value string) error {
		if utf8.RuneCountInString(value) > limit {
			return fmt.Errorf("must be at most %d characters", limit)
		}
		return nil
	}
}

func numberValidator(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
		return errors.New("must be a number")
	}
	return nil
}

func dateValidator(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", trimmed); err != nil {
		return errors.New("must be a date in YYYY-MM-DD form")
	}
	return nil
}

// emailValidator accepts only bare addresses; display-name forms such as
// "Ops <ops@acme.example>" would round-trip badly through the document text.
func emailValidator(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return errors.New("must be an email address")
	}
	return nil
}

func telValidator(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	digits := 0
	for _, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' || r == '-' || r == '(' || r == ')' || r == '.' || r == ' ':
		default:
			return errors.New("must be a phone number")
		}
	}
	if digits < 3 {
		return errors.New("must be a phone number")
	}
	return nil
}

func colorValidator(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	if (len(trimmed) != 4 && len(trimmed) != 7) || trimmed[0] != '#' {
		return errors.New("must be a hex color such as #22aacc")
	}
	for _, r := range trimmed[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return errors.New("must be a hex color such as #22aacc")
		}
	}
	return nil
}

// filePathSuggestions expands a partially typed path so upload prompts can
// tab-complete local files.
func filePathSuggestions(toComplete string) []string {
	matches, err := filepath.Glob(toComplete + "*")
	if err != nil {
		return nil
	}
	return matches
}

func chainValidators(validators ...func(string) error) func(string) error {
	var active []func(string) error
	for _, v := range validators {
		if v != nil {
			active = append(active, v)
		}
	}
	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	}
	return func(value string) error {
		for _, v := range active {
			if err := v(value); err != nil {
				return err
			}
		}
		return nil
	}
}
