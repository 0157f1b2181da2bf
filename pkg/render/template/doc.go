// Package template defines the renderer-agnostic template seam. Renderers
// depend on the TemplateRenderer interface so template engines can be swapped
// or faked in tests without touching renderer code.
package template
