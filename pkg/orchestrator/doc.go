// Package orchestrator wires the loader → parser → decorator → renderer
// pipeline behind a single entry point, with dependency injection friendly
// options for every stage. Generate renders a fill-in form for a template;
// Preview applies values through the update engine and returns the mutated
// document alongside its refreshed schema.
package orchestrator
