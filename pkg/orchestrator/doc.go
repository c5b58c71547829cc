// Package orchestrator runs the layout lint pipeline: load a layout set,
// apply transformers, lint against the catalog and snapshots, evaluate
// expressions and render a report.
package orchestrator
