// Package io provides JSON export and import for treemap build results.
//
// # Overview
//
// A [treemap.Container] holds the handles of everything one build drew:
// rectangles, labels, and the color mapping. This package serializes those
// handles to a stable JSON manifest, designed for:
//
//   - Driving external renderers or web frontends from precomputed layouts
//   - Snapshot testing of layout and label fitting
//   - Inspecting weights, keys, and fitted sizes without image tooling
//
// # JSON Format
//
// The manifest has two top-level arrays plus an optional legend:
//
//	{
//	  "patches": [
//	    {"key": "fruit/apple", "level": 2, "x": 0, "y": 0, "w": 33.3, "h": 50, "fill": "#4c78a8"}
//	  ],
//	  "texts": [
//	    {"key": "fruit/apple", "level": 2, "content": "Apple", "size": 8.5, "fits": true}
//	  ],
//	  "legend": [
//	    {"value": "fruit", "color": "#1f77b4"}
//	  ]
//	}
//
// Coordinates are in layout space (the NormX/NormY range of the
// [treemap.Spec] that produced the build), not pixels, so consumers can
// scale the manifest to any surface.
//
// The format round-trips: a manifest written with [WriteJSON] reads back
// with [ReadJSON] into an equivalent container.
package io
