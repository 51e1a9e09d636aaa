// Package bakermath converts between absolute weights and baker's percentages,
// tracks how a formula is split across production stages, and scales whole
// multi-stage recipes to a target dough weight.
//
// Every function is pure: inputs are never mutated, nothing is cached, and no
// input is rejected. Zero flour, unknown ingredients, negative weights and
// over-allocated stages all produce defined results.
package bakermath
