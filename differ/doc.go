// Package differ computes the per-field change set between a current and
// a desired set of flat NIC records, and renders it for human review.
//
// The diff is desired-driven: only identity triples present in the desired
// set are considered, and a triple present in current but absent from
// desired produces no change: absence means "leave untouched", never
// "remove". Values are compared in normalized form (see the flatten
// package) but reported raw, so review output shows the operator's actual
// source text rather than the canonical comparison form.
//
// Diffing a record set against itself yields an empty change set.
package differ
