// Package selector chooses spendable notes to cover a target value (§4.8).
//
// The default strategy is greedy descending-value accumulation: cheapest to
// reason about, and it tends to consume the fewest inputs when note values
// are roughly geometric, which keeps proof cost down. ExactMatch layers an
// optional two-stage search (a single exact note, then a bounded subset-sum)
// in front of the greedy fallback for callers
// that want to avoid leaving change behind.
package selector
