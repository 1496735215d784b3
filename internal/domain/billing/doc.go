// Package billing computes order totals from configured pricing data.
//
// It holds three pieces:
//   - Catalog: the configured product types with per-unit weights and
//     default prices. Lookup of an unconfigured type fails with
//     ErrUnknownProduct rather than pricing at zero.
//   - Roster: the configured staff lists (salespersons, drivers,
//     collectors) that order commands validate names against.
//   - Calculator: pure arithmetic over catalog entries, weight and
//     amount as decimal sums per line. No I/O, no clock.
//
// Catalog and roster contents come from configuration at startup;
// nothing in this package reads config itself.
package billing
