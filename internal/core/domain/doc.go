// Package domain defines the core business entities for ordermatch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - LineItem: One extracted row of a purchase-order draft
//   - ReconciledRow: A line item together with its match state
//   - FinalizedItem: A reconciled row ready for final save and export
//   - MatchCandidate: A catalog candidate returned by the batch matcher
//   - Phase: The workflow phase (Upload, Extract, Match)
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
