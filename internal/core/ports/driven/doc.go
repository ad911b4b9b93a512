// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Extractor: Turns an uploaded PDF into raw line items
//   - Matcher: Batch-matches row descriptions against the catalog
//   - CatalogSearcher: Interactive substring search over the catalog
//   - OrderGateway: Remote draft checkpoint and final save
//   - DraftCache: Local best-effort draft snapshot
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
