// Package stage defines the production stages a work order moves through and
// the Catalog that fixes their order.
//
// Key business rules:
//   - The catalog order is the only valid direction of progression
//   - No stage appears twice in a catalog
//   - A stage plan is a non-empty subsequence of the catalog that keeps
//     catalog order
//
// A Catalog is built once at startup (DefaultCatalog or a configured list)
// and never changes afterwards, so it can be shared freely between goroutines.
package stage
