// Package principal models the authenticated actors of the production floor.
//
// A Principal has exactly one Role:
//   - Coordinator: runs the floor and administers the directory
//   - Planner: creates work orders and reads reports
//   - Operator: works a single assigned stage
//
// Only an Operator carries an assigned stage. Who may do what is decided by
// the AccessPolicy domain service, not by this package.
package principal
