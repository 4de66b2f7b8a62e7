// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// File access, history and frame sampling are supplied by driven
// adapters.
package services
