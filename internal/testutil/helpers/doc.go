// Package helpers provides general test helper functions and utilities.
//
// # Available Helpers
//
//   - ObservableLogger: a logger.Logger that records entries with zap's observer
//   - UnsetEnv: removes environment variables for the duration of a test
//   - InitGitRepo: creates a git repository with an origin remote
package helpers
