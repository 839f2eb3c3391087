// Package mocks provides testify mock implementations for interfaces used throughout issuenum.
//
// # Available Mocks
//
//   - MockTracker: Mock for tracker.Tracker and tracker.LabelEnsurer
//   - MockLogger: Mock for logger.Logger
//
// # Best Practices
//
// 1. Always use the factory functions (e.g., NewMockTracker) to create mocks
// 2. Use WithDefaultBehavior() methods for common scenarios
// 3. Use mock.InOrder when the order of tracker calls matters
package mocks
