// Package builders provides test data builders using the builder pattern for creating test fixtures.
//
// # Available Builders
//
//   - IssueBuilder: Creates tracker.Issue instances
//   - ConfigBuilder: Creates config.Config instances
//
// # Example
//
//	issue := NewIssueBuilder().
//	    WithNumber(123).
//	    WithTitle("BUG-001: Something is broken").
//	    WithLabels([]string{"bug"}).
//	    Build()
package builders
