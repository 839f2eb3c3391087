// Package testutil provides common test utilities, mocks, fakes and builders for testing issuenum components.
//
// This package is organized into the following sub-packages:
//
//   - mocks: testify mocks for tracker.Tracker and logger.Logger
//   - fakes: an in-memory issue tracker with failure injection
//   - builders: Test data builders using the builder pattern for creating test fixtures
//   - helpers: General test helper functions and utilities
//
// # Example
//
// Using the fake tracker:
//
//	fake := fakes.NewTracker(
//	    builders.NewIssueBuilder().WithNumber(1).WithTitle("FEAT-002: X").WithLabel("feature").Build(),
//	)
//	result, err := renumber.New(fake).Reorder(ctx, feature)
//
// Using mocks:
//
//	mt := mocks.NewMockTracker()
//	mt.On("AddLabel", mock.Anything, 3, "bug").Return(nil)
package testutil
