package mocks

import (
	"context"

	"github.com/douhashi/issuenum/internal/tracker"
	"github.com/stretchr/testify/mock"
)

// MockTracker is a mock implementation of tracker.Tracker and tracker.LabelEnsurer
type MockTracker struct {
	mock.Mock
}

// NewMockTracker creates a new instance of MockTracker
func NewMockTracker() *MockTracker {
	return &MockTracker{}
}

// WithDefaultBehavior sets up common default behaviors for the mock
func (m *MockTracker) WithDefaultBehavior() *MockTracker {
	// 更新系は何もしない成功
	m.On("AddLabel", mock.Anything, mock.Anything, mock.Anything).Maybe().Return(nil)
	m.On("RemoveLabel", mock.Anything, mock.Anything, mock.Anything).Maybe().Return(nil)
	m.On("UpdateTitle", mock.Anything, mock.Anything, mock.Anything).Maybe().Return(nil)
	m.On("EnsureLabels", mock.Anything, mock.Anything).Maybe().Return([]string(nil), nil)

	return m
}

// ListIssues mocks the ListIssues method
func (m *MockTracker) ListIssues(ctx context.Context) ([]tracker.Issue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tracker.Issue), args.Error(1)
}

// GetIssue mocks the GetIssue method
func (m *MockTracker) GetIssue(ctx context.Context, number int) (*tracker.Issue, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracker.Issue), args.Error(1)
}

// AddLabel mocks the AddLabel method
func (m *MockTracker) AddLabel(ctx context.Context, number int, label string) error {
	args := m.Called(ctx, number, label)
	return args.Error(0)
}

// RemoveLabel mocks the RemoveLabel method
func (m *MockTracker) RemoveLabel(ctx context.Context, number int, label string) error {
	args := m.Called(ctx, number, label)
	return args.Error(0)
}

// UpdateTitle mocks the UpdateTitle method
func (m *MockTracker) UpdateTitle(ctx context.Context, number int, title string) error {
	args := m.Called(ctx, number, title)
	return args.Error(0)
}

// EnsureLabels mocks the EnsureLabels method
func (m *MockTracker) EnsureLabels(ctx context.Context, defs []tracker.LabelDefinition) ([]string, error) {
	args := m.Called(ctx, defs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Ensure MockTracker implements the tracker interfaces
var (
	_ tracker.Tracker      = (*MockTracker)(nil)
	_ tracker.LabelEnsurer = (*MockTracker)(nil)
)
