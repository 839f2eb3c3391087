package builders

import (
	"time"

	"github.com/douhashi/issuenum/internal/tracker"
)

// IssueBuilder builds tracker.Issue instances for testing
type IssueBuilder struct {
	issue tracker.Issue
}

// NewIssueBuilder creates a new IssueBuilder with sensible defaults
func NewIssueBuilder() *IssueBuilder {
	return &IssueBuilder{
		issue: tracker.Issue{
			Number:    1,
			Title:     "Default Issue",
			Labels:    []string{},
			State:     "open",
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

// WithNumber sets the issue number. CreatedAt follows the number so creation order matches it.
func (b *IssueBuilder) WithNumber(number int) *IssueBuilder {
	b.issue.Number = number
	b.issue.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(number) * time.Hour)
	return b
}

// WithTitle sets the issue title
func (b *IssueBuilder) WithTitle(title string) *IssueBuilder {
	b.issue.Title = title
	return b
}

// WithLabels replaces the issue labels
func (b *IssueBuilder) WithLabels(labels []string) *IssueBuilder {
	b.issue.Labels = append([]string{}, labels...)
	return b
}

// WithLabel adds a single label to the issue
func (b *IssueBuilder) WithLabel(label string) *IssueBuilder {
	b.issue.Labels = append(b.issue.Labels, label)
	return b
}

// WithState sets the issue state
func (b *IssueBuilder) WithState(state string) *IssueBuilder {
	b.issue.State = state
	return b
}

// AsClosed sets the state to closed
func (b *IssueBuilder) AsClosed() *IssueBuilder {
	return b.WithState("closed")
}

// WithCreatedAt sets the creation time
func (b *IssueBuilder) WithCreatedAt(t time.Time) *IssueBuilder {
	b.issue.CreatedAt = t
	return b
}

// Build returns a copy of the built issue
func (b *IssueBuilder) Build() tracker.Issue {
	issue := b.issue
	issue.Labels = append([]string{}, b.issue.Labels...)
	return issue
}

// BuildPtr returns a pointer to a copy of the built issue
func (b *IssueBuilder) BuildPtr() *tracker.Issue {
	issue := b.Build()
	return &issue
}

// Issue is a shorthand for NewIssueBuilder().WithNumber(n).WithTitle(title).WithLabels(labels).Build()
func Issue(number int, title string, labels ...string) tracker.Issue {
	return NewIssueBuilder().WithNumber(number).WithTitle(title).WithLabels(labels).Build()
}
