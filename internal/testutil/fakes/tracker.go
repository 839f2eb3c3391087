// Package fakes provides in-memory implementations of external collaborators for scenario tests.
package fakes

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/douhashi/issuenum/internal/tracker"
)

// Call records one mutating call made against the fake tracker
type Call struct {
	Method string
	Number int
	Arg    string
}

// Tracker is an in-memory tracker.Tracker. Issues are returned in issue number order.
type Tracker struct {
	mu        sync.Mutex
	issues    map[int]*tracker.Issue
	labels    map[string]tracker.LabelDefinition
	calls     []Call
	listErr   error
	updateErr map[int]error
}

// NewTracker creates a fake tracker seeded with the given issues
func NewTracker(issues ...tracker.Issue) *Tracker {
	f := &Tracker{
		issues:    make(map[int]*tracker.Issue),
		labels:    make(map[string]tracker.LabelDefinition),
		updateErr: make(map[int]error),
	}
	for _, issue := range issues {
		f.Put(issue)
	}
	return f
}

// Put adds or replaces an issue
func (f *Tracker) Put(issue tracker.Issue) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := clone(issue)
	f.issues[issue.Number] = &c
}

// FailList makes ListIssues return err until cleared with nil
func (f *Tracker) FailList(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listErr = err
}

// FailUpdate makes UpdateTitle for the issue return err until cleared with nil
func (f *Tracker) FailUpdate(number int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.updateErr, number)
		return
	}
	f.updateErr[number] = err
}

// Issue returns a copy of the stored issue
func (f *Tracker) Issue(number int) (tracker.Issue, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	issue, ok := f.issues[number]
	if !ok {
		return tracker.Issue{}, false
	}
	return clone(*issue), true
}

// Titles returns the current titles keyed by issue number
func (f *Tracker) Titles() map[int]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[int]string, len(f.issues))
	for n, issue := range f.issues {
		out[n] = issue.Title
	}
	return out
}

// Calls returns the mutating calls made so far
func (f *Tracker) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallsTo returns the recorded calls for one method
func (f *Tracker) CallsTo(method string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// ResetCalls clears the call log
func (f *Tracker) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

// Labels returns the repository label names created through EnsureLabels
func (f *Tracker) Labels() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.labels))
	for _, l := range f.labels {
		names = append(names, l.Name)
	}
	sort.Strings(names)
	return names
}

// ListIssues returns every stored issue
func (f *Tracker) ListIssues(ctx context.Context) ([]tracker.Issue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}

	numbers := make([]int, 0, len(f.issues))
	for n := range f.issues {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	out := make([]tracker.Issue, 0, len(numbers))
	for _, n := range numbers {
		out = append(out, clone(*f.issues[n]))
	}
	return out, nil
}

// GetIssue returns one issue or a not found tracker.Error
func (f *Tracker) GetIssue(ctx context.Context, number int) (*tracker.Issue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	issue, ok := f.issues[number]
	if !ok {
		return nil, notFound("get issue", number)
	}
	c := clone(*issue)
	return &c, nil
}

// AddLabel attaches a label; adding an attached label is a no-op
func (f *Tracker) AddLabel(ctx context.Context, number int, label string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	issue, ok := f.issues[number]
	if !ok {
		return notFound("add label", number)
	}
	f.calls = append(f.calls, Call{Method: "AddLabel", Number: number, Arg: label})
	if indexOf(issue.Labels, label) < 0 {
		issue.Labels = append(issue.Labels, label)
	}
	return nil
}

// RemoveLabel detaches a label; removing an absent label succeeds
func (f *Tracker) RemoveLabel(ctx context.Context, number int, label string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	issue, ok := f.issues[number]
	if !ok {
		return notFound("remove label", number)
	}
	f.calls = append(f.calls, Call{Method: "RemoveLabel", Number: number, Arg: label})
	if i := indexOf(issue.Labels, label); i >= 0 {
		issue.Labels = append(issue.Labels[:i], issue.Labels[i+1:]...)
	}
	return nil
}

// UpdateTitle replaces the title unless a failure was injected for the issue
func (f *Tracker) UpdateTitle(ctx context.Context, number int, title string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	issue, ok := f.issues[number]
	if !ok {
		return notFound("update title", number)
	}
	f.calls = append(f.calls, Call{Method: "UpdateTitle", Number: number, Arg: title})
	if err := f.updateErr[number]; err != nil {
		return err
	}
	issue.Title = title
	return nil
}

// EnsureLabels records label definitions and returns the ones not seen before
func (f *Tracker) EnsureLabels(ctx context.Context, defs []tracker.LabelDefinition) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var created []string
	for _, def := range defs {
		key := strings.ToLower(def.Name)
		if _, ok := f.labels[key]; ok {
			continue
		}
		f.labels[key] = def
		created = append(created, def.Name)
	}
	return created, nil
}

func clone(issue tracker.Issue) tracker.Issue {
	issue.Labels = append([]string(nil), issue.Labels...)
	return issue
}

func indexOf(labels []string, label string) int {
	for i, l := range labels {
		if strings.EqualFold(l, label) {
			return i
		}
	}
	return -1
}

func notFound(op string, number int) error {
	return &tracker.Error{
		Op:         op,
		Type:       tracker.ErrorTypeNotFound,
		StatusCode: 404,
		Message:    fmt.Sprintf("issue #%d not found", number),
	}
}

var (
	_ tracker.Tracker      = (*Tracker)(nil)
	_ tracker.LabelEnsurer = (*Tracker)(nil)
)
