package renumber

import (
	"testing"

	"github.com/douhashi/issuenum/internal/category"
	"github.com/douhashi/issuenum/internal/testutil/builders"
	"github.com/douhashi/issuenum/internal/tracker"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func mustCategory(t *testing.T, label string) category.Category {
	t.Helper()
	c, ok := category.Lookup(label)
	require.True(t, ok, "unknown category %s", label)
	return c
}

func TestPlan(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		issues []tracker.Issue
		width  int
		want   []Change
	}{
		{
			name:   "既存の番号順に詰める",
			prefix: "FEAT",
			issues: []tracker.Issue{
				builders.Issue(1, "FEAT-002: X", "feature"),
				builders.Issue(2, "FEAT-001: Y", "feature"),
				builders.Issue(3, "FEAT-005: Z", "feature"),
			},
			width: 3,
			want: []Change{
				{Number: 2, Sequence: 1, From: "FEAT-001: Y", To: "FEAT-001: Y"},
				{Number: 1, Sequence: 2, From: "FEAT-002: X", To: "FEAT-002: X"},
				{Number: 3, Sequence: 3, From: "FEAT-005: Z", To: "FEAT-003: Z"},
			},
		},
		{
			name:   "番号なしは番号付きの後ろにIssue番号順で並ぶ",
			prefix: "BUG",
			issues: []tracker.Issue{
				builders.Issue(10, "Fix crash", "bug"),
				builders.Issue(4, "Leak", "bug"),
				builders.Issue(7, "BUG-001: Old", "bug"),
			},
			width: 3,
			want: []Change{
				{Number: 7, Sequence: 1, From: "BUG-001: Old", To: "BUG-001: Old"},
				{Number: 4, Sequence: 2, From: "Leak", To: "BUG-002: Leak"},
				{Number: 10, Sequence: 3, From: "Fix crash", To: "BUG-003: Fix crash"},
			},
		},
		{
			name:   "別カテゴリの番号は番号なし扱い",
			prefix: "FEAT",
			issues: []tracker.Issue{
				builders.Issue(3, "BUG-003: Leak", "feature"),
				builders.Issue(5, "FEAT-001: Dark mode", "feature"),
			},
			width: 3,
			want: []Change{
				{Number: 5, Sequence: 1, From: "FEAT-001: Dark mode", To: "FEAT-001: Dark mode"},
				{Number: 3, Sequence: 2, From: "BUG-003: Leak", To: "FEAT-002: Leak"},
			},
		},
		{
			name:   "重複した番号はIssue番号で順序を決める",
			prefix: "OPS",
			issues: []tracker.Issue{
				builders.Issue(9, "OPS-001: B", "ops"),
				builders.Issue(2, "OPS-001: A", "ops"),
			},
			width: 3,
			want: []Change{
				{Number: 2, Sequence: 1, From: "OPS-001: A", To: "OPS-001: A"},
				{Number: 9, Sequence: 2, From: "OPS-001: B", To: "OPS-002: B"},
			},
		},
		{
			name:   "旧形式の連番を取り除く",
			prefix: "DOCS",
			issues: []tracker.Issue{
				builders.Issue(1, "Docs: 12 - Update README", "documentation"),
			},
			width: 3,
			want: []Change{
				{Number: 1, Sequence: 1, From: "Docs: 12 - Update README", To: "DOCS-001: Update README"},
			},
		},
		{
			name:   "最小桁数の指定",
			prefix: "TEST",
			issues: []tracker.Issue{
				builders.Issue(1, "TEST-001: Flaky", "test"),
			},
			width: 2,
			want: []Change{
				{Number: 1, Sequence: 1, From: "TEST-001: Flaky", To: "TEST-01: Flaky"},
			},
		},
		{
			name:   "空集合",
			prefix: "DUP",
			issues: nil,
			width:  3,
			want:   []Change{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Plan(tt.prefix, tt.issues, tt.width)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Plan() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPlanWidensPadding(t *testing.T) {
	issues := make([]tracker.Issue, 0, 1000)
	for i := 1; i <= 1000; i++ {
		issues = append(issues, builders.Issue(i, "Task", "bug"))
	}

	changes := Plan("BUG", issues, 3)
	require.Len(t, changes, 1000)
	assert.Equal(t, "BUG-0001: Task", changes[0].To)
	assert.Equal(t, "BUG-0999: Task", changes[998].To)
	assert.Equal(t, "BUG-1000: Task", changes[999].To)
}

func TestMembers(t *testing.T) {
	issues := []tracker.Issue{
		builders.Issue(1, "no labels"),
		builders.Issue(2, "unknown label", "question"),
		builders.Issue(3, "feature", "feature"),
		builders.Issue(4, "bug and feature", "Bug", "feature"),
		builders.Issue(5, "bug", "bug"),
	}
	bug := mustCategory(t, "bug")
	feature := mustCategory(t, "feature")

	numbers := func(in []tracker.Issue) []int {
		var out []int
		for _, i := range in {
			out = append(out, i.Number)
		}
		return out
	}

	assert.Equal(t, []int{1, 2, 4, 5}, numbers(Members(bug, issues, bug)))
	assert.Equal(t, []int{3}, numbers(Members(feature, issues, bug)))

	// 既定カテゴリを変えるとラベルなしの分類先も変わる
	assert.Equal(t, []int{1, 2, 3}, numbers(Members(feature, issues, feature)))
}

func TestPending(t *testing.T) {
	changes := []Change{
		{Number: 1, From: "BUG-001: a", To: "BUG-001: a"},
		{Number: 2, From: "b", To: "BUG-002: b"},
	}

	pending := Pending(changes)
	require.Len(t, pending, 1)
	assert.Equal(t, 2, pending[0].Number)
	assert.Empty(t, Pending(changes[:1]))
}
