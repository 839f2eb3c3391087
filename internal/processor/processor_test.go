package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/douhashi/issuenum/internal/category"
	"github.com/douhashi/issuenum/internal/testutil/builders"
	"github.com/douhashi/issuenum/internal/testutil/fakes"
	"github.com/douhashi/issuenum/internal/testutil/helpers"
	"github.com/douhashi/issuenum/internal/testutil/mocks"
	"github.com/douhashi/issuenum/internal/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestProcess_ラベルなしのIssue(t *testing.T) {
	ctx := context.Background()
	f := fakes.NewTracker(builders.Issue(1, "Fix crash"))

	outcome, err := New(f).Process(ctx, Trigger{Number: 1, Title: "Fix crash"})
	require.NoError(t, err)

	issue, _ := f.Issue(1)
	assert.Equal(t, []string{"bug"}, issue.Labels)
	assert.Equal(t, "BUG-001: Fix crash", issue.Title)

	assert.Equal(t, "bug", outcome.LabelAdded)
	assert.Equal(t, "bug", outcome.Category)
	assert.Empty(t, outcome.Previous)
	require.Len(t, outcome.Results, 1)
	assert.Equal(t, 1, outcome.Results[0].Applied)

	// ラベル付与は再採番より前
	calls := f.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "AddLabel", calls[0].Method)
	assert.Equal(t, "UpdateTitle", calls[1].Method)
}

func TestProcess_カテゴリの移動(t *testing.T) {
	ctx := context.Background()
	f := fakes.NewTracker(
		builders.Issue(1, "BUG-001: One", "bug"),
		builders.Issue(2, "BUG-002: Two", "bug"),
		builders.Issue(3, "BUG-003: Leak", "feature"),
		builders.Issue(4, "BUG-004: Four", "bug"),
		builders.Issue(5, "FEAT-001: Dark mode", "feature"),
		builders.Issue(6, "FEAT-002: Export", "feature"),
	)

	outcome, err := New(f).Process(ctx, Trigger{
		Number: 3,
		Title:  "BUG-003: Leak",
		Labels: []string{"feature"},
	})
	require.NoError(t, err)

	assert.Equal(t, map[int]string{
		1: "BUG-001: One",
		2: "BUG-002: Two",
		3: "FEAT-003: Leak",
		4: "BUG-003: Four",
		5: "FEAT-001: Dark mode",
		6: "FEAT-002: Export",
	}, f.Titles())

	assert.Equal(t, "feature", outcome.Category)
	assert.Equal(t, []string{"bug"}, outcome.Previous)
	require.Len(t, outcome.Results, 2)
	assert.Equal(t, "FEAT", outcome.Results[0].Prefix)
	assert.Equal(t, "BUG", outcome.Results[1].Prefix)
	assert.Empty(t, f.CallsTo("AddLabel"))
}

func TestProcess_ラベルを2段階で付け替える(t *testing.T) {
	ctx := context.Background()
	f := fakes.NewTracker(
		builders.Issue(1, "BUG-001: One", "bug"),
		builders.Issue(3, "BUG-002: Leak"),
		builders.Issue(4, "BUG-003: Four", "bug"),
	)

	// bug を外した後に feature を付けた時点の labeled イベント
	f.Put(builders.Issue(3, "BUG-002: Leak", "feature"))

	outcome, err := New(f).Process(ctx, Trigger{
		Number: 3,
		Title:  "BUG-002: Leak",
		Labels: []string{"feature"},
	})
	require.NoError(t, err)

	issue, _ := f.Issue(3)
	assert.Equal(t, []string{"feature"}, issue.Labels)
	assert.Empty(t, outcome.LabelAdded)
	assert.Equal(t, "feature", outcome.Category)
	assert.Equal(t, map[int]string{
		1: "BUG-001: One",
		3: "FEAT-001: Leak",
		4: "BUG-002: Four",
	}, f.Titles())
	assert.Empty(t, f.CallsTo("AddLabel"))
}

func TestProcess_タイトル編集前のカテゴリ(t *testing.T) {
	ctx := context.Background()
	f := fakes.NewTracker(
		builders.Issue(1, "OPS-001: Deploy", "ops"),
		builders.Issue(2, "Deploy script", "ops"),
		builders.Issue(3, "OPS-003: Monitor", "ops"),
	)

	// 編集で "OPS-002: " が消されたケース
	outcome, err := New(f).Process(ctx, Trigger{
		Number:        2,
		Title:         "Deploy script",
		PreviousTitle: "OPS-002: Deploy script",
		Labels:        []string{"ops"},
	})
	require.NoError(t, err)

	assert.Equal(t, "ops", outcome.Category)
	assert.Empty(t, outcome.Previous)
	assert.Equal(t, map[int]string{
		1: "OPS-001: Deploy",
		2: "OPS-003: Deploy script",
		3: "OPS-002: Monitor",
	}, f.Titles())
}

func TestProcess_再採番の順序(t *testing.T) {
	ctx := context.Background()
	mt := mocks.NewMockTracker()

	issues := []tracker.Issue{
		builders.Issue(7, "TEST-004: Flaky", "ops"),
		builders.Issue(8, "OPS-001: Deploy", "ops"),
	}
	mt.On("ListIssues", mock.Anything).Return(issues, nil)

	mt.On("UpdateTitle", mock.Anything, 7, "OPS-002: Flaky").Return(nil).Once()

	outcome, err := New(mt).Process(ctx, Trigger{
		Number:        7,
		Title:         "TEST-004: Flaky",
		PreviousTitle: "DOCS-002: Flaky",
		Labels:        []string{"ops"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"documentation", "test"}, outcome.Previous)
	require.Len(t, outcome.Results, 3)
	assert.Equal(t, "OPS", outcome.Results[0].Prefix)
	assert.Equal(t, "DOCS", outcome.Results[1].Prefix)
	assert.Equal(t, "TEST", outcome.Results[2].Prefix)

	mt.AssertNumberOfCalls(t, "ListIssues", 3)
	mt.AssertNotCalled(t, "AddLabel", mock.Anything, mock.Anything, mock.Anything)
	mt.AssertExpectations(t)
}

func TestProcess_排他ラベル(t *testing.T) {
	ctx := context.Background()
	f := fakes.NewTracker(
		builders.Issue(1, "Something", "test", "Feature", "priority:high"),
	)
	log, logs := helpers.NewObservableLogger(zapcore.InfoLevel)

	outcome, err := New(f, WithExclusiveLabels(true), WithLogger(log)).Process(ctx, Trigger{
		Number: 1,
		Title:  "Something",
		Labels: []string{"test", "Feature", "priority:high"},
	})
	require.NoError(t, err)

	issue, _ := f.Issue(1)
	assert.Equal(t, []string{"Feature", "priority:high"}, issue.Labels)
	assert.Equal(t, "FEAT-001: Something", issue.Title)
	assert.Equal(t, []string{"test"}, outcome.LabelsRemoved)
	assert.Equal(t, 1, logs.FilterMessage("Category label removed").Len())
}

func TestProcess_排他ラベル_カテゴリが1つなら何もしない(t *testing.T) {
	ctx := context.Background()
	mt := mocks.NewMockTracker()
	mt.On("ListIssues", mock.Anything).Return([]tracker.Issue{
		builders.Issue(1, "BUG-001: Crash", "Bug", "bug", "priority:high"),
	}, nil)

	outcome, err := New(mt, WithExclusiveLabels(true)).Process(ctx, Trigger{
		Number: 1,
		Title:  "BUG-001: Crash",
		Labels: []string{"Bug", "bug", "priority:high"},
	})
	require.NoError(t, err)

	assert.Empty(t, outcome.LabelsRemoved)
	mt.AssertNotCalled(t, "RemoveLabel", mock.Anything, mock.Anything, mock.Anything)
	mt.AssertNotCalled(t, "UpdateTitle", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcess_既定ラベルの変更(t *testing.T) {
	ctx := context.Background()
	f := fakes.NewTracker(builders.Issue(1, "Write guide"))
	docs, ok := category.Lookup("documentation")
	require.True(t, ok)

	outcome, err := New(f, WithDefaultCategory(docs), WithWidth(2)).Process(ctx, Trigger{Number: 1, Title: "Write guide"})
	require.NoError(t, err)

	assert.Equal(t, "documentation", outcome.LabelAdded)
	assert.Equal(t, "DOCS-01: Write guide", f.Titles()[1])
}

func TestProcess_ドライラン(t *testing.T) {
	ctx := context.Background()
	f := fakes.NewTracker(
		builders.Issue(1, "Fix crash"),
		builders.Issue(2, "BUG-009: Old", "bug", "ops"),
	)

	outcome, err := New(f, WithDryRun(true), WithExclusiveLabels(true)).Process(ctx, Trigger{
		Number: 1,
		Title:  "Fix crash",
	})
	require.NoError(t, err)

	assert.Empty(t, f.Calls())
	assert.Equal(t, "bug", outcome.LabelAdded)
	require.Len(t, outcome.Results, 1)
	assert.True(t, outcome.Results[0].DryRun)
	assert.Len(t, outcome.Results[0].Changes, 2)
}

func TestProcess_エラー(t *testing.T) {
	ctx := context.Background()
	boom := &tracker.Error{Op: "add label", Type: tracker.ErrorTypeAuthentication, StatusCode: 403}

	t.Run("ラベル付与の失敗で中断する", func(t *testing.T) {
		mt := mocks.NewMockTracker()
		mt.On("AddLabel", mock.Anything, 1, "bug").Return(boom)

		_, err := New(mt).Process(ctx, Trigger{Number: 1, Title: "x"})
		require.Error(t, err)
		assert.True(t, tracker.IsAuthentication(err))
		assert.Contains(t, err.Error(), "failed to add label bug to #1")
		mt.AssertNotCalled(t, "ListIssues", mock.Anything)
	})

	t.Run("ラベル削除の失敗で中断する", func(t *testing.T) {
		mt := mocks.NewMockTracker()
		mt.On("RemoveLabel", mock.Anything, 1, "test").Return(errors.New("boom"))

		outcome, err := New(mt, WithExclusiveLabels(true)).Process(ctx, Trigger{
			Number: 1,
			Title:  "x",
			Labels: []string{"feature", "test"},
		})
		require.Error(t, err)
		assert.Empty(t, outcome.LabelsRemoved)
		mt.AssertNotCalled(t, "ListIssues", mock.Anything)
	})

	t.Run("新カテゴリの再採番に失敗すると旧カテゴリは処理しない", func(t *testing.T) {
		f := fakes.NewTracker(
			builders.Issue(1, "BUG-001: Leak", "feature"),
		)
		f.FailUpdate(1, boom)

		outcome, err := New(f).Process(ctx, Trigger{
			Number: 1,
			Title:  "BUG-001: Leak",
			Labels: []string{"feature"},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "failed to reorder FEAT")
		require.Len(t, outcome.Results, 1)
		assert.Equal(t, "FEAT", outcome.Results[0].Prefix)
	})
}

func TestPreviousCategories(t *testing.T) {
	bug := category.Default()

	tests := []struct {
		name   string
		titles []string
		want   []string
	}{
		{name: "番号なし", titles: []string{"Fix", ""}, want: nil},
		{name: "同じカテゴリは含めない", titles: []string{"BUG-001: x"}, want: nil},
		{name: "未知のプレフィックスは無視", titles: []string{"ABC-001: x"}, want: nil},
		{name: "重複を除く", titles: []string{"FEAT-001: x", "FEAT-002: x"}, want: []string{"FEAT"}},
		{name: "出現順", titles: []string{"OPS-001: x", "DUP-001: x"}, want: []string{"OPS", "DUP"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, c := range previousCategories(bug, tt.titles...) {
				got = append(got, c.Prefix)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
