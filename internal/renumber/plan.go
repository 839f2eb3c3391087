// Package renumber はカテゴリごとのIssue番号を 1..K の連番に揃える
package renumber

import (
	"sort"

	"github.com/douhashi/issuenum/internal/category"
	"github.com/douhashi/issuenum/internal/title"
	"github.com/douhashi/issuenum/internal/tracker"
)

// Change は1件のIssueに対する採番結果
type Change struct {
	Number   int    `json:"number" yaml:"number"`
	Sequence int    `json:"sequence" yaml:"sequence"`
	From     string `json:"from" yaml:"from"`
	To       string `json:"to" yaml:"to"`
}

// Changed はタイトルの更新が必要かを返す
func (c Change) Changed() bool {
	return c.From != c.To
}

// Members はラベルが cat に分類されるIssueを返す。既知ラベルがないIssueは def に分類される
func Members(cat category.Category, issues []tracker.Issue, def category.Category) []tracker.Issue {
	var out []tracker.Issue
	for _, issue := range issues {
		if category.ClassifyWithDefault(issue.Labels, def).Prefix == cat.Prefix {
			out = append(out, issue)
		}
	}
	return out
}

type member struct {
	issue     tracker.Issue
	number    int
	hasNumber bool
	base      string
}

// Plan はカテゴリのIssueを並べ替えて連番を割り当てる。
// 並び順は、このプレフィックスの番号を持つIssueが先（番号の昇順）、
// 番号を持たないIssueが後（Issue番号の昇順）。同順位はIssue番号の昇順。
// 桁数は minWidth と件数の桁数の大きい方。戻り値は全Issue分で、並び順のまま返す。
func Plan(prefix string, issues []tracker.Issue, minWidth int) []Change {
	members := make([]member, 0, len(issues))
	for _, issue := range issues {
		n, ok := title.NumberFor(issue.Title, prefix)
		members = append(members, member{
			issue:     issue,
			number:    n,
			hasNumber: ok,
			base:      title.Base(issue.Title),
		})
	}

	sort.SliceStable(members, func(i, j int) bool {
		a, b := members[i], members[j]
		if a.hasNumber != b.hasNumber {
			return a.hasNumber
		}
		if a.hasNumber && a.number != b.number {
			return a.number < b.number
		}
		return a.issue.Number < b.issue.Number
	})

	width := title.WidthFor(len(members), minWidth)
	changes := make([]Change, 0, len(members))
	for i, m := range members {
		changes = append(changes, Change{
			Number:   m.issue.Number,
			Sequence: i + 1,
			From:     m.issue.Title,
			To:       title.FormatWidth(prefix, i+1, width, m.base),
		})
	}
	return changes
}

// Pending は更新が必要な変更だけを返す
func Pending(changes []Change) []Change {
	var out []Change
	for _, c := range changes {
		if c.Changed() {
			out = append(out, c)
		}
	}
	return out
}
