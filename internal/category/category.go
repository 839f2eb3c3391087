// Package category はIssueの種別ラベルとタイトルプレフィックスの対応表を提供する
package category

import (
	"sort"
	"strings"
)

// Category はIssueの種別を表す
type Category struct {
	// Label はIssueに付与されるラベル名（小文字）
	Label string
	// Prefix はタイトルに埋め込まれる大文字のプレフィックス
	Prefix string
	// Color はラベル作成時の色
	Color string
	// Description はラベル作成時の説明文
	Description string
}

// DefaultLabel は既知のラベルが一つもない場合に使用されるラベル
const DefaultLabel = "bug"

// 起動時に一度だけ構築され、以後変更されない
var table = []Category{
	{Label: "bug", Prefix: "BUG", Color: "d73a4a", Description: "Something isn't working"},
	{Label: "test", Prefix: "TEST", Color: "fbca04", Description: "Test coverage or test infrastructure"},
	{Label: "feature", Prefix: "FEAT", Color: "a2eeef", Description: "New feature or request"},
	{Label: "documentation", Prefix: "DOCS", Color: "0075ca", Description: "Improvements or additions to documentation"},
	{Label: "ops", Prefix: "OPS", Color: "5319e7", Description: "Operations, CI and infrastructure"},
	{Label: "duplicate", Prefix: "DUP", Color: "cfd3d7", Description: "This issue or pull request already exists"},
}

var (
	byLabel  = make(map[string]Category, len(table))
	byPrefix = make(map[string]Category, len(table))
)

func init() {
	for _, c := range table {
		byLabel[c.Label] = c
		byPrefix[c.Prefix] = c
	}
}

// All は全カテゴリを定義順で返す
func All() []Category {
	out := make([]Category, len(table))
	copy(out, table)
	return out
}

// Default はデフォルトカテゴリ（bug）を返す
func Default() Category {
	return byLabel[DefaultLabel]
}

// Lookup はラベル名からカテゴリを取得する（大文字小文字は区別しない）
func Lookup(label string) (Category, bool) {
	c, ok := byLabel[strings.ToLower(strings.TrimSpace(label))]
	return c, ok
}

// FromPrefix はタイトルプレフィックスからカテゴリを取得する
func FromPrefix(prefix string) (Category, bool) {
	c, ok := byPrefix[prefix]
	return c, ok
}

// Parse はラベル名またはプレフィックスのどちらかからカテゴリを解決する
func Parse(s string) (Category, bool) {
	if c, ok := Lookup(s); ok {
		return c, true
	}
	return FromPrefix(strings.ToUpper(strings.TrimSpace(s)))
}

// Classify はラベル集合からカテゴリを決定する。
// ラベルは小文字化した名前の辞書順に走査し、最初に一致したものを採用する。
// 一致するラベルがなければ bug を返す。
func Classify(labels []string) Category {
	return ClassifyWithDefault(labels, Default())
}

// ClassifyWithDefault は一致するラベルがない場合に def を返す Classify
func ClassifyWithDefault(labels []string, def Category) Category {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, strings.ToLower(strings.TrimSpace(l)))
	}
	sort.Strings(names)

	for _, name := range names {
		if c, ok := byLabel[name]; ok {
			return c
		}
	}
	return def
}

// Matching はラベル集合に含まれる既知カテゴリを辞書順・重複なしで返す
func Matching(labels []string) []Category {
	seen := make(map[string]bool)
	var out []Category
	for _, l := range labels {
		c, ok := Lookup(l)
		if !ok || seen[c.Label] {
			continue
		}
		seen[c.Label] = true
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// String はラベル名を返す
func (c Category) String() string {
	return c.Label
}
