// Package title はIssueタイトルに埋め込まれた "PREFIX-NNN: " 形式の番号を扱う
package title

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultWidth は連番のゼロ埋め桁数
const DefaultWidth = 3

var (
	// "BUG-012: ..." のような番号付きタイトル
	numberedPattern = regexp.MustCompile(`^\s*([A-Z]+)-(\d+)\s*:`)
	// "12 - ..." のような旧形式の連番
	legacyPattern = regexp.MustCompile(`^\d+ - `)
)

// Numbered はタイトルを プレフィックス・連番・本文 に分解したもの
type Numbered struct {
	Prefix    string
	Number    int
	HasNumber bool
	Base      string
}

// StripPrefix はタイトルから番号プレフィックスを取り除いた本文を返す。
// コロンを含む場合は最初のコロン以降をトリムしたもの、さらに旧形式の "NN - " も取り除く。
// コロンを含まない場合は入力をそのまま返す。
func StripPrefix(s string) string {
	idx := strings.Index(s, ":")
	if idx < 0 {
		return s
	}

	rest := strings.TrimSpace(s[idx+1:])
	if loc := legacyPattern.FindStringIndex(rest); loc != nil {
		rest = rest[loc[1]:]
	}
	return rest
}

// Base は採番に使う本文を返す。StripPrefix の結果をトリムし、先頭に残った旧形式の連番も取り除く。
// Base(Format(p, n, Base(s))) == Base(s) が常に成り立つ。
func Base(s string) string {
	b := strings.TrimSpace(StripPrefix(s))
	for {
		loc := legacyPattern.FindStringIndex(b)
		if loc == nil {
			return b
		}
		b = strings.TrimSpace(b[loc[1]:])
	}
}

// Parse はタイトルを分解する。番号がない場合も Base は Base(s) の結果になる
func Parse(s string) Numbered {
	n := Numbered{Base: Base(s)}

	m := numberedPattern.FindStringSubmatch(s)
	if m == nil {
		return n
	}

	num, err := strconv.Atoi(m[2])
	if err != nil {
		// 桁あふれ
		return n
	}

	n.Prefix = m[1]
	n.Number = num
	n.HasNumber = true
	return n
}

// NumberFor はタイトルが指定プレフィックスの番号を持っていればそれを返す
func NumberFor(s, prefix string) (int, bool) {
	n := Parse(s)
	if !n.HasNumber || n.Prefix != prefix {
		return 0, false
	}
	return n.Number, true
}

// Format は "{PREFIX}-{NNN}: {base}" 形式のタイトルを生成する
func Format(prefix string, number int, base string) string {
	return FormatWidth(prefix, number, DefaultWidth, base)
}

// FormatWidth は桁数を指定してタイトルを生成する。番号が桁数を超える場合は切り詰めない。
// 本文が空のときは末尾に空白を残さない
func FormatWidth(prefix string, number, width int, base string) string {
	if width < 1 {
		width = 1
	}
	if base == "" {
		return fmt.Sprintf("%s-%0*d:", prefix, width, number)
	}
	return fmt.Sprintf("%s-%0*d: %s", prefix, width, number, base)
}

// WidthFor は件数 total を表すのに必要なゼロ埋め桁数を返す（最小 min）
func WidthFor(total, min int) int {
	w := len(strconv.Itoa(total))
	if w < min {
		return min
	}
	return w
}
