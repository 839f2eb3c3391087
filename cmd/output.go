package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/douhashi/issuenum/internal/processor"
	"github.com/douhashi/issuenum/internal/renumber"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// 出力形式
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	headerColor = color.New(color.Bold)
	fromColor   = color.New(color.FgRed)
	toColor     = color.New(color.FgGreen)
	noteColor   = color.New(color.FgHiBlack)
)

// validateFormat は --output の値を検証する
func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (expected text, json or yaml)", format)
	}
}

// writeStructured はJSONまたはYAMLで書き出す。textの場合は false を返す
func writeStructured(w io.Writer, format string, v interface{}) (bool, error) {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	default:
		return false, nil
	}
}

// printResults は再採番の結果を出力する
func printResults(w io.Writer, format string, results []*renumber.Result) error {
	if results == nil {
		results = []*renumber.Result{}
	}
	if ok, err := writeStructured(w, format, results); ok {
		return err
	}
	for _, r := range results {
		writeResultText(w, r)
	}
	return nil
}

// printOutcome は process の結果を出力する
func printOutcome(w io.Writer, format string, outcome *processor.Outcome) error {
	if ok, err := writeStructured(w, format, outcome); ok {
		return err
	}

	fmt.Fprintf(w, "%s #%d -> %s\n", headerColor.Sprint("Issue"), outcome.Issue, outcome.Category)
	if outcome.LabelAdded != "" {
		fmt.Fprintf(w, "  label added: %s\n", toColor.Sprint(outcome.LabelAdded))
	}
	if len(outcome.LabelsRemoved) > 0 {
		fmt.Fprintf(w, "  labels removed: %s\n", fromColor.Sprint(strings.Join(outcome.LabelsRemoved, ", ")))
	}
	if len(outcome.Previous) > 0 {
		fmt.Fprintf(w, "  previous categories: %s\n", strings.Join(outcome.Previous, ", "))
	}
	for _, r := range outcome.Results {
		writeResultText(w, r)
	}
	return nil
}

func writeResultText(w io.Writer, r *renumber.Result) {
	verb := "updated"
	count := r.Applied
	if r.DryRun {
		verb = "would update"
		count = len(r.Changes)
	}
	fmt.Fprintf(w, "%s %d issues, %s %d\n", headerColor.Sprintf("%-5s", r.Prefix), r.Total, verb, count)

	if len(r.Changes) == 0 {
		fmt.Fprintln(w, noteColor.Sprint("  (no changes)"))
		return
	}
	for _, c := range r.Changes {
		fmt.Fprintf(w, "  #%-5d %s -> %s\n", c.Number, fromColor.Sprint(c.From), toColor.Sprint(c.To))
	}
}
