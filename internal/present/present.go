// Package present renders prediction results for the terminal.
package present

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/happyhackingspace/hof"
	"github.com/happyhackingspace/hof/classifier"
	"github.com/happyhackingspace/hof/feature"
	"github.com/jedib0t/go-pretty/v6/table"
)

const missingMark = " (not on page)"

// Verdict is the label shown for a prediction.
func Verdict(hallOfFamer bool) string {
	if hallOfFamer {
		return "Hall of Famer"
	}
	return "Not a Hall of Famer"
}

// Probability formats a 0-100 probability with two decimals.
func Probability(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}

// Value formats one feature value. Whole-number features print without
// decimals.
func Value(spec feature.Spec, v float64) string {
	if spec.Integer {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Result writes the player, verdict, probability and the feature table.
func Result(w io.Writer, r *hof.Result) error {
	p := r.Player
	if _, err := fmt.Fprintf(w, "Player: %s\n", p.Name); err != nil {
		return err
	}
	if p.HeadshotURL != "" {
		fmt.Fprintf(w, "Headshot: %s\n", p.HeadshotURL)
	}
	fmt.Fprintf(w, "%s is predicted to be: %s\n", p.Name, Verdict(r.HallOfFamer))
	fmt.Fprintf(w, "Probability: %s\n\n", Probability(r.Probability))
	return featureTable(w, p)
}

// Profile writes the player and the feature table without a prediction.
func Profile(w io.Writer, p *feature.Profile) error {
	if _, err := fmt.Fprintf(w, "Player: %s\n", p.Name); err != nil {
		return err
	}
	if p.HeadshotURL != "" {
		fmt.Fprintf(w, "Headshot: %s\n", p.HeadshotURL)
	}
	fmt.Fprintln(w)
	return featureTable(w, p)
}

func featureTable(w io.Writer, p *feature.Profile) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Stat", "Value"})

	for i, spec := range feature.Specs() {
		value := Value(spec, p.Features[i])
		if slices.Contains(p.Missing, spec.Name) {
			value += missingMark
		}
		t.AppendRow(table.Row{spec.Label, value})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
	return nil
}

// Model writes a summary of a loaded model.
func Model(w io.Writer, path string, m *classifier.GradientBoostingModel) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Property", "Value"})
	t.AppendRows([]table.Row{
		{"Path", path},
		{"Features", m.NFeatures},
		{"Trees", len(m.Trees)},
		{"Nodes", m.NodeCount()},
		{"Learning rate", m.LearningRate},
		{"Init (log-odds)", m.Init},
		{"Feature names", len(m.FeatureNames) > 0},
	})
	t.SetStyle(table.StyleRounded)
	t.Render()
	return nil
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}
