package present

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/happyhackingspace/hof"
	"github.com/happyhackingspace/hof/classifier"
	"github.com/happyhackingspace/hof/feature"
	"github.com/stretchr/testify/require"
)

func testProfile() *feature.Profile {
	return &feature.Profile{
		Name:        "Test Player",
		HeadshotURL: "https://example.com/headshots/testpl01.jpg",
		Features: feature.Vector{
			15, 1000, 22.5, 6.1, 4.4, 22.9, 47.3, 82.6, 150.3,
			3, 3, 4, 1, 2, 2, 1, 0, 1,
		},
		Missing: []string{"defensive_poy"},
	}
}

func TestResultHallOfFamer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Result(&buf, &hof.Result{Player: testProfile(), HallOfFamer: true, Probability: 87}))
	out := buf.String()

	for _, want := range []string{
		"Player: Test Player",
		"Headshot: https://example.com/headshots/testpl01.jpg",
		"Test Player is predicted to be: Hall of Famer",
		"Probability: 87.00%",
		"Games Played",
		"1000",
		"22.5",
		"0 (not on page)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Not a Hall of Famer") {
		t.Errorf("wrong verdict:\n%s", out)
	}
}

func TestResultOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Result(&buf, &hof.Result{Player: testProfile(), Probability: 11.92}))
	out := buf.String()

	last := -1
	for _, label := range []string{"Player:", "Headshot:", "is predicted to be: Not a Hall of Famer", "Probability: 11.92%"} {
		i := strings.Index(out, label)
		if i <= last {
			t.Fatalf("%q out of order:\n%s", label, out)
		}
		last = i
	}
	for _, spec := range feature.Specs() {
		i := strings.Index(out, spec.Label+" ")
		if i <= last {
			t.Fatalf("%q out of order:\n%s", spec.Label, out)
		}
		last = i
	}
}

func TestResultWithoutHeadshot(t *testing.T) {
	p := testProfile()
	p.HeadshotURL = ""

	var buf bytes.Buffer
	require.NoError(t, Result(&buf, &hof.Result{Player: p}))
	if strings.Contains(buf.String(), "Headshot:") {
		t.Errorf("unexpected headshot line:\n%s", buf.String())
	}
}

func TestValue(t *testing.T) {
	specs := feature.Specs()
	tests := []struct {
		idx  int
		v    float64
		want string
	}{
		{feature.Games, 1000, "1000"},
		{feature.CareerLength, 19, "19"},
		{feature.PointsPerGame, 22.5, "22.5"},
		{feature.FieldGoalPct, 0.473, "0.473"},
		{feature.WinShares, 0, "0"},
	}
	for _, tt := range tests {
		if got := Value(specs[tt.idx], tt.v); got != tt.want {
			t.Errorf("Value(%s, %v) = %q, want %q", specs[tt.idx].Name, tt.v, got, tt.want)
		}
	}
}

func TestProbability(t *testing.T) {
	if got := Probability(87); got != "87.00%" {
		t.Errorf("Probability(87) = %q", got)
	}
	if got := Probability(100 * 0.119202922); got != "11.92%" {
		t.Errorf("Probability = %q", got)
	}
}

func TestProfile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Profile(&buf, testProfile()))
	out := buf.String()
	if !strings.Contains(out, "Player: Test Player") || !strings.Contains(out, "Scoring Titles") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, "predicted") {
		t.Errorf("profile output should not include a prediction:\n%s", out)
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, &hof.Result{Player: testProfile(), HallOfFamer: true, Probability: 87}))

	var got hof.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	if !got.HallOfFamer || got.Probability != 87 || got.Player.Features[feature.Games] != 1000 {
		t.Errorf("round trip = %+v", got)
	}
}

func TestModel(t *testing.T) {
	m := &classifier.GradientBoostingModel{
		NFeatures:    18,
		LearningRate: 0.1,
		Trees: []classifier.Tree{{
			ChildrenLeft:  []int{-1},
			ChildrenRight: []int{-1},
			Feature:       []int{-2},
			Threshold:     []float64{-2},
			Value:         []float64{0.5},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, Model(&buf, "hof_model.json", m))
	out := buf.String()
	for _, want := range []string{"hof_model.json", "18", "0.1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
