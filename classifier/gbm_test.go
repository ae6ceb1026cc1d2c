package classifier

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// stumpModel splits on feature 1: <= 4.5 scores -2, otherwise +2.
func stumpModel() *GradientBoostingModel {
	return &GradientBoostingModel{
		Kind:         "gradient_boosting",
		NFeatures:    3,
		LearningRate: 1.0,
		Trees: []Tree{{
			ChildrenLeft:  []int{1, -1, -1},
			ChildrenRight: []int{2, -1, -1},
			Feature:       []int{1, -2, -2},
			Threshold:     []float64{4.5, -2, -2},
			Value:         []float64{0, -2.0, 2.0},
		}},
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPredictProba(t *testing.T) {
	m := stumpModel()

	tests := []struct {
		name  string
		x     []float64
		wantP float64
		class int
	}{
		{"left leaf", []float64{0, 3, 0}, 1 / (1 + math.Exp(2)), 0},
		{"threshold goes left", []float64{0, 4.5, 0}, 1 / (1 + math.Exp(2)), 0},
		{"right leaf", []float64{0, 10, 0}, 1 / (1 + math.Exp(-2)), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proba, err := m.PredictProba(tt.x)
			if err != nil {
				t.Fatal(err)
			}
			if len(proba) != 2 || !approx(proba[1], tt.wantP) || !approx(proba[0]+proba[1], 1) {
				t.Errorf("PredictProba = %v, want [%v %v]", proba, 1-tt.wantP, tt.wantP)
			}
			class, err := m.Predict(tt.x)
			if err != nil {
				t.Fatal(err)
			}
			if class != tt.class {
				t.Errorf("Predict = %d, want %d", class, tt.class)
			}
		})
	}
}

func TestDecisionFunctionSumsTrees(t *testing.T) {
	m := stumpModel()
	m.Init = -0.5
	m.LearningRate = 0.1
	m.Trees = append(m.Trees, m.Trees[0])

	raw, err := m.DecisionFunction([]float64{0, 10, 0})
	if err != nil {
		t.Fatal(err)
	}
	if !approx(raw, -0.5+0.1*2+0.1*2) {
		t.Errorf("raw = %v, want -0.1", raw)
	}
}

func TestFeatureCountMismatch(t *testing.T) {
	m := stumpModel()
	if _, err := m.Predict([]float64{1, 2}); !errors.Is(err, ErrFeatureCount) {
		t.Errorf("Predict err = %v, want ErrFeatureCount", err)
	}
	if _, err := m.PredictProba(make([]float64, 4)); !errors.Is(err, ErrFeatureCount) {
		t.Errorf("PredictProba err = %v, want ErrFeatureCount", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *GradientBoostingModel)
	}{
		{"no features", func(m *GradientBoostingModel) { m.NFeatures = 0 }},
		{"no trees", func(m *GradientBoostingModel) { m.Trees = nil }},
		{"name count", func(m *GradientBoostingModel) { m.FeatureNames = []string{"a"} }},
		{"short arrays", func(m *GradientBoostingModel) { m.Trees[0].Value = m.Trees[0].Value[:2] }},
		{"backward child", func(m *GradientBoostingModel) { m.Trees[0].ChildrenLeft[0] = 0 }},
		{"child out of range", func(m *GradientBoostingModel) { m.Trees[0].ChildrenRight[0] = 7 }},
		{"one child", func(m *GradientBoostingModel) { m.Trees[0].ChildrenRight[1] = 2 }},
		{"feature out of range", func(m *GradientBoostingModel) { m.Trees[0].Feature[0] = 3 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := stumpModel()
			tt.mutate(m)
			if err := m.Validate(); !errors.Is(err, ErrInvalidModel) {
				t.Errorf("Validate err = %v, want ErrInvalidModel", err)
			}
		})
	}

	if err := stumpModel().Validate(); err != nil {
		t.Errorf("valid model rejected: %v", err)
	}
}

func TestSaveLoadModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "hof_model.json")
	m := stumpModel()
	m.FeatureNames = []string{"a", "b", "c"}

	require.NoError(t, m.SaveModel(path))
	loaded, err := LoadModel(path)
	require.NoError(t, err)

	if diff := cmp.Diff(m, loaded); diff != "" {
		t.Errorf("loaded model differs (-saved +loaded):\n%s", diff)
	}
	if loaded.NodeCount() != 3 {
		t.Errorf("NodeCount = %d, want 3", loaded.NodeCount())
	}
}

func TestLoadModelErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadModel(filepath.Join(dir, "missing.json"))
	require.Error(t, err)

	garbage := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte("{not json"), 0644))
	_, err = LoadModel(garbage)
	require.Error(t, err)

	_, err = ParseModel([]byte(`{"kind":"random_forest","n_features":1,"trees":[]}`))
	if !errors.Is(err, ErrInvalidModel) {
		t.Errorf("unsupported kind err = %v, want ErrInvalidModel", err)
	}
}

func TestModelSatisfiesClassifier(t *testing.T) {
	var c Classifier = stumpModel()
	if _, err := c.Predict([]float64{0, 0, 0}); err != nil {
		t.Fatal(err)
	}
}
