package classifier

import (
	"fmt"
	"math"
)

// GradientBoostingModel is a fitted binary gradient-boosted tree ensemble
// with log-loss, exported from its training environment to JSON.
type GradientBoostingModel struct {
	Kind         string   `json:"kind"`
	NFeatures    int      `json:"n_features"`
	FeatureNames []string `json:"feature_names,omitempty"`
	LearningRate float64  `json:"learning_rate"`
	Init         float64  `json:"init"` // raw log-odds prior
	Trees        []Tree   `json:"trees"`
}

// Tree is one regression tree in array form. Node 0 is the root; a node is
// a leaf when its left child is -1.
type Tree struct {
	ChildrenLeft  []int     `json:"children_left"`
	ChildrenRight []int     `json:"children_right"`
	Feature       []int     `json:"feature"`
	Threshold     []float64 `json:"threshold"`
	Value         []float64 `json:"value"`
}

const leaf = -1

// Validate checks that every tree is well formed for NFeatures inputs.
func (m *GradientBoostingModel) Validate() error {
	if m.NFeatures <= 0 {
		return fmt.Errorf("%w: n_features must be positive", ErrInvalidModel)
	}
	if len(m.FeatureNames) > 0 && len(m.FeatureNames) != m.NFeatures {
		return fmt.Errorf("%w: %d feature names for %d features", ErrInvalidModel, len(m.FeatureNames), m.NFeatures)
	}
	if len(m.Trees) == 0 {
		return fmt.Errorf("%w: no trees", ErrInvalidModel)
	}
	for i := range m.Trees {
		if err := m.Trees[i].validate(m.NFeatures); err != nil {
			return fmt.Errorf("%w: tree %d: %v", ErrInvalidModel, i, err)
		}
	}
	return nil
}

func (t *Tree) validate(nFeatures int) error {
	n := len(t.ChildrenLeft)
	if n == 0 {
		return fmt.Errorf("empty tree")
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return fmt.Errorf("node arrays have different lengths")
	}
	for node := range n {
		left, right := t.ChildrenLeft[node], t.ChildrenRight[node]
		if left == leaf {
			if right != leaf {
				return fmt.Errorf("node %d has only one child", node)
			}
			continue
		}
		// Children always come after their parent, so traversal terminates.
		if left <= node || left >= n || right <= node || right >= n {
			return fmt.Errorf("node %d has out of range children %d, %d", node, left, right)
		}
		if f := t.Feature[node]; f < 0 || f >= nFeatures {
			return fmt.Errorf("node %d splits on feature %d", node, f)
		}
	}
	return nil
}

func (t *Tree) predict(x []float64) float64 {
	node := 0
	for t.ChildrenLeft[node] != leaf {
		if x[t.Feature[node]] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return t.Value[node]
}

// DecisionFunction returns the raw log-odds score for x.
func (m *GradientBoostingModel) DecisionFunction(x []float64) (float64, error) {
	if len(x) != m.NFeatures {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrFeatureCount, len(x), m.NFeatures)
	}
	raw := m.Init
	for i := range m.Trees {
		raw += m.LearningRate * m.Trees[i].predict(x)
	}
	return raw, nil
}

// PredictProba returns [P(class 0), P(class 1)].
func (m *GradientBoostingModel) PredictProba(x []float64) ([]float64, error) {
	raw, err := m.DecisionFunction(x)
	if err != nil {
		return nil, err
	}
	p := sigmoid(raw)
	return []float64{1 - p, p}, nil
}

// Predict returns 1 when P(class 1) exceeds 0.5.
func (m *GradientBoostingModel) Predict(x []float64) (int, error) {
	proba, err := m.PredictProba(x)
	if err != nil {
		return 0, err
	}
	if proba[1] > 0.5 {
		return 1, nil
	}
	return 0, nil
}

// NodeCount returns the total number of nodes across all trees.
func (m *GradientBoostingModel) NodeCount() int {
	n := 0
	for i := range m.Trees {
		n += len(m.Trees[i].ChildrenLeft)
	}
	return n
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
