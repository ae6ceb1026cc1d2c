// Package hof predicts whether a basketball player will be inducted into the
// Hall of Fame from the career statistics on their basketball-reference page.
//
// It extracts an 18-value feature vector from the page and scores it with a
// pre-trained gradient-boosted classifier.
//
//	p, _ := hof.New()
//	r, _ := p.Predict(page, feature.ExtractConfig{})
//	fmt.Println(r.Player.Name)   // "Tim Duncan"
//	fmt.Println(r.HallOfFamer)   // true
//	fmt.Println(r.Probability)   // 97.31
package hof

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/happyhackingspace/hof/classifier"
	"github.com/happyhackingspace/hof/feature"
)

// ModelFile is the file name New looks for.
const ModelFile = "hof_model.json"

var (
	// ErrExtraction wraps every failure to read features from a page.
	ErrExtraction = errors.New("hof: extraction failed")
	// ErrPrediction wraps every failure of the classifier itself.
	ErrPrediction = errors.New("hof: prediction failed")
)

// Predictor scores player pages with a loaded classifier.
type Predictor struct {
	c classifier.Classifier
}

// Result is the outcome of one prediction.
type Result struct {
	Player      *feature.Profile `json:"player"`
	HallOfFamer bool             `json:"hall_of_famer"`
	Probability float64          `json:"probability"` // percent, 0 to 100
}

// New loads the predictor from "hof_model.json", searching the current
// directory and parent directories up to the module root (where go.mod
// lives), then ModelDir.
func New() (*Predictor, error) {
	path, err := FindModel()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// FindModel returns the path New would load from.
func FindModel() (string, error) {
	if path, ok := findModel(ModelFile); ok {
		return path, nil
	}
	if dir, err := ModelDir(); err == nil {
		path := filepath.Join(dir, ModelFile)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("hof: %s not found", ModelFile)
}

func findModel(name string) (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}
	for {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
		// Stop at module root
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false
}

// ModelDir is the per-user directory a downloaded model is stored in.
func ModelDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("hof: %w", err)
	}
	return filepath.Join(dir, "hof"), nil
}

// Load loads a trained model file. A model that lists its feature names must
// list them in extraction order.
func Load(path string) (*Predictor, error) {
	m, err := classifier.LoadModel(path)
	if err != nil {
		return nil, fmt.Errorf("hof: %w", err)
	}
	if m.NFeatures != feature.NumFeatures {
		return nil, fmt.Errorf("hof: model expects %d features, extractor produces %d", m.NFeatures, feature.NumFeatures)
	}
	if len(m.FeatureNames) > 0 && !slices.Equal(m.FeatureNames, feature.Names()) {
		return nil, fmt.Errorf("hof: model feature order %v does not match extractor order %v", m.FeatureNames, feature.Names())
	}
	return &Predictor{c: m}, nil
}

// NewWithClassifier wraps an already loaded classifier.
func NewWithClassifier(c classifier.Classifier) *Predictor {
	return &Predictor{c: c}
}

// Predict extracts the player's features from page and scores them.
func (p *Predictor) Predict(page []byte, config feature.ExtractConfig) (*Result, error) {
	profile, err := feature.ExtractHTML(page, config)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtraction, err)
	}
	return p.PredictProfile(profile)
}

// PredictProfile scores an already extracted profile.
func (p *Predictor) PredictProfile(profile *feature.Profile) (*Result, error) {
	if p.c == nil {
		return nil, fmt.Errorf("%w: classifier not initialized", ErrPrediction)
	}

	x := profile.Features.Slice()
	class, err := p.c.Predict(x)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPrediction, err)
	}
	proba, err := p.c.PredictProba(x)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPrediction, err)
	}
	if len(proba) < 2 {
		return nil, fmt.Errorf("%w: expected 2 class probabilities, got %d", ErrPrediction, len(proba))
	}

	return &Result{
		Player:      profile,
		HallOfFamer: class == 1,
		Probability: proba[1] * 100,
	}, nil
}
