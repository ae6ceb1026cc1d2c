package classifier

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SaveModel writes the model to disk as indented JSON.
func (m *GradientBoostingModel) SaveModel(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// LoadModel reads and validates a model from disk.
func LoadModel(path string) (*GradientBoostingModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	return ParseModel(data)
}

// ParseModel decodes and validates a JSON model.
func ParseModel(data []byte) (*GradientBoostingModel, error) {
	var m GradientBoostingModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal model: %w", err)
	}
	if m.Kind != "" && m.Kind != "gradient_boosting" {
		return nil, fmt.Errorf("%w: unsupported kind %q", ErrInvalidModel, m.Kind)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}
