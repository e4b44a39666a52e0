package diffusion

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a JSON discretization artifact from path.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	var art Artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("decode artifact %s: %w", path, err)
	}
	return New(art)
}

// Save writes the model as a JSON artifact to path.
func Save(path string, m *Model) error {
	data, err := json.MarshalIndent(m.Artifact(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
