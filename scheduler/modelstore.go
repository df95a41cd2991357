package scheduler

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ModelStore abstracts where trained models live, so the ranking component
// does not depend on a particular file layout.
type ModelStore interface {
	Save(model *RankingModel) error
	Load() (*RankingModel, error)
	Exists() bool
}

const modelFileName = "ranking_model.json"

// FileModelStore persists the model weights and scaler as JSON in a
// directory.
type FileModelStore struct {
	Dir string
}

func NewFileModelStore(dir string) *FileModelStore {
	return &FileModelStore{Dir: dir}
}

func (s *FileModelStore) path() string {
	return filepath.Join(s.Dir, modelFileName)
}

func (s *FileModelStore) Save(model *RankingModel) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return err
	}
	// Write-then-rename so a crash mid-save never leaves a torn model file.
	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path())
}

func (s *FileModelStore) Load() (*RankingModel, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		return nil, err
	}
	var model RankingModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, err
	}
	if model.EncodingVersion != EncodingVersion {
		return nil, fmt.Errorf("model encoding version %d does not match current %d; retrain required",
			model.EncodingVersion, EncodingVersion)
	}
	return &model, nil
}

func (s *FileModelStore) Exists() bool {
	_, err := os.Stat(s.path())
	return err == nil
}
