package ratings

import (
	"errors"
	"os"

	"github.com/agentdir/agent-directory/internal/persistence"
	"github.com/agentdir/agent-directory/model"
)

// JSONBackend stores the rating log as a single JSON array on disk. Every
// persist rewrites the file atomically; fine for the volumes a directory
// sees, and the file stays hand-inspectable.
type JSONBackend struct {
	path string
}

// NewJSONBackend creates a backend writing to the given file path.
func NewJSONBackend(path string) *JSONBackend {
	return &JSONBackend{path: path}
}

// LoadAll reads the full log. A missing file yields an empty log.
func (b *JSONBackend) LoadAll() ([]model.Rating, error) {
	var ratings []model.Rating
	if err := persistence.LoadJSON(b.path, &ratings); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return ratings, nil
}

// PersistAll writes the full log back to disk.
func (b *JSONBackend) PersistAll(ratings []model.Rating) error {
	return persistence.SaveJSON(b.path, ratings)
}
