package schedulestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	domainSchedule "github.com/postline/postline/domains/schedule"
	pkgError "github.com/postline/postline/pkg/error"
)

// FileStore keeps one JSON document per CSV batch under a single directory.
// Writes go through a temp file + rename so a crash mid-write never leaves a
// truncated document behind.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create schedule store dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *FileStore) Exists(name string) bool {
	_, err := os.Stat(s.path(name))
	return err == nil
}

func (s *FileStore) Get(name string) (domainSchedule.Document, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return domainSchedule.Document{}, pkgError.NotFoundError(fmt.Sprintf("schedule document %s not found", name))
		}
		return domainSchedule.Document{}, err
	}

	var doc domainSchedule.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return domainSchedule.Document{}, fmt.Errorf("schedule document %s is corrupt: %w", name, err)
	}
	return doc, nil
}

func (s *FileStore) Save(doc domainSchedule.Document) error {
	name := domainSchedule.DocumentName(doc.CSVPath)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path(name) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path(name)); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// List returns every persisted document in directory-listing order. A corrupt
// document is logged and skipped rather than aborting the whole scan.
func (s *FileStore) List() ([]domainSchedule.Document, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var docs []domainSchedule.Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".json")
		doc, err := s.Get(name)
		if err != nil {
			logrus.WithError(err).Warnf("[STORE] Skipping unreadable schedule document %s", name)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
