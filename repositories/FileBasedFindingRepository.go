package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"path"

	log "github.com/sirupsen/logrus"

	"github.com/akmcyber/sitepatch/core"
	"github.com/akmcyber/sitepatch/utils"
)

// FileBasedFindingRepository spills each stored batch to its own
// uuid-named JSON file under the temp dir, keeping memory flat no matter
// how large the audit gets.
type FileBasedFindingRepository struct {
	path  string
	files []string
}

func NewFileBasedFindingRepository() core.FindingRepository {
	return &FileBasedFindingRepository{
		path:  os.TempDir(),
		files: make([]string, 0),
	}
}

func (r *FileBasedFindingRepository) Store(findings []core.Finding) error {
	jsonData, err := json.MarshalIndent(findings, "", "  ")
	if err != nil {
		return err
	}

	filePath := path.Join(r.path, utils.GenerateRandomFilename("json"))
	if err := os.WriteFile(filePath, jsonData, 0644); err != nil {
		return err
	}
	r.files = append(r.files, filePath)
	return nil
}

func (r *FileBasedFindingRepository) Clear() error {
	for _, filePath := range r.files {
		if err := os.Remove(filePath); err != nil {
			return err
		}
	}
	r.files = nil
	return nil
}

func (r *FileBasedFindingRepository) Close() error {
	return r.Clear()
}

func (r *FileBasedFindingRepository) NewIterator() core.FindingIterator {
	return &fileBasedFindingIterator{repository: r}
}

type fileBasedFindingIterator struct {
	repository  *FileBasedFindingRepository
	currentFile int
	findingSet  core.FindingSet
}

func (it *fileBasedFindingIterator) HasNext() bool {
	for it.currentFile < len(it.repository.files) {
		if err := it.loadNextFile(); err != nil {
			log.Errorf("Error loading findings file %s: %v", it.repository.files[it.currentFile], err)
			it.currentFile++
			continue
		}
		return true
	}
	return false
}

func (it *fileBasedFindingIterator) Next() (core.FindingSet, error) {
	if it.findingSet.Findings == nil {
		return core.FindingSet{}, fmt.Errorf("no more findings available")
	}
	set := it.findingSet
	it.findingSet = core.FindingSet{}
	return set, nil
}

func (it *fileBasedFindingIterator) Reset() error {
	it.currentFile = 0
	it.findingSet = core.FindingSet{}
	return nil
}

func (it *fileBasedFindingIterator) loadNextFile() error {
	if it.currentFile >= len(it.repository.files) {
		return fmt.Errorf("no more files to load")
	}

	filePath := it.repository.files[it.currentFile]
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	var findings []core.Finding
	if err := json.Unmarshal(data, &findings); err != nil {
		return fmt.Errorf("failed to parse JSON in file %s: %w", filePath, err)
	}

	it.findingSet = core.FindingSet{Findings: findings}
	it.currentFile++
	return nil
}
