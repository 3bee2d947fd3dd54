// Package storage handles the on-disk lifecycle of the tracker document:
// loading with corruption recovery, seeding defaults on first run, and
// atomic whole-document saves.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"weektrack/internal/fsutil"
	"weektrack/internal/tracker"
)

const (
	// DataFile is the single JSON document holding all tracker state.
	DataFile = "tracker.json"

	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600
)

// Seeds are the habit and task-template lists a brand-new document starts
// with. They are a convenience, not a contract; the config file can
// override them.
type Seeds struct {
	Habits        []string
	TaskTemplates []string
}

// DefaultSeeds returns the built-in first-run lists.
func DefaultSeeds() Seeds {
	return Seeds{
		Habits: []string{
			"Read a book",
			"Exercise",
			"Drink water",
			"Sleep before midnight",
			"Meditate",
			"Journal",
			"Walk outside",
		},
		TaskTemplates: []string{
			"Plan the day",
			"Check email",
			"Review notes",
			"Tidy desk",
			"Stretch",
		},
	}
}

// Storage owns the data directory and the document file inside it.
type Storage struct {
	dataDir string
	seeds   Seeds
	now     func() time.Time // injectable clock for deterministic tests
	log     logrus.FieldLogger
}

// New creates the data directory if needed and returns a Storage over it.
// A nil logger is replaced with a discarding one.
func New(dataDir string, seeds Seeds, log logrus.FieldLogger) (*Storage, error) {
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(discard{})
		log = l
	}
	return &Storage{dataDir: dataDir, seeds: seeds, now: time.Now, log: log}, nil
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// SetNowFunc overrides the clock used for corrupt-file timestamps.
// Passing nil resets it to time.Now.
func (s *Storage) SetNowFunc(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// DataDir returns the path to the data directory.
func (s *Storage) DataDir() string {
	return s.dataDir
}

// DataPath returns the full path of the document file.
func (s *Storage) DataPath() string {
	return filepath.Join(s.dataDir, DataFile)
}

// Load reads the tracker document from disk. An absent file yields a
// fresh document seeded with the default lists. An empty or corrupt file
// is recovered from the `.bak` sibling when possible, otherwise moved
// aside and replaced with a seeded document; either way Load returns a
// usable document together with a non-nil error describing what happened.
func (s *Storage) Load() (*tracker.Document, error) {
	data, err := os.ReadFile(s.DataPath())
	if err != nil {
		if os.IsNotExist(err) {
			doc := s.seeded()
			if err := s.Save(doc); err != nil {
				return doc, err
			}
			return doc, nil
		}
		return s.seeded(), fmt.Errorf("read %s: %w", DataFile, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return s.recover(fmt.Errorf("%s is empty", DataFile))
	}

	doc := tracker.NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return s.recover(fmt.Errorf("parse %s: %w", DataFile, err))
	}
	doc.Normalize()
	return doc, nil
}

// Save serializes the full document and writes it atomically, keeping a
// best-effort `.bak` of the previous contents.
func (s *Storage) Save(doc *tracker.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize %s: %w", DataFile, err)
	}

	fsutil.BestEffortBackup(s.DataPath(), dataFilePerm)

	if err := fsutil.WriteFileAtomic(s.DataPath(), data, dataFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", DataFile, err)
	}
	return nil
}

func (s *Storage) seeded() *tracker.Document {
	doc := tracker.NewDocument()
	doc.Habits = append(doc.Habits, s.seeds.Habits...)
	doc.TaskTemplates = append(doc.TaskTemplates, s.seeds.TaskTemplates...)
	return doc
}

// recover handles an unreadable document: try the backup first, then
// preserve the broken file and reset to seeded defaults.
func (s *Storage) recover(cause error) (*tracker.Document, error) {
	path := s.DataPath()

	if bakData, err := os.ReadFile(path + ".bak"); err == nil && len(bytes.TrimSpace(bakData)) > 0 {
		doc := tracker.NewDocument()
		if err := json.Unmarshal(bakData, doc); err == nil {
			doc.Normalize()
			s.quarantine(path)
			_ = s.Save(doc)
			s.log.WithError(cause).Warn("recovered document from backup")
			return doc, fmt.Errorf("%s (recovered from %s.bak)", cause.Error(), DataFile)
		}
	}

	corruptPath := s.quarantine(path)
	doc := s.seeded()
	_ = s.Save(doc)
	s.log.WithError(cause).WithField("moved_to", corruptPath).
		Warn("document reset to defaults")
	return doc, fmt.Errorf("%s (reset to defaults; original moved to %s)", cause.Error(), corruptPath)
}

func (s *Storage) quarantine(path string) string {
	corruptPath := fmt.Sprintf("%s.corrupt.%s", path, s.now().Format("20060102-150405"))
	_ = os.Rename(path, corruptPath)
	return corruptPath
}
