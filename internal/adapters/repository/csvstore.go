package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/okian/compass/internal/domain/catalog"
	"github.com/okian/compass/internal/domain/model"
)

// Default table file names, matching the shipped data directory.
const (
	defaultRolesFile     = "job_roles.csv"
	defaultAffinityFile  = "skills_matrix.csv"
	defaultQuestionsFile = "questions.csv"
)

// CSVStore loads the catalog from three CSV tables and keeps the latest
// successful load in an atomically swapped snapshot. Reads never contend
// with reloads.
type CSVStore struct {
	dir           string
	rolesFile     string
	affinityFile  string
	questionsFile string

	current atomic.Pointer[catalog.Catalog]
}

// NewCSVStore creates a store reading from dir, adjusted by options. No
// load happens until Reload is called; until then the store is
// unavailable.
func NewCSVStore(dir string, opts ...Option) *CSVStore {
	s := &CSVStore{
		dir:           dir,
		rolesFile:     defaultRolesFile,
		affinityFile:  defaultAffinityFile,
		questionsFile: defaultQuestionsFile,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current catalog or ErrUnavailable. Callers hold
// the returned snapshot for the duration of one engine call.
func (s *CSVStore) Snapshot(ctx context.Context) (*catalog.Catalog, error) {
	cat := s.current.Load()
	if cat == nil {
		return nil, ErrUnavailable
	}
	return cat, nil
}

// Available reports whether a snapshot is loaded.
func (s *CSVStore) Available() bool {
	return s.current.Load() != nil
}

// Reload parses all three tables and swaps in a fresh snapshot only when
// every table parses cleanly. A failed reload leaves the previous
// snapshot serving.
func (s *CSVStore) Reload(ctx context.Context) error {
	roles, err := s.loadRoles()
	if err != nil {
		return err
	}
	affinity, err := s.loadAffinity()
	if err != nil {
		return err
	}
	questions, err := s.loadQuestions()
	if err != nil {
		return err
	}

	s.current.Store(catalog.New(roles, affinity, questions))
	return nil
}

// loadRoles reads job_roles.csv: career_name,category,required_skills.
// The required_skills column is a comma-separated label list.
func (s *CSVStore) loadRoles() ([]model.Role, error) {
	records, err := s.readTable(s.rolesFile)
	if err != nil {
		return nil, err
	}
	idx, err := columnIndex(records[0], "career_name", "category", "required_skills")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedTable, s.rolesFile, err)
	}

	roles := make([]model.Role, 0, len(records)-1)
	seen := make(map[string]struct{}, len(records)-1)
	for line, rec := range records[1:] {
		name := strings.TrimSpace(rec[idx["career_name"]])
		if name == "" {
			return nil, fmt.Errorf("%w: %s: empty career_name on line %d", ErrMalformedTable, s.rolesFile, line+2)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate role %q", ErrMalformedTable, s.rolesFile, name)
		}
		seen[name] = struct{}{}
		roles = append(roles, model.Role{
			Name:           name,
			Category:       strings.TrimSpace(rec[idx["category"]]),
			RequiredSkills: splitSkills(rec[idx["required_skills"]]),
		})
	}
	return roles, nil
}

// loadAffinity reads skills_matrix.csv in wide format: a career_name
// column followed by one column per skill label. Blank cells weigh 0;
// negative weights are rejected. Skill labels are normalized to lower
// case so lookups line up with normalized skill sets.
func (s *CSVStore) loadAffinity() ([]model.AffinityRow, error) {
	records, err := s.readTable(s.affinityFile)
	if err != nil {
		return nil, err
	}
	header := records[0]
	if len(header) < 2 || strings.TrimSpace(header[0]) != "career_name" {
		return nil, fmt.Errorf("%w: %s: first column must be career_name", ErrMalformedTable, s.affinityFile)
	}
	skills := make([]string, len(header)-1)
	for i, label := range header[1:] {
		skills[i] = strings.ToLower(strings.TrimSpace(label))
	}

	rows := make([]model.AffinityRow, 0, len(records)-1)
	for line, rec := range records[1:] {
		name := strings.TrimSpace(rec[0])
		if name == "" {
			return nil, fmt.Errorf("%w: %s: empty career_name on line %d", ErrMalformedTable, s.affinityFile, line+2)
		}
		weights := make(map[string]float64, len(skills))
		for i, cell := range rec[1:] {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			w, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: bad weight %q on line %d", ErrMalformedTable, s.affinityFile, cell, line+2)
			}
			if w < 0 {
				return nil, fmt.Errorf("%w: %s: negative weight for %q on line %d", ErrMalformedTable, s.affinityFile, skills[i], line+2)
			}
			if w > 0 {
				weights[skills[i]] = w
			}
		}
		rows = append(rows, model.AffinityRow{RoleName: name, Weights: weights})
	}
	return rows, nil
}

// loadQuestions reads questions.csv: id,question.
func (s *CSVStore) loadQuestions() ([]model.Question, error) {
	records, err := s.readTable(s.questionsFile)
	if err != nil {
		return nil, err
	}
	idx, err := columnIndex(records[0], "id", "question")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedTable, s.questionsFile, err)
	}

	questions := make([]model.Question, 0, len(records)-1)
	for line, rec := range records[1:] {
		id := strings.TrimSpace(rec[idx["id"]])
		text := strings.TrimSpace(rec[idx["question"]])
		if id == "" || text == "" {
			return nil, fmt.Errorf("%w: %s: empty question row on line %d", ErrMalformedTable, s.questionsFile, line+2)
		}
		questions = append(questions, model.Question{ID: id, Text: text})
	}
	return questions, nil
}

// readTable reads a whole CSV file and requires a header plus at least
// zero data rows.
func (s *CSVStore) readTable(name string) ([][]string, error) {
	path := filepath.Join(s.dir, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrUnavailable, name, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedTable, name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s: missing header", ErrMalformedTable, name)
	}
	return records, nil
}

// columnIndex maps required column names to their positions in header.
func columnIndex(header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return idx, nil
}

// splitSkills parses a comma-separated required-skill list.
func splitSkills(cell string) []string {
	parts := strings.Split(cell, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			skills = append(skills, p)
		}
	}
	return skills
}
