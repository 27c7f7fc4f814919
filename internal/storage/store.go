package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/gridwalk/internal/grid"
	"github.com/san-kum/gridwalk/internal/search"
)

const (
	metadataFile = "metadata.json"
	eventsFile   = "events.csv"
)

// ErrNotFound indicates an unknown run id.
var ErrNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata summarises one search run. The board layout itself is not
// stored.
type RunMetadata struct {
	ID         string        `json:"id"`
	Timestamp  time.Time     `json:"timestamp"`
	Source     string        `json:"source"`
	Rows       int           `json:"rows"`
	Cols       int           `json:"cols"`
	Start      grid.Position `json:"start"`
	End        grid.Position `json:"end"`
	Walls      int           `json:"walls"`
	Outcome    string        `json:"outcome"`
	PathLength int           `json:"path_length"`
	Visited    int           `json:"visited"`
	Events     int           `json:"events"`
	DelayMs    int64         `json:"delay_ms"`
	Truncated  bool          `json:"truncated,omitempty"`
}

// NewMetadata fills the run summary from the grid and its result.
func NewMetadata(source string, g *grid.Grid, res *search.Result, delay time.Duration) RunMetadata {
	start, _ := g.Start()
	end, _ := g.End()
	return RunMetadata{
		Source:     source,
		Rows:       g.Rows(),
		Cols:       g.Cols(),
		Start:      start,
		End:        end,
		Walls:      g.WallCount(),
		Outcome:    res.Outcome.Kind.String(),
		PathLength: len(res.Outcome.Path),
		Visited:    res.Visited,
		Events:     len(res.Events),
		DelayMs:    delay.Milliseconds(),
		Truncated:  res.Gap,
	}
}

// Save writes meta and the run's event trace under a fresh run id.
func (s *Store) Save(meta RunMetadata, res *search.Result) (string, error) {
	meta.ID = uuid.NewString()
	meta.Timestamp = time.Now()
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, eventsFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"step", "kind", "row", "col", "depth"}); err != nil {
		return "", err
	}
	for i, ev := range res.Events {
		row := []string{
			strconv.Itoa(i),
			ev.Kind.String(),
			strconv.Itoa(ev.Pos.Row),
			strconv.Itoa(ev.Pos.Col),
			strconv.Itoa(ev.Depth),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns every stored run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadEvents reads a run's event trace back in emission order.
func (s *Store) LoadEvents(runID string) ([]search.Event, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, eventsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 5

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []search.Event{}, nil
	}

	events := make([]search.Event, 0, len(records)-1)
	for i, rec := range records[1:] {
		kind, err := search.ParseEventKind(rec[1])
		if err != nil {
			return nil, fmt.Errorf("storage: %s line %d: %w", eventsFile, i+2, err)
		}
		nums := make([]int, 3)
		for j, field := range rec[2:] {
			if nums[j], err = strconv.Atoi(field); err != nil {
				return nil, fmt.Errorf("storage: %s line %d: %w", eventsFile, i+2, err)
			}
		}
		events = append(events, search.Event{Kind: kind, Pos: grid.Pos(nums[0], nums[1]), Depth: nums[2]})
	}

	return events, nil
}
