package inspections

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Inspection
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Inspection)}
}

var memorySeq = struct {
	mu sync.Mutex
	n  int
}{}

func nextSeq() int {
	memorySeq.mu.Lock()
	defer memorySeq.mu.Unlock()
	memorySeq.n++
	return memorySeq.n
}

// Create stores a new inspection.
func (r *MemoryRepo) Create(ctx context.Context, i Inspection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[i.ID] = i
	return nil
}

// GetByID returns an inspection by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, inspectionID string) (Inspection, error) {
	if err := ctx.Err(); err != nil {
		return Inspection{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.data[inspectionID]
	if !ok {
		return Inspection{}, ErrNotFound
	}
	return i, nil
}

// Update rewrites an inspection.
func (r *MemoryRepo) Update(ctx context.Context, i Inspection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[i.ID]; !ok {
		return ErrNotFound
	}
	r.data[i.ID] = i
	return nil
}

// ListByInspector returns an inspector's inspections newest-first.
func (r *MemoryRepo) ListByInspector(ctx context.Context, inspectorID string, limit, offset int) ([]Inspection, int, error) {
	return r.listWhere(ctx, func(i Inspection) bool { return i.InspectorID == inspectorID }, limit, offset)
}

// ListByStatus returns inspections in the given status newest-first.
func (r *MemoryRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]Inspection, int, error) {
	return r.listWhere(ctx, func(i Inspection) bool { return i.Status == status }, limit, offset)
}

func (r *MemoryRepo) listWhere(ctx context.Context, keep func(Inspection) bool, limit, offset int) ([]Inspection, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []Inspection
	for _, i := range r.data {
		if keep(i) {
			all = append(all, i)
		}
	}
	sort.Slice(all, func(a, b int) bool {
		if !all[a].CreatedAt.Equal(all[b].CreatedAt) {
			return all[a].CreatedAt.After(all[b].CreatedAt)
		}
		return all[a].ID < all[b].ID
	})

	total := len(all)
	if offset >= total {
		return []Inspection{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

// ListByApplication returns an application's inspections oldest-first.
func (r *MemoryRepo) ListByApplication(ctx context.Context, applicationID string) ([]Inspection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Inspection
	for _, i := range r.data {
		if i.ApplicationID == applicationID {
			out = append(out, i)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if !out[a].CreatedAt.Equal(out[b].CreatedAt) {
			return out[a].CreatedAt.Before(out[b].CreatedAt)
		}
		return out[a].ID < out[b].ID
	})
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)

// TemplateMemoryRepo is an in-memory implementation of TemplateRepo.
type TemplateMemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Template
}

// NewTemplateMemoryRepo constructs a TemplateMemoryRepo.
func NewTemplateMemoryRepo() *TemplateMemoryRepo {
	return &TemplateMemoryRepo{data: make(map[string]Template)}
}

// Create stores a template with its items.
func (r *TemplateMemoryRepo) Create(ctx context.Context, t Template) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.data {
		if strings.EqualFold(existing.FacilityType, t.FacilityType) {
			return ErrDuplicate
		}
	}
	r.data[t.ID] = t
	return nil
}

// GetByID returns a template by ID.
func (r *TemplateMemoryRepo) GetByID(ctx context.Context, templateID string) (Template, error) {
	if err := ctx.Err(); err != nil {
		return Template{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.data[templateID]
	if !ok {
		return Template{}, ErrTemplateNotFound
	}
	return t, nil
}

// GetByFacilityType returns the template for a facility type.
func (r *TemplateMemoryRepo) GetByFacilityType(ctx context.Context, facilityType string) (Template, error) {
	if err := ctx.Err(); err != nil {
		return Template{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.data {
		if t.FacilityType == facilityType {
			return t, nil
		}
	}
	return Template{}, ErrTemplateNotFound
}

// List returns all templates ordered by facility type.
func (r *TemplateMemoryRepo) List(ctx context.Context) ([]Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Template, 0, len(r.data))
	for _, t := range r.data {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FacilityType < out[j].FacilityType })
	return out, nil
}

// Delete removes a template.
func (r *TemplateMemoryRepo) Delete(ctx context.Context, templateID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[templateID]; !ok {
		return ErrTemplateNotFound
	}
	delete(r.data, templateID)
	return nil
}

var _ TemplateRepo = (*TemplateMemoryRepo)(nil)

// ScoreMemoryRepo is an in-memory implementation of ScoreRepo.
type ScoreMemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Score
	ord  map[string]int
}

// NewScoreMemoryRepo constructs a ScoreMemoryRepo.
func NewScoreMemoryRepo() *ScoreMemoryRepo {
	return &ScoreMemoryRepo{data: make(map[string]Score), ord: make(map[string]int)}
}

// CreateBatch stores score rows, preserving insertion order for reads.
func (r *ScoreMemoryRepo) CreateBatch(ctx context.Context, scores []Score) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range scores {
		r.data[s.ID] = s
		r.ord[s.ID] = nextSeq()
	}
	return nil
}

// GetByID returns a score row by ID.
func (r *ScoreMemoryRepo) GetByID(ctx context.Context, scoreID string) (Score, error) {
	if err := ctx.Err(); err != nil {
		return Score{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.data[scoreID]
	if !ok {
		return Score{}, ErrNotFound
	}
	return s, nil
}

// ListByInspection returns an inspection's score rows in insertion order.
func (r *ScoreMemoryRepo) ListByInspection(ctx context.Context, inspectionID string) ([]Score, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Score
	for _, s := range r.data {
		if s.InspectionID == inspectionID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.ord[out[i].ID] < r.ord[out[j].ID] })
	return out, nil
}

// UpdateScore sets the recorded value of one score row.
func (r *ScoreMemoryRepo) UpdateScore(ctx context.Context, scoreID string, value *float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.data[scoreID]
	if !ok {
		return ErrNotFound
	}
	s.Score = value
	r.data[scoreID] = s
	return nil
}

var _ ScoreRepo = (*ScoreMemoryRepo)(nil)
