// FILE: internal/repository/implementation/file_faq_repository_impl.go
// File-backed implementation of IFaqRepository
package implementation

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"faq-assist-be/internal/entity"
	"faq-assist-be/internal/repository/contract"
)

var ErrFaqNotFound = errors.New("faq not found")

// FileFaqRepositoryImpl keeps the FAQ corpus in memory and mirrors every
// mutation to dataFile when one is configured. Reads hand out copies so
// retrieval can annotate scores without touching the stored records.
type FileFaqRepositoryImpl struct {
	mu       sync.RWMutex
	faqs     map[int64]*entity.Faq
	nextId   int64
	dataFile string
}

// NewFileFaqRepository loads the corpus. When dataFile exists it wins over
// sourceJson, so admin edits survive restarts; otherwise the seed corpus at
// sourceJson is loaded and, if dataFile is set, written through on the
// first mutation.
func NewFileFaqRepository(sourceJson, dataFile string) (contract.IFaqRepository, error) {
	r := &FileFaqRepositoryImpl{
		faqs:     make(map[int64]*entity.Faq),
		nextId:   1,
		dataFile: dataFile,
	}

	path := sourceJson
	if dataFile != "" {
		if _, err := os.Stat(dataFile); err == nil {
			path = dataFile
		}
	}
	if path != "" {
		if err := r.loadFrom(path); err != nil {
			return nil, fmt.Errorf("load faq corpus from %s: %w", path, err)
		}
	}
	return r, nil
}

func (r *FileFaqRepositoryImpl) loadFrom(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var records []entity.Faq
	if err := json.Unmarshal(raw, &records); err != nil {
		return err
	}
	for i := range records {
		rec := records[i]
		if rec.Id == 0 {
			rec.Id = r.nextId
		}
		r.faqs[rec.Id] = &rec
		if rec.Id >= r.nextId {
			r.nextId = rec.Id + 1
		}
	}
	return nil
}

func (r *FileFaqRepositoryImpl) FindAll() ([]entity.Faq, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Faq, 0, len(r.faqs))
	for _, f := range r.faqs {
		out = append(out, *f.Copy())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	return out, nil
}

func (r *FileFaqRepositoryImpl) FindById(id int64) (*entity.Faq, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.faqs[id]
	if !ok {
		return nil, ErrFaqNotFound
	}
	return f.Copy(), nil
}

func (r *FileFaqRepositoryImpl) Create(faq *entity.Faq) (*entity.Faq, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := faq.Copy()
	stored.Id = r.nextId
	stored.Score = 0
	r.nextId++
	r.faqs[stored.Id] = stored

	if err := r.persistLocked(); err != nil {
		return nil, err
	}
	return stored.Copy(), nil
}

func (r *FileFaqRepositoryImpl) Update(id int64, faq *entity.Faq) (*entity.Faq, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.faqs[id]; !ok {
		return nil, ErrFaqNotFound
	}
	stored := faq.Copy()
	stored.Id = id
	stored.Score = 0
	r.faqs[id] = stored

	if err := r.persistLocked(); err != nil {
		return nil, err
	}
	return stored.Copy(), nil
}

func (r *FileFaqRepositoryImpl) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.faqs[id]; !ok {
		return ErrFaqNotFound
	}
	delete(r.faqs, id)
	return r.persistLocked()
}

func (r *FileFaqRepositoryImpl) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.faqs)
}

// persistLocked writes the corpus atomically via a temp file rename.
// Callers must hold mu.
func (r *FileFaqRepositoryImpl) persistLocked() error {
	if r.dataFile == "" {
		return nil
	}

	records := make([]entity.Faq, 0, len(r.faqs))
	for _, f := range r.faqs {
		rec := *f
		rec.Score = 0
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Id < records[j].Id })

	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	tmp := r.dataFile + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, r.dataFile)
}
