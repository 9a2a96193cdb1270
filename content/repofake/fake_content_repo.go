package repofake

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jrsteele09/go-club-server/content"
	apperrors "github.com/jrsteele09/go-club-server/internal/errors"
)

var _ content.Repo = (*FakeContentRepo)(nil)

// FakeContentRepo keeps records in memory. Err, when set, is returned from
// every call.
type FakeContentRepo struct {
	records map[int64]*content.Record
	nextID  int64
	lock    sync.RWMutex

	Err error
}

func NewFakeContentRepo() *FakeContentRepo {
	return &FakeContentRepo{records: make(map[int64]*content.Record)}
}

func (r *FakeContentRepo) List(_ context.Context, clubID string, kind content.Kind) ([]*content.Record, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	list := make([]*content.Record, 0)
	for _, rec := range r.records {
		if rec.ClubID == clubID && rec.Kind == kind {
			cp := *rec
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID > list[j].ID
	})
	return list, nil
}

func (r *FakeContentRepo) Get(_ context.Context, clubID string, kind content.Kind, id int64) (*content.Record, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	rec, err := r.find(clubID, kind, id)
	if err != nil {
		return nil, err
	}
	cp := *rec
	return &cp, nil
}

func (r *FakeContentRepo) Create(_ context.Context, clubID string, kind content.Kind, draft content.Draft) (*content.Record, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	r.nextID++
	now := time.Now().UTC()
	rec := &content.Record{
		ID:        r.nextID,
		ClubID:    clubID,
		Kind:      kind,
		Title:     draft.Title,
		Body:      draft.Body,
		FileKey:   draft.FileKey,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.records[rec.ID] = rec
	cp := *rec
	return &cp, nil
}

func (r *FakeContentRepo) Update(_ context.Context, clubID string, kind content.Kind, id int64, draft content.Draft) (*content.Record, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	rec, err := r.find(clubID, kind, id)
	if err != nil {
		return nil, err
	}
	rec.Title = draft.Title
	rec.Body = draft.Body
	rec.FileKey = draft.FileKey
	rec.UpdatedAt = time.Now().UTC()
	cp := *rec
	return &cp, nil
}

func (r *FakeContentRepo) Delete(_ context.Context, clubID string, kind content.Kind, id int64) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, err := r.find(clubID, kind, id); err != nil {
		return err
	}
	delete(r.records, id)
	return nil
}

func (r *FakeContentRepo) find(clubID string, kind content.Kind, id int64) (*content.Record, error) {
	rec, ok := r.records[id]
	if !ok || rec.ClubID != clubID || rec.Kind != kind {
		return nil, apperrors.ErrNotFound
	}
	return rec, nil
}
