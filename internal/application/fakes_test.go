package application

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/oksasatya/growth-partner/internal/domain/apperror"
	"github.com/oksasatya/growth-partner/internal/domain/entity"
	repo "github.com/oksasatya/growth-partner/internal/domain/repository"
	"github.com/oksasatya/growth-partner/pkg/helpers"
	"github.com/oksasatya/growth-partner/pkg/mailer"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

type fakeUsers struct {
	mu       sync.Mutex
	byID     map[string]*entity.User
	creates  int
	findErr  error
	raceDupe bool // FindByEmail misses but Create reports a duplicate
}

func newFakeUsers() *fakeUsers { return &fakeUsers{byID: map[string]*entity.User{}} }

func (f *fakeUsers) Create(_ context.Context, in entity.CreateUser) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.raceDupe {
		return nil, apperror.Repository("users.create", fmt.Errorf("%w: unique", repo.ErrDuplicateEmail))
	}
	f.creates++
	now := time.Now().UTC()
	u := &entity.User{ID: entity.GenerateUserID(), Name: in.Name, Email: in.Email, CreatedAt: now, UpdatedAt: now}
	f.byID[u.ID.String()] = u
	return u, nil
}

func (f *fakeUsers) FindByID(_ context.Context, id entity.UserID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.byID[id.String()], nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.raceDupe {
		return nil, nil
	}
	for _, u := range f.byID {
		if u.Email.String() == email {
			return u, nil
		}
	}
	return nil, nil
}

type fakeGoals struct {
	mu      sync.Mutex
	byID    map[string]*entity.Goal
	seq     map[string]int
	next    int
	clock   time.Time
	creates int
	deletes int
	listErr error
}

func newFakeGoals() *fakeGoals {
	return &fakeGoals{byID: map[string]*entity.Goal{}, seq: map[string]int{}, clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeGoals) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeGoals) Create(_ context.Context, in entity.CreateGoal) (*entity.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	now := f.tick()
	g := &entity.Goal{
		ID:          entity.GenerateGoalID(),
		UserID:      in.UserID,
		Title:       in.Title,
		Description: in.Description,
		Status:      entity.GoalStatusNotStarted,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.byID[g.ID.String()] = g
	f.next++
	f.seq[g.ID.String()] = f.next
	cp := *g
	return &cp, nil
}

func (f *fakeGoals) FindByID(_ context.Context, id entity.GoalID) (*entity.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.byID[id.String()]
	if !ok {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

func (f *fakeGoals) FindByUserID(_ context.Context, userID entity.UserID) ([]*entity.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []*entity.Goal{}
	for _, g := range f.byID {
		if g.UserID == userID {
			cp := *g
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return f.seq[out[i].ID.String()] < f.seq[out[j].ID.String()]
	})
	return out, nil
}

func (f *fakeGoals) Update(_ context.Context, id entity.GoalID, in entity.UpdateGoal) (*entity.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.byID[id.String()]
	if !ok {
		return nil, apperror.Repository("goals.update", fmt.Errorf("not found after update"))
	}
	if in.Title.Set {
		g.Title = in.Title.Value
	}
	if in.Description.Set {
		g.Description = in.Description.Value
	}
	if in.Status.Set {
		g.Status = in.Status.Value
	}
	if in.DueDate.Set {
		g.DueDate = in.DueDate.Value
	}
	g.UpdatedAt = f.tick()
	cp := *g
	return &cp, nil
}

func (f *fakeGoals) Delete(_ context.Context, id entity.GoalID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	delete(f.byID, id.String())
	return nil
}

type fakePublisher struct {
	mu   sync.Mutex
	jobs []mailer.NotificationJob
	err  error
}

func (p *fakePublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, body.(mailer.NotificationJob))
	return nil
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.jobs))
	for _, j := range p.jobs {
		out = append(out, j.Type)
	}
	return out
}

type fakeIndex struct {
	indexed map[string]*entity.Goal
	deleted []string
	hits    []GoalHit
	err     error
}

func newFakeIndex() *fakeIndex { return &fakeIndex{indexed: map[string]*entity.Goal{}} }

func (x *fakeIndex) Index(_ context.Context, g *entity.Goal) error {
	if x.err != nil {
		return x.err
	}
	x.indexed[g.ID.String()] = g
	return nil
}

func (x *fakeIndex) Delete(_ context.Context, id entity.GoalID) error {
	if x.err != nil {
		return x.err
	}
	x.deleted = append(x.deleted, id.String())
	delete(x.indexed, id.String())
	return nil
}

func (x *fakeIndex) Search(_ context.Context, _ entity.UserID, _ string, size int) ([]GoalHit, error) {
	if x.err != nil {
		return nil, x.err
	}
	if len(x.hits) > size {
		return x.hits[:size], nil
	}
	return x.hits, nil
}

type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newFakeStore() *fakeStore { return &fakeStore{objects: map[string][]byte{}} }

func (s *fakeStore) Put(_ context.Context, key, _ string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	s.objects[key] = append([]byte(nil), body...)
	return nil
}

func (s *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", helpers.ErrObjectNotFound, key)
	}
	return b, nil
}

type fakeDirty struct {
	mu  sync.Mutex
	set map[string]struct{}
}

func newFakeDirty() *fakeDirty { return &fakeDirty{set: map[string]struct{}{}} }

func (d *fakeDirty) Mark(_ context.Context, userID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.set[userID] = struct{}{}
	return nil
}

func (d *fakeDirty) Pop(_ context.Context, n int) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, n)
	for id := range d.set {
		if len(out) == n {
			break
		}
		out = append(out, id)
		delete(d.set, id)
	}
	return out, nil
}

func (d *fakeDirty) has(userID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.set[userID]
	return ok
}
