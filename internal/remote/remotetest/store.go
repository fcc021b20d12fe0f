// Package remotetest provides an in-memory remote.Store for tests.
package remotetest

import (
	"context"
	"errors"
	"sync"

	"github.com/khoahotran/growth-tracker/internal/remote"
)

var ErrRemoteDown = errors.New("remote down")

// Store keeps rows in memory, newest first. Writes are validated with
// remote.Validate like the HTTP client does. Fields may be read directly once
// no request is in flight.
type Store struct {
	mu              sync.Mutex
	ProfileRows     map[string]remote.ProfileRow
	SkillRows       []remote.SkillRow
	GoalRows        []remote.GoalRow
	AchievementRows []remote.AchievementRow
	Imports         int
	FailReads       bool
	FailWrites      bool
}

func New() *Store {
	return &Store{ProfileRows: map[string]remote.ProfileRow{}}
}

func (f *Store) Profiles() remote.ProfileRepository { return profiles{f} }
func (f *Store) Skills() remote.SkillRepository {
	return &collection[remote.SkillRow]{f: f, rows: &f.SkillRows,
		id: func(r remote.SkillRow) string { return r.ID }, owner: func(r remote.SkillRow) string { return r.UserID }}
}
func (f *Store) Goals() remote.GoalRepository {
	return &collection[remote.GoalRow]{f: f, rows: &f.GoalRows,
		id: func(r remote.GoalRow) string { return r.ID }, owner: func(r remote.GoalRow) string { return r.UserID }}
}
func (f *Store) Achievements() remote.AchievementRepository {
	return &collection[remote.AchievementRow]{f: f, rows: &f.AchievementRows,
		id: func(r remote.AchievementRow) string { return r.ID }, owner: func(r remote.AchievementRow) string { return r.UserID }}
}

func (f *Store) Import(_ context.Context, ownerID string, b remote.Bundle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWrites {
		return ErrRemoteDown
	}
	if err := remote.Validate(b); err != nil {
		return err
	}
	f.Imports++
	f.ProfileRows[ownerID] = b.Profile
	f.SkillRows = append(f.SkillRows, b.Skills...)
	f.GoalRows = append(f.GoalRows, b.Goals...)
	f.AchievementRows = append(f.AchievementRows, b.Achievements...)
	return nil
}

func (f *Store) SetFailReads(v bool) {
	f.mu.Lock()
	f.FailReads = v
	f.mu.Unlock()
}

type profiles struct{ f *Store }

func (p profiles) Get(_ context.Context, ownerID string) (*remote.ProfileRow, error) {
	p.f.mu.Lock()
	defer p.f.mu.Unlock()
	if p.f.FailReads {
		return nil, ErrRemoteDown
	}
	row, ok := p.f.ProfileRows[ownerID]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (p profiles) Upsert(_ context.Context, row remote.ProfileRow) (*remote.ProfileRow, error) {
	p.f.mu.Lock()
	defer p.f.mu.Unlock()
	if p.f.FailWrites {
		return nil, ErrRemoteDown
	}
	if err := remote.Validate(row); err != nil {
		return nil, err
	}
	p.f.ProfileRows[row.ID] = row
	return &row, nil
}

type collection[T any] struct {
	f     *Store
	rows  *[]T
	id    func(T) string
	owner func(T) string
}

func (c *collection[T]) List(_ context.Context, ownerID string, opts remote.ListOptions) ([]T, error) {
	c.f.mu.Lock()
	defer c.f.mu.Unlock()
	if c.f.FailReads {
		return nil, ErrRemoteDown
	}
	out := []T{}
	for _, r := range *c.rows {
		if c.owner(r) != ownerID {
			continue
		}
		out = append(out, r)
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out, nil
}

func (c *collection[T]) Create(_ context.Context, row T) (*T, error) {
	c.f.mu.Lock()
	defer c.f.mu.Unlock()
	if c.f.FailWrites {
		return nil, ErrRemoteDown
	}
	if err := remote.Validate(row); err != nil {
		return nil, err
	}
	*c.rows = append([]T{row}, *c.rows...)
	return &row, nil
}

func (c *collection[T]) Update(_ context.Context, id string, row T) (*T, error) {
	c.f.mu.Lock()
	defer c.f.mu.Unlock()
	if c.f.FailWrites {
		return nil, ErrRemoteDown
	}
	if err := remote.Validate(row); err != nil {
		return nil, err
	}
	for i, r := range *c.rows {
		if c.id(r) == id {
			(*c.rows)[i] = row
			return &row, nil
		}
	}
	return nil, &remote.Error{StatusCode: 404, Message: "not found"}
}

func (c *collection[T]) Delete(_ context.Context, ownerID, id string) error {
	c.f.mu.Lock()
	defer c.f.mu.Unlock()
	if c.f.FailWrites {
		return ErrRemoteDown
	}
	for i, r := range *c.rows {
		if c.id(r) == id && c.owner(r) == ownerID {
			*c.rows = append((*c.rows)[:i], (*c.rows)[i+1:]...)
			return nil
		}
	}
	return &remote.Error{StatusCode: 404, Message: "not found"}
}

var _ remote.Store = (*Store)(nil)
