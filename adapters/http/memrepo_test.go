package http

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/growth-tracker/internal/application/service"
	"github.com/khoahotran/growth-tracker/internal/domain/achievement"
	"github.com/khoahotran/growth-tracker/internal/domain/goal"
	"github.com/khoahotran/growth-tracker/internal/domain/profile"
	"github.com/khoahotran/growth-tracker/internal/domain/skill"
	"github.com/khoahotran/growth-tracker/internal/domain/user"
	"github.com/khoahotran/growth-tracker/pkg/apperror"
)

type memUsers struct {
	mu    sync.Mutex
	users map[string]*user.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[string]*user.User{}}
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[strings.ToLower(email)]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) Create(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(u.Email)
	if _, ok := m.users[key]; ok {
		return user.ErrEmailTaken
	}
	cp := *u
	m.users[key] = &cp
	return nil
}

type memProfiles struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*profile.Profile
}

func newMemProfiles() *memProfiles {
	return &memProfiles{rows: map[uuid.UUID]*profile.Profile{}}
}

func (m *memProfiles) GetByID(_ context.Context, id uuid.UUID) (*profile.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProfiles) Upsert(_ context.Context, p *profile.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	if existing, ok := m.rows[p.ID]; ok {
		p.CreatedAt = existing.CreatedAt
	} else if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	cp := *p
	m.rows[p.ID] = &cp
	return nil
}

func (m *memProfiles) UpdateAvatar(_ context.Context, id uuid.UUID, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return apperror.NewNotFound("profile", id.String())
	}
	p.AvatarURL = &url
	return nil
}

// memRows is a newest-first, owner-scoped row set.
type memRows[T any] struct {
	mu    sync.Mutex
	name  string
	rows  []*T
	id    func(*T) uuid.UUID
	owner func(*T) uuid.UUID
}

func (m *memRows[T]) Save(_ context.Context, r *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.indexOf(m.id(r), m.owner(r)) >= 0 {
		return apperror.NewConflict(m.name, "id", m.id(r).String())
	}
	cp := *r
	m.rows = append([]*T{&cp}, m.rows...)
	return nil
}

func (m *memRows[T]) Update(_ context.Context, r *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(m.id(r), m.owner(r))
	if i < 0 {
		return apperror.NewNotFound(m.name, m.id(r).String())
	}
	cp := *r
	m.rows[i] = &cp
	return nil
}

func (m *memRows[T]) Delete(_ context.Context, id, ownerID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id, ownerID)
	if i < 0 {
		return apperror.NewNotFound(m.name, id.String())
	}
	m.rows = append(m.rows[:i], m.rows[i+1:]...)
	return nil
}

func (m *memRows[T]) FindByID(_ context.Context, id, ownerID uuid.UUID) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id, ownerID)
	if i < 0 {
		return nil, apperror.NewNotFound(m.name, id.String())
	}
	cp := *m.rows[i]
	return &cp, nil
}

func (m *memRows[T]) ListByOwner(_ context.Context, ownerID uuid.UUID, limit int) ([]*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*T, 0)
	for _, r := range m.rows {
		if m.owner(r) != ownerID {
			continue
		}
		cp := *r
		out = append(out, &cp)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// insertIfAbsent appends r unless its id is already stored.
func (m *memRows[T]) insertIfAbsent(r *T) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.rows {
		if m.id(existing) == m.id(r) {
			return false
		}
	}
	cp := *r
	m.rows = append(m.rows, &cp)
	return true
}

func (m *memRows[T]) indexOf(id, ownerID uuid.UUID) int {
	for i, r := range m.rows {
		if m.id(r) == id && m.owner(r) == ownerID {
			return i
		}
	}
	return -1
}

func newMemSkills() *memRows[skill.Skill] {
	return &memRows[skill.Skill]{
		name:  "skill",
		id:    func(s *skill.Skill) uuid.UUID { return s.ID },
		owner: func(s *skill.Skill) uuid.UUID { return s.UserID },
	}
}

func newMemGoals() *memRows[goal.Goal] {
	return &memRows[goal.Goal]{
		name:  "goal",
		id:    func(g *goal.Goal) uuid.UUID { return g.ID },
		owner: func(g *goal.Goal) uuid.UUID { return g.UserID },
	}
}

func newMemAchievements() *memRows[achievement.Achievement] {
	return &memRows[achievement.Achievement]{
		name:  "achievement",
		id:    func(a *achievement.Achievement) uuid.UUID { return a.ID },
		owner: func(a *achievement.Achievement) uuid.UUID { return a.UserID },
	}
}

type memImporter struct {
	profiles     *memProfiles
	skills       *memRows[skill.Skill]
	goals        *memRows[goal.Goal]
	achievements *memRows[achievement.Achievement]
}

func (m *memImporter) Import(ctx context.Context, _ uuid.UUID, b service.ImportBundle) (service.ImportResult, error) {
	var res service.ImportResult
	if b.Profile != nil {
		if err := m.profiles.Upsert(ctx, b.Profile); err != nil {
			return res, err
		}
	}
	for _, s := range b.Skills {
		if m.skills.insertIfAbsent(s) {
			res.Skills++
		}
	}
	for _, g := range b.Goals {
		if m.goals.insertIfAbsent(g) {
			res.Goals++
		}
	}
	for _, a := range b.Achievements {
		if m.achievements.insertIfAbsent(a) {
			res.Achievements++
		}
	}
	return res, nil
}

type fakeUploader struct {
	folder string
}

func (f *fakeUploader) Upload(_ context.Context, _ io.Reader, folder string, publicID string) (string, error) {
	f.folder = folder
	return "https://cdn.example.com/" + folder + "/" + publicID + ".png", nil
}

func (f *fakeUploader) Delete(context.Context, string) error {
	return nil
}
