package growth

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/khoahotran/growth-tracker/internal/localstore"
	"github.com/khoahotran/growth-tracker/internal/remote"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

type State int32

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) { m.newID = newID }
}

// Manager owns the canonical in-memory Data. Every mutation replaces the
// whole value, mirrors it into the local store and, when a user is active,
// propagates the change to the remote store without waiting for it.
type Manager struct {
	mu     sync.Mutex
	data   Data
	userID string

	state   atomic.Int32
	syncing atomic.Int32
	pending sync.WaitGroup

	local  localstore.Store
	remote remote.Store
	logger logger.Logger
	now    func() time.Time
	newID  func() string
}

// NewManager accepts a nil remote store for local-only operation.
func NewManager(local localstore.Store, rs remote.Store, log logger.Logger, opts ...Option) *Manager {
	m := &Manager{
		local:  local,
		remote: rs,
		logger: log,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.data = DefaultData(m.now())
	return m
}

func (m *Manager) State() State { return State(m.state.Load()) }

func (m *Manager) UserID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.userID
}

// Data returns a deep copy of the canonical state.
func (m *Manager) Data() Data {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.Clone()
}

func (m *Manager) IsSyncing() bool { return m.syncing.Load() > 0 }

// Wait blocks until every dispatched remote write has returned.
func (m *Manager) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Load makes userID the active owner and rebuilds the canonical state. An
// empty userID means local-only mode. Load never fails: a remote read error
// falls back to the local snapshot.
func (m *Manager) Load(ctx context.Context, userID string) {
	m.state.Store(int32(StateLoading))
	defer m.state.Store(int32(StateReady))

	m.mu.Lock()
	m.userID = userID
	m.mu.Unlock()

	if userID != "" && m.remote != nil {
		data, err := m.fetchRemote(ctx, userID)
		if err == nil {
			m.replace(ctx, data)
			return
		}
		m.logger.Warn("Remote load failed, falling back to local snapshot",
			zap.String("user_id", userID), zap.Error(err))
	}

	snapshot, ok, err := LoadSnapshot(ctx, m.local)
	if err != nil {
		m.logger.Warn("Failed to read local snapshot", zap.Error(err))
		return
	}
	if !ok {
		if userID == "" {
			m.mu.Lock()
			m.data = DefaultData(m.now())
			m.mu.Unlock()
		}
		return
	}
	m.mu.Lock()
	m.data = snapshot
	m.mu.Unlock()
}

// Refresh reloads the active user's data.
func (m *Manager) Refresh(ctx context.Context) {
	m.Load(ctx, m.UserID())
}

func (m *Manager) fetchRemote(ctx context.Context, userID string) (Data, error) {
	var (
		profileRow   *remote.ProfileRow
		skillRows    []remote.SkillRow
		goalRows     []remote.GoalRow
		achievements []remote.AchievementRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		profileRow, err = m.remote.Profiles().Get(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		skillRows, err = m.remote.Skills().List(gctx, userID, remote.ListOptions{})
		return err
	})
	g.Go(func() (err error) {
		goalRows, err = m.remote.Goals().List(gctx, userID, remote.ListOptions{})
		return err
	})
	g.Go(func() (err error) {
		achievements, err = m.remote.Achievements().List(gctx, userID, remote.ListOptions{})
		return err
	})
	if err := g.Wait(); err != nil {
		return Data{}, err
	}

	data := Data{
		Profile:      profileFromRow(profileRow, DefaultData(m.now()).Profile),
		Skills:       make([]Skill, 0, len(skillRows)),
		Goals:        make([]Goal, 0, len(goalRows)),
		Achievements: make([]Achievement, 0, len(achievements)),
	}
	for _, row := range skillRows {
		data.Skills = append(data.Skills, skillFromRow(row))
	}
	for _, row := range goalRows {
		data.Goals = append(data.Goals, goalFromRow(row))
	}
	for _, row := range achievements {
		data.Achievements = append(data.Achievements, achievementFromRow(row))
	}
	return data, nil
}

// replace installs next as the canonical state and rewrites the local
// snapshot.
func (m *Manager) replace(ctx context.Context, next Data) {
	m.mu.Lock()
	m.data = next
	snapshot := next.Clone()
	m.mu.Unlock()

	if err := SaveSnapshot(ctx, m.local, snapshot); err != nil {
		m.logger.Error("Failed to persist local snapshot", err)
	}
}

// commit applies fn to the current state under the lock, persists the
// result locally and returns the owner to sync with. An error from fn
// leaves the state untouched.
func (m *Manager) commit(ctx context.Context, fn func(d *Data) error) (string, error) {
	m.mu.Lock()
	next := m.data.Clone()
	if err := fn(&next); err != nil {
		m.mu.Unlock()
		return "", err
	}
	m.data = next
	owner := m.userID
	snapshot := next.Clone()
	m.mu.Unlock()

	if err := SaveSnapshot(ctx, m.local, snapshot); err != nil {
		m.logger.Error("Failed to persist local snapshot", err)
	}
	return owner, nil
}

// dispatch runs op in the background. The caller's cancellation does not
// reach it; its failure is only logged.
func (m *Manager) dispatch(ctx context.Context, owner, collection, entityID string, op func(ctx context.Context) error) {
	if owner == "" || m.remote == nil {
		return
	}
	bg := context.WithoutCancel(ctx)
	m.pending.Add(1)
	m.syncing.Add(1)
	go func() {
		defer m.pending.Done()
		defer m.syncing.Add(-1)
		if err := op(bg); err != nil {
			m.logger.Error("Failed to sync change to remote store", err,
				zap.String("user_id", owner),
				zap.String("collection", collection),
				zap.String("entity_id", entityID),
			)
		}
	}()
}

type ProfilePatch struct {
	Name      *string
	Bio       *string
	AvatarURL *string
	Email     *string
	Location  *string
	Website   *string
	IsPublic  *bool
}

func (m *Manager) UpdateProfile(ctx context.Context, patch ProfilePatch) (Profile, error) {
	if err := checkEmail(patch.Email); err != nil {
		return Profile{}, err
	}
	var updated Profile
	owner, err := m.commit(ctx, func(d *Data) error {
		p := d.Profile
		if patch.Name != nil {
			if *patch.Name == "" {
				return fmt.Errorf("%w: profile name", ErrMissingRequiredField)
			}
			p.Name = *patch.Name
		}
		applyOptional(&p.Bio, patch.Bio)
		applyOptional(&p.AvatarURL, patch.AvatarURL)
		applyOptional(&p.Email, patch.Email)
		applyOptional(&p.Location, patch.Location)
		applyOptional(&p.Website, patch.Website)
		if patch.IsPublic != nil {
			p.IsPublic = *patch.IsPublic
		}
		d.Profile = p
		updated = p.clone()
		return nil
	})
	if err != nil {
		return Profile{}, err
	}

	row := profileToRow(owner, updated, FormatTimestamp(m.now()))
	m.dispatch(ctx, owner, "profiles", owner, func(ctx context.Context) error {
		_, err := m.remote.Profiles().Upsert(ctx, row)
		return err
	})
	return updated, nil
}

type NewSkill struct {
	Name     string
	Category string
	Level    int
}

type SkillPatch struct {
	Name     *string
	Category *string
	Level    *int
}

func (m *Manager) AddSkill(ctx context.Context, in NewSkill) (Skill, error) {
	if in.Name == "" {
		return Skill{}, fmt.Errorf("%w: skill name", ErrMissingRequiredField)
	}
	if in.Category == "" {
		in.Category = SkillCategories[0]
	}
	ts := FormatTimestamp(m.now())
	s := Skill{
		ID:        m.newID(),
		Name:      in.Name,
		Category:  in.Category,
		Level:     ClampLevel(in.Level),
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	owner, _ := m.commit(ctx, func(d *Data) error {
		d.Skills = append([]Skill{s}, d.Skills...)
		return nil
	})

	row := skillToRow(owner, s)
	m.dispatch(ctx, owner, "skills", s.ID, func(ctx context.Context) error {
		_, err := m.remote.Skills().Create(ctx, row)
		return err
	})
	return s, nil
}

func (m *Manager) UpdateSkill(ctx context.Context, id string, patch SkillPatch) (Skill, error) {
	return m.updateSkill(ctx, id, func(s *Skill) error {
		if patch.Name != nil {
			if *patch.Name == "" {
				return fmt.Errorf("%w: skill name", ErrMissingRequiredField)
			}
			s.Name = *patch.Name
		}
		if patch.Category != nil && *patch.Category != "" {
			s.Category = *patch.Category
		}
		if patch.Level != nil {
			s.Level = ClampLevel(*patch.Level)
		}
		return nil
	})
}

// SetSkillLevel changes only the level (and updatedAt).
func (m *Manager) SetSkillLevel(ctx context.Context, id string, level int) (Skill, error) {
	return m.updateSkill(ctx, id, func(s *Skill) error {
		s.Level = ClampLevel(level)
		return nil
	})
}

func (m *Manager) updateSkill(ctx context.Context, id string, apply func(s *Skill) error) (Skill, error) {
	var updated Skill
	owner, err := m.commit(ctx, func(d *Data) error {
		i := indexOf(d.Skills, func(s Skill) bool { return s.ID == id })
		if i < 0 {
			return fmt.Errorf("%w: skill %s", ErrEntityNotFound, id)
		}
		s := d.Skills[i]
		if err := apply(&s); err != nil {
			return err
		}
		s.UpdatedAt = FormatTimestamp(m.now())
		d.Skills[i] = s
		updated = s
		return nil
	})
	if err != nil {
		return Skill{}, err
	}

	row := skillToRow(owner, updated)
	m.dispatch(ctx, owner, "skills", id, func(ctx context.Context) error {
		_, err := m.remote.Skills().Update(ctx, id, row)
		return err
	})
	return updated, nil
}

func (m *Manager) DeleteSkill(ctx context.Context, id string) error {
	owner, err := m.commit(ctx, func(d *Data) error {
		i := indexOf(d.Skills, func(s Skill) bool { return s.ID == id })
		if i < 0 {
			return fmt.Errorf("%w: skill %s", ErrEntityNotFound, id)
		}
		d.Skills = append(d.Skills[:i], d.Skills[i+1:]...)
		return nil
	})
	if err != nil {
		return err
	}
	m.dispatch(ctx, owner, "skills", id, func(ctx context.Context) error {
		return m.remote.Skills().Delete(ctx, owner, id)
	})
	return nil
}

type NewGoal struct {
	Title       string
	Description string
	Deadline    string
	Priority    Priority
}

type GoalPatch struct {
	Title       *string
	Description *string
	Deadline    *string
	Priority    *Priority
	Completed   *bool
}

func (m *Manager) AddGoal(ctx context.Context, in NewGoal) (Goal, error) {
	if in.Title == "" || in.Deadline == "" {
		return Goal{}, fmt.Errorf("%w: goal title and deadline", ErrMissingRequiredField)
	}
	deadline, err := checkDate("deadline", in.Deadline)
	if err != nil {
		return Goal{}, err
	}
	g := Goal{
		ID:          m.newID(),
		Title:       in.Title,
		Description: optional(in.Description),
		Deadline:    deadline,
		Priority:    NormalizePriority(in.Priority),
		CreatedAt:   FormatTimestamp(m.now()),
	}
	owner, _ := m.commit(ctx, func(d *Data) error {
		d.Goals = append([]Goal{g}, d.Goals...)
		return nil
	})

	row := goalToRow(owner, g)
	m.dispatch(ctx, owner, "goals", g.ID, func(ctx context.Context) error {
		_, err := m.remote.Goals().Create(ctx, row)
		return err
	})
	return g, nil
}

func (m *Manager) UpdateGoal(ctx context.Context, id string, patch GoalPatch) (Goal, error) {
	return m.updateGoal(ctx, id, func(g *Goal, now string) error {
		if patch.Title != nil {
			if *patch.Title == "" {
				return fmt.Errorf("%w: goal title", ErrMissingRequiredField)
			}
			g.Title = *patch.Title
		}
		if patch.Deadline != nil {
			if *patch.Deadline == "" {
				return fmt.Errorf("%w: goal deadline", ErrMissingRequiredField)
			}
			deadline, err := checkDate("deadline", *patch.Deadline)
			if err != nil {
				return err
			}
			g.Deadline = deadline
		}
		applyOptional(&g.Description, patch.Description)
		if patch.Priority != nil {
			g.Priority = NormalizePriority(*patch.Priority)
		}
		if patch.Completed != nil {
			setCompleted(g, *patch.Completed, now)
		}
		return nil
	})
}

// ToggleGoalComplete flips completion; completedAt follows the transition.
func (m *Manager) ToggleGoalComplete(ctx context.Context, id string) (Goal, error) {
	return m.updateGoal(ctx, id, func(g *Goal, now string) error {
		setCompleted(g, !g.Completed, now)
		return nil
	})
}

func setCompleted(g *Goal, completed bool, now string) {
	switch {
	case completed && !g.Completed:
		g.CompletedAt = strPtr(now)
	case !completed:
		g.CompletedAt = nil
	}
	g.Completed = completed
}

func (m *Manager) updateGoal(ctx context.Context, id string, apply func(g *Goal, now string) error) (Goal, error) {
	var updated Goal
	owner, err := m.commit(ctx, func(d *Data) error {
		i := indexOf(d.Goals, func(g Goal) bool { return g.ID == id })
		if i < 0 {
			return fmt.Errorf("%w: goal %s", ErrEntityNotFound, id)
		}
		g := d.Goals[i]
		if err := apply(&g, FormatTimestamp(m.now())); err != nil {
			return err
		}
		d.Goals[i] = g
		updated = g
		return nil
	})
	if err != nil {
		return Goal{}, err
	}

	row := goalToRow(owner, updated)
	m.dispatch(ctx, owner, "goals", id, func(ctx context.Context) error {
		_, err := m.remote.Goals().Update(ctx, id, row)
		return err
	})
	return updated, nil
}

func (m *Manager) DeleteGoal(ctx context.Context, id string) error {
	owner, err := m.commit(ctx, func(d *Data) error {
		i := indexOf(d.Goals, func(g Goal) bool { return g.ID == id })
		if i < 0 {
			return fmt.Errorf("%w: goal %s", ErrEntityNotFound, id)
		}
		d.Goals = append(d.Goals[:i], d.Goals[i+1:]...)
		return nil
	})
	if err != nil {
		return err
	}
	m.dispatch(ctx, owner, "goals", id, func(ctx context.Context) error {
		return m.remote.Goals().Delete(ctx, owner, id)
	})
	return nil
}

type NewAchievement struct {
	Title       string
	Description string
	Date        string
	Icon        string
	Category    string
}

type AchievementPatch struct {
	Title       *string
	Description *string
	Date        *string
	Icon        *string
	Category    *string
}

func (m *Manager) AddAchievement(ctx context.Context, in NewAchievement) (Achievement, error) {
	if in.Title == "" || in.Date == "" || in.Category == "" {
		return Achievement{}, fmt.Errorf("%w: achievement title, date and category", ErrMissingRequiredField)
	}
	date, err := checkDate("date", in.Date)
	if err != nil {
		return Achievement{}, err
	}
	if in.Icon == "" {
		in.Icon = DefaultAchievementIcon
	}
	a := Achievement{
		ID:          m.newID(),
		Title:       in.Title,
		Description: optional(in.Description),
		Date:        date,
		Icon:        in.Icon,
		Category:    in.Category,
	}
	owner, _ := m.commit(ctx, func(d *Data) error {
		d.Achievements = append([]Achievement{a}, d.Achievements...)
		return nil
	})

	row := achievementToRow(owner, a)
	m.dispatch(ctx, owner, "achievements", a.ID, func(ctx context.Context) error {
		_, err := m.remote.Achievements().Create(ctx, row)
		return err
	})
	return a, nil
}

func (m *Manager) UpdateAchievement(ctx context.Context, id string, patch AchievementPatch) (Achievement, error) {
	var updated Achievement
	owner, err := m.commit(ctx, func(d *Data) error {
		i := indexOf(d.Achievements, func(a Achievement) bool { return a.ID == id })
		if i < 0 {
			return fmt.Errorf("%w: achievement %s", ErrEntityNotFound, id)
		}
		a := d.Achievements[i]
		for _, req := range []struct {
			dst *string
			src *string
		}{{&a.Title, patch.Title}, {&a.Date, patch.Date}, {&a.Category, patch.Category}} {
			if req.src == nil {
				continue
			}
			if *req.src == "" {
				return fmt.Errorf("%w: achievement title, date and category", ErrMissingRequiredField)
			}
			*req.dst = *req.src
		}
		if patch.Date != nil {
			date, err := checkDate("date", a.Date)
			if err != nil {
				return err
			}
			a.Date = date
		}
		applyOptional(&a.Description, patch.Description)
		if patch.Icon != nil {
			a.Icon = *patch.Icon
			if a.Icon == "" {
				a.Icon = DefaultAchievementIcon
			}
		}
		d.Achievements[i] = a
		updated = a
		return nil
	})
	if err != nil {
		return Achievement{}, err
	}

	row := achievementToRow(owner, updated)
	m.dispatch(ctx, owner, "achievements", id, func(ctx context.Context) error {
		_, err := m.remote.Achievements().Update(ctx, id, row)
		return err
	})
	return updated, nil
}

func (m *Manager) DeleteAchievement(ctx context.Context, id string) error {
	owner, err := m.commit(ctx, func(d *Data) error {
		i := indexOf(d.Achievements, func(a Achievement) bool { return a.ID == id })
		if i < 0 {
			return fmt.Errorf("%w: achievement %s", ErrEntityNotFound, id)
		}
		d.Achievements = append(d.Achievements[:i], d.Achievements[i+1:]...)
		return nil
	})
	if err != nil {
		return err
	}
	m.dispatch(ctx, owner, "achievements", id, func(ctx context.Context) error {
		return m.remote.Achievements().Delete(ctx, owner, id)
	})
	return nil
}

func (m *Manager) Stats() Stats {
	return ComputeStats(m.Data())
}

// YearReview summarises year; zero means the current calendar year.
func (m *Manager) YearReview(year int) YearReview {
	if year == 0 {
		year = m.now().Year()
	}
	return ComputeYearReview(m.Data(), year)
}

func (m *Manager) Reminders() []Reminder {
	return ComputeReminders(m.Data().Goals, m.now())
}

// applyOptional leaves dst alone for a nil patch and clears it for "".
func applyOptional(dst **string, patch *string) {
	if patch == nil {
		return
	}
	*dst = optional(*patch)
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i, item := range items {
		if match(item) {
			return i
		}
	}
	return -1
}
