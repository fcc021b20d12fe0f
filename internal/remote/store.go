package remote

import "context"

// Collection is the capability set shared by skills, goals and achievements.
// The owner id is always passed explicitly.
type Collection[T any] interface {
	List(ctx context.Context, ownerID string, opts ListOptions) ([]T, error)
	Create(ctx context.Context, row T) (*T, error)
	Update(ctx context.Context, id string, row T) (*T, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type ProfileRepository interface {
	// Get returns nil, nil when the owner has no profile row yet.
	Get(ctx context.Context, ownerID string) (*ProfileRow, error)
	Upsert(ctx context.Context, row ProfileRow) (*ProfileRow, error)
}

type (
	SkillRepository       = Collection[SkillRow]
	GoalRepository        = Collection[GoalRow]
	AchievementRepository = Collection[AchievementRow]
)

type Store interface {
	Profiles() ProfileRepository
	Skills() SkillRepository
	Goals() GoalRepository
	Achievements() AchievementRepository
	// Import writes a whole bundle for ownerID in one server-side transaction.
	Import(ctx context.Context, ownerID string, bundle Bundle) error
}

// TokenSource supplies the bearer token for the active session.
type TokenSource interface {
	Token() string
}

type StaticToken string

func (t StaticToken) Token() string { return string(t) }
