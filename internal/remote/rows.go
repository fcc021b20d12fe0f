package remote

// Rows mirror the CRUD service's JSON exactly (snake_case). The growth
// package owns the translation into the canonical model.

type ProfileRow struct {
	ID        string  `json:"id" validate:"required,uuid"`
	Name      string  `json:"name" validate:"required"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Location  *string `json:"location"`
	Website   *string `json:"website"`
	IsPublic  bool    `json:"is_public"`
	CreatedAt string  `json:"created_at,omitempty"`
	UpdatedAt string  `json:"updated_at,omitempty"`
}

type SkillRow struct {
	ID        string `json:"id" validate:"required,uuid"`
	UserID    string `json:"user_id" validate:"required,uuid"`
	Name      string `json:"name" validate:"required"`
	Category  string `json:"category" validate:"required"`
	Level     int    `json:"level" validate:"min=0,max=100"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type GoalRow struct {
	ID          string  `json:"id" validate:"required,uuid"`
	UserID      string  `json:"user_id" validate:"required,uuid"`
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	Deadline    string  `json:"deadline" validate:"required,datetime=2006-01-02"`
	Priority    string  `json:"priority" validate:"oneof=low medium high"`
	Completed   bool    `json:"completed"`
	CompletedAt *string `json:"completed_at"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

type AchievementRow struct {
	ID          string  `json:"id" validate:"required,uuid"`
	UserID      string  `json:"user_id" validate:"required,uuid"`
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Icon        string  `json:"icon"`
	Category    string  `json:"category" validate:"required"`
}

// Bundle is the one-shot payload used to seed an empty remote account.
type Bundle struct {
	Profile      ProfileRow       `json:"profile"`
	Skills       []SkillRow       `json:"skills" validate:"dive"`
	Goals        []GoalRow        `json:"goals" validate:"dive"`
	Achievements []AchievementRow `json:"achievements" validate:"dive"`
}

type ListOptions struct {
	Limit int
}
