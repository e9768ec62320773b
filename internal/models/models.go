package models

import "time"

// Role is a named permission group a user may belong to.
type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

// User is an account able to authenticate and own projects, tasks and teams.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:254" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FirstName    string    `gorm:"size:150" json:"first_name"`
	LastName     string    `gorm:"size:150" json:"last_name"`
	IsStaff      bool      `json:"is_staff"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	IsSuperuser  bool      `json:"is_superuser"`
	RoleID       *uint     `json:"role"`
	Role         *Role     `gorm:"foreignKey:RoleID;constraint:OnDelete:SET NULL" json:"-"`
	DateJoined   time.Time `gorm:"autoCreateTime" json:"date_joined"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Status is a task/project state such as "Open" or "Done".
type Status struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:20;uniqueIndex;not null" json:"name"`
	Color string `gorm:"size:20" json:"color"`
}

// Priority ranks tasks, e.g. "Low" or "Urgent".
type Priority struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:20;uniqueIndex;not null" json:"name"`
	Color string `gorm:"size:20" json:"color"`
}

// Team groups users that share projects.
type Team struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description *string   `json:"description"`
	CreatedByID *uint     `json:"created_by"`
	CreatedBy   *User     `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// MembersCount is filled by team queries, it is not a column.
	MembersCount int64 `gorm:"-" json:"members_count"`
}

// UserTeam links a user to a team. One row per membership.
type UserTeam struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID uint  `gorm:"not null;uniqueIndex:idx_user_team" json:"user"`
	User   *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	TeamID uint  `gorm:"not null;uniqueIndex:idx_user_team" json:"team"`
	Team   *Team `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"-"`
}

// Project is a board of columns and tasks, optionally shared with a team.
type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;index;not null" json:"name"`
	Description *string   `json:"description"`
	CreatedByID *uint     `json:"created_by"`
	CreatedBy   *User     `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"-"`
	StatusID    *uint     `json:"status"`
	Status      *Status   `gorm:"foreignKey:StatusID;constraint:OnDelete:SET NULL" json:"-"`
	TeamID      *uint     `json:"team"`
	Team        *Team     `gorm:"foreignKey:TeamID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;index" json:"updated_at"`

	CreatedByUsername string `gorm:"-" json:"created_by_username"`
	TeamName          string `gorm:"-" json:"team_name"`
}

// Column is a named lane within a project holding an ordered set of tasks.
// A project has many columns; the order field drives display sequencing only.
type Column struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Name        string   `gorm:"size:100;index;not null" json:"name"`
	ProjectID   uint     `gorm:"not null" json:"project"`
	Project     *Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedByID *uint    `json:"created_by"`
	CreatedBy   *User    `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"-"`
	Order       uint     `gorm:"default:0" json:"order"`
}

// Task is a single card on the board. Column, status, priority, assignee
// and parent task are all optional references.
type Task struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"size:100;uniqueIndex:idx_task_name_column" json:"name"`
	Description  *string    `json:"description"`
	ColumnID     *uint      `gorm:"uniqueIndex:idx_task_name_column" json:"column"`
	Column       *Column    `gorm:"foreignKey:ColumnID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedByID  *uint      `json:"created_by"`
	CreatedBy    *User      `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"-"`
	PriorityID   *uint      `json:"priority"`
	Priority     *Priority  `gorm:"foreignKey:PriorityID;constraint:OnDelete:SET NULL" json:"-"`
	DueDate      *time.Time `gorm:"index" json:"due_date"`
	StatusID     *uint      `json:"status"`
	Status       *Status    `gorm:"foreignKey:StatusID;constraint:OnDelete:SET NULL" json:"-"`
	AssignedToID *uint      `json:"assigned_to"`
	AssignedTo   *User      `gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL" json:"-"`
	Order        uint       `gorm:"default:0" json:"order"`
	ParentTaskID *uint      `json:"parent_task"`
	ParentTask   *Task      `gorm:"foreignKey:ParentTaskID;constraint:OnDelete:CASCADE" json:"-"`
	IsCompleted  bool       `json:"is_completed"`
	CreatedAt    time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime;index" json:"updated_at"`

	CreatedByUsername string `gorm:"-" json:"created_by_username"`
	AssignedToName    string `gorm:"-" json:"assigned_to_name"`
	StatusName        string `gorm:"-" json:"status_name"`
	PriorityName      string `gorm:"-" json:"priority_name"`
	ProjectName       string `gorm:"-" json:"project_name"`
	ColumnName        string `gorm:"-" json:"column_name"`
}

// TaskComment is a free-text note attached to a task.
type TaskComment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TaskID      uint      `gorm:"not null" json:"task"`
	Task        *Task     `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
	UserID      *uint     `json:"user"`
	User        *User     `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	CommentText string    `gorm:"not null" json:"comment_text"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TaskHistory records a status transition of a task. Rows are never
// updated or deleted once written.
type TaskHistory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TaskID      uint      `gorm:"not null" json:"task"`
	Task        *Task     `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
	StatusID    *uint     `json:"status"`
	Status      *Status   `gorm:"foreignKey:StatusID;constraint:OnDelete:SET NULL" json:"-"`
	ChangedAt   time.Time `gorm:"autoCreateTime" json:"changed_at"`
	ChangedByID *uint     `json:"changed_by"`
	ChangedBy   *User     `gorm:"foreignKey:ChangedByID;constraint:OnDelete:SET NULL" json:"-"`
}

// Tag is a reusable label for tasks.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:30;not null" json:"name"`
}

// TaskTag links a task to a tag.
type TaskTag struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	TaskID uint  `gorm:"not null" json:"task"`
	Task   *Task `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
	TagID  uint  `gorm:"not null" json:"tag"`
	Tag    *Tag  `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"-"`
}

// UserInvitation is a pending offer of team membership tied to an email
// address. Accepting creates the membership; declining removes the record.
type UserInvitation struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:254;not null;index" json:"email"`
	TeamID       uint      `gorm:"not null" json:"team"`
	Team         *Team     `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"-"`
	InvitedByID  *uint     `json:"invited_by"`
	InvitedBy    *User     `gorm:"foreignKey:InvitedByID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	Accepted     bool      `json:"accepted"`
	AcceptedByID *uint     `json:"accepted_by"`
	AcceptedBy   *User     `gorm:"foreignKey:AcceptedByID;constraint:OnDelete:SET NULL" json:"-"`
	DeclinedByID *uint     `json:"declined_by"`
	DeclinedBy   *User     `gorm:"foreignKey:DeclinedByID;constraint:OnDelete:SET NULL" json:"-"`
}

// LearningMaterial is a shared article visible to every user.
type LearningMaterial struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:100;not null" json:"title"`
	Content   string    `gorm:"not null" json:"content"`
	AuthorID  *uint     `json:"author"`
	Author    *User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Creatable is implemented by entities that record which user created them.
// Handlers stamp the authenticated caller through it instead of probing
// fields reflectively.
type Creatable interface {
	SetCreatedBy(userID uint)
}

// SetCreatedBy records the creating user.
func (p *Project) SetCreatedBy(userID uint) { p.CreatedByID = &userID }

// SetCreatedBy records the creating user.
func (c *Column) SetCreatedBy(userID uint) { c.CreatedByID = &userID }

// SetCreatedBy records the creating user.
func (t *Task) SetCreatedBy(userID uint) { t.CreatedByID = &userID }

// SetCreatedBy records the creating user.
func (t *Team) SetCreatedBy(userID uint) { t.CreatedByID = &userID }

// All lists every persisted entity in dependency order for migrations.
func All() []any {
	return []any{
		&Role{}, &User{}, &Status{}, &Priority{}, &Team{}, &UserTeam{},
		&Project{}, &Column{}, &Task{}, &TaskComment{}, &TaskHistory{},
		&Tag{}, &TaskTag{}, &UserInvitation{}, &LearningMaterial{},
	}
}
