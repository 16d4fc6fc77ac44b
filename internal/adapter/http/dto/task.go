package dto

// DependencyItem mirrors one dependency edge. Dependency is null when the
// target task was deleted after the edge was created.
type DependencyItem struct {
	ID         uint64         `json:"id"`
	Dependency *DependencyRef `json:"dependency"`
}

type DependencyRef struct {
	ID     uint64 `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

type TaskItem struct {
	ID           uint64           `json:"id"`
	Title        string           `json:"title"`
	Description  *string          `json:"description,omitempty"`
	Status       string           `json:"status"`
	Priority     string           `json:"priority"`
	DueDate      string           `json:"due_date"`
	IsOverdue    bool             `json:"is_overdue"`
	Dependencies []DependencyItem `json:"dependencies"`
	CreatedAt    string           `json:"created_at"`
	UpdatedAt    string           `json:"updated_at"`
}

type CreateTaskRequest struct {
	Title         string   `json:"title" binding:"required,max=255"`
	Description   *string  `json:"description" binding:"omitempty,max=65535"`
	Status        *string  `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
	Priority      *string  `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate       *string  `json:"due_date" binding:"required"`
	DependencyIDs []uint64 `json:"dependencyIds" binding:"omitempty,dive,gt=0"`
}

type UpdateTaskRequest struct {
	Title         *string  `json:"title" binding:"omitempty,max=255"`
	Description   *string  `json:"description" binding:"omitempty,max=65535"`
	Status        *string  `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
	Priority      *string  `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate       *string  `json:"due_date" binding:"omitempty"`
	DependencyIDs []uint64 `json:"dependencyIds" binding:"omitempty,dive,gt=0"`
}
