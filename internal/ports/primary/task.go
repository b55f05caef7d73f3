package primary

import (
	"context"

	"github.com/example/agencyos/internal/core/task"
	"github.com/example/agencyos/internal/models"
)

// TaskService defines the primary port for fulfillment task operations.
type TaskService interface {
	// CreateTask creates a task, auto-attaching a matching SOP.
	CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error)

	// GetTask retrieves a task by ID.
	GetTask(ctx context.Context, id int) (*models.Task, error)

	// ListTasks lists tasks with optional filters.
	ListTasks(ctx context.Context, filters TaskFilters) ([]models.Task, error)

	// UpdateTask merges a patch. Stage movement goes through AdvanceStage.
	UpdateTask(ctx context.Context, id int, patch task.Patch) (*models.Task, error)

	// AdvanceStage moves a task along its pipeline, optionally recording a
	// note instead of the generated transition text.
	AdvanceStage(ctx context.Context, id int, stage, author, note string) (*models.Task, error)

	// GenerateSprint creates the standard phase-1 sprint for a client and
	// returns the new task ids.
	GenerateSprint(ctx context.Context, clientID int) ([]int, error)
}

// CreateTaskRequest contains parameters for creating a task.
type CreateTaskRequest struct {
	ClientID       int
	Name           string
	Category       string
	Phase          string
	StagePipeline  []string // defaults to the standard pipeline
	AssignedNode   string
	Priority       string // defaults to normal
	Deadline       string // YYYY-MM-DD
	EstimatedHours int
	Brief          string
	SOPReference   string // explicit reference suppresses auto-detection
}

// TaskFilters contains filter options for listing tasks.
type TaskFilters struct {
	ClientID int    // 0 means all clients
	Status   string // active, deployed, cancelled
	Stage    string
	Overdue  bool
}
