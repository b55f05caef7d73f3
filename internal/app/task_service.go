package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/agencyos/internal/core/task"
	"github.com/example/agencyos/internal/models"
	"github.com/example/agencyos/internal/ports/primary"
)

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	state *StateContainer
}

// NewTaskService creates a new TaskService backed by the state container.
func NewTaskService(state *StateContainer) *TaskServiceImpl {
	return &TaskServiceImpl{state: state}
}

var _ primary.TaskService = (*TaskServiceImpl)(nil)

// CreateTask creates a task, auto-attaching a matching SOP.
func (s *TaskServiceImpl) CreateTask(ctx context.Context, req primary.CreateTaskRequest) (*models.Task, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("task name is required")
	}
	if s.state.Snapshot().ClientIndex(req.ClientID) == -1 {
		return nil, fmt.Errorf("client %d not found", req.ClientID)
	}

	pipeline := req.StagePipeline
	if len(pipeline) == 0 {
		pipeline = append([]string(nil), models.DefaultStagePipeline...)
	}
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}

	author := operatorFrom(ctx)
	var id int
	next := s.state.Apply(ctx, func(snap models.Snapshot, now time.Time) models.Snapshot {
		var out models.Snapshot
		out, id = task.Add(snap, models.Task{
			ClientID:       req.ClientID,
			Name:           req.Name,
			Category:       req.Category,
			Phase:          req.Phase,
			StagePipeline:  pipeline,
			CurrentStage:   pipeline[0],
			AssignedNode:   req.AssignedNode,
			Priority:       priority,
			Status:         models.TaskStatusActive,
			Deadline:       req.Deadline,
			EstimatedHours: req.EstimatedHours,
			Brief:          req.Brief,
			SOPReference:   req.SOPReference,
		}, author, now)
		return out
	})

	t := next.Tasks[next.TaskIndex(id)]
	return &t, nil
}

// GetTask retrieves a task by ID.
func (s *TaskServiceImpl) GetTask(ctx context.Context, id int) (*models.Task, error) {
	snap := s.state.Snapshot()
	i := snap.TaskIndex(id)
	if i == -1 {
		return nil, fmt.Errorf("task %d not found", id)
	}
	t := snap.Tasks[i]
	return &t, nil
}

// ListTasks lists tasks with optional filters.
func (s *TaskServiceImpl) ListTasks(ctx context.Context, filters primary.TaskFilters) ([]models.Task, error) {
	snap := s.state.Snapshot()
	today := s.state.Now()
	var out []models.Task
	for _, t := range snap.Tasks {
		if filters.ClientID != 0 && t.ClientID != filters.ClientID {
			continue
		}
		if filters.Status != "" && t.Status != filters.Status {
			continue
		}
		if filters.Stage != "" && t.CurrentStage != filters.Stage {
			continue
		}
		if filters.Overdue && !taskOverdue(t, today) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// UpdateTask merges a patch. Stage movement goes through AdvanceStage.
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, id int, patch task.Patch) (*models.Task, error) {
	if s.state.Snapshot().TaskIndex(id) == -1 {
		return nil, fmt.Errorf("task %d not found", id)
	}
	next := s.state.Apply(ctx, func(snap models.Snapshot, now time.Time) models.Snapshot {
		return task.Update(snap, id, patch, now)
	})
	t := next.Tasks[next.TaskIndex(id)]
	return &t, nil
}

// AdvanceStage moves a task along its pipeline.
func (s *TaskServiceImpl) AdvanceStage(ctx context.Context, id int, stage, author, note string) (*models.Task, error) {
	snap := s.state.Snapshot()
	i := snap.TaskIndex(id)
	if i == -1 {
		return nil, fmt.Errorf("task %d not found", id)
	}
	if t := snap.Tasks[i]; !t.InPipeline(stage) {
		return nil, fmt.Errorf("stage %q is not in the pipeline for task %d", stage, id)
	}

	next := s.state.Apply(ctx, func(snap models.Snapshot, now time.Time) models.Snapshot {
		return task.AdvanceStage(snap, id, stage, author, note, now)
	})
	t := next.Tasks[next.TaskIndex(id)]
	return &t, nil
}

// GenerateSprint creates the standard phase-1 sprint for a client.
func (s *TaskServiceImpl) GenerateSprint(ctx context.Context, clientID int) ([]int, error) {
	if s.state.Snapshot().ClientIndex(clientID) == -1 {
		return nil, fmt.Errorf("client %d not found", clientID)
	}
	var ids []int
	s.state.Apply(ctx, func(snap models.Snapshot, now time.Time) models.Snapshot {
		var out models.Snapshot
		out, ids = task.GenerateSprint(snap, clientID, now)
		return out
	})
	return ids, nil
}

func taskOverdue(t models.Task, now time.Time) bool {
	if t.Status != models.TaskStatusActive {
		return false
	}
	d, err := time.Parse("2006-01-02", t.Deadline)
	return err == nil && d.Before(now.Truncate(24*time.Hour))
}
