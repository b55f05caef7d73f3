package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/agencyos/internal/core/task"
	"github.com/example/agencyos/internal/models"
	"github.com/example/agencyos/internal/ports/primary"
	"github.com/example/agencyos/internal/wire"
)

// TaskCmd returns the task command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage fulfillment tasks",
		Long:  "Create, list, advance, and annotate tasks moving through the approval pipeline",
	}

	cmd.AddCommand(taskCreateCmd())
	cmd.AddCommand(taskListCmd())
	cmd.AddCommand(taskShowCmd())
	cmd.AddCommand(taskUpdateCmd())
	cmd.AddCommand(taskAdvanceCmd())
	cmd.AddCommand(taskNoteCmd())
	cmd.AddCommand(taskSprintCmd())

	return cmd
}

func taskCreateCmd() *cobra.Command {
	var req primary.CreateTaskRequest

	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new task",
		Long: `Create a task for a client. When the category matches an active SOP's
linked task types, the SOP is attached automatically.

Examples:
  agencyos task create "Competitor teardown" --client 3 --category Strategy --node "Art Director"
  agencyos task create "Landing page rewrite" --client 3 --deadline 2026-04-10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := operatorContext(cmd)
			if err != nil {
				return err
			}
			req.Name = args[0]

			t, err := wire.TaskService().CreateTask(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to create task: %w", err)
			}

			fmt.Printf("✓ Created task %d: %s [%s]\n", t.ID, t.Name, t.CurrentStage)
			if t.SOPReference != "" {
				fmt.Printf("  Protocol detected: %s\n", t.SOPReference)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&req.ClientID, "client", 0, "Client id (required)")
	cmd.Flags().StringVar(&req.Category, "category", "", "Task category")
	cmd.Flags().StringVar(&req.Phase, "phase", "", "Engagement phase")
	cmd.Flags().StringVar(&req.AssignedNode, "node", "", "Assigned node")
	cmd.Flags().StringVar(&req.Priority, "priority", "", "Priority (critical, high, normal)")
	cmd.Flags().StringVar(&req.Deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().IntVar(&req.EstimatedHours, "hours", 0, "Estimated hours")
	cmd.Flags().StringVar(&req.Brief, "brief", "", "Task brief")
	cmd.Flags().StringVar(&req.SOPReference, "sop", "", "Explicit SOP reference (suppresses auto-detection)")
	cmd.MarkFlagRequired("client")
	addOperatorFlag(cmd)

	return cmd
}

func taskListCmd() *cobra.Command {
	var filters primary.TaskFilters

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			tasks, err := wire.TaskService().ListTasks(ctx, filters)
			if err != nil {
				return fmt.Errorf("failed to list tasks: %w", err)
			}

			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tCLIENT\tNAME\tSTAGE\tSTATUS\tPRIORITY\tDEADLINE")
			fmt.Fprintln(w, "--\t------\t----\t-----\t------\t--------\t--------")
			for _, t := range tasks {
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\t%s\n",
					t.ID, t.ClientID, t.Name, t.CurrentStage, t.Status, t.Priority, t.Deadline)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().IntVar(&filters.ClientID, "client", 0, "Filter by client id")
	cmd.Flags().StringVar(&filters.Status, "status", "", "Filter by status (active, deployed, cancelled)")
	cmd.Flags().StringVar(&filters.Stage, "stage", "", "Filter by current stage")
	cmd.Flags().BoolVar(&filters.Overdue, "overdue", false, "Only overdue tasks")

	return cmd
}

func taskShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [task-id]",
		Short: "Show task details and activity log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}

			t, err := wire.TaskService().GetTask(ctx, id)
			if err != nil {
				return err
			}

			fmt.Printf("Task: %d\n", t.ID)
			fmt.Printf("Name: %s\n", t.Name)
			fmt.Printf("Client: %d\n", t.ClientID)
			fmt.Printf("Pipeline: %s\n", strings.Join(t.StagePipeline, " → "))
			fmt.Printf("Stage: %s\n", t.CurrentStage)
			fmt.Printf("Status: %s\n", t.Status)
			if t.AssignedNode != "" {
				fmt.Printf("Node: %s\n", t.AssignedNode)
			}
			if t.Deadline != "" {
				fmt.Printf("Deadline: %s\n", t.Deadline)
			}
			if t.SOPReference != "" {
				fmt.Printf("SOP: %s\n", t.SOPReference)
			}
			if t.Brief != "" {
				fmt.Printf("Brief: %s\n", t.Brief)
			}

			if len(t.ActivityLog) > 0 {
				fmt.Println()
				fmt.Println("Activity:")
				for _, e := range t.ActivityLog {
					fmt.Printf("  %s  [%s] %s (%s)\n",
						e.Timestamp.Format("2006-01-02 15:04"), e.Type, e.Text, e.Author)
				}
			}
			return nil
		},
	}
}

func taskUpdateCmd() *cobra.Command {
	var (
		name, category, node     string
		priority, deadline       string
		brief, sop, notes, phase string
		hours                    int
	)

	cmd := &cobra.Command{
		Use:   "update [task-id]",
		Short: "Update task fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}

			var patch task.Patch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("category") {
				patch.Category = &category
			}
			if cmd.Flags().Changed("phase") {
				patch.Phase = &phase
			}
			if cmd.Flags().Changed("node") {
				patch.AssignedNode = &node
			}
			if cmd.Flags().Changed("priority") {
				patch.Priority = &priority
			}
			if cmd.Flags().Changed("deadline") {
				patch.Deadline = &deadline
			}
			if cmd.Flags().Changed("hours") {
				patch.EstimatedHours = &hours
			}
			if cmd.Flags().Changed("brief") {
				patch.Brief = &brief
			}
			if cmd.Flags().Changed("sop") {
				patch.SOPReference = &sop
			}
			if cmd.Flags().Changed("notes") {
				patch.Notes = &notes
			}

			t, err := wire.TaskService().UpdateTask(ctx, id, patch)
			if err != nil {
				return fmt.Errorf("failed to update task: %w", err)
			}
			fmt.Printf("✓ Updated task %d: %s\n", t.ID, t.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().StringVar(&category, "category", "", "Task category")
	cmd.Flags().StringVar(&phase, "phase", "", "Engagement phase")
	cmd.Flags().StringVar(&node, "node", "", "Assigned node")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().IntVar(&hours, "hours", 0, "Estimated hours")
	cmd.Flags().StringVar(&brief, "brief", "", "Task brief")
	cmd.Flags().StringVar(&sop, "sop", "", "SOP reference")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")

	return cmd
}

func taskAdvanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advance [task-id] [stage]",
		Short: "Move a task to a pipeline stage",
		Long: `Move a task to any stage of its pipeline. Reaching the final stage
deploys the task and logs it on the client timeline. Advancing into the
CEO APPROVAL stage requires the CEO passphrase.

Examples:
  agencyos task advance 12 "REVIEW"
  agencyos task advance 12 "CEO APPROVAL" --phrase "war room"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}
			stage := args[1]

			operator, err := resolveOperator(ctx, cmd)
			if err != nil {
				return err
			}
			if stageNeedsCEO(stage) && operator != models.AuthorCEO {
				return fmt.Errorf("advancing past %s requires the CEO passphrase (use --phrase)", stage)
			}

			t, err := wire.TaskService().AdvanceStage(ctx, id, stage, operator, "")
			if err != nil {
				return fmt.Errorf("failed to advance task: %w", err)
			}

			fmt.Printf("✓ Task %d is now at %s\n", t.ID, t.CurrentStage)
			if t.Status == models.TaskStatusDeployed {
				fmt.Println("  Task deployed and logged on the client timeline")
			}
			return nil
		},
	}

	addOperatorFlag(cmd)

	return cmd
}

func taskNoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note [task-id] [text]",
		Short: "Record a note on the task's activity log",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}

			operator, err := resolveOperator(ctx, cmd)
			if err != nil {
				return err
			}

			t, err := wire.TaskService().GetTask(ctx, id)
			if err != nil {
				return err
			}
			// A note is a same-stage advance carrying text.
			if _, err := wire.TaskService().AdvanceStage(ctx, id, t.CurrentStage, operator, args[1]); err != nil {
				return fmt.Errorf("failed to add note: %w", err)
			}
			fmt.Printf("✓ Note added to task %d\n", id)
			return nil
		},
	}

	addOperatorFlag(cmd)

	return cmd
}

func taskSprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sprint [client-id]",
		Short: "Generate the standard phase-1 sprint for a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			clientID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid client id %q", args[0])
			}

			ids, err := wire.TaskService().GenerateSprint(ctx, clientID)
			if err != nil {
				return fmt.Errorf("failed to generate sprint: %w", err)
			}
			fmt.Printf("✓ Generated %d sprint tasks for client %d (%d-%d)\n",
				len(ids), clientID, ids[0], ids[len(ids)-1])
			return nil
		},
	}
}

// stageNeedsCEO reports whether moving into the stage is a CEO approval
// action.
func stageNeedsCEO(stage string) bool {
	return stage == "CEO APPROVAL"
}
