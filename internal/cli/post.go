package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/agencyos/internal/core/post"
	"github.com/example/agencyos/internal/models"
	"github.com/example/agencyos/internal/ports/primary"
	"github.com/example/agencyos/internal/wire"
)

// PostCmd returns the post command
func PostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Manage content posts",
		Long:  "Plan, advance, publish, and measure posts in the content pipeline",
	}

	cmd.AddCommand(postCreateCmd())
	cmd.AddCommand(postListCmd())
	cmd.AddCommand(postShowCmd())
	cmd.AddCommand(postAdvanceCmd())
	cmd.AddCommand(postPerformanceCmd())
	cmd.AddCommand(postPlanMonthCmd())

	return cmd
}

func postCreateCmd() *cobra.Command {
	var req primary.CreatePostRequest

	cmd := &cobra.Command{
		Use:   "create [hook]",
		Short: "Plan a new post",
		Long: `Plan a post for a client. The hook is the opening line the post leads
with; everything else can be filled in as production advances.

Examples:
  agencyos post create "Stop doing cardio wrong" --client 3 --platform Instagram --type Reel
  agencyos post create "Client case study" --client 3 --pillar "Social Proof" --date 2026-04-05`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := operatorContext(cmd)
			if err != nil {
				return err
			}
			req.Hook = args[0]

			p, err := wire.PostService().CreatePost(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to create post: %w", err)
			}
			fmt.Printf("✓ Planned post %d: %s [%s]\n", p.ID, p.Hook, p.Status)
			return nil
		},
	}

	cmd.Flags().IntVar(&req.ClientID, "client", 0, "Client id (required)")
	cmd.Flags().StringSliceVar(&req.Platforms, "platform", nil, "Target platforms")
	cmd.Flags().StringVar(&req.PostType, "type", "", "Post type (Reel, Carousel, Story...)")
	cmd.Flags().StringVar(&req.ContentPillar, "pillar", "", "Content pillar")
	cmd.Flags().StringVar(&req.TriggerUsed, "trigger", "", "Psychological trigger used")
	cmd.Flags().StringVar(&req.CaptionBody, "caption", "", "Caption body")
	cmd.Flags().StringVar(&req.CTA, "cta", "", "Call to action")
	cmd.Flags().StringVar(&req.Hashtags, "hashtags", "", "Hashtag block")
	cmd.Flags().StringVar(&req.VisualBrief, "visual-brief", "", "Visual brief")
	cmd.Flags().StringVar(&req.ScheduledDate, "date", "", "Scheduled date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.ScheduledTime, "time", "", "Scheduled time (HH:MM)")
	cmd.Flags().StringVar(&req.Priority, "priority", "", "Priority")
	cmd.Flags().StringVar(&req.AssignedTo, "assigned", "", "Assigned node")
	cmd.Flags().IntVar(&req.LinkedTaskID, "task", 0, "Linked task id")
	cmd.MarkFlagRequired("client")
	addOperatorFlag(cmd)

	return cmd
}

func postListCmd() *cobra.Command {
	var filters primary.PostFilters

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			posts, err := wire.PostService().ListPosts(ctx, filters)
			if err != nil {
				return fmt.Errorf("failed to list posts: %w", err)
			}

			if len(posts) == 0 {
				fmt.Println("No posts found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tCLIENT\tHOOK\tSTAGE\tPLATFORMS\tSCHEDULED")
			fmt.Fprintln(w, "--\t------\t----\t-----\t---------\t---------")
			for _, p := range posts {
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s %s\n",
					p.ID, p.ClientID, p.Hook, p.Status,
					strings.Join(p.Platforms, ","), p.ScheduledDate, p.ScheduledTime)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().IntVar(&filters.ClientID, "client", 0, "Filter by client id")
	cmd.Flags().StringVar(&filters.Stage, "stage", "", "Filter by pipeline stage")
	cmd.Flags().StringVar(&filters.Platform, "platform", "", "Filter by platform")

	return cmd
}

func postShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [post-id]",
		Short: "Show post details and performance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid post id %q", args[0])
			}

			p, err := wire.PostService().GetPost(ctx, id)
			if err != nil {
				return err
			}

			fmt.Printf("Post: %d\n", p.ID)
			fmt.Printf("Hook: %s\n", p.Hook)
			fmt.Printf("Client: %d\n", p.ClientID)
			fmt.Printf("Stage: %s\n", p.Status)
			fmt.Printf("Platforms: %s\n", strings.Join(p.Platforms, ", "))
			if p.PostType != "" {
				fmt.Printf("Type: %s\n", p.PostType)
			}
			if p.ContentPillar != "" {
				fmt.Printf("Pillar: %s\n", p.ContentPillar)
			}
			if p.ScheduledDate != "" {
				fmt.Printf("Scheduled: %s %s\n", p.ScheduledDate, p.ScheduledTime)
			}
			if p.PublishedDate != "" {
				fmt.Printf("Published: %s\n", p.PublishedDate)
			}
			if p.Performance != nil {
				perf := p.Performance
				fmt.Println()
				fmt.Println("Performance:")
				fmt.Printf("  Reach: %d  Saves: %d  Shares: %d\n", perf.Reach, perf.Saves, perf.Shares)
				fmt.Printf("  Save rate: %.1f%%  Share rate: %.1f%%\n",
					perf.SaveRate*100, perf.ShareRate*100)
			}
			return nil
		},
	}
}

func postAdvanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advance [post-id] [stage]",
		Short: "Move a post along the content pipeline",
		Long: `Move a post to a content pipeline stage. Reaching PUBLISHED stamps the
published date and logs the client timeline. Advancing into CEO APPROVAL
requires the CEO passphrase.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid post id %q", args[0])
			}
			stage := args[1]

			operator, err := resolveOperator(ctx, cmd)
			if err != nil {
				return err
			}
			if stageNeedsCEO(stage) && operator != models.AuthorCEO {
				return fmt.Errorf("advancing past %s requires the CEO passphrase (use --phrase)", stage)
			}

			p, err := wire.PostService().AdvanceStage(ctx, id, stage, operator, "")
			if err != nil {
				return fmt.Errorf("failed to advance post: %w", err)
			}

			fmt.Printf("✓ Post %d is now at %s\n", p.ID, p.Status)
			if p.Status == models.PostStagePublished {
				fmt.Printf("  Published on %s\n", p.PublishedDate)
			}
			return nil
		},
	}

	addOperatorFlag(cmd)

	return cmd
}

func postPerformanceCmd() *cobra.Command {
	var reach, impressions, saves, shares, comments, likes int
	var rating, notes string

	cmd := &cobra.Command{
		Use:   "performance [post-id]",
		Short: "Record performance metrics for a published post",
		Long: `Record performance metrics. Save and share rates are derived from
reach; a post clearing 5% save rate or 3% share rate is captured into the
knowledge vault as a top performer (once per post).

Examples:
  agencyos post performance 7 --reach 12000 --saves 800 --shares 450`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid post id %q", args[0])
			}

			perf := models.Performance{
				Reach:       reach,
				Impressions: impressions,
				Saves:       saves,
				Shares:      shares,
				Comments:    comments,
				Likes:       likes,
				CEORating:   rating,
				Notes:       notes,
			}
			p, err := wire.PostService().UpdatePost(ctx, id, post.Patch{Performance: &perf})
			if err != nil {
				return fmt.Errorf("failed to record performance: %w", err)
			}

			recorded := p.Performance
			fmt.Printf("✓ Performance recorded for post %d\n", p.ID)
			fmt.Printf("  Save rate: %.1f%%  Share rate: %.1f%%\n",
				recorded.SaveRate*100, recorded.ShareRate*100)
			if recorded.SaveRate > post.BreakoutSaveRate || recorded.ShareRate > post.BreakoutShareRate {
				fmt.Println("  Breakout performance — captured in the knowledge vault")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&reach, "reach", 0, "Accounts reached")
	cmd.Flags().IntVar(&impressions, "impressions", 0, "Impressions")
	cmd.Flags().IntVar(&saves, "saves", 0, "Saves")
	cmd.Flags().IntVar(&shares, "shares", 0, "Shares")
	cmd.Flags().IntVar(&comments, "comments", 0, "Comments")
	cmd.Flags().IntVar(&likes, "likes", 0, "Likes")
	cmd.Flags().StringVar(&rating, "rating", "", "CEO rating")
	cmd.Flags().StringVar(&notes, "notes", "", "Performance notes")
	cmd.MarkFlagRequired("reach")

	return cmd
}

func postPlanMonthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan-month [client-id] [planner-file]",
		Short: "Bulk-create planned posts from a monthly planner file",
		Long: `Bulk-create posts from a JSON planner file. Each row becomes a PLANNED
post with standard defaults.

The planner file is a JSON array:
  [{"date":"2026-04-01","platform":"Instagram","postType":"Reel",
    "pillar":"Education","hookIdea":"Myth busting","assignedTo":"Art Director"}]`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			clientID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid client id %q", args[0])
			}

			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read planner file: %w", err)
			}
			var rows []struct {
				Date       string `json:"date"`
				Platform   string `json:"platform"`
				PostType   string `json:"postType"`
				Pillar     string `json:"pillar"`
				HookIdea   string `json:"hookIdea"`
				AssignedTo string `json:"assignedTo"`
			}
			if err := json.Unmarshal(data, &rows); err != nil {
				return fmt.Errorf("failed to parse planner file: %w", err)
			}

			plannerRows := make([]post.PlannerRow, len(rows))
			for i, r := range rows {
				plannerRows[i] = post.PlannerRow{
					Date:       r.Date,
					Platform:   r.Platform,
					PostType:   r.PostType,
					Pillar:     r.Pillar,
					HookIdea:   r.HookIdea,
					AssignedTo: r.AssignedTo,
				}
			}

			ids, err := wire.PostService().GenerateMonthly(ctx, clientID, plannerRows)
			if err != nil {
				return fmt.Errorf("failed to generate monthly plan: %w", err)
			}
			fmt.Printf("✓ Planned %d posts for client %d (%d-%d)\n",
				len(ids), clientID, ids[0], ids[len(ids)-1])
			return nil
		},
	}

	return cmd
}
