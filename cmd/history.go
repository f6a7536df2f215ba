package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/layoutgen/internal/audit"
	"github.com/ziadkadry99/layoutgen/internal/extract"
	"github.com/ziadkadry99/layoutgen/internal/history"
	"github.com/ziadkadry99/layoutgen/internal/i18n"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the generation history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List jobs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		rt, err := openStorage(ctx)
		if err != nil {
			return err
		}
		defer rt.Close()

		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")
		switch history.Status(status) {
		case "", history.StatusPending, history.StatusCompleted, history.StatusFailed:
		default:
			return fmt.Errorf("unknown status %q: must be pending, completed or failed", status)
		}

		lang, _ := rt.prefs.Language(ctx)
		labels := i18n.LabelsFor(lang)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED\tSTATUS\tTHEME")
		shown := 0
		for _, j := range rt.store.All() {
			if status != "" && string(j.Status()) != status {
				continue
			}
			created := time.UnixMilli(j.ID).Format("2006-01-02 15:04")
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", j.ID, created, statusLabel(labels, j.Status()), j.Theme)
			shown++
			if limit > 0 && shown == limit {
				break
			}
		}
		if shown == 0 {
			fmt.Println("No jobs found. Run `layoutgen generate <theme>` to create one.")
			return nil
		}
		return w.Flush()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		rt, err := openStorage(ctx)
		if err != nil {
			return err
		}
		defer rt.Close()

		job, err := lookupJob(rt.store, args[0])
		if err != nil {
			return err
		}
		lang, _ := rt.prefs.Language(ctx)

		fmt.Printf("Job:     %d\n", job.ID)
		fmt.Printf("Created: %s\n", time.UnixMilli(job.ID).Format(time.RFC3339))
		fmt.Printf("Status:  %s\n", statusLabel(i18n.LabelsFor(lang), job.Status()))
		fmt.Printf("Theme:   %s\n", job.Theme)
		switch o := job.Outcome.(type) {
		case history.Completed:
			fmt.Printf("Caption: %s\n", o.Text)
			fmt.Printf("File:    %s (%d bytes)\n", extract.FileName(o.HTML), len(o.HTML))
		case history.Failed:
			fmt.Printf("Error:   %s\n", o.Message)
		}
		return nil
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Write a completed job's HTML document to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openStorage(context.Background())
		if err != nil {
			return err
		}
		defer rt.Close()

		job, err := lookupJob(rt.store, args[0])
		if err != nil {
			return err
		}
		c, ok := job.Completed()
		if !ok {
			return fmt.Errorf("job %d is %s; only completed jobs have a document", job.ID, job.Status())
		}
		out, _ := cmd.Flags().GetString("out")
		return writeDocument(out, c.HTML)
	},
}

var historyEventsCmd = &cobra.Command{
	Use:   "events <id>",
	Short: "Show the audit trail of one job (sqlite storage only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		rt, err := openStorage(ctx)
		if err != nil {
			return err
		}
		defer rt.Close()

		if rt.audit == nil {
			return fmt.Errorf("the audit trail needs storage.backend=sqlite (current: %s)", rt.cfg.Storage.Backend)
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid job id %q", args[0])
		}
		entries, err := rt.audit.Query(ctx, audit.QueryFilter{JobID: id})
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Printf("No audit entries for job %d.\n", id)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tACTION\tTHEME\tDETAIL")
		for i := len(entries) - 1; i >= 0; i-- {
			e := entries[i]
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Timestamp.Local().Format(time.DateTime), e.Action, e.Theme, e.Detail)
		}
		return w.Flush()
	},
}

func lookupJob(store *history.Store, arg string) (history.Job, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return history.Job{}, fmt.Errorf("invalid job id %q", arg)
	}
	job, ok := store.Get(id)
	if !ok {
		return history.Job{}, fmt.Errorf("job %d not found", id)
	}
	return job, nil
}

func statusLabel(labels i18n.Labels, s history.Status) string {
	switch s {
	case history.StatusCompleted:
		return labels.Completed
	case history.StatusFailed:
		return labels.Failed
	default:
		return labels.Pending
	}
}

func init() {
	historyListCmd.Flags().String("status", "", "only show jobs with this status (pending, completed, failed)")
	historyListCmd.Flags().Int("limit", 0, "maximum number of jobs to show (0 = all)")
	historyExportCmd.Flags().String("out", "", "output file, or - for stdout (default: <title>.html)")

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyExportCmd, historyEventsCmd)
	rootCmd.AddCommand(historyCmd)
}
