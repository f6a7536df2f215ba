package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/layoutgen/internal/extract"
	"github.com/ziadkadry99/layoutgen/internal/orchestrator"
	"github.com/ziadkadry99/layoutgen/internal/progress"
)

var generateCmd = &cobra.Command{
	Use:   "generate <theme>",
	Short: "Generate a poster or card for a theme",
	Long: `Submits a generation job, waits for it to finish, and writes the HTML
document to --out (or to a file named after the document title). The job is
recorded in the shared history like jobs started from the dashboard.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("type", "poster", "content type: poster or card")
	generateCmd.Flags().String("style", "", "with-image-upload or without-image-upload (default with-image-upload)")
	generateCmd.Flags().Bool("web-search", false, "let the model ground the content with web search")
	generateCmd.Flags().String("lang", "", "caption language: zh or en (default: saved preference)")
	generateCmd.Flags().String("out", "", "output file, or - for stdout (default: <title>.html)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	contentType, _ := cmd.Flags().GetString("type")
	style, _ := cmd.Flags().GetString("style")
	webSearch, _ := cmd.Flags().GetBool("web-search")
	lang, _ := cmd.Flags().GetString("lang")
	out, _ := cmd.Flags().GetString("out")

	rt, err := openRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	job, err := rt.orch.Submit(ctx, orchestrator.Request{
		Theme:       strings.Join(args, " "),
		ContentType: contentType,
		Style:       style,
		WebSearch:   webSearch,
		Language:    lang,
	})
	if err != nil {
		var vErr *orchestrator.ValidationError
		if errors.As(err, &vErr) {
			return fmt.Errorf("invalid --%s: %s", flagFor(vErr.Field), vErr.Message)
		}
		return err
	}

	reporter := progress.NewReporter()
	reporter.Start(fmt.Sprintf("Generating %s %q (job %d)", contentType, job.Theme, job.ID))

	done, err := rt.orch.Await(ctx, job.ID)
	if err != nil {
		reporter.Finish("")
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Interrupted; waiting for the job to settle so the history stays consistent...")
		}
		return fmt.Errorf("waiting for job %d: %w", job.ID, err)
	}

	if f, ok := done.Failed(); ok {
		reporter.Finish(fmt.Sprintf("Job %d failed", done.ID))
		return errors.New(f.Message)
	}
	c, _ := done.Completed()
	reporter.Finish(fmt.Sprintf("Job %d completed in %s", done.ID, time.Since(start).Round(time.Millisecond)))

	if err := writeDocument(out, c.HTML); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, c.Text)
	return nil
}

// writeDocument writes doc to path, "-" for stdout, or to a file named after
// the document title when path is empty.
func writeDocument(path, doc string) error {
	if path == "-" {
		_, err := fmt.Fprint(os.Stdout, doc)
		return err
	}
	if path == "" {
		path = extract.FileName(doc)
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
	return nil
}

func flagFor(field string) string {
	switch field {
	case "content_type":
		return "type"
	case "language":
		return "lang"
	}
	return field
}
