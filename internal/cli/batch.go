package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vietddude/sniffer/internal/control"
	"github.com/vietddude/sniffer/internal/core/domain"
	redisclient "github.com/vietddude/sniffer/internal/infra/redis"
)

var (
	batchDir      string
	batchOut      string
	batchParallel int
)

var analyzeBatchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze every job file of a directory in parallel",
	Long: `Each *.json file in --dir holds one job: {"kind": "wallet|events|swaps|transaction", "request": {...}}.
Reports are written to --out when set and summarized on stdout.`,
	RunE: runBatchCmd,
}

func init() {
	analyzeBatchCmd.Flags().StringVar(&batchDir, "dir", ".", "directory of job files")
	analyzeBatchCmd.Flags().StringVar(&batchOut, "out", "", "directory for the report files")
	analyzeBatchCmd.Flags().IntVar(&batchParallel, "parallel", 4, "number of files analyzed at once")
	analyzeCmd.AddCommand(analyzeBatchCmd)
}

type batchResult struct {
	File   string
	Kind   string
	Report *domain.Report
	Err    error
}

func runBatchCmd(cmd *cobra.Command, args []string) error {
	files, err := filepath.Glob(filepath.Join(batchDir, "*.json"))
	if err != nil {
		return err
	}
	sort.Strings(files)
	if batchOut != "" {
		if err := os.MkdirAll(batchOut, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}

	s := newService()
	defer closeService(s)

	results := runBatch(cmd.Context(), s, files, batchParallel)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, "FILE\tKIND\tVERDICT\tSEVERITY\tALERTS\tERROR")
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			_, _ = fmt.Fprintf(w, "%s\t%s\t-\t-\t-\t%v\n", filepath.Base(r.File), r.Kind, r.Err)
			continue
		}
		sum := r.Report.Summary
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t\n", filepath.Base(r.File), r.Kind, sum.Verdict, sum.Severity, sum.AlertCount)
		if batchOut != "" {
			if err := writeReportFile(r); err != nil {
				return err
			}
		}
	}
	_ = w.Flush()

	if failed > 0 {
		return fmt.Errorf("%d of %d jobs failed", failed, len(results))
	}
	return nil
}

// runBatch analyzes files with at most parallel in flight. Results keep the
// order of files; a failing file does not stop the others.
func runBatch(ctx context.Context, s *control.Service, files []string, parallel int) []batchResult {
	results := make([]batchResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	if parallel < 1 {
		parallel = 1
	}
	g.SetLimit(parallel)

	for i, file := range files {
		g.Go(func() error {
			results[i] = analyzeFile(ctx, s, file)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func analyzeFile(ctx context.Context, s *control.Service, file string) batchResult {
	r := batchResult{File: file}
	data, err := os.ReadFile(file)
	if err != nil {
		r.Err = err
		return r
	}
	job, err := redisclient.DecodeJob(data)
	if err != nil {
		r.Err = err
		return r
	}
	r.Kind = job.Kind
	r.Report, r.Err = s.HandleBytes(ctx, job.Kind, job.Request)
	return r
}

func writeReportFile(r batchResult) error {
	name := strings.TrimSuffix(filepath.Base(r.File), ".json") + ".report.json"
	f, err := os.Create(filepath.Join(batchOut, name))
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := writeReport(f, r.Report); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
