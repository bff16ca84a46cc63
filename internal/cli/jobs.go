package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	redisclient "github.com/vietddude/sniffer/internal/infra/redis"
)

var (
	jobKind string
	jobFile string
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Queue analysis jobs in Redis and read their results",
}

var jobsPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Queue a request file for the worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(jobFile)
		if err != nil {
			return fmt.Errorf("failed to read request: %w", err)
		}
		client, err := redisFromConfig()
		if err != nil {
			return err
		}
		defer func() {
			_ = client.Close()
		}()

		job := &redisclient.Job{Kind: jobKind, Request: data}
		if err := client.PushJob(cmd.Context(), job); err != nil {
			return err
		}
		fmt.Println(job.ID)
		return nil
	},
}

var jobsResultCmd = &cobra.Command{
	Use:   "result JOB_ID",
	Short: "Print the stored result of a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := redisFromConfig()
		if err != nil {
			return err
		}
		defer func() {
			_ = client.Close()
		}()

		data, found, err := client.GetResult(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no result for job %s", args[0])
		}
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	},
}

func init() {
	jobsPushCmd.Flags().StringVar(&jobKind, "kind", "", "analysis kind: wallet, events, swaps or transaction")
	jobsPushCmd.Flags().StringVar(&jobFile, "file", "", "request JSON file")
	_ = jobsPushCmd.MarkFlagRequired("kind")
	_ = jobsPushCmd.MarkFlagRequired("file")

	jobsCmd.AddCommand(jobsPushCmd, jobsResultCmd)
	rootCmd.AddCommand(jobsCmd)
}

func redisFromConfig() (*redisclient.Client, error) {
	if !appCfg.Redis.Enabled() {
		return nil, errors.New("redis.url is not configured")
	}
	return redisclient.NewClient(appCfg.Redis)
}
