package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/redis-developer/redisctl-go/lro"
	"github.com/redis-developer/redisctl-go/rediscloud"
	"github.com/spf13/cobra"
)

func cloudCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cloud",
		Short: "Redis Cloud operations",
	}
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Inspect and wait for Redis Cloud tasks",
	}
	taskCmd.AddCommand(cloudTaskGetCmd(a), cloudTaskListCmd(a), cloudTaskWaitCmd(a), cloudTaskPollCmd(a))
	cmd.AddCommand(taskCmd)
	return cmd
}

func (a *app) cloudClient() (*rediscloud.Client, error) {
	options := a.settings.cloudOptions()
	options.Logger = a.logger.Desugar()
	return rediscloud.NewClient(options)
}

func cloudTaskGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get TASK_ID",
		Short: "Get the status of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.cloudClient()
			if err != nil {
				return err
			}
			task, err := client.GetTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), a.settings.Output, task)
		},
	}
}

func cloudTaskListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List running tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.cloudClient()
			if err != nil {
				return err
			}
			tasks, err := client.ListTasks(cmd.Context())
			if err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), a.settings.Output, tasks)
		},
	}
}

func cloudTaskWaitCmd(a *app) *cobra.Command {
	var w waitOptions
	cmd := &cobra.Command{
		Use:   "wait TASK_ID",
		Short: "Wait for a task to complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.cloudClient()
			if err != nil {
				return err
			}
			return waitCommand(cmd.Context(), cmd.OutOrStdout(), a.settings.Output, "task", args[0],
				client.WaitForTask, w.pollOptions("task", a.logger))
		},
	}
	w.addCLIFlags(cmd.Flags(), a.settings)
	return cmd
}

func cloudTaskPollCmd(a *app) *cobra.Command {
	var w waitOptions
	var maxPolls int
	cmd := &cobra.Command{
		Use:   "poll TASK_ID",
		Short: "Print the status of a task after every check until it finishes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.cloudClient()
			if err != nil {
				return err
			}
			return pollCommand(cmd.Context(), cmd.OutOrStdout(), "task", args[0], maxPolls,
				client.WaitForTask, w.pollOptions("task", a.logger))
		},
	}
	w.addCLIFlags(cmd.Flags(), a.settings)
	cmd.Flags().IntVar(&maxPolls, "max-polls", 0, "Stop after this many status checks, 0 for no limit")
	return cmd
}

// pollCommand prints one line per status check. Reaching maxPolls stops the loop without an error.
func pollCommand[T any](
	ctx context.Context,
	out io.Writer,
	kind string,
	id string,
	maxPolls int,
	wait func(ctx context.Context, id string, options lro.PollOptions) (*lro.Operation[T], error),
	options lro.PollOptions,
) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintf(out, "Polling %s %s every %s\n", kind, id, options.Interval)
	reachedMax := false
	options.OnPoll = func(attempt int, id string, status lro.Status) {
		fmt.Fprintf(out, "[%s] %s %s: %s\n", time.Now().Format(time.TimeOnly), kind, id, status)
		if maxPolls > 0 && attempt >= maxPolls {
			reachedMax = true
			cancel()
		}
	}

	op, err := wait(ctx, id, options)
	var canceledErr *lro.CanceledError
	if reachedMax && errors.As(err, &canceledErr) {
		fmt.Fprintf(out, "Reached maximum poll count (%d)\n", maxPolls)
		return nil
	}
	if err != nil {
		return describeWaitError(kind, id, err)
	}
	fmt.Fprintf(out, "%s %s finished: %s\n", kind, id, op.Status)
	return nil
}
