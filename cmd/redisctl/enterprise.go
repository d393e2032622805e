package main

import (
	"context"

	"github.com/redis-developer/redisctl-go/lro"
	"github.com/redis-developer/redisctl-go/redisenterprise"
	"github.com/spf13/cobra"
)

func enterpriseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enterprise",
		Short: "Redis Enterprise operations",
	}
	cmd.AddCommand(
		enterpriseKindCmd(a, enterpriseKind[*redisenterprise.Action]{
			use:   "action",
			short: "Inspect and wait for cluster actions",
			noun:  "action",
			get:   (*redisenterprise.Client).GetAction,
			list:  listAs((*redisenterprise.Client).ListActions),
			wait:  (*redisenterprise.Client).WaitForAction,
		}),
		enterpriseKindCmd(a, enterpriseKind[*redisenterprise.CrdbTask]{
			use:   "crdb-task",
			short: "Inspect and wait for Active-Active database tasks",
			noun:  "crdb task",
			get:   (*redisenterprise.Client).GetCrdbTask,
			list:  listAs((*redisenterprise.Client).ListCrdbTasks),
			wait:  (*redisenterprise.Client).WaitForCrdbTask,
		}),
		enterpriseKindCmd(a, enterpriseKind[*redisenterprise.DebugInfoStatus]{
			use:   "debuginfo",
			short: "Inspect and wait for debug info collections",
			noun:  "debug info",
			get:   (*redisenterprise.Client).GetDebugInfo,
			list:  listAs((*redisenterprise.Client).ListDebugInfo),
			wait:  (*redisenterprise.Client).WaitForDebugInfo,
		}),
		enterpriseKindCmd(a, enterpriseKind[*redisenterprise.Migration]{
			use:   "migration",
			short: "Inspect and wait for database migrations",
			noun:  "migration",
			get:   (*redisenterprise.Client).GetMigration,
			list:  listAs((*redisenterprise.Client).ListMigrations),
			wait:  (*redisenterprise.Client).WaitForMigration,
		}),
	)
	return cmd
}

func (a *app) enterpriseClient() (*redisenterprise.Client, error) {
	options := a.settings.enterpriseOptions()
	options.Logger = a.logger.Desugar()
	return redisenterprise.NewClient(options)
}

// enterpriseKind describes the get, list and wait calls of one kind of tracked operation.
type enterpriseKind[T any] struct {
	use   string
	short string
	noun  string
	get   func(c *redisenterprise.Client, ctx context.Context, id string) (T, error)
	list  func(c *redisenterprise.Client, ctx context.Context) (any, error)
	wait  func(c *redisenterprise.Client, ctx context.Context, id string, options lro.PollOptions) (*lro.Operation[T], error)
}

func listAs[S any](list func(c *redisenterprise.Client, ctx context.Context) ([]S, error)) func(*redisenterprise.Client, context.Context) (any, error) {
	return func(c *redisenterprise.Client, ctx context.Context) (any, error) {
		return list(c, ctx)
	}
}

func enterpriseKindCmd[T any](a *app, kind enterpriseKind[T]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   kind.use,
		Short: kind.short,
	}

	getCmd := &cobra.Command{
		Use:   "get ID",
		Short: "Get the status of a " + kind.noun,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.enterpriseClient()
			if err != nil {
				return err
			}
			v, err := kind.get(client, cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), a.settings.Output, v)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List " + kind.noun + " operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.enterpriseClient()
			if err != nil {
				return err
			}
			v, err := kind.list(client, cmd.Context())
			if err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), a.settings.Output, v)
		},
	}

	var w waitOptions
	waitCmd := &cobra.Command{
		Use:   "wait ID",
		Short: "Wait for a " + kind.noun + " to finish",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.enterpriseClient()
			if err != nil {
				return err
			}
			wait := func(ctx context.Context, id string, options lro.PollOptions) (*lro.Operation[T], error) {
				return kind.wait(client, ctx, id, options)
			}
			return waitCommand(cmd.Context(), cmd.OutOrStdout(), a.settings.Output, kind.noun, args[0],
				wait, w.pollOptions(kind.noun, a.logger))
		},
	}
	w.addCLIFlags(waitCmd.Flags(), a.settings)

	cmd.AddCommand(getCmd, listCmd, waitCmd)
	return cmd
}
