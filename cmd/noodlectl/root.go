package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/ting-32/noodle/internal/configs"
	"github.com/ting-32/noodle/internal/models"
	"github.com/ting-32/noodle/internal/repository/remote"
)

type rootOptions struct {
	remoteURL string
	timeout   time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{remoteURL: "http://localhost:8082/", timeout: 15 * time.Second}
	if cfg, err := configs.LoadConfig(); err == nil {
		opts.remoteURL = cfg.RemoteURL
		opts.timeout = cfg.RemoteTimeout
	}

	cmd := &cobra.Command{
		Use:           "noodlectl",
		Short:         "Read-only views over the remote order store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.remoteURL, "remote", opts.remoteURL, "remote store URL")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", opts.timeout, "remote request timeout")

	cmd.AddCommand(
		newSummaryCmd(opts),
		newEligibleCmd(opts),
		newScheduleCmd(opts),
	)
	return cmd
}

func (o *rootOptions) fetch(ctx context.Context) (models.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	snap, err := remote.NewClient(o.remoteURL, o.timeout).Fetch(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}
	return models.NormalizeSnapshot(snap), nil
}
