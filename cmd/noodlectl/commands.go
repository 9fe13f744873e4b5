package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ting-32/noodle/internal/models"
	"github.com/ting-32/noodle/internal/planning"
)

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Pending quantities per delivery date and item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := opts.fetch(cmd.Context())
			if err != nil {
				return err
			}
			renderSummary(cmd.OutOrStdout(), planning.Plan(planning.Aggregate(snap.Orders), snap.Products))
			return nil
		},
	}
}

func newEligibleCmd(opts *rootOptions) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "eligible",
		Short: "Stores open for deliveries on a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := models.NormalizeDate(date)
			if d == "" {
				return fmt.Errorf("invalid --date %q, want YYYY-MM-DD", date)
			}
			snap, err := opts.fetch(cmd.Context())
			if err != nil {
				return err
			}
			renderEligible(cmd.OutOrStdout(), d, planning.EligibleStores(snap.Stores, d))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "delivery date, YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newScheduleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Deliveries per date in delivery time order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := opts.fetch(cmd.Context())
			if err != nil {
				return err
			}
			renderSchedule(cmd.OutOrStdout(), planning.Schedule(snap.Orders))
			return nil
		},
	}
}

func printLine(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, strings.TrimRight(fmt.Sprintf(format, args...), " "))
}

func renderSummary(w io.Writer, plans []planning.DayPlan) {
	if len(plans) == 0 {
		printLine(w, "no pending orders")
		return
	}
	for _, day := range plans {
		printLine(w, "%s", day.Date)
		for _, l := range day.Lines {
			printLine(w, "  %-12s %6d %s", l.ItemName, l.Quantity, l.Unit)
		}
	}
}

func renderEligible(w io.Writer, date string, stores []models.Store) {
	if len(stores) == 0 {
		printLine(w, "no stores open on %s", date)
		return
	}
	for _, s := range stores {
		printLine(w, "%-16s %s", s.StoreName, s.DeliveryTime)
	}
}

func renderSchedule(w io.Writer, days []planning.DaySchedule) {
	if len(days) == 0 {
		printLine(w, "no orders")
		return
	}
	for _, day := range days {
		printLine(w, "%s", day.Date)
		for _, o := range day.Orders {
			status := ""
			if !o.IsPending() {
				status = string(o.Status)
			}
			printLine(w, "  %s  %-14s %-8s %4d %s", o.DeliveryTime, o.StoreName, o.ItemName, o.Quantity, status)
		}
	}
}
