package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen/ritual-service/internal/app"
	"github.com/jsamuelsen/ritual-service/internal/wiring"
)

func newFulfilCmd(flags *globalFlags) *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "fulfil ORDER_ID...",
		Short: "Generate, store and deliver rituals for paid orders",
		Long: `Runs the same fulfilment pipeline as the service for each order.
Failed orders may be fulfilled again; fulfilled orders are regenerated.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := flags.load()
			if err != nil {
				return err
			}

			svc, err := wiring.Build(cmd.Context(), cfg, logger, prometheus.NewRegistry())
			if err != nil {
				return err
			}

			defer func() { _ = svc.Close() }()

			return fulfilOrders(cmd.Context(), svc.Fulfilment, args, concurrency, cmd.OutOrStdout(), logger)
		},
	}

	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 2, "orders fulfilled in parallel")

	return cmd
}

// fulfilOrders fulfils every order and reports each outcome on out.
// One failure does not stop the others.
func fulfilOrders(ctx context.Context, f app.Fulfiller, ids []string, concurrency int, out io.Writer, logger *slog.Logger) error {
	var (
		mu     sync.Mutex
		failed []string
	)

	err := app.FanOut(ctx, concurrency, ids, func(ctx context.Context, id string) error {
		res, err := f.Fulfil(ctx, id)

		mu.Lock()
		defer mu.Unlock()

		if err != nil {
			logger.ErrorContext(ctx, "fulfilment failed", slog.String("order_id", id), slog.Any("error", err))
			fmt.Fprintf(out, "FAIL  %s  %v\n", id, err)

			failed = append(failed, id)

			return nil
		}

		fmt.Fprintf(out, "OK    %s  %s\n", res.OrderID, res.PDFURL)

		return nil
	})
	if err != nil {
		return err
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d orders failed: %s", len(failed), len(ids), strings.Join(failed, ", "))
	}

	return nil
}
