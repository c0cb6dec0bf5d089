package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/go-drift/lazymedia/pkg/errors"
	"github.com/go-drift/lazymedia/pkg/rendering"
)

const defaultScrollStep = 200

func newSimulateCommand(ctx *commandContext) *cobra.Command {
	var step float64

	cmd := &cobra.Command{
		Use:   "simulate <page.yaml>",
		Short: "Scroll through a page and report when each source is fetched",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if math.IsNaN(step) || math.IsInf(step, 0) || step <= 0 {
				return fmt.Errorf("--step must be a finite positive number (got %v)", step)
			}
			page, err := loadPage(args[0])
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			h := mountPage(page)
			defer h.close()

			simulateScroll(h, step, logger)

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Source", "Top", "Visible At", "Type", "State"},
				simulationRows(h),
				[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().Float64Var(&step, "step", defaultScrollStep, "Scroll distance in pixels between flushes")
	return cmd
}

// simulateScroll scrolls the viewport from the top of the page to the bottom,
// flushing intersection entries and pumping rebuilds after every step.
func simulateScroll(h *host, step float64, logger *zap.Logger) {
	end := h.page.DocumentHeight() - h.page.ViewportHeight
	if end < 0 {
		end = 0
	}
	for y := 0.0; ; y += step {
		if y > end {
			y = end
		}
		h.viewport.ScrollTo(rendering.Offset{Y: y})
		flush(h)
		h.rebuild()
		record(h, y, logger)
		if y >= end {
			return
		}
	}
}

func flush(h *host) {
	defer errors.Recover("lazymedia.simulate.flush")
	h.viewport.Flush()
}

func record(h *host, scroll float64, logger *zap.Logger) {
	for _, p := range h.players {
		handle := p.handle()
		if p.visibleAt >= 0 || handle == nil || !handle.Visible() {
			continue
		}
		p.visibleAt = scroll
		src, _ := handle.Source()
		logger.Info("materialized video source",
			zap.String("src", src.URL),
			zap.String("type", src.MimeType),
			zap.Float64("top", p.video.Top),
			zap.Float64("scroll", scroll),
		)
	}
}

func simulationRows(h *host) [][]string {
	rows := make([][]string, 0, len(h.players))
	for _, p := range h.players {
		visibleAt := "never"
		if p.visibleAt >= 0 {
			visibleAt = formatPixels(p.visibleAt)
		}
		typ := p.video.Type
		if src, ok := p.handle().Source(); ok {
			typ = src.MimeType
		}
		if typ == "" {
			typ = "-"
		}
		state := "-"
		if el, ok := p.handle().Placeholder(); ok {
			state = el.State().String()
		}
		rows = append(rows, []string{p.video.Src, formatPixels(p.video.Top), visibleAt, typ, state})
	}
	return rows
}
