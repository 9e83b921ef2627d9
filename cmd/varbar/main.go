// Package main provides the CLI entry point for varbar.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ukaji3/varbar-go/pkg/varbar"
	"github.com/ukaji3/varbar-go/pkg/varbar/config"
	"github.com/ukaji3/varbar-go/pkg/varbar/host"
	"github.com/ukaji3/varbar-go/pkg/varbar/models"
	"github.com/ukaji3/varbar-go/pkg/varbar/output"
	"github.com/ukaji3/varbar-go/pkg/varbar/server"
)

var (
	outputPath string
	formatName string
	configPath string
	width      float64
	height     float64
	sheet      string
	dataRange  string
	pretty     bool
	selectIDs  []string
	watch      bool
	verbose    bool
	addr       string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "varbar",
		Short: "Render actual-vs-target revenue bar charts",
		Long: `varbar renders diverging actual-vs-target bar charts with conditional
coloring and target markers from JSON data views, CSV or Excel files.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultFile, "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	renderCmd := &cobra.Command{
		Use:   "render [input]",
		Short: "Render a chart from a .json, .csv or .xlsx file",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	renderCmd.Flags().StringVar(&formatName, "format", "", "Output format: svg, png, json, xlsx (default: from output extension, else svg)")
	renderCmd.Flags().Float64Var(&width, "width", 0, "Viewport width (overrides config)")
	renderCmd.Flags().Float64Var(&height, "height", 0, "Viewport height (overrides config)")
	renderCmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet for Excel input (default: first sheet)")
	renderCmd.Flags().StringVar(&dataRange, "range", "", "Defined name or A1 range for Excel input (default: ChartData if defined)")
	renderCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	renderCmd.Flags().StringSliceVar(&selectIDs, "select", nil, "Click the given bar elements (e.g. bar-0) after rendering")
	renderCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-render whenever the input changes (requires --output)")

	formatModelCmd := &cobra.Command{
		Use:   "format-model [input]",
		Short: "Print the formatting model, optionally with an input's persisted objects applied",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runFormatModel,
	}
	formatModelCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chart host over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")

	rootCmd.AddCommand(renderCmd, formatModelCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Viewport.Width = width
	}
	if flags.Changed("height") {
		cfg.Viewport.Height = height
	}
	if flags.Changed("sheet") {
		cfg.Input.Sheet = sheet
	}
	if flags.Changed("range") {
		cfg.Input.Range = dataRange
	}
	if flags.Changed("addr") {
		cfg.Server.Addr = addr
	}
	return cfg, nil
}

func resolveFormat() (varbar.Format, error) {
	if formatName == "" {
		if outputPath != "" {
			return varbar.FormatForPath(outputPath), nil
		}
		return varbar.FormatSVG, nil
	}
	f, ok := varbar.ParseFormat(formatName)
	if !ok {
		return "", fmt.Errorf("invalid format: %s (must be svg, png, json, or xlsx)", formatName)
	}
	return f, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	logger := newLogger()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	format, err := resolveFormat()
	if err != nil {
		return err
	}
	if watch && outputPath == "" {
		return errors.New("--watch requires --output")
	}

	opts := cfg.Options(logger)
	render := func() error {
		return renderOnce(inputPath, opts, format, logger)
	}

	if err := render(); err != nil {
		if !watch {
			return err
		}
		logger.Error("Render failed", slog.Any("error", err))
	}
	if !watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchFile(ctx, inputPath, logger, render)
}

func renderOnce(inputPath string, opts varbar.Options, format varbar.Format, logger *slog.Logger) error {
	frame, h, err := varbar.Render(inputPath, opts)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	if !frame.Drawn() {
		logger.Warn("Nothing to draw", slog.String("input", inputPath))
	}

	if err := clickAll(h, selectIDs, logger); err != nil {
		return err
	}

	if outputPath == "" {
		return varbar.Write(os.Stdout, frame, format, pretty)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := varbar.Write(f, frame, format, pretty); err != nil {
		f.Close()
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	logger.Info("Rendered",
		slog.String("input", inputPath),
		slog.String("output", outputPath),
		slog.String("format", string(format)),
		slog.Int("bars", len(frame.Bars)),
	)
	return nil
}

// clickAll dispatches clicks in order and logs the resulting selection.
func clickAll(h *host.Memory, ids []string, logger *slog.Logger) error {
	if len(ids) == 0 {
		return nil
	}
	for _, id := range ids {
		if !h.Click(id) {
			return fmt.Errorf("no element %q (have %v)", id, h.Elements())
		}
	}
	for _, sel := range h.Selected() {
		logger.Info("Selected",
			slog.String("key", sel.Key),
			slog.String("column", sel.Column),
			slog.Int("index", sel.Index),
		)
	}
	return nil
}

func runFormatModel(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	v := varbar.NewVisual(host.NewMemory(), cfg.Options(newLogger()))
	if len(args) == 1 {
		dv, err := varbar.Load(args[0], cfg.Options(nil))
		if err != nil {
			return err
		}
		v.Update(varbar.UpdateOptions{Viewport: cfg.Viewport, DataViews: []*models.DataView{dv}})
	}

	data, err := output.FormattingModelToJSON(v.FormattingModel(), pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return writeLine(os.Stdout, data)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := server.New(cfg.Options(newLogger()))
	return s.ListenAndServe(ctx, cfg.Server.Addr)
}

func writeLine(w io.Writer, data []byte) error {
	_, err := fmt.Fprintln(w, string(data))
	return err
}
