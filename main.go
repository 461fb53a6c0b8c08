package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/qyinm/galtui/catalog"
	"github.com/qyinm/galtui/config"
	"github.com/qyinm/galtui/gallery"
	"github.com/qyinm/galtui/ui"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "galtui [page-path]",
	Short: "Browse a static image gallery in the terminal",
	Long: `galtui renders the thumbnail gallery of a static site page in the
terminal. The page path selects the category (/cats.html shows the cats
images, / shows everything), the search box filters by tag, and enter
opens the full-size image viewer.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGallery,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultFile, "config file path")
	rootCmd.Flags().String("catalog", "", "catalog location: images.json path, gallery .html page, or http(s) URL")
	rootCmd.Flags().String("assets", "", "prefix for thumbnail and image paths")
	rootCmd.Flags().Bool("watch", false, "reload when the local catalog file changes")
	rootCmd.Flags().String("log", "", "write debug log to this file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runGallery(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg, args)
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The alt screen owns the terminal, so logs go to a file or nowhere.
	logger := log.New(io.Discard, "", log.LstdFlags)
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "galtui")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = log.Default()
	} else {
		log.SetOutput(io.Discard)
	}

	source, err := catalog.Open(cfg.Catalog)
	if err != nil {
		return err
	}

	model := ui.NewModel(source, gallery.Options{
		Path:      cfg.Page,
		AssetBase: cfg.Assets,
		Logger:    logger,
	})
	logger.Printf("page view %s: %s from %s", model.Controller().ID(), cfg.Page, cfg.Catalog)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Watch {
		if local, ok := source.(interface{ Path() string }); ok {
			if err := catalog.Watch(ctx, local.Path(), func() { p.Send(ui.CatalogChangedMsg{}) }); err != nil {
				return err
			}
		} else {
			logger.Printf("watch ignored: %s is not a local file", cfg.Catalog)
		}
	}

	_, err = p.Run()
	return err
}

// applyFlags overlays explicitly set flags and the page argument on cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Config, args []string) {
	flags := cmd.Flags()
	if flags.Changed("catalog") {
		cfg.Catalog, _ = flags.GetString("catalog")
	}
	if flags.Changed("assets") {
		cfg.Assets, _ = flags.GetString("assets")
	}
	if flags.Changed("watch") {
		cfg.Watch, _ = flags.GetBool("watch")
	}
	if flags.Changed("log") {
		cfg.LogFile, _ = flags.GetString("log")
	}
	if len(args) == 1 {
		cfg.Page = args[0]
	}
}
