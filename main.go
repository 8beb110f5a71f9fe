// Package main provides the entry point for the papervoice CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/papervoice/papervoice/internal/arxiv"
	"github.com/papervoice/papervoice/internal/audio"
	"github.com/papervoice/papervoice/internal/document"
	"github.com/papervoice/papervoice/internal/pages"
	"github.com/papervoice/papervoice/internal/speech"
	"github.com/papervoice/papervoice/internal/speech/engines"
	"github.com/papervoice/papervoice/internal/summarize"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile   string
	paperID      string
	engineName   string
	voiceID      string
	rateWPM      float64
	volume       float64
	pause         time.Duration
	sectionPause  time.Duration
	listVoices    bool
	summarizeBody bool
	summaryLength int

	rootCmd = &cobra.Command{
		Use:   "papervoice",
		Short: "Listen to arXiv papers, read aloud",
		Long: paragraph(
			fmt.Sprintf("\nFetch an arXiv paper and %s, section by section, through a local speech engine.", keyword("read it aloud")),
		),
		Example:       paragraph("papervoice --id 2101.00001\npapervoice --id 2101.00001 --engine piper --rate 160"),
		SilenceErrors: false,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return validateOptions(cmd)
		},
		RunE: execute,
	}
)

func validateOptions(cmd *cobra.Command) error {
	// grab config values from Viper
	engineName = viper.GetString("engine")
	voiceID = viper.GetString("voice")
	rateWPM = viper.GetFloat64("rate")
	volume = viper.GetFloat64("volume")
	pause = viper.GetDuration("pause")
	sectionPause = viper.GetDuration("section_pause")
	summarizeBody = viper.GetBool("summarize")
	summaryLength = viper.GetInt("summary.length")

	// ID comes from the flag only; it names a paper, not a preference.
	if !listVoices && cmd.Name() == rootCmd.Name() && paperID == "" {
		return fmt.Errorf("no paper given: pass an arXiv identifier with --id")
	}
	return nil
}

func execute(cmd *cobra.Command, _ []string) error {
	engine, err := engines.New(engineName, engineConfig())
	if err != nil {
		return err
	}
	defer engine.Close() //nolint:errcheck

	if listVoices {
		return printVoices(engine)
	}
	if err := engine.Validate(); err != nil {
		return err
	}

	settings := speech.DefaultSettings()
	settings.SetRate(rateWPM)
	settings.SetVolume(volume)
	settings.SetSentencePause(pause)
	settings.SetSectionPause(sectionPause)
	if voiceID != "" {
		if err := settings.SetVoice(engine, voiceID); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	doc, cleanup, err := fetchPaper(ctx, paperID)
	if err != nil {
		return err
	}
	defer cleanup()
	printPaperBanner(doc.Meta)

	info := engine.Info()
	player, err := audio.New(audio.Config{
		SampleRate: info.SampleRate,
		Channels:   info.Channels,
		BitDepth:   info.BitDepth,
	})
	if err != nil {
		return fmt.Errorf("unable to open audio device: %w", err)
	}

	reader := speech.NewAudio(engine, player, settings)
	defer reader.Close() //nolint:errcheck

	narrator := speech.NewNarrator(reader, settings)
	if err := narrator.ReadFrontMatter(ctx, doc.Meta); err != nil {
		return err
	}
	if summarizeBody {
		s := summarize.New(viper.GetString("summary.algorithm"))
		return narrator.NarrateSummary(ctx, doc, s, summaryLength)
	}
	return narrator.Narrate(ctx, doc)
}

// fetchPaper resolves the identifier, downloads the PDF to a scratch
// directory, and wraps both in a lazily classified document. The returned
// cleanup removes the scratch directory.
func fetchPaper(ctx context.Context, id string) (*document.Document, func(), error) {
	client := arxiv.NewClient(arxiv.Options{
		PageSize: viper.GetInt("arxiv.page_size"),
		Delay:    viper.GetDuration("arxiv.delay"),
		Retries:  viper.GetInt("arxiv.retries"),
	})

	meta, err := client.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("Resolved paper", "id", meta.ID, "title", meta.Title)

	dir, err := os.MkdirTemp("", "papervoice-*")
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create scratch directory: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	pdfPath, err := client.DownloadPDF(ctx, meta, dir)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	extractor := pages.NewExtractor()
	source := document.SourceFunc(func(context.Context) ([]pages.TextBlock, error) {
		return extractor.ExtractFile(pdfPath)
	})
	return document.New(meta, source), cleanup, nil
}

func printVoices(engine speech.Engine) error {
	voices, err := engine.Voices()
	if err != nil {
		return err
	}
	for _, v := range voices {
		fmt.Printf("%s\t%s\t%s\n", v.ID, v.Language, v.Name)
	}
	return nil
}

// printPaperBanner shows what is about to be read. Skipped when stdout is
// not a terminal.
func printPaperBanner(meta arxiv.Metadata) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return
	}
	fmt.Println(paragraph(titleStyle.Render(meta.Title)))
	if len(meta.Authors) > 0 {
		fmt.Println(paragraph(subtleStyle.Render(strings.Join(meta.Authors, ", "))))
	}
	fmt.Println()
}

// engineConfig assembles the engine settings from Viper.
func engineConfig() engines.Config {
	cfg := engines.DefaultConfig()
	if v := viper.GetString("espeak.binary"); v != "" {
		cfg.EspeakBinary = v
	}
	if v := viper.GetString("piper.binary"); v != "" {
		cfg.PiperBinary = v
	}
	cfg.PiperModel = expandPath(viper.GetString("piper.model"))
	if v := viper.GetDuration("timeout"); v > 0 {
		cfg.Timeout = v
	}
	return cfg
}

// expandPath resolves a leading ~ against the user's home directory.
func expandPath(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.Flags().StringVarP(&paperID, "id", "i", "", "arXiv identifier of the paper to read")
	rootCmd.Flags().StringVarP(&engineName, "engine", "e", "espeak", "speech engine (espeak, piper, mock)")
	rootCmd.Flags().StringVar(&voiceID, "voice", "", "voice ID, as printed by --list-voices")
	rootCmd.Flags().Float64VarP(&rateWPM, "rate", "r", speech.DefaultRateWPM, "speaking rate in words per minute")
	rootCmd.Flags().Float64Var(&volume, "volume", speech.DefaultVolume, "playback volume, 0 to 1")
	rootCmd.Flags().DurationVar(&pause, "pause", speech.DefaultSentencePause, "pause between sentences")
	rootCmd.Flags().DurationVar(&sectionPause, "section-pause", speech.DefaultSectionPause, "pause between sections")
	rootCmd.Flags().BoolVarP(&listVoices, "list-voices", "l", false, "list the engine's voices and exit")
	rootCmd.Flags().BoolVarP(&summarizeBody, "summarize", "s", false, "read an extractive summary instead of the full body")
	rootCmd.Flags().IntVar(&summaryLength, "summary-length", summarize.DefaultMaxWords, "approximate summary length in words")

	// Config bindings
	_ = viper.BindPFlag("engine", rootCmd.Flags().Lookup("engine"))
	_ = viper.BindPFlag("voice", rootCmd.Flags().Lookup("voice"))
	_ = viper.BindPFlag("rate", rootCmd.Flags().Lookup("rate"))
	_ = viper.BindPFlag("volume", rootCmd.Flags().Lookup("volume"))
	_ = viper.BindPFlag("pause", rootCmd.Flags().Lookup("pause"))
	_ = viper.BindPFlag("section_pause", rootCmd.Flags().Lookup("section-pause"))
	_ = viper.BindPFlag("summarize", rootCmd.Flags().Lookup("summarize"))
	_ = viper.BindPFlag("summary.length", rootCmd.Flags().Lookup("summary-length"))

	viper.SetDefault("engine", "espeak")
	viper.SetDefault("rate", speech.DefaultRateWPM)
	viper.SetDefault("volume", speech.DefaultVolume)
	viper.SetDefault("pause", speech.DefaultSentencePause)
	viper.SetDefault("section_pause", speech.DefaultSectionPause)

	// Summarization defaults
	viper.SetDefault("summarize", false)
	viper.SetDefault("summary.algorithm", "textrank")
	viper.SetDefault("summary.length", summarize.DefaultMaxWords)

	// arXiv client defaults
	viper.SetDefault("arxiv.page_size", 100)
	viper.SetDefault("arxiv.delay", 3*time.Second)
	viper.SetDefault("arxiv.retries", 3)

	// Engine defaults
	viper.SetDefault("espeak.binary", "espeak-ng")
	viper.SetDefault("piper.binary", "piper")
	viper.SetDefault("piper.model", "")
	viper.SetDefault("timeout", 30*time.Second)

	rootCmd.AddCommand(configCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "papervoice")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "papervoice")}, dirs...)
	}

	if c := os.Getenv("PAPERVOICE_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("papervoice")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("papervoice")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "papervoice.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
