package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultConfig = `# speech engine: espeak, piper, or mock
engine: "espeak"
# voice ID, as printed by --list-voices (empty for the engine default)
voice: ""
# speaking rate in words per minute (50 to 500)
rate: 140
# playback volume (0.0 to 1.0)
volume: 0.9
# pause between sentences
pause: "100ms"
# pause between section headers and content blocks
section_pause: "1s"

# synthesis timeout per utterance
timeout: "30s"

# read an extractive summary instead of the full body
summarize: false
summary:
  # algorithm: textrank or luhn
  algorithm: "textrank"
  # approximate summary length in words
  length: 150

# arXiv API client
arxiv:
  # maximum results per API request (1 to 2000)
  page_size: 100
  # wait between API requests; the terms of use ask for 3s
  delay: "3s"
  # retries before a failing request errors out
  retries: 3

# espeak-ng engine configuration
espeak:
  binary: "espeak-ng"

# piper engine configuration
piper:
  binary: "piper"
  # path to the voice model (.onnx), required for piper
  model: ""
`

var configCmd = &cobra.Command{
	Use:     "config",
	Hidden:  false,
	Short:   "Edit the papervoice config file",
	Long:    paragraph(fmt.Sprintf("\n%s the papervoice config file. We’ll use EDITOR to determine which editor to use. If the config file doesn't exist, it will be created.", keyword("Edit"))),
	Example: paragraph("papervoice config\npapervoice config --config path/to/config.yml"),
	Args:    cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		if err := ensureConfigFile(); err != nil {
			return err
		}

		c, err := editor.Cmd("Papervoice", configFile)
		if err != nil {
			return fmt.Errorf("unable to set config file: %w", err)
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("unable to run command: %w", err)
		}

		fmt.Println("Wrote config file to:", configFile)
		return nil
	},
}

func ensureConfigFile() error {
	if configFile == "" {
		configFile = viper.GetViper().ConfigFileUsed()
		if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil { //nolint:gosec
			return fmt.Errorf("could not write configuration file: %w", err)
		}
	}

	if ext := path.Ext(configFile); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("'%s' is not a supported configuration type: use '%s' or '%s'", ext, ".yaml", ".yml")
	}

	if _, err := os.Stat(configFile); errors.Is(err, fs.ErrNotExist) {
		// File doesn't exist yet, create all necessary directories and
		// write the default config file
		if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
			return fmt.Errorf("unable create directory: %w", err)
		}

		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("unable to create config file: %w", err)
		}
		defer func() { _ = f.Close() }()

		if _, err := f.WriteString(defaultConfig); err != nil {
			return fmt.Errorf("unable to write config file: %w", err)
		}
	} else if err != nil { // some other error occurred
		return fmt.Errorf("unable to stat config file: %w", err)
	}
	return nil
}
