package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const FileName = "slox.yml"

// Config holds the interpreter host settings. Command line flags are applied
// on top of whatever Load returns.
type Config struct {
	Path string

	Prompt             string
	ContinuationPrompt string
	HistoryFile        string
	Color              bool
	DumpTokens         bool
	DumpAST            bool
	Debug              bool
}

type configFile struct {
	Prompt             *string `yaml:"prompt"`
	ContinuationPrompt *string `yaml:"continuation_prompt"`
	HistoryFile        *string `yaml:"history_file"`
	Color              *bool   `yaml:"color"`
	DumpTokens         *bool   `yaml:"dump_tokens"`
	DumpAST            *bool   `yaml:"dump_ast"`
	Debug              *bool   `yaml:"debug"`
}

type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("config: validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

func Default() *Config {
	return &Config{
		Prompt:             "> ",
		ContinuationPrompt: ". ",
		HistoryFile:        "~/.slox_history",
		Color:              true,
	}
}

// Discover returns the path of slox.yml in dir, or "" when there is none.
func Discover(dir string) string {
	path := filepath.Join(dir, FileName)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path
	}
	return ""
}

// Load reads a YAML config file over the defaults. An empty path returns the
// defaults; unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	if err := cfg.decode(file); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	cfg.Path = absPath

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	setString(&c.Prompt, raw.Prompt)
	setString(&c.ContinuationPrompt, raw.ContinuationPrompt)
	setString(&c.HistoryFile, raw.HistoryFile)
	setBool(&c.Color, raw.Color)
	setBool(&c.DumpTokens, raw.DumpTokens)
	setBool(&c.DumpAST, raw.DumpAST)
	setBool(&c.Debug, raw.Debug)

	return nil
}

func (c *Config) validate() error {
	var errs ValidationError
	if c.Prompt == "" {
		errs.Issues = append(errs.Issues, "prompt must not be empty")
	}
	if c.ContinuationPrompt == "" {
		errs.Issues = append(errs.Issues, "continuation_prompt must not be empty")
	}

	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// HistoryPath expands a leading "~/" in HistoryFile. It returns "" when
// history is disabled or the home directory is unknown.
func (c *Config) HistoryPath() string {
	if c.HistoryFile == "" {
		return ""
	}
	if !strings.HasPrefix(c.HistoryFile, "~/") {
		return c.HistoryFile
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, c.HistoryFile[2:])
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
