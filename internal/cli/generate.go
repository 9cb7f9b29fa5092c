package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/mark3labs/openapi2locust/internal/emitter/locustemitter"
	genspec "github.com/mark3labs/openapi2locust/internal/spec"
)

// GenerateConfig captures all inputs that influence the generate command
// after merging defaults, config file values, and CLI overrides.
type GenerateConfig struct {
	Input      string
	Host       string
	Client     string
	ClassName  string
	Weight     int
	Out        string
	ConfigPath string
	Force      bool
	Verbose    bool
}

func defaultGenerateConfig() GenerateConfig {
	return GenerateConfig{
		Client:    string(locustemitter.FastHTTP),
		ClassName: "GeneratedUser",
		Weight:    1,
	}
}

var generateRunner = runGenerate

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a locustfile from an OpenAPI/Swagger document",
		Long: "Generate a locustfile from an OpenAPI/Swagger document. " +
			"Options can be provided via flags, config files, or defaults.",
		Example: strings.TrimSpace(`  openapi2locust generate --input spec.yaml --host https://api.example.com
  openapi2locust --config config.yaml generate --out locustfile.py --force`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveGenerateConfig(cmd)
			if err != nil {
				return err
			}
			return generateRunner(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("input", "", "Path or URL to the Swagger/OpenAPI document")
	flags.String("host", "", "Target host baked into the generated user class")
	flags.String("client", "", "Locust client flavor (fast_http|requests); defaults to fast_http")
	flags.String("class-name", "", "Name of the generated Locust user class")
	flags.Int("weight", 0, "Task weight applied uniformly to every generated task")
	flags.String("out", "", "Output file path; empty or - writes to stdout")
	flags.Bool("force", false, "Overwrite the output file when it exists")

	return cmd
}

func resolveGenerateConfig(cmd *cobra.Command) (*GenerateConfig, error) {
	cfg := defaultGenerateConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	configPath = strings.TrimSpace(configPath)
	if configPath != "" {
		cfg.ConfigPath = configPath
		if err := applyGenerateConfigFromFile(&cfg, configPath); err != nil {
			return nil, err
		}
	}

	if err := applyGenerateFlagOverrides(cmd.Flags(), &cfg); err != nil {
		return nil, err
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// generateFileConfig mirrors GenerateConfig for config-file decoding.
type generateFileConfig struct {
	Input     string `yaml:"input" json:"input"`
	Host      string `yaml:"host" json:"host"`
	Client    string `yaml:"client" json:"client"`
	ClassName string `yaml:"className" json:"className"`
	Weight    int    `yaml:"weight" json:"weight"`
	Out       string `yaml:"out" json:"out"`
	Force     *bool  `yaml:"force" json:"force"`
	Verbose   *bool  `yaml:"verbose" json:"verbose"`
}

func applyGenerateConfigFromFile(cfg *GenerateConfig, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return newUsageError(fmt.Sprintf("generate: cannot read config file %q: %v", path, err))
	}
	var fc generateFileConfig
	// YAML is a superset of JSON, so one decoder covers both formats.
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return newUsageError(fmt.Sprintf("generate: cannot parse config file %q: %v", path, err))
	}
	if v := strings.TrimSpace(fc.Input); v != "" {
		cfg.Input = v
	}
	if v := strings.TrimSpace(fc.Host); v != "" {
		cfg.Host = v
	}
	if v := strings.TrimSpace(fc.Client); v != "" {
		cfg.Client = v
	}
	if v := strings.TrimSpace(fc.ClassName); v != "" {
		cfg.ClassName = v
	}
	if fc.Weight > 0 {
		cfg.Weight = fc.Weight
	}
	if v := strings.TrimSpace(fc.Out); v != "" {
		cfg.Out = v
	}
	if fc.Force != nil {
		cfg.Force = *fc.Force
	}
	if fc.Verbose != nil {
		cfg.Verbose = *fc.Verbose
	}
	return nil
}

func applyGenerateFlagOverrides(flags *pflag.FlagSet, cfg *GenerateConfig) error {
	if flags.Changed("input") {
		value, err := flags.GetString("input")
		if err != nil {
			return err
		}
		cfg.Input = strings.TrimSpace(value)
	}
	if flags.Changed("host") {
		value, err := flags.GetString("host")
		if err != nil {
			return err
		}
		cfg.Host = strings.TrimSpace(value)
	}
	if flags.Changed("client") {
		value, err := flags.GetString("client")
		if err != nil {
			return err
		}
		cfg.Client = strings.TrimSpace(value)
	}
	if flags.Changed("class-name") {
		value, err := flags.GetString("class-name")
		if err != nil {
			return err
		}
		cfg.ClassName = strings.TrimSpace(value)
	}
	if flags.Changed("weight") {
		value, err := flags.GetInt("weight")
		if err != nil {
			return err
		}
		cfg.Weight = value
	}
	if flags.Changed("out") {
		value, err := flags.GetString("out")
		if err != nil {
			return err
		}
		cfg.Out = strings.TrimSpace(value)
	}
	if flags.Changed("force") {
		value, err := flags.GetBool("force")
		if err != nil {
			return err
		}
		cfg.Force = value
	}
	if flags.Changed("verbose") {
		value, err := flags.GetBool("verbose")
		if err != nil {
			return err
		}
		cfg.Verbose = value
	}

	return nil
}

func (c *GenerateConfig) normalize() {
	c.Input = strings.TrimSpace(c.Input)
	c.Host = strings.TrimSpace(c.Host)
	c.Client = strings.ToLower(strings.TrimSpace(c.Client))
	c.ClassName = strings.TrimSpace(c.ClassName)
	c.Out = strings.TrimSpace(c.Out)
}

func (c *GenerateConfig) validate() error {
	if c.Input == "" {
		return newUsageError("generate: --input is required (set via flag or config file)")
	}
	if c.Host == "" {
		return newUsageError("generate: --host is required (set via flag or config file)")
	}
	if c.Weight < 1 {
		return newUsageError(fmt.Sprintf("generate: --weight must be a positive integer, got %d", c.Weight))
	}
	// Unknown client flavors are not an error; the emitter falls back
	// to its documented default.
	return nil
}

func runGenerate(ctx context.Context, cfg *GenerateConfig) error {
	log := newLogger(cfg.Verbose)

	document, err := genspec.Load(ctx, cfg.Input)
	if err != nil {
		var se *genspec.SpecError
		if errors.As(err, &se) {
			msg := fmt.Sprintf("spec: %s", se.Message)
			if se.Location != "" {
				msg = fmt.Sprintf("%s\nLocation: %s", msg, se.Location)
			}
			return newUsageError(msg)
		}
		return err
	}

	ops := genspec.Extract(document)
	log.Debug("extracted operations", "count", len(ops))

	out := locustemitter.Emit(ops, locustemitter.Options{
		Host:       cfg.Host,
		Client:     locustemitter.Client(cfg.Client),
		ClassName:  cfg.ClassName,
		TaskWeight: cfg.Weight,
	})

	if cfg.Out == "" || cfg.Out == "-" {
		_, err := fmt.Fprint(os.Stdout, out)
		return err
	}

	abs, err := filepath.Abs(cfg.Out)
	if err != nil {
		return fmt.Errorf("generate: resolve output path: %w", err)
	}
	if _, err := os.Stat(abs); err == nil && !cfg.Force {
		return newUsageError(fmt.Sprintf("generate: %q already exists (use --force to overwrite)", abs))
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("generate: create parent directory: %w", err)
	}
	if err := os.WriteFile(abs, []byte(out), 0o644); err != nil {
		return fmt.Errorf("generate: write %s: %w", abs, err)
	}
	log.Info("wrote locustfile", "path", abs, "tasks", len(ops))
	return nil
}
