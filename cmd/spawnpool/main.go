package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ajitpratap0/spawnpool/pkg/config"
	"github.com/ajitpratap0/spawnpool/pkg/entity"
	"github.com/ajitpratap0/spawnpool/pkg/pool"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "spawnpool",
		Short: "spawnpool - typed object pooling for game entities",
		Long: `spawnpool keeps a FIFO of recyclable instances per entity type and hands them
out by type, by predicate, at random or in batches, building new instances from
registered templates when a type runs low.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(),
		newTypesCmd(),
		newSimulateCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "spawnpool v%s\n", version)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

func newInitCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the sample configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(out, config.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "spawnpool.yaml", "Path of the configuration file to write")
	return cmd
}

func newTypesCmd() *cobra.Command {
	var configFile string
	cmd := &cobra.Command{
		Use:   "types",
		Short: "List registered enemy kinds and their queue depths after fill",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			p, _, err := buildPool(cfg)
			if err != nil {
				return err
			}
			return printTypes(cmd.OutOrStdout(), cfg, p)
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to configuration YAML file (default: built-in sample)")
	return cmd
}

// loadConfig reads path, or returns the sample configuration when path is empty
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := config.Default()
		return cfg, cfg.Validate()
	}
	return config.Load(path)
}

// buildPool fills an enemy pool from cfg
func buildPool(cfg *config.Config, opts ...pool.Option) (*pool.Pool[entity.Kind, *entity.Enemy], *entity.Factory, error) {
	templates, err := cfg.EntityTemplates()
	if err != nil {
		return nil, nil, err
	}

	opts = append([]pool.Option{pool.WithName(cfg.Name), pool.WithParent(cfg.Parent)}, opts...)
	if cfg.Seed != 0 {
		opts = append(opts, pool.WithSeed(cfg.Seed))
	}

	factory := entity.NewFactory()
	p, err := entity.NewPool(factory, templates, cfg.InitialAmount, opts...)
	if err != nil {
		return nil, nil, err
	}
	return p, factory, nil
}

func printTypes(out io.Writer, cfg *config.Config, p *pool.Pool[entity.Kind, *entity.Enemy]) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "KIND\tHEALTH\tATTACK\tQUEUED\n")
	for _, t := range cfg.Templates {
		kind, err := entity.ParseKind(t.Kind)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d\n", kind, t.Health, t.AttackType, p.Len(kind))
	}
	return tw.Flush()
}
