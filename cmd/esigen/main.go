package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pollen-robotics/esigen/internal/config"
	"github.com/pollen-robotics/esigen/internal/esi"
	"github.com/pollen-robotics/esigen/internal/generator"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "esigen",
		Short:        "Generate EtherCAT Slave Information (ESI) files from device models",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if opts.logLevel != "" {
				cfg.Log.Level = opts.logLevel
			}

			logger, err := cfg.Log.NewLogger()
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}

			opts.cfg = cfg
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (YAML)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newGenerateCmd(opts),
		newValidateCmd(opts),
		newInspectCmd(),
	)

	return root
}

func newGenerateCmd(opts *options) *cobra.Command {
	var (
		outDir string
		strict bool
		locale string
	)

	cmd := &cobra.Command{
		Use:   "generate MODEL...",
		Short: "Write one ESI file per model",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("out-dir") {
				opts.cfg.Output.Dir = outDir
			}
			if cmd.Flags().Changed("strict") {
				opts.cfg.Generator.Strict = strict
			}
			if cmd.Flags().Changed("locale") {
				opts.cfg.Generator.Locale = locale
			}

			gen, err := generator.New(opts.cfg, opts.logger)
			if err != nil {
				return err
			}

			results, err := gen.GenerateAll(cmd.Context(), args)
			if err != nil {
				return err
			}

			for _, res := range results {
				fmt.Fprintln(cmd.OutOrStdout(), res.Output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "", "output directory (overrides output.dir)")
	cmd.Flags().BoolVar(&strict, "strict", false, "validate the model before rendering")
	cmd.Flags().StringVar(&locale, "locale", "", "locale for LcId attributes, e.g. en-US")

	return cmd
}

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate MODEL...",
		Short: "Check models without writing anything",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := generator.New(opts.cfg, opts.logger)
			if err != nil {
				return err
			}

			for _, model := range args {
				if err := gen.Validate(model); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", model)
			}
			return nil
		},
	}
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ESI.xml",
		Short: "Print a summary of an ESI file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := esi.ReadEtherCATInfoFromFile(args[0])
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), info)
			return nil
		},
	}
}

func printSummary(w io.Writer, info *esi.EtherCATInfo) {
	fmt.Fprintf(w, "Vendor %s (%s)\n", info.Vendor.Id, info.Vendor.Name)

	for _, dev := range info.Descriptions.Devices {
		name := ""
		if len(dev.Names) > 0 {
			name = dev.Names[0].String
		}
		fmt.Fprintf(w, "Device %s (product %#x, revision %#x)\n",
			name, dev.Type.ProductCode(), dev.Type.RevisionNo())

		for i, sm := range dev.Sms {
			fmt.Fprintf(w, "  Sm%d %-10s start=%#06x control=%#04x enable=%s\n",
				i, sm.Name, sm.StartAddress(), sm.ControlByte(), sm.Enable)
		}
		for _, pdo := range dev.RxPdos {
			printPdo(w, "RxPdo", pdo)
		}
		for _, pdo := range dev.TxPdos {
			printPdo(w, "TxPdo", pdo)
		}
	}
}

func printPdo(w io.Writer, kind string, pdo esi.Pdo) {
	fmt.Fprintf(w, "  %s %s %s (sm %d, %d entries)\n", kind, pdo.Index, pdo.Name, pdo.Sm, len(pdo.Entries))
	for _, e := range pdo.Entries {
		fmt.Fprintf(w, "    %s:%d %s %s/%d\n", e.Index, e.SubIndex, e.Name, e.DataType, e.BitLen)
	}
}
