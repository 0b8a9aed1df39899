package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go-soiladvisor/config"
)

var (
	// 全局参数
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "soiladvisor",
	Short: "Soil nutrient advisory service",
	Long: `soiladvisor turns soil sensor readings into crop advice.

It asks the Gemini generative language service for an overview, extracts the
suggested N, P, K, pH and moisture levels from the reply, and evaluates the
moisture and pH readings against fixed control thresholds.

Run without arguments to start the web server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.InitConfig(cfgFile)
		if err != nil {
			return err
		}
		logger, err = config.NewLogger(cfg.Log, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd, adviseCmd, checkKeyCmd)
}

// Execute 运行命令行入口
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
