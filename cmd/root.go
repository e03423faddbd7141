package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ByLCY/pinned/internal/config"
	"github.com/ByLCY/pinned/internal/observability"
)

// newRootCmd 创建根命令及全部子命令。返回的 *config.Config 在 PersistentPreRunE
// 中被配置文件与环境变量填充，子命令执行时读取。
func newRootCmd() (*cobra.Command, *config.Config) {
	cfg := config.NewDefaultConfig()
	v := viper.New()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:           "pinned",
		Short:         "Pinned lays out boxes from edge, size and middle pins.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initializeConfig(v, cfgFile); err != nil {
				return err
			}
			loaded, err := config.NewConfigFromViper(v)
			if err != nil {
				observability.InitializeLogger(cfg.Logger)
				return err
			}
			*cfg = *loaded
			observability.InitializeLogger(cfg.Logger)
			observability.GetLogger().Debug("config loaded",
				zap.String("config", v.ConfigFileUsed()),
				zap.String("format", cfg.Render.Format))
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./pinned.yaml)")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	rootCmd.AddCommand(
		newRenderCmd(cfg),
		newResolveCmd(),
		newDesignCmd(),
		newVersionCmd(),
	)
	return rootCmd, cfg
}

// Execute runs the CLI and exits with status 1 on failure.
func Execute() {
	rootCmd, _ := newRootCmd()
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		observability.GetLogger().Debug("command failed", zap.Error(err))
	}
	observability.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// initializeConfig reads the config file and PINNED_* environment variables.
func initializeConfig(v *viper.Viper, cfgFile string) error {
	config.SetDefaults(v)
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("pinned")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("PINNED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}
