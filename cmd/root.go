package cmd

import (
	"fmt"
	"os"

	"github.com/patchforge/oreg/cmd/bench"
	"github.com/patchforge/oreg/cmd/demo"
	"github.com/patchforge/oreg/cmd/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	Version = "0.3.1"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "oreg",
		Short: "runtime override registry",
		Long: fmt.Sprintf(`oReg (v%s)

A runtime override registry for host-owned data tables and localized
messages. Values can be swapped, added, or removed at a given coordinate
while memory-lifetime management stays with the caller.`, Version),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			util.InitLoggers(viper.GetString("log-level"))
		},
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of oReg",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("oReg v%s\n", Version)
		},
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(demo.DemoCmd)
	RootCmd.AddCommand(bench.BenchCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "log-level"
	RootCmd.PersistentFlags().String(key, "info", util.WrapString("Level at which logs will be output (debug, info, warn, error)"))
	_ = viper.BindPFlag(key, RootCmd.PersistentFlags().Lookup(key))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
