package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/getzep/zep-ner/config"
	"github.com/getzep/zep-ner/internal"
)

var (
	log *logrus.Logger

	cfgFile     string
	showVersion bool
	dumpConfig  bool
)

var cmd = &cobra.Command{
	Use:   "zep-ner",
	Short: "zep-ner serves tokenization, part-of-speech tagging and named-entity chunking over gRPC",
	Run:   func(cmd *cobra.Command, args []string) { run() },
}

var dumpJsonSchemaCmd = &cobra.Command{
	Use:     "json-schema",
	Short:   "Generates JSON Schema for zep-ner's configuration file",
	Example: "zep-ner json-schema > zep_ner_config_schema.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := config.JSONSchema()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(schema))
		return nil
	},
}

func init() {
	cmd.AddCommand(dumpJsonSchemaCmd)
	cmd.AddCommand(callCmd)

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default config.yaml)")
	cmd.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "print version number")
	cmd.PersistentFlags().BoolVarP(&dumpConfig, "dump-config", "d", false, "dump config")

	cmd.Flags().String("host", "", "interface to listen on (default all)")
	cmd.Flags().Int("port", config.DefaultPort, "gRPC port")
	cmd.Flags().Int("workers", config.DefaultWorkers, "size of the handler worker pool")
	cmd.Flags().String("log-level", "info", "log level (trace, debug, info, warn, error)")

	bindFlag("server.host", "host")
	bindFlag("server.port", "port")
	bindFlag("server.workers", "workers")
	bindFlag("log.level", "log-level")

	callCmd.Flags().String("addr", fmt.Sprintf("localhost:%d", config.DefaultPort), "server address")
	callCmd.Flags().Duration("timeout", defaultCallTimeout, "call timeout")
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", flag, err))
	}
}

// Execute executes the root cobra command.
func Execute() {
	log = internal.GetLogger()
	log.SetLevel(logrus.InfoLevel)

	err := cmd.Execute()

	if err != nil {
		os.Exit(1)
	}
}
