package cmd

import (
	"encoding/json"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/talent-match/internal/knowledge"
	applog "github.com/spigell/talent-match/internal/logger"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Print the effective knowledge base as JSON",
	Run: func(cmd *cobra.Command, _ []string) {
		logger, err := applog.New(viper.GetBool("json"), viper.GetBool("debug"))
		if err != nil {
			log.Fatalf("creating a logger: %s", err)
		}

		tables, err := knowledge.Load(viper.GetString("tables"))
		if err != nil {
			logger.Fatal("loading knowledge tables", zap.Error(err))
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(tables); err != nil {
			logger.Fatal("printing knowledge tables", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}
