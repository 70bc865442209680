package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/talent-match/internal/entity"
	applog "github.com/spigell/talent-match/internal/logger"
	"github.com/spigell/talent-match/internal/matching"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one person against one position and print the details as JSON",
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().String("person", "", "file containing the person")
	scoreCmd.Flags().String("position", "", "file containing the position")
	scoreCmd.Flags().String("person-id", "", "id of the person when the file holds several")
	scoreCmd.Flags().String("position-id", "", "id of the position when the file holds several")
	scoreCmd.MarkFlagRequired("person")
	scoreCmd.MarkFlagRequired("position")
}

func score(cmd *cobra.Command) {
	logger, err := applog.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	engine, err := newEngine(config, logger)
	if err != nil {
		logger.Fatal("building the engine", zap.Error(err))
	}

	person, err := pickPerson(loadDocument(logger, cmd.Flag("person").Value.String()), cmd.Flag("person-id").Value.String())
	if err != nil {
		logger.Fatal("selecting the person", zap.Error(err))
	}
	opening, err := pickOpening(loadDocument(logger, cmd.Flag("position").Value.String()), cmd.Flag("position-id").Value.String())
	if err != nil {
		logger.Fatal("selecting the position", zap.Error(err))
	}

	if err := printDetails(cmd.OutOrStdout(), engine.Calculate(person, opening)); err != nil {
		logger.Fatal("printing details", zap.Error(err))
	}
}

func printDetails(w io.Writer, d matching.Details) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

func pickPerson(doc entity.Document, id string) (entity.Person, error) {
	for _, p := range doc.People {
		if id == "" || p.Profile().ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no person %q found", id)
}

func pickOpening(doc entity.Document, id string) (entity.Opening, error) {
	for _, o := range doc.Openings {
		if id == "" || o.Requirement().ID == id {
			return o, nil
		}
	}
	return nil, fmt.Errorf("no position %q found", id)
}
