package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/talent-match/internal/entity"
	"github.com/spigell/talent-match/internal/filtering"
	applog "github.com/spigell/talent-match/internal/logger"
	"github.com/spigell/talent-match/internal/matching"
	"github.com/spigell/talent-match/internal/report"
)

const (
	PromptReportByPositions   = "Report by positions"
	PromptExportXLSX          = "Export ranking to Excel"
	PromptDumpJSON            = "Dump ranking to file"
	PromptAppendToExcludeFile = "Append all pairs to exclude file"
	PromptExit                = "Exit"
)

var errExit = errors.New("exit requested")

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Score every person against every position and rank the pairs",
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringP("people", "p", "", "file with candidates, applications or talent pool snapshots")
	rankCmd.Flags().StringP("positions", "P", "", "file with jobs or customer requirements")
	rankCmd.Flags().BoolP("auto-approve", "y", false, "write the configured reports without asking")
	rankCmd.Flags().Bool("all-positions", false, "score applications against every position, not only the one applied to")
	rankCmd.Flags().StringP("exclude-file", "e", "", "file with pairs to exclude. Default is unset.")
	rankCmd.Flags().Float64("min-score", 0, "drop pairs below this overall score")
	rankCmd.Flags().Int("top", 0, "keep only the best N pairs per position")
	rankCmd.MarkFlagRequired("people")
	rankCmd.MarkFlagRequired("positions")

	viper.BindPFlag("exclude-file", rankCmd.Flags().Lookup("exclude-file"))
	viper.BindPFlag("filter.minimum-score", rankCmd.Flags().Lookup("min-score"))
	viper.BindPFlag("filter.top", rankCmd.Flags().Lookup("top"))
}

func rank(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, err := applog.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the talent-match", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	engine, err := newEngine(config, logger)
	if err != nil {
		logger.Fatal("building the engine", zap.Error(err))
	}

	people := loadDocument(logger, cmd.Flag("people").Value.String()).People
	openings := loadDocument(logger, cmd.Flag("positions").Value.String()).Openings
	if len(people) == 0 || len(openings) == 0 {
		logger.Info("exiting", zap.String("reason", "nothing to score"),
			zap.Int("people", len(people)), zap.Int("positions", len(openings)))
		return
	}

	results, err := engine.Batch(ctx, people, openings)
	if err != nil {
		logger.Fatal("scoring failed", zap.Error(err))
	}
	ranking := matching.NewRanking(results)
	logger = logger.With(zap.String(applog.FieldRunID, ranking.RunID))

	steps := filtering.Default()
	if cmd.Flag("all-positions").Value.String() == "true" {
		filtering.DisableByName(steps, "applied_position", "all-positions flag is set")
	}
	ranking, err = filtering.Run(ctx, config.filtering(), filtering.Deps{Logger: logger}, steps, ranking)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	if ranking.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no pairs left after filters"))
		return
	}

	if cmd.Flag("auto-approve").Value.String() == "true" {
		if err := writeReports(logger, config, ranking); err != nil {
			logger.Fatal("writing reports", zap.Error(err))
		}
		return
	}

	for {
		items := []string{PromptReportByPositions, PromptExportXLSX, PromptDumpJSON}
		if config.ExcludeFile != "" {
			items = append(items, PromptAppendToExcludeFile)
		}
		prompt := promptui.Select{
			Label: "Procced?",
			Items: append(items, PromptExit),
		}

		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		logger.Info("current ranking", zap.Int("pairs", ranking.Len()))

		if err := handleAction(action, logger, config, ranking); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, logger *zap.Logger, config *Config, ranking *matching.Ranking) error {
	switch action {
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	case PromptReportByPositions:
		pretty, _ := json.MarshalIndent(ranking.ReportByPosition(), "", "  ")
		logger.Info(string(pretty), zap.Int("pairs", ranking.Len()))
		return nil
	case PromptExportXLSX:
		path := config.Report.XLSX
		if path == "" {
			path = fmt.Sprintf("%s-%s.xlsx", app, ranking.RunID)
		}
		filename, err := report.WriteXLSX(path, ranking)
		if err != nil {
			return fmt.Errorf("export ranking: %w", err)
		}
		logger.Info("exported ranking", zap.String("filename", filename))
		return nil
	case PromptDumpJSON:
		filename, err := report.WriteJSON(config.Report.JSON, ranking)
		if err != nil {
			return fmt.Errorf("dump ranking to file: %w", err)
		}
		logger.Info("dumping ranking to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		return appendToExcludeFile(logger, config.ExcludeFile, ranking)
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func appendToExcludeFile(logger *zap.Logger, path string, ranking *matching.Ranking) error {
	excluded, err := matching.ExcludedPairsFromFile(path)
	if err != nil {
		return err
	}

	excluded.Append(ranking.ToExcluded(time.Now()))
	if err := excluded.ToFile(path); err != nil {
		return err
	}
	logger.Info("appended to exclude file", zap.String("filename", path), zap.Int("pairs", ranking.Len()))

	keys := excluded.Keys()
	ranking.Exclude(func(d matching.Details) bool { return keys[d.Key()] })
	return nil
}

// writeReports writes every report with a configured path, or a JSON dump
// to a temporary file when none is configured.
func writeReports(logger *zap.Logger, config *Config, ranking *matching.Ranking) error {
	if config.Report.JSON == "" && config.Report.XLSX == "" {
		return handleAction(PromptDumpJSON, logger, config, ranking)
	}
	if config.Report.JSON != "" {
		if err := handleAction(PromptDumpJSON, logger, config, ranking); err != nil {
			return err
		}
	}
	if config.Report.XLSX != "" {
		return handleAction(PromptExportXLSX, logger, config, ranking)
	}
	return nil
}

func loadDocument(logger *zap.Logger, path string) entity.Document {
	doc, err := entity.LoadFile(path)
	if err != nil {
		logger.Fatal("loading input file", zap.String("path", path), zap.Error(err))
	}
	for _, skipped := range doc.Skipped {
		logger.Warn("skipping input item", zap.String("path", path), zap.Error(skipped))
	}
	logger.Info("loaded input file",
		zap.String("path", path),
		zap.Int("people", len(doc.People)),
		zap.Int("positions", len(doc.Openings)),
		zap.Int("skipped", len(doc.Skipped)),
	)
	return doc
}
