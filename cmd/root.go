package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/talent-match/internal/filtering"
	"github.com/spigell/talent-match/internal/knowledge"
	"github.com/spigell/talent-match/internal/matching"
	"github.com/spigell/talent-match/internal/skills"
)

const (
	app       = "talent-match"
	envPrefix = "TALENT_MATCH"
)

type Config struct {
	Weights     matching.Weights `mapstructure:"weights"`
	Skills      skills.Config    `mapstructure:"skills"`
	Tables      string           `mapstructure:"tables" validate:"omitempty,file"`
	Batch       BatchConfig      `mapstructure:"batch"`
	Filter      FilterConfig     `mapstructure:"filter"`
	ExcludeFile string           `mapstructure:"exclude-file"`
	Report      ReportConfig     `mapstructure:"report"`
}

type BatchConfig struct {
	Workers int `mapstructure:"workers" validate:"gte=0"`
}

type FilterConfig struct {
	MinimumScore      float64  `mapstructure:"minimum-score" validate:"gte=0,lte=100"`
	Top               int      `mapstructure:"top" validate:"gte=0"`
	ExcludedPositions []string `mapstructure:"excluded-positions"`
}

type ReportConfig struct {
	JSON string `mapstructure:"json"`
	XLSX string `mapstructure:"xlsx"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "talent-match scores candidates against positions and ranks the results",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is talent-match.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("tables", "", "knowledge base file overriding the built-in tables")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("tables", rootCmd.PersistentFlags().Lookup("tables"))

	setDefaults(viper.GetViper())
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	// Without an explicit --config the file is optional.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func setDefaults(v *viper.Viper) {
	w := matching.DefaultWeights()
	v.SetDefault("weights.skills", w.Skills)
	v.SetDefault("weights.location", w.Location)
	v.SetDefault("weights.experience", w.Experience)
	v.SetDefault("weights.education", w.Education)
	v.SetDefault("weights.work-model", w.WorkModel)

	s := skills.DefaultConfig()
	v.SetDefault("skills.exact", s.Weights.Exact)
	v.SetDefault("skills.partial", s.Weights.Partial)
	v.SetDefault("skills.synonym", s.Weights.Synonym)
	v.SetDefault("skills.stem", s.Weights.Stem)
	v.SetDefault("skills.category", s.Weights.Category)
	v.SetDefault("skills.fuzzy", s.Weights.Fuzzy)
	v.SetDefault("skills.matched-threshold", s.MatchedThreshold)
	v.SetDefault("skills.partial-threshold", s.PartialThreshold)
	v.SetDefault("skills.empty-requirement", string(s.EmptyRequirement))
	v.SetDefault("skills.neutral-score", s.NeutralScore)

	v.SetDefault("tables", "")
	v.SetDefault("batch.workers", runtime.NumCPU())
	v.SetDefault("filter.minimum-score", 0)
	v.SetDefault("filter.top", 0)
	v.SetDefault("filter.excluded-positions", []string{})
	v.SetDefault("exclude-file", "")
	v.SetDefault("report.json", "")
	v.SetDefault("report.xlsx", "")
}

func getConfig() (*Config, error) {
	return configFrom(viper.GetViper())
}

func configFrom(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

func (c *Config) filtering() *filtering.Config {
	return &filtering.Config{
		MinimumScore:      c.Filter.MinimumScore,
		Top:               c.Filter.Top,
		ExcludeFile:       c.ExcludeFile,
		ExcludedPositions: c.Filter.ExcludedPositions,
	}
}

// newEngine loads the knowledge base and builds an engine whose reference
// time is fixed at startup.
func newEngine(config *Config, logger *zap.Logger) (*matching.Engine, error) {
	tables, err := knowledge.Load(config.Tables)
	if err != nil {
		return nil, err
	}

	return matching.New(matching.Config{
		Weights:       config.Weights,
		Skills:        config.Skills,
		Workers:       config.Batch.Workers,
		ReferenceTime: time.Now().UTC(),
	}, matching.WithLogger(logger), matching.WithTables(tables))
}
