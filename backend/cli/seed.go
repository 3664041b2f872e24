package cli

import (
	"fmt"
	"os"

	"github.com/rodrigoanasco/nwHacks/backend/models"
	"github.com/rodrigoanasco/nwHacks/backend/services"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// CatalogFile формат файла каталога для команды seed.
type CatalogFile struct {
	Exercises []models.Exercise `yaml:"exercises"`
}

func NewSeedCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed [catalog-file]",
		Short: "Load exercise definitions into the catalog",
		Long: `Reads a YAML catalog and upserts every exercise it lists, in file order.
Without an argument the file named by CATALOG_FILE is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(opts, true)
			if err != nil {
				return err
			}
			defer env.Close()

			path := env.cfg.CatalogFile
			if len(args) == 1 {
				path = args[0]
			}

			exercises, err := LoadCatalogFile(path)
			if err != nil {
				return err
			}
			if err := services.NewCatalog(env.db).Upsert(cmd.Context(), exercises); err != nil {
				return err
			}

			env.logger.Info("catalog seeded", zap.String("file", path), zap.Int("exercises", len(exercises)))
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d exercises from %s\n", len(exercises), path)
			return nil
		},
	}
}

func LoadCatalogFile(path string) ([]models.Exercise, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog разбирает YAML документ каталога.
func ParseCatalog(data []byte) ([]models.Exercise, error) {
	var file CatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(file.Exercises) == 0 {
		return nil, fmt.Errorf("parse catalog: no exercises listed")
	}
	for i := range file.Exercises {
		file.Exercises[i].Difficulty = models.ParseDifficulty(string(file.Exercises[i].Difficulty))
	}
	return file.Exercises, nil
}
