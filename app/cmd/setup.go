package cmd

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tasklink/tasklink/internal/config"
	"github.com/tasklink/tasklink/internal/infra/elasticsearch/common"
	"github.com/tasklink/tasklink/internal/infra/elasticsearch/index"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Run tasklink setup",
	Long:  "Creates the Elasticsearch indices tasklink stores its data in. A no-op for the in-memory backend.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		if appConfig.Storage.Backend != config.StorageElasticsearch {
			log.Info().Msg("Storage backend needs no setup.")
			return
		}

		esClient, err := common.NewClient(appConfig.Elasticsearch)
		if err != nil {
			log.Fatal().Err(err).Msg("Could not setup Elasticsearch client")
		}
		log.Info().Msg("Setting up indices")
		indicesSetup := index.DefaultIndicesSetup(esClient)
		if err := indicesSetup.Run(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to create indices")
		}
		log.Info().Msg("Setup complete.")
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
