package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"go.alexhamlin.co/slv/internal/config"
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "slv",
	Short: "Deploy and operate serverless apps with the Serverless Framework",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetPrefix("[slv] ")
		log.SetFlags(0)
	},
	Run: func(cmd *cobra.Command, args []string) {
		config, err := config.Load()
		if err != nil {
			log.Fatal("unable to load config: ", err)
		}

		configJSON, _ := json.MarshalIndent(config, "", "  ")
		fmt.Println(string(configJSON))
	},
}
