package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "landslurpd",
	Short: "landslurpd ingests UK Land Registry price-paid data into a search index",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $PWD/landslurpd.yaml)")
	rootCmd.AddCommand(workerCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(provisionCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
