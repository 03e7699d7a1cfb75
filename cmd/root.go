package cmd

import (
	"fmt"
	"os"

	"github.com/UCPHszf/bookstore-assignment2/cmd/serve"
	"github.com/UCPHszf/bookstore-assignment2/cmd/shop"
	"github.com/UCPHszf/bookstore-assignment2/cmd/stock"
	"github.com/UCPHszf/bookstore-assignment2/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "bookstore",
		Short: "concurrent in-memory bookstore",
		Long: fmt.Sprintf(`bookstore (v%s)

A concurrent in-memory bookstore catalog written in Go, exposing
stock-management and customer shop operations over a pluggable RPC layer.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of bookstore",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("bookstore v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(stock.StockCommands)
	RootCmd.AddCommand(shop.ShopCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "serializer"
	RootCmd.PersistentFlags().String(key, "json", util.WrapString("serializer to use (json, gob, binary)"))
	key = "transport"
	RootCmd.PersistentFlags().String(key, "http", util.WrapString("transport to use (http, tcp, unix)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
