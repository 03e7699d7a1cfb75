package stock

import (
	"github.com/UCPHszf/bookstore-assignment2/cmd/util"
	"github.com/UCPHszf/bookstore-assignment2/lib/bookstore"
	"github.com/UCPHszf/bookstore-assignment2/rpc/client"
	"github.com/spf13/cobra"
)

var (
	rpcStockMgr bookstore.IStockManager

	// StockCommands represents the stock-management command group
	StockCommands = &cobra.Command{
		Use:               "stock",
		Short:             "Perform stock-management operations",
		PersistentPreRunE: setupStockClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common RPC flags to the stock command
	util.SetupRPCClientFlags(StockCommands)

	// Set default service ID for stock operations (different from shop default)
	StockCommands.PersistentFlags().Int("service", 200, util.WrapString("ID of the service to connect to"))

	// Add subcommands
	StockCommands.AddCommand(addCmd)
	StockCommands.AddCommand(addCopiesCmd)
	StockCommands.AddCommand(listCmd)
	StockCommands.AddCommand(getCmd)
	StockCommands.AddCommand(inDemandCmd)
	StockCommands.AddCommand(setPickCmd)
	StockCommands.AddCommand(removeCmd)
	StockCommands.AddCommand(removeAllCmd)
	StockCommands.AddCommand(perfTestCmd)
}

// setupStockClient initializes the RPC stock-manager client
func setupStockClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Get client configuration components
	config := util.GetClientConfig()
	serviceId := util.GetServiceID()

	// Get serializer and transport
	s, err := util.GetSerializer()
	if err != nil {
		return err
	}

	t, err := util.GetTransport()
	if err != nil {
		return err
	}

	// Create the stock-manager client
	rpcStockMgr, err = client.NewRPCStockManager(
		serviceId,
		*config,
		t,
		s,
	)

	return err
}
