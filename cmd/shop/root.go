package shop

import (
	"github.com/UCPHszf/bookstore-assignment2/cmd/util"
	"github.com/UCPHszf/bookstore-assignment2/lib/bookstore"
	"github.com/UCPHszf/bookstore-assignment2/rpc/client"
	"github.com/spf13/cobra"
)

var (
	rpcBookStore bookstore.IBookStore

	// ShopCommands represents the customer-facing command group
	ShopCommands = &cobra.Command{
		Use:               "shop",
		Short:             "Perform customer shop operations",
		PersistentPreRunE: setupShopClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common RPC flags to the shop command
	util.SetupRPCClientFlags(ShopCommands)

	// Set default service ID for shop operations (different from stock default)
	ShopCommands.PersistentFlags().Int("service", 100, util.WrapString("ID of the service to connect to"))

	// Add subcommands
	ShopCommands.AddCommand(buyCmd)
	ShopCommands.AddCommand(getCmd)
	ShopCommands.AddCommand(rateCmd)
	ShopCommands.AddCommand(topRatedCmd)
	ShopCommands.AddCommand(picksCmd)
}

// setupShopClient initializes the RPC bookstore client
func setupShopClient(cmd *cobra.Command, _ []string) error {
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

	// Create the bookstore client
	rpcBookStore, err = client.NewRPCBookStore(
		serviceId,
		*config,
		t,
		s,
	)

	return err
}
