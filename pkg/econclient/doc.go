// Package econclient is the entry point for creating economy API clients.
//
//	client, err := econclient.NewWithAPIKey(ctx, "api.econ.dev", os.Getenv("ECON_API_KEY"))
//	if err != nil {
//		return err
//	}
//
//	shops, err := client.Shops().List(ctx, nil)
package econclient
