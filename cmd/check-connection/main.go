// Command check-connection verifies Odoo configuration and reachability.
//
// Usage: check-connection
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/ohcnetwork/care_odoo_bridge/config"
	"github.com/ohcnetwork/care_odoo_bridge/odoo"
)

func main() {
	settings := config.LoadSettings()
	logger := config.GetLogger()

	fmt.Println("Checking Odoo configuration and connection...")
	fmt.Println("Configuration:")
	fmt.Printf("  Host:     %s\n", settings.OdooHost)
	if settings.OdooPort != 0 {
		fmt.Printf("  Port:     %d\n", settings.OdooPort)
	} else {
		fmt.Println("  Port:     Not set")
	}
	fmt.Printf("  Protocol: %s\n", settings.OdooProtocol)
	fmt.Printf("  Database: %s\n", settings.OdooDatabase)
	fmt.Printf("  Username: %s\n", settings.OdooUsername)
	if settings.OdooPassword != "" {
		fmt.Println("  Password: ********")
	} else {
		fmt.Println("  Password: Not set")
	}

	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "\nconfiguration invalid: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("\nAll required settings are configured")
	fmt.Printf("Odoo URL: %s\n", settings.OdooBaseURL())

	fmt.Println("\nTesting connection...")
	connector := odoo.NewConnector(settings, logger)
	ctx, cancel := context.WithTimeout(context.Background(), 35*time.Second)
	defer cancel()

	resp, err := connector.Call(ctx, "api/health", map[string]any{}, http.MethodGet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connection test result: %v\n", err)
		fmt.Println("Note: the health endpoint may not be available on this addon version;",
			"a 404 here does not necessarily mean the connection is broken.")
		os.Exit(1)
	}
	fmt.Printf("Connection successful! Response: %v\n", resp)
}
