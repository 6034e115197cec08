package main

import (
	"fmt"
	"strings"

	"github.com/growthaccelerator/domainctl/adapters/store/rdb"
	"github.com/growthaccelerator/domainctl/domain"
	"github.com/spf13/cobra"
)

// buildRunsRepository creates the run history store based on db-url.
// "none" disables persistence and returns a nil repository.
func buildRunsRepository(cmd *cobra.Command) (domain.BindingRunRepository, error) {
	dbURL := getDBURL(cmd)

	switch {
	case dbURL == "none":
		return nil, nil

	case strings.HasPrefix(dbURL, "sqlite:") || strings.HasPrefix(dbURL, "sqlite3:"):
		db, err := rdb.OpenFromURL(dbURL)
		if err != nil {
			return nil, err
		}
		if err := rdb.AutoMigrate(db); err != nil {
			return nil, err
		}
		return rdb.NewBindingRunRepository(db), nil

	default:
		return nil, fmt.Errorf("unsupported db scheme: %s", dbURL)
	}
}
