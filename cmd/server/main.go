package main

import (
	"fmt"
	"os"

	"github.com/MKhiriev/go-web-skeleton/internal/app"
	"github.com/MKhiriev/go-web-skeleton/internal/config"
	"github.com/MKhiriev/go-web-skeleton/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-web-skeleton")

	a, err := app.CreateApp(withBuildVersion(config.Default()))
	if err != nil {
		log.Fatal().Err(err).Msg("error creating application")
	}

	if err := a.CLI.Execute(); err != nil {
		os.Exit(1)
	}
}

// withBuildVersion fills App.Version from the linker flags when no source
// sets it.
func withBuildVersion(source config.Source) config.Source {
	return config.SourceFunc(func() (*config.StructuredConfig, error) {
		cfg, err := source.Load()
		if err != nil {
			return nil, err
		}

		if cfg.App.Version == "" {
			cfg.App.Version = buildVersion
		}
		return cfg, nil
	})
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
