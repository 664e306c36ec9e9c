// Package main provides the entry point for the enclii-cli OAuth client
// bootstrap tool. It logs in to the Janua admin API with admin credentials and
// registers the OAuth client that the enclii CLI uses for its PKCE login flow.
// Run once against a fresh Janua deployment.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/madfam-org/enclii-oauth-bootstrap/internal/buildinfo"
	"github.com/madfam-org/enclii-oauth-bootstrap/internal/cmd"
	"github.com/madfam-org/enclii-oauth-bootstrap/internal/config"
	"github.com/madfam-org/enclii-oauth-bootstrap/internal/janua"
	"github.com/madfam-org/enclii-oauth-bootstrap/internal/logging"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// init initializes the shared logger setup.
func init() {
	logging.SetupBaseLogger()
	buildinfo.Version = Version
	buildinfo.Commit = Commit
	buildinfo.BuildDate = BuildDate
}

// main parses command-line flags, loads configuration from file and
// environment, runs the registration flow, and maps failure to exit code 1.
func main() {
	fmt.Printf("enclii-oauth-bootstrap Version: %s, Commit: %s, BuiltAt: %s\n", buildinfo.Version, buildinfo.Commit, buildinfo.BuildDate)

	var configPath string
	var noInput bool
	var requestLog bool

	flag.StringVar(&configPath, "config", "", "Configure File Path")
	flag.BoolVar(&noInput, "no-input", false, "Disable interactive prompts (credentials must come from the environment)")
	flag.BoolVar(&requestLog, "request-log", false, "Log outbound requests at debug level (secrets masked)")
	flag.Parse()

	wd, err := os.Getwd()
	if err != nil {
		log.Errorf("get working directory failed: %v", err)
		os.Exit(1)
	}
	if errLoad := godotenv.Load(filepath.Join(wd, ".env")); errLoad != nil {
		log.Debugf("no .env file loaded: %v", errLoad)
	}

	cfg, err := config.LoadConfigOptional(configPath, configPath == "")
	if err != nil {
		log.Errorf("load config failed: %v", err)
		os.Exit(1)
	}
	cfg.ApplyEnv()
	if requestLog {
		cfg.RequestLog = true
	}
	if err = logging.Configure(cfg); err != nil {
		log.Errorf("configure logging failed: %v", err)
		os.Exit(1)
	}

	err = cmd.DoClientRegistration(context.Background(), cfg, &cmd.RegisterOptions{NoInput: noInput})
	if err == nil {
		return
	}

	if existsErr, ok := errors.AsType[*janua.ClientAlreadyExistsError](err); ok {
		fmt.Fprintf(os.Stderr, "Error: %s\n", existsErr.Error())
		fmt.Fprintln(os.Stderr, "Nothing to do; the enclii CLI can already authenticate against this deployment.")
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
