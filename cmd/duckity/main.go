package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/duckity/go-duckity/internal/config"
	logpkg "github.com/duckity/go-duckity/internal/logger"
	"github.com/duckity/go-duckity/pkg/challenge"
	"github.com/duckity/go-duckity/pkg/client"
	poolpkg "github.com/duckity/go-duckity/pkg/pool"
	"github.com/spf13/cobra"
)

var (
	cfg    = config.NewConfig()
	logger *logpkg.Logger
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "duckity",
		Short: "Duckity time-lock challenge solver",
		Long: `A command line client for Duckity anti-automation challenges.
It fetches a challenge from a duckling server, performs the sequential
time-lock computation, and submits the solution for validation.`,
		Run: runChallenge,
	}

	rootCmd.Flags().StringVarP(&cfg.Domain, "domain", "d", cfg.Domain, "Duckling server domain")
	rootCmd.Flags().StringVarP(&cfg.AppID, "app-id", "a", "", "Application ID (required)")
	rootCmd.Flags().StringVarP(&cfg.AppSecret, "app-secret", "s", "", "Application secret for validation")
	rootCmd.Flags().StringVarP(&cfg.ProfileCode, "profile", "p", "", "Profile code (required)")
	rootCmd.Flags().IntVarP(&cfg.Workers, "workers", "w", runtime.NumCPU(), "Number of worker goroutines for --count > 1")
	rootCmd.Flags().IntVarP(&cfg.Count, "count", "c", 1, "Number of challenges to fetch and solve")
	rootCmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output")
	rootCmd.Flags().StringVarP(&cfg.LogFile, "log-file", "l", "", "Log file (default: stdout)")
	rootCmd.Flags().BoolVar(&cfg.SkipValidate, "skip-validate", false, "Solve without submitting for validation")
	rootCmd.Flags().StringVarP(&cfg.ConfigFile, "config", "C", "", "YAML config file with credentials")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runChallenge(cmd *cobra.Command, args []string) {
	if cfg.ConfigFile != "" {
		if err := cfg.LoadFile(cfg.ConfigFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config file: %v\n", err)
			os.Exit(1)
		}
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	setupLogging()
	logger.Printf("Duckling server: %s", cfg.Domain)
	logger.Printf("App ID: %s", cfg.AppID)
	logger.Printf("Profile: %s", cfg.ProfileCode)

	api := client.WithDomain(cfg.Domain)
	ctx := context.Background()

	logger.Printf("Fetching %d challenge(s)...", cfg.Count)
	challenges := make([]*challenge.Challenge, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		ch, err := api.GetChallenge(ctx, cfg.AppID, cfg.ProfileCode)
		if err != nil {
			logger.Printf("Failed to fetch challenge: %v", err)
			os.Exit(1)
		}
		logger.Debugf("Fetched challenge %s (hardness %d)", ch.Fingerprint(), ch.T())
		challenges = append(challenges, ch)
	}

	pool := poolpkg.New(cfg.Workers, logger)

	// Set up signal handling for Ctrl+C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	start := time.Now()
	resultChan := make(chan []poolpkg.Result, 1)
	go func() {
		resultChan <- pool.Solve(challenges)
	}()

	var results []poolpkg.Result
	select {
	case results = <-resultChan:
	case <-sigChan:
		logger.Println("\nReceived interrupt signal (Ctrl+C). Stopping solvers...")
		pool.Stop()
		results = <-resultChan
	}
	elapsed := time.Since(start)

	solved := pool.Solved()
	logger.Printf("Solved %d/%d challenge(s) in %v", solved, len(challenges), elapsed)
	if solved == 0 {
		os.Exit(1)
	}

	if cfg.SkipValidate {
		for _, res := range results {
			if res.Solution == nil {
				continue
			}
			logger.Printf("Solution for %s: %d raw bytes, solved in %v",
				res.Solution.Challenge().Fingerprint(), res.Solution.RawSize(), res.Duration)
		}
		return
	}

	logger.Println("Validating solution(s) with the server...")
	failed := 0
	for _, res := range results {
		if res.Solution == nil {
			continue
		}
		if err := validateSolution(ctx, api, res.Solution); err != nil {
			logger.Printf("Validation failed for %s: %v", res.Solution.Challenge().Fingerprint(), err)
			failed++
		} else {
			logger.Printf("Validation succeeded for %s (solved in %v)",
				res.Solution.Challenge().Fingerprint(), res.Duration)
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func validateSolution(ctx context.Context, api *client.Client, sol *challenge.Solution) error {
	ip, err := sol.Challenge().IP()
	if err != nil {
		return err
	}
	return api.Validate(ctx, cfg.AppID, cfg.AppSecret, cfg.ProfileCode, sol.EncodeToString(), ip)
}

func setupLogging() {
	if cfg.LogFile != "" {
		// Log to file
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		logger = logpkg.NewWriter(file)
		logger.SetFlags(log.LstdFlags | log.Lmicroseconds)
	} else {
		logger = logpkg.New()
		logger.SetFlags(log.LstdFlags)
	}
	logger.SetVerbose(cfg.Verbose)
}
