package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bimakw/wallet-analyzer/internal/application/services"
	"github.com/bimakw/wallet-analyzer/internal/config"
	"github.com/bimakw/wallet-analyzer/internal/infrastructure/cache"
	"github.com/bimakw/wallet-analyzer/internal/infrastructure/solana"
	"github.com/bimakw/wallet-analyzer/internal/presentation/report"
)

const (
	cmdActivity    = "activity"
	cmdAnalyze     = "analyze"
	cmdTransaction = "tx"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errorColor = color.New(color.FgRed, color.Bold)

type options struct {
	limit   int
	asJSON  bool
	envFile string
	timeout time.Duration
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: analyze [flags] <activity|analyze|tx> <address|signature>")
		fs.PrintDefaults()
	}

	var opts options
	fs.IntVar(&opts.limit, "limit", 0, "number of transactions to fetch for the activity command (default from config)")
	fs.BoolVar(&opts.asJSON, "json", false, "print structured data instead of the markdown report")
	fs.StringVar(&opts.envFile, "env", ".env", "dotenv file to load before reading the environment")
	fs.DurationVar(&opts.timeout, "timeout", 2*time.Minute, "overall timeout")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	command, target, err := parseCommand(fs.Args())
	if err != nil {
		errorColor.Fprintf(stderr, "error: %v\n", err)
		fs.Usage()
		return exitUsage
	}

	if err := validateTarget(command, target); err != nil {
		errorColor.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}

	cfg, err := config.LoadWithEnvFile(opts.envFile)
	if err != nil {
		errorColor.Fprintf(stderr, "error: failed to load config: %v\n", err)
		return exitError
	}

	logger := setupLogger(cfg.Log.Level)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	client := solana.NewClient(cfg.Solana, nil, logger)
	defer client.Close()

	walletCache := cache.NewWalletCache()
	activityService := services.NewActivityService(client, walletCache, cfg.Analytics, nil, logger)
	renderer := report.NewRenderer()

	var (
		text string
		data interface{}
	)
	switch command {
	case cmdActivity:
		activities := activityService.FetchActivities(ctx, target, opts.limit)
		data = activities
		text, err = renderer.ActivityHistory(target, activities)
	case cmdAnalyze:
		analysisService := services.NewAnalysisService(activityService, walletCache, cfg.Analytics, nil, logger)
		analysis := analysisService.AnalyzeWallet(ctx, target)
		data = analysis
		text, err = renderer.WalletAnalysis(analysis)
	case cmdTransaction:
		transactionService := services.NewTransactionService(client, nil, nil, logger)
		details, lookupErr := transactionService.GetTransactionDetails(ctx, target)
		if lookupErr != nil {
			errorColor.Fprintf(stderr, "error: %v\n", lookupErr)
			return exitError
		}
		data = details
		text, err = renderer.TransactionDetails(*details)
	}
	if err != nil {
		errorColor.Fprintf(stderr, "error: failed to render report: %v\n", err)
		return exitError
	}

	if opts.asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			errorColor.Fprintf(stderr, "error: %v\n", err)
			return exitError
		}
		return exitOK
	}

	fmt.Fprint(stdout, text)
	return exitOK
}

// parseCommand splits positional arguments into a command and its target
func parseCommand(args []string) (string, string, error) {
	if len(args) != 2 {
		return "", "", errors.New("expected a command and a target")
	}

	switch args[0] {
	case cmdActivity, cmdAnalyze, cmdTransaction:
		return args[0], args[1], nil
	default:
		return "", "", fmt.Errorf("unknown command %q", args[0])
	}
}

func validateTarget(command, target string) error {
	if command == cmdTransaction {
		return solana.ValidateSignature(target)
	}
	return solana.ValidateAddress(target)
}

// setupLogger logs to stderr so stdout carries only the report
func setupLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.WarnLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, _ := config.Build()
	return logger
}
