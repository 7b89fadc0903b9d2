package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"derdiedas/internal/config"
	"derdiedas/internal/database"
	"derdiedas/internal/logger"
	"derdiedas/internal/repository"
	"derdiedas/internal/security"
	"derdiedas/internal/service"
)

func main() {
	// Define subcommands
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	hashCmd := flag.NewFlagSet("hash-token", flag.ExitOnError)

	// Export flags
	exportOutput := exportCmd.String("output", "", "Output file path (default: nouns_YYYYMMDD_HHMMSS.json, .csv writes CSV)")

	// Import flags
	importInput := importCmd.String("input", "", "Input file path, .csv or .json backup (required)")
	importClear := importCmd.Bool("clear", false, "Replace the whole noun pool with the file (WARNING: destructive)")
	importYes := importCmd.Bool("yes", false, "Skip the confirmation prompt for -clear")

	// Hash flags
	hashToken := hashCmd.String("token", "", "Admin token to hash (default: generate one)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// hash-token needs neither configuration nor a database
	if os.Args[1] == "hash-token" {
		hashCmd.Parse(os.Args[2:])
		if err := handleHashToken(os.Stdout, *hashToken); err != nil {
			fmt.Fprintf(os.Stderr, "hash-token: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "wordsctl: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogLevel, "console")
	if err != nil {
		fmt.Fprintf(os.Stderr, "wordsctl: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations to ensure schema is up to date
	if _, err := db.RunMigrations(ctx, cfg.MigrationsPath); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	repo := repository.NewWordRepository(db)
	words := service.NewWordService(repo, log)
	backup := service.NewBackupService(repo, cfg.DatabaseType, log)

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		if err := handleExport(ctx, log, words, backup, *exportOutput); err != nil {
			log.Fatal("export failed", zap.Error(err))
		}

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		if *importClear && !*importYes && !confirm(os.Stdin, os.Stdout) {
			log.Info("import cancelled")
			return
		}
		if err := handleImport(ctx, log, words, backup, *importInput, *importClear); err != nil {
			log.Fatal("import failed", zap.Error(err))
		}

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleExport(ctx context.Context, log *zap.Logger, words *service.WordService, backup *service.BackupService, outputPath string) error {
	// Generate default filename if not provided
	if outputPath == "" {
		outputPath = fmt.Sprintf("nouns_%s.json", time.Now().Format("20060102_150405"))
	}

	// Ensure directory exists
	if dir := filepath.Dir(outputPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	log.Info("exporting nouns", zap.String("path", outputPath))
	if isCSV(outputPath) {
		err = words.ExportCSV(ctx, f)
	} else {
		_, err = backup.Export(ctx, f)
	}
	if err != nil {
		return err
	}
	return f.Close()
}

func handleImport(ctx context.Context, log *zap.Logger, words *service.WordService, backup *service.BackupService, inputPath string, replace bool) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	log.Info("importing nouns", zap.String("path", inputPath), zap.Bool("replace", replace))

	var res service.ImportResult
	if isCSV(inputPath) {
		res, err = words.ImportCSV(ctx, f, replace)
	} else {
		res, err = backup.Import(ctx, f, replace)
	}
	if err != nil {
		return err
	}

	log.Info("import complete", zap.Int("imported", res.Imported), zap.Int("total", res.Total))
	return nil
}

func handleHashToken(w io.Writer, token string) error {
	if token == "" {
		var err error
		if token, err = security.NewToken(); err != nil {
			return err
		}
		fmt.Fprintf(w, "token: %s\n", token)
	}

	hash, err := security.HashToken(token)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "ADMIN_TOKEN_HASH=%s\n", hash)
	return nil
}

func confirm(in io.Reader, out io.Writer) bool {
	fmt.Fprint(out, "WARNING: This will replace the whole noun pool. Type 'yes' to confirm: ")
	answer, _ := bufio.NewReader(in).ReadString('\n')
	return strings.TrimSpace(answer) == "yes"
}

func isCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}

func printUsage() {
	fmt.Println("derdiedas noun pool tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  wordsctl export [-output file.json|file.csv]")
	fmt.Println("  wordsctl import -input file.csv|file.json [-clear] [-yes]")
	fmt.Println("  wordsctl hash-token [-token value]")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  wordsctl export -output backups/nouns.json")
	fmt.Println("  wordsctl import -input data/nouns.csv")
	fmt.Println("  wordsctl import -input backups/nouns.json -clear")
}
