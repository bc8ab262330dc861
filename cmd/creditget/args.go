package main

import (
	"fmt"
	"os"
	"strings"

	"creditget/internal/config"
)

// parseArgs parses command-line arguments and loads configuration.
// Priority: CLI flags > config file > defaults
func parseArgs() (config.Config, string, error) {
	args := os.Args[1:]

	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			printUsage()
			os.Exit(0)
		}
		if arg == "--init-config" {
			return config.Config{}, "", initConfigFile()
		}
	}

	var configPath string
	var cfg config.Config
	var err error

	for i := 0; i < len(args); i++ {
		if args[i] == "--config" || args[i] == "-c" {
			if i+1 >= len(args) {
				return config.Config{}, "", fmt.Errorf("--config requires a path argument")
			}
			configPath = args[i+1]
			break
		}
	}

	cfg, err = config.LoadConfigFile(configPath)
	if err != nil {
		return config.Config{}, "", fmt.Errorf("failed to load config: %w", err)
	}
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "--verbose", "-v":
			cfg.Verbose = true

		case "--dry-run", "-n":
			cfg.DryRun = true

		case "--mode", "-m":
			if i+1 >= len(args) {
				return config.Config{}, "", fmt.Errorf("--mode requires A or B")
			}
			i++
			cfg.WriteMode = args[i]

		case "--integrate", "-i":
			cfg.IntegrateUnwritable = true

		case "--overwrite", "-o":
			if i+1 >= len(args) {
				return config.Config{}, "", fmt.Errorf("--overwrite requires a comma-separated role list")
			}
			i++
			if err := applyOverwrite(&cfg, args[i]); err != nil {
				return config.Config{}, "", err
			}

		case "--parallel", "-p":
			if i+1 >= len(args) {
				return config.Config{}, "", fmt.Errorf("--parallel requires a number argument")
			}
			i++
			var jobs int
			if _, err := fmt.Sscanf(args[i], "%d", &jobs); err != nil {
				return config.Config{}, "", fmt.Errorf("invalid parallel jobs value: %s", args[i])
			}
			cfg.ParallelJobs = jobs

		case "--config", "-c":
			i++

		default:
			if len(arg) > 0 && arg[0] == '-' {
				return config.Config{}, "", fmt.Errorf("unknown flag: %s", arg)
			}
			cfg.SourceDir = config.ExpandHome(arg)
		}
	}

	return cfg, configPath, nil
}

// applyOverwrite enables overwriting for a comma-separated list of roles,
// or every role with "all".
func applyOverwrite(cfg *config.Config, list string) error {
	for _, name := range strings.Split(list, ",") {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "all":
			cfg.Overwrite = config.OverwriteFlags{Comment: true, Lyricist: true, Composer: true, Remixer: true}
		case "comment":
			cfg.Overwrite.Comment = true
		case "lyricist":
			cfg.Overwrite.Lyricist = true
		case "composer":
			cfg.Overwrite.Composer = true
		case "remixer", "arranger":
			cfg.Overwrite.Remixer = true
		case "":
		default:
			return fmt.Errorf("unknown overwrite role %q (valid: comment, lyricist, composer, remixer, all)", name)
		}
	}
	return nil
}

// initConfigFile creates a new config file with default values
func initConfigFile() error {
	path := config.GetDefaultConfigPath()

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config file already exists at: %s\n", path)
		fmt.Println("Delete it first if you want to recreate it.")
		os.Exit(0)
	}

	cfg := config.DefaultConfig()

	if err := config.SaveConfigFile(cfg, path); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Printf("Created default config file at: %s\n", path)
	fmt.Println("\nYou can now edit this file to customize your settings.")
	fmt.Println("Available options:")
	fmt.Println("  write_mode: A (individual fields) or B (integrated composer tag)")
	fmt.Println("  integrate_unwritable: fold unwritable roles into the composer field (mode A)")
	fmt.Println("  overwrite: per-role flags to replace existing tag values")
	fmt.Println("  parallel_jobs: 1-10 (number of files tagged in parallel)")
	fmt.Println("  verbose: true/false (enable detailed logging)")
	fmt.Println("  dry_run: true/false (preview mode)")

	os.Exit(0)
	return nil
}

// printUsage displays the help message
func printUsage() {
	fmt.Println("creditget - Fetch song credits from uta-net and write them into audio tags")
	fmt.Println()
	fmt.Println("Usage: creditget [options] <music_folder>")
	fmt.Println()
	fmt.Println("Scans the folder for .mp3/.flac/.m4a files, looks each one up by its")
	fmt.Println("title and artist tags, and writes lyricist/composer/arranger/tie-up")
	fmt.Println("credits into the fields each format supports.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -m, --mode <A|B>           A: write each credit to its own field (default)")
	fmt.Println("                             B: also collapse all credits into the composer field")
	fmt.Println("  -i, --integrate            Mode A only: fold roles the format cannot store")
	fmt.Println("                             into the composer field")
	fmt.Println("  -o, --overwrite <roles>    Replace existing values for these roles")
	fmt.Println("                             (comma-separated: comment,lyricist,composer,remixer or all)")
	fmt.Println("  -p, --parallel <n>         Number of files tagged in parallel (1-10, default: 1)")
	fmt.Println("  -n, --dry-run              Show what would be written without touching files")
	fmt.Println("  -v, --verbose              Show detailed output")
	fmt.Println("  -c, --config <path>        Path to config file")
	fmt.Println("  -h, --help                 Show this help message")
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println("  --init-config              Create a default config file")
	fmt.Println()
	fmt.Println("Config file locations (checked in order):")
	fmt.Println("  ./creditget.yaml")
	fmt.Println("  ~/.config/creditget/config.yaml")
	fmt.Println("  ~/.creditget.yaml")
	fmt.Println()
	fmt.Println("Tag capability per format:")
	fmt.Println("  .m4a   comment, lyricist, composer")
	fmt.Println("  .mp3   comment, lyricist, composer, remixer")
	fmt.Println("  .flac  comment, composer, remixer")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  # Preview what would be written")
	fmt.Println("  creditget --dry-run ~/Music/rips")
	fmt.Println()
	fmt.Println("  # Tag with defaults (progress bar + file logging)")
	fmt.Println("  creditget ~/Music/rips")
	fmt.Println()
	fmt.Println("  # Integrated composer tag, overwrite everything")
	fmt.Println("  creditget -m B -o all ~/Music/rips")
}
