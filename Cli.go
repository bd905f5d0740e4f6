package main

import (
	"fmt"
	"os"

	"github.com/markusmobius/go-dateparser"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/akmcyber/sitepatch/checks"
	"github.com/akmcyber/sitepatch/config"
	"github.com/akmcyber/sitepatch/core"
	"github.com/akmcyber/sitepatch/fixers"
	"github.com/akmcyber/sitepatch/images"
	"github.com/akmcyber/sitepatch/reporters"
	"github.com/akmcyber/sitepatch/repositories"
	"github.com/akmcyber/sitepatch/rules"
	"github.com/akmcyber/sitepatch/scanners"
	"github.com/akmcyber/sitepatch/utils"
)

// Cli represents the command-line interface
type Cli struct {
	reportFormat string
	configPath   string
	since        string
	dryRun       bool
	strict       bool
	rulesFile    string
}

// Execute sets up and runs the root command
func (cli *Cli) Execute() error {
	rootCmd := &cobra.Command{
		Use:     "sitepatch",
		Short:   "sitepatch audits and repairs a static HTML site.",
		Version: Version,
	}

	rootCmd.PersistentFlags().StringVar(&cli.configPath, "config", "", "Path to site.toml (defaults to the built-in site layout)")
	rootCmd.PersistentFlags().StringVar(&cli.since, "since", "", "Only consider files modified since this date (natural language accepted)")
	rootCmd.PersistentFlags().BoolVar(&cli.strict, "strict", false, "Exit non-zero when issues are found or fixes fail")

	rootCmd.AddCommand(cli.createAuditCommand())
	rootCmd.AddCommand(cli.createFixCommand())
	rootCmd.AddCommand(cli.createImagesCommand())
	rootCmd.AddCommand(cli.createApplyCommand())

	return rootCmd.Execute()
}

// createAuditCommand creates the 'audit' subcommand with one child per
// check plus a git-repository mode.
func (cli *Cli) createAuditCommand() *cobra.Command {
	auditCmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit site pages without modifying anything.",
	}
	auditCmd.PersistentFlags().StringVar(&cli.reportFormat, "report", "console", "Report format (supported: console, json, xlsx)")

	for _, name := range []string{"seo", "menu", "syntax", "all"} {
		checkName := name
		auditCmd.AddCommand(&cobra.Command{
			Use:   fmt.Sprintf("%s [DIRECTORY]", checkName),
			Short: fmt.Sprintf("Run the %s audit.", checkName),
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return cli.runAudit(directoryArg(args), checkName)
			},
		})
	}

	auditCmd.AddCommand(&cobra.Command{
		Use:   "repo <REPO_URL>",
		Short: "Clone a site's git repository and run every audit over the checkout.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := cli.buildSiteScanner("all")
			if err != nil {
				return err
			}
			count, err := scanners.NewRepoScanner(site).Scan(args[0])
			if err != nil {
				return err
			}
			return cli.strictAuditResult(count)
		},
	})

	return auditCmd
}

// createFixCommand creates the 'fix' subcommand with one child per
// repair.
func (cli *Cli) createFixCommand() *cobra.Command {
	fixCmd := &cobra.Command{
		Use:   "fix",
		Short: "Apply a repair across the site, backing up each file before its first change.",
	}
	fixCmd.PersistentFlags().BoolVar(&cli.dryRun, "dry-run", false, "Report what would change without writing any file")

	for _, name := range []string{"favicon", "menu", "braces", "forms", "icons", "images"} {
		fixName := name
		fixCmd.AddCommand(&cobra.Command{
			Use:   fmt.Sprintf("%s [DIRECTORY]", fixName),
			Short: fmt.Sprintf("Run the %s repair.", fixName),
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return cli.runFix(directoryArg(args), fixName)
			},
		})
	}

	return fixCmd
}

func (cli *Cli) createImagesCommand() *cobra.Command {
	imagesCmd := &cobra.Command{
		Use:   "images",
		Short: "Image asset maintenance.",
	}
	imagesCmd.AddCommand(&cobra.Command{
		Use:   "optimize [DIRECTORY]",
		Short: "Compress site PNGs into responsive JPEG variants.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.loadConfig()
			if err != nil {
				return err
			}
			optimizer := images.NewOptimizer(cfg.Images.OutputDir)
			tally, err := optimizer.OptimizeAll(directoryArg(args))
			if err != nil {
				return err
			}
			printTally(tally)
			return cli.strictFixResult(tally)
		},
	})
	return imagesCmd
}

func (cli *Cli) createApplyCommand() *cobra.Command {
	applyCmd := &cobra.Command{
		Use:   "apply [DIRECTORY]",
		Short: "Apply a rule pack from a YAML file across the site.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := rules.LoadRuleSetFile(cli.rulesFile)
			if err != nil {
				return err
			}
			return cli.runFixer(directoryArg(args), fixers.NewRuleFixer(set))
		},
	}
	applyCmd.Flags().StringVarP(&cli.rulesFile, "file", "f", "", "Rule pack to apply")
	applyCmd.Flags().BoolVar(&cli.dryRun, "dry-run", false, "Report what would change without writing any file")
	_ = applyCmd.MarkFlagRequired("file")
	return applyCmd
}

func (cli *Cli) runAudit(root, checkName string) error {
	site, err := cli.buildSiteScanner(checkName)
	if err != nil {
		return err
	}
	count, err := site.Scan(root, root)
	if err != nil {
		return err
	}
	return cli.strictAuditResult(count)
}

func (cli *Cli) buildSiteScanner(checkName string) (*scanners.SiteScanner, error) {
	cfg, err := cli.loadConfig()
	if err != nil {
		return nil, err
	}
	corpus, err := cli.newCorpus(cfg)
	if err != nil {
		return nil, err
	}
	queries, err := loadQueries()
	if err != nil {
		return nil, err
	}
	reporter, err := reporters.CreateReporter(cli.reportFormat, queries, ArtifactPrefix)
	if err != nil {
		return nil, err
	}
	return scanners.NewSiteScanner(
		reporter,
		checks.ChecksByName(checkName),
		repositories.NewFileBasedFindingRepository(),
		corpus,
		utils.NewBarProgressReporter(0, "auditing"),
	), nil
}

func (cli *Cli) runFix(root, fixName string) error {
	cfg, err := cli.loadConfig()
	if err != nil {
		return err
	}

	fixer, err := cli.createFixer(fixName, cfg)
	if err != nil {
		return err
	}

	// The forms repair also provisions the page its redirect rule
	// points at.
	if fixName == "forms" && !cli.dryRun {
		created, err := fixers.WriteThankYouPage(root)
		if err != nil {
			return err
		}
		if created {
			fmt.Println("Created thank-you.html")
		}
	}

	return cli.runFixer(root, fixer)
}

func (cli *Cli) runFixer(root string, fixer core.DocumentFixer) error {
	cfg, err := cli.loadConfig()
	if err != nil {
		return err
	}
	corpus, err := cli.newCorpus(cfg)
	if err != nil {
		return err
	}

	runner := &fixers.Runner{
		Corpus:  corpus,
		Backups: utils.NewBackupCache(root),
		DryRun:  cli.dryRun,
	}
	tally, err := runner.Run(root, fixer)
	if err != nil {
		return err
	}
	printTally(tally)
	return cli.strictFixResult(tally)
}

func (cli *Cli) createFixer(name string, cfg *config.SiteConfig) (core.DocumentFixer, error) {
	switch name {
	case "menu":
		return fixers.MenuFixer{}, nil
	case "icons":
		return fixers.IconsFixer{}, nil
	case "images":
		return fixers.NewImageUrlsFixer(cfg.Images), nil
	case "favicon", "braces", "forms":
		sets, err := rules.LoadAllRuleSets(embeddedData, "data/rules")
		if err != nil {
			return nil, err
		}
		packName := map[string]string{
			"favicon": "favicon",
			"braces":  "stray-braces",
			"forms":   "netlify-forms",
		}[name]
		set, err := rules.FindRuleSet(sets, packName)
		if err != nil {
			return nil, err
		}
		return fixers.NewRuleFixer(set), nil
	}
	return nil, fmt.Errorf("unknown fixer: %s", name)
}

func (cli *Cli) loadConfig() (*config.SiteConfig, error) {
	if cli.configPath == "" {
		return config.Default(), nil
	}
	return config.Load(cli.configPath)
}

func (cli *Cli) newCorpus(cfg *config.SiteConfig) (*scanners.CorpusScanner, error) {
	corpus, err := scanners.NewCorpusScanner(cfg.Extensions, cfg.Deny, cfg.Include)
	if err != nil {
		return nil, err
	}
	if cli.since != "" {
		parsed, err := dateparser.Parse(nil, cli.since)
		if err != nil {
			return nil, fmt.Errorf("failed to parse --since value '%s': %w", cli.since, err)
		}
		corpus.Since = parsed.Time
	}
	return corpus, nil
}

func (cli *Cli) strictAuditResult(count int) error {
	fmt.Printf("Total findings: %d\n", count)
	if cli.strict && count > 0 {
		return fmt.Errorf("audit found %d issues", count)
	}
	return nil
}

func (cli *Cli) strictFixResult(tally core.Tally) error {
	if cli.strict && tally.Errors > 0 {
		return fmt.Errorf("%d files failed", tally.Errors)
	}
	return nil
}

func printTally(tally core.Tally) {
	fmt.Printf("Done: %d fixed, %d already ok, %d skipped, %d errors (%d total)\n",
		tally.Fixed, tally.AlreadyOK, tally.Skipped, tally.Errors, tally.Total)
}

func directoryArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("Failed to get current working directory: %v", err)
	}
	return cwd
}
