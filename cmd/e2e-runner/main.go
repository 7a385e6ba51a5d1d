// e2e-runner wraps `go test` for the CoastPass /map suite, translating run
// policy (CI mode, workers, retries, focus) into the environment the suite
// reads, and re-running the suite on change in watch mode.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/coastpass/web-e2e/tests/e2e/config"
	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var (
	version = "dev"

	ciFlag        bool
	headedFlag    bool
	retriesFlag   int
	workersFlag   int
	baseURLFlag   string
	focusFlag     string
	artifactsFlag string
	timeoutFlag   time.Duration
	watchFlag     bool
)

var rootCmd = &cobra.Command{
	Use:   "e2e-runner",
	Short: "Browser E2E runner for the CoastPass /map page",
	Long: `e2e-runner drives the CoastPass /map browser suite.

It resolves the run configuration (flags > environment > e2e.yaml),
applies the CI policy, executes the suite via go test with the requested
parallelism, and reports where the HTML report and failure artifacts were
written.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the scenario suite against the configured base URL",
	RunE:  runSuite,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("e2e-runner %s\n", rootCmd.Version)
	},
}

func init() {
	runCmd.Flags().BoolVar(&ciFlag, "ci", false, "enable CI policy (1 retry, serialized workers, focus forbidden)")
	runCmd.Flags().BoolVar(&headedFlag, "headed", false, "run the browser with a visible window")
	runCmd.Flags().IntVar(&retriesFlag, "retries", -1, "re-run count for failed scenarios (-1: config default)")
	runCmd.Flags().IntVar(&workersFlag, "workers", 0, "concurrent browser sessions (0: config default)")
	runCmd.Flags().StringVar(&baseURLFlag, "base-url", "", "target origin (default from E2E_BASE_URL / e2e.yaml)")
	runCmd.Flags().StringVar(&focusFlag, "focus", "", "comma-separated scenario names to run exclusively")
	runCmd.Flags().StringVar(&artifactsFlag, "artifacts", "", "directory for report, screenshots and traces")
	runCmd.Flags().DurationVar(&timeoutFlag, "timeout", 20*time.Minute, "overall go test timeout")
	runCmd.Flags().BoolVar(&watchFlag, "watch", false, "re-run the suite when scenario files change")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

func runSuite(cmd *cobra.Command, args []string) error {
	if ciFlag {
		if err := os.Setenv("CI", "true"); err != nil {
			return err
		}
	}
	if headedFlag {
		os.Setenv("E2E_HEADLESS", "false")
	}
	if retriesFlag >= 0 {
		os.Setenv("E2E_RETRIES", strconv.Itoa(retriesFlag))
	}
	if workersFlag > 0 {
		os.Setenv("E2E_WORKERS", strconv.Itoa(workersFlag))
	}
	if baseURLFlag != "" {
		os.Setenv("E2E_BASE_URL", baseURLFlag)
	}
	if focusFlag != "" {
		os.Setenv("E2E_FOCUS", focusFlag)
	}
	if artifactsFlag != "" {
		os.Setenv("E2E_ARTIFACTS_DIR", artifactsFlag)
	}

	cfg := config.GetConfig()
	if cfg.CI && len(cfg.Focus) > 0 {
		return fmt.Errorf("--focus is not allowed under --ci")
	}
	fmt.Printf("Target: %s (workers=%d retries=%d headless=%v)\n",
		cfg.BaseURL, cfg.Workers, cfg.Retries, cfg.Headless)

	if !watchFlag {
		err := runOnce(cfg)
		printSummary(err == nil, cfg)
		return err
	}
	return watchAndRun(cfg)
}

func runOnce(cfg *config.RunConfig) error {
	gt := exec.Command("go", "test", "./tests/e2e/",
		"-count=1",
		"-parallel", strconv.Itoa(cfg.Workers),
		"-timeout", timeoutFlag.String(),
		"-v",
	)
	gt.Stdout = os.Stdout
	gt.Stderr = os.Stderr
	gt.Env = os.Environ()
	return gt.Run()
}

func printSummary(passed bool, cfg *config.RunConfig) {
	report := filepath.Join(cfg.ArtifactsDir, "report.html")
	if passed {
		color.Green("PASS — report at %s", report)
		return
	}
	color.Red("FAIL — report and failure artifacts at %s", cfg.ArtifactsDir)
}

// watchAndRun re-executes the suite whenever a scenario or helper file
// changes. Events are debounced; editors fire several writes per save.
func watchAndRun(cfg *config.RunConfig) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	dirs := []string{"tests/e2e", "tests/e2e/config", "tests/e2e/helpers", "tests/e2e/report"}
	for _, d := range dirs {
		if err := watcher.Add(d); err != nil {
			return fmt.Errorf("watching %s: %w", d, err)
		}
	}

	run := func() {
		err := runOnce(cfg)
		printSummary(err == nil, cfg)
		color.Cyan("Watching for changes...")
	}
	run()

	var pending *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, ".go") {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(500*time.Millisecond, run)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
