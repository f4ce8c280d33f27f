package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"catalog-sync/core/config"
	"catalog-sync/core/logger"
	"catalog-sync/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync command
	dryRunSync bool
	yesConfirm bool
)

// syncCmd runs one synchronization from the command line.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize the product mirror with WooCommerce once",
	Long: `Pull the full WooCommerce catalog and converge the local products table.

Examples:
  # Show what would change
  sync --dry-run

  # Apply, confirming deletes interactively
  sync

  # Apply without prompting
  sync --yes`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Plan only, write nothing")
	syncCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm deletes (non-interactive)")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	svc, err := buildService(ctx, cfg, l, nil)
	if err != nil {
		return err
	}

	// Step 1: Plan (always runs)
	l.Info("Planning synchronization...")
	plan, err := svc.Plan(ctx)
	if err != nil {
		return fmt.Errorf("failed to plan synchronization: %w", err)
	}
	printPlan(l, plan)

	if dryRunSync {
		l.Info("Dry-run mode: No changes were made.")
		return printJSON(plan.Summary)
	}

	if plan.Summary.Inserts+plan.Summary.Updates+plan.Summary.Deletes == 0 {
		l.Info("Mirror already matches the remote catalog.")
		return nil
	}

	// Step 2: Confirm deletes
	if plan.Summary.Deletes > 0 && !confirmDestructiveAction(plan.Summary.Deletes) {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	// Step 3: Apply. The service re-plans against a fresh pull.
	l.Info("Applying synchronization...")
	report, err := svc.Synchronize(ctx)
	if err != nil {
		if report != nil {
			_ = printJSON(report)
		}
		return fmt.Errorf("synchronization failed: %w", err)
	}
	return printJSON(report)
}

// printPlan logs the plan summary and a sample of actions.
func printPlan(l *zap.Logger, plan *reconcile.Plan) {
	s := plan.Summary
	l.Info("Synchronization plan",
		zap.Int("remote", s.RemoteCount),
		zap.Int("mirror", s.MirrorCount),
		zap.Int("inserts", s.Inserts),
		zap.Int("updates", s.Updates),
		zap.Int("deletes", s.Deletes),
		zap.Int("unchanged", s.Unchanged),
		zap.Int("skipped", s.Skipped),
	)

	actions := make([]reconcile.Action, 0, len(plan.Deletes)+len(plan.Inserts)+len(plan.Updates))
	actions = append(actions, plan.Deletes...)
	actions = append(actions, plan.Inserts...)
	actions = append(actions, plan.Updates...)

	maxShow := min(5, len(actions))
	for _, action := range actions[:maxShow] {
		l.Info("Sample action", zap.String("type", string(action.Type)), zap.String("key", action.Key))
	}
	if len(actions) > maxShow {
		l.Info("Additional actions not shown", zap.Int("count", len(actions)-maxShow))
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction(deletes int) bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Printf("\n⚠️  %d products will be deleted from the mirror. Type 'yes' to confirm: ", deletes)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
