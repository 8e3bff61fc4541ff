package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/relocator/relocator/internal/executor"
	"github.com/relocator/relocator/internal/planner"
)

var (
	executeScratchRoots []string
	executeYes          bool
)

var executeCmd = &cobra.Command{
	Use:   "execute [roots...]",
	Short: "Plan and then apply a relocation to the real filesystem",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := runSearch(cmd.Context(), args, executeScratchRoots)
		if err != nil {
			return err
		}

		if err := reportResult(result, false); err != nil {
			return err
		}

		if result.Outcome != planner.OutcomePlanned {
			return exitForOutcome(result.Outcome)
		}

		if !executeYes && !confirm(fmt.Sprintf("apply %d move(s)? [y/N] ", len(result.Moves))) {
			GetLogger().Info("aborted: no changes made")
			return nil
		}

		if err := executor.Execute(cmd.Context(), result.Moves, executor.Options{DryRun: false, Logger: GetLogger()}); err != nil {
			return err
		}

		if err := recordRun(cmd.Context(), args, executeScratchRoots, result); err != nil {
			GetLogger().Warn("failed to record run: %v", err)
		}

		GetLogger().Info("execution complete: %d move(s) applied", len(result.Moves))
		return nil
	},
}

func init() {
	executeCmd.Flags().StringArrayVar(&executeScratchRoots, "scratch", nil, "Root path that must end up empty (repeatable)")
	executeCmd.Flags().BoolVar(&executeYes, "yes", false, "Apply the plan without an interactive confirmation")
	rootCmd.AddCommand(executeCmd)
}

func confirm(prompt string) bool {
	fmt.Fprint(os.Stdout, prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
