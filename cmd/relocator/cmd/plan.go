package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/relocator/relocator/internal/intern"
	"github.com/relocator/relocator/internal/planner"
	"github.com/relocator/relocator/internal/repository"
	"github.com/relocator/relocator/internal/scanner"
	"github.com/relocator/relocator/internal/storage"
	"github.com/relocator/relocator/internal/telemetry"
	"github.com/relocator/relocator/pkg/utils"
	"github.com/relocator/relocator/pkg/writer"
)

var (
	planScratchRoots []string
	planJSON         bool
	planRecord       bool
	planArchive      bool
)

var planCmd = &cobra.Command{
	Use:   "plan [roots...]",
	Short: "Scan the given roots and print the relocation plan",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := runSearch(cmd.Context(), args, planScratchRoots)
		if err != nil {
			return err
		}

		if err := reportResult(result, planJSON); err != nil {
			return err
		}

		if planRecord {
			if err := recordRun(cmd.Context(), args, planScratchRoots, result); err != nil {
				GetLogger().Warn("failed to record run: %v", err)
			}
		}

		if planArchive {
			if err := archiveManifest(result); err != nil {
				GetLogger().Warn("failed to archive manifest: %v", err)
			}
		}

		return exitForOutcome(result.Outcome)
	},
}

func init() {
	planCmd.Flags().StringArrayVar(&planScratchRoots, "scratch", nil, "Root path that must end up empty (repeatable)")
	planCmd.Flags().BoolVar(&planJSON, "json", false, "Print the plan as JSON instead of a table")
	planCmd.Flags().BoolVar(&planRecord, "record", false, "Record this run in the run-history repository")
	planCmd.Flags().BoolVar(&planArchive, "archive", false, "Archive the plan manifest via the configured storage backend")
	rootCmd.AddCommand(planCmd)
}

// runSearch scans roots, builds the initial state, and runs the search.
func runSearch(ctx context.Context, roots, scratchRoots []string) (planner.Result, error) {
	scratch := make(map[string]bool, len(scratchRoots))
	for _, r := range scratchRoots {
		scratch[r] = true
	}

	scanRoots := make([]scanner.Root, 0, len(roots)+len(scratchRoots))
	positional := make(map[string]bool, len(roots))
	for _, r := range roots {
		positional[r] = true
		scanRoots = append(scanRoots, scanner.Root{Path: r, Scratchpad: scratch[r]})
	}
	for _, r := range scratchRoots {
		if !positional[r] {
			positional[r] = true
			scanRoots = append(scanRoots, scanner.Root{Path: r, Scratchpad: true})
		}
	}

	timer := utils.NewTimer("relocation plan", utils.WithLogger(GetLogger()), utils.WithEnabled(verbose))

	scanCtx, scanSpan := telemetry.StartScan(ctx, roots[0])
	scanPhase := timer.Start("scan")
	scans, err := scanner.Scan(scanCtx, scanRoots, cfg.Planner.MaxWorkers)
	scanPhase.Stop()
	scanSpan.End()
	if err != nil {
		return planner.Result{}, fmt.Errorf("scan: %w", err)
	}

	names := intern.NewNames()
	inv, descriptors := scanner.Build(scans, names)
	initial := planner.NewInitial(inv, descriptors)

	searchCtx, searchSpan := telemetry.StartSearch(ctx, len(descriptors), len(scratchRoots))
	defer searchSpan.End()

	if cfg.Planner.SearchTimeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(searchCtx, cfg.Planner.SearchTimeout)
		defer cancel()
	}

	searchPhase := timer.Start("search")
	result := planner.Search(searchCtx, initial, names, planner.Config{MaxWorkers: cfg.Planner.MaxWorkers})
	searchPhase.Stop()
	telemetry.RecordOutcome(searchSpan, outcomeString(result.Outcome), len(result.Moves), result.TotalCost)

	timer.PrintSummary()

	return result, nil
}

func outcomeString(o planner.Outcome) string {
	switch o {
	case planner.OutcomeAlreadyRelocated:
		return "already_relocated"
	case planner.OutcomeNoSolution:
		return "no_solution"
	default:
		return "planned"
	}
}

func reportResult(result planner.Result, asJSON bool) error {
	if asJSON {
		manifest := toManifest(result)
		return json.NewEncoder(os.Stdout).Encode(manifest)
	}

	log := GetLogger()
	switch result.Outcome {
	case planner.OutcomeAlreadyRelocated:
		log.Info("already relocated: no moves needed")
	case planner.OutcomeNoSolution:
		log.Info("no solution: search exhausted every reachable state or timed out")
	default:
		log.Info("plan found: %d move(s), total cost %d bytes", len(result.Moves), result.TotalCost)
		for i, mv := range result.Moves {
			log.Info("  %d. %s -> %s", i+1, mv.Source, mv.Target)
		}
	}
	return nil
}

func toManifest(result planner.Result) writer.Manifest {
	moves := make([]writer.MoveManifest, len(result.Moves))
	for i, mv := range result.Moves {
		moves[i] = writer.MoveManifest{Source: mv.Source, Target: mv.Target}
	}
	return writer.Manifest{
		Outcome:   outcomeString(result.Outcome),
		Moves:     moves,
		TotalCost: result.TotalCost,
	}
}

func exitForOutcome(outcome planner.Outcome) error {
	if outcome == planner.OutcomeNoSolution {
		os.Exit(1)
	}
	return nil
}

func recordRun(ctx context.Context, roots, scratchRoots []string, result planner.Result) error {
	gormDB, err := repository.NewGormDB(&repository.DBConfig{
		Type:     cfg.Audit.Type,
		Host:     cfg.Audit.Host,
		Port:     cfg.Audit.Port,
		Database: cfg.Audit.Database,
		User:     cfg.Audit.User,
		Password: cfg.Audit.Password,
		MaxConns: cfg.Audit.MaxConns,
	})
	if err != nil {
		return err
	}
	store := repository.NewStore(gormDB)
	defer store.Close()

	rootsJSON, _ := json.Marshal(roots)
	scratchJSON, _ := json.Marshal(scratchRoots)

	record := &repository.RunRecord{
		StartedAt:    time.Now(),
		Roots:        rootsJSON,
		ScratchRoots: scratchJSON,
		Outcome:      outcomeString(result.Outcome),
		MoveCount:    len(result.Moves),
		TotalCost:    result.TotalCost,
	}
	return store.Runs.Create(ctx, record)
}

func archiveManifest(result planner.Result) error {
	backend, err := storage.NewStorage(&cfg.Storage)
	if err != nil {
		return err
	}

	manifest := toManifest(result)
	tmp, err := os.CreateTemp("", "relocator-plan-*.json.gz")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	tmp.Close()

	if _, err := writer.WriteManifestFile(manifest, tmp.Name()); err != nil {
		return err
	}

	key := fmt.Sprintf("plans/%d.json.gz", time.Now().UnixNano())
	return backend.UploadFile(context.Background(), key, tmp.Name())
}
