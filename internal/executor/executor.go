// Package executor applies a planned move list to the real filesystem. It
// is the one package in this module allowed to mutate files outside of a
// scratch/test directory.
package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/relocator/relocator/internal/planner"
	apperrors "github.com/relocator/relocator/pkg/errors"
	"github.com/relocator/relocator/pkg/utils"
)

// Options controls how Execute applies a move list.
type Options struct {
	// DryRun, when true, only logs the moves that would be made and
	// performs no filesystem mutation. The CLI's execute command passes
	// false; its plan command never calls Execute.
	DryRun bool
	Logger utils.Logger
}

// Execute applies moves in order. Reordering or reversing the list is
// invalid: later moves may depend on directories created by earlier ones,
// and the plan's cost accounting assumes this order.
func Execute(ctx context.Context, moves []planner.Move, opts Options) error {
	log := opts.Logger
	if log == nil {
		log = utils.NewDefaultLogger(utils.LevelInfo, os.Stdout)
	}

	for i, mv := range moves {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		entry := log.WithFields(map[string]interface{}{
			"index":  i,
			"source": mv.Source,
			"target": mv.Target,
		})

		if opts.DryRun {
			entry.Info("would move file")
			continue
		}

		entry.Info("moving file")
		if err := moveOne(mv.Source, mv.Target); err != nil {
			return apperrors.Wrap(apperrors.CodeExecuteError, fmt.Sprintf("move %d (%s -> %s)", i, mv.Source, mv.Target), err)
		}
	}

	return nil
}

// moveOne renames source to target when they share a filesystem, falling
// back to copy-then-remove across a device boundary (e.g. a bind-mounted
// scratch root).
func moveOne(source, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create target directory: %w", err)
	}

	err := os.Rename(source, target)
	if err == nil {
		return nil
	}
	if !isCrossDeviceError(err) {
		return fmt.Errorf("rename: %w", err)
	}

	if err := copyThenRemove(source, target); err != nil {
		return apperrors.Wrap(apperrors.CodeCrossDevice, "copy across devices", err)
	}
	return nil
}

// copyThenRemove copies source to target and removes source only after the
// copy's Close has been confirmed to succeed, so a crash mid-copy never
// loses the original.
func copyThenRemove(source, target string) error {
	src, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create target: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(target)
		return fmt.Errorf("copy contents: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(target)
		return fmt.Errorf("close target: %w", err)
	}

	if err := os.Remove(source); err != nil {
		return fmt.Errorf("remove source after copy: %w", err)
	}
	return nil
}

// isCrossDeviceError reports whether err is the EXDEV os.Rename returns when
// source and target live on different devices.
func isCrossDeviceError(err error) bool {
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return errors.Is(linkErr.Err, syscall.EXDEV)
	}
	return false
}
