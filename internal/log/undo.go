package log

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

type UndoResult struct {
	Operation OperationLog
	Success   bool
	Error     error
}

func UndoOperation(op OperationLog) UndoResult {
	result := UndoResult{Operation: op}

	switch op.Type {
	case OpLink:
		if op.DestPath == "" {
			result.Error = fmt.Errorf("cannot undo link: destination path missing")
			return result
		}

		destInfo, err := os.Lstat(op.DestPath)
		if errors.Is(err, fs.ErrNotExist) {
			// Link already removed
			result.Success = true
			return result
		}
		if err != nil {
			result.Error = fmt.Errorf("failed to stat link %s: %w", op.DestPath, err)
			return result
		}

		// Only remove the destination if it is still the same file as the
		// source. A vanished source leaves nothing to compare against.
		if srcInfo, err := os.Stat(op.SourcePath); err == nil && !os.SameFile(srcInfo, destInfo) {
			result.Error = fmt.Errorf("link target mismatch: %s is no longer linked to %s", op.DestPath, op.SourcePath)
			return result
		}

		if err := os.Remove(op.DestPath); err != nil {
			result.Error = fmt.Errorf("failed to remove link %s: %w", op.DestPath, err)
			return result
		}
		result.Success = true

	case OpCreateDir:
		if op.DestPath == "" {
			result.Error = fmt.Errorf("cannot undo directory creation: path missing")
			return result
		}

		info, err := os.Stat(op.DestPath)
		if errors.Is(err, fs.ErrNotExist) {
			result.Success = true
			return result
		}
		if err != nil {
			result.Error = fmt.Errorf("failed to stat directory %s: %w", op.DestPath, err)
			return result
		}
		if !info.IsDir() {
			result.Error = fmt.Errorf("path %s is not a directory", op.DestPath)
			return result
		}

		entries, err := os.ReadDir(op.DestPath)
		if err != nil {
			result.Error = fmt.Errorf("failed to read directory %s: %w", op.DestPath, err)
			return result
		}
		if len(entries) > 0 {
			result.Error = fmt.Errorf("cannot remove directory %s: not empty", op.DestPath)
			return result
		}

		if err := os.Remove(op.DestPath); err != nil {
			result.Error = fmt.Errorf("failed to remove directory %s: %w", op.DestPath, err)
			return result
		}
		result.Success = true

	case OpSkip:
		// Nothing was changed
		result.Success = true

	default:
		result.Error = fmt.Errorf("unknown operation type: %s", op.Type)
	}

	return result
}

// UndoSession reverses the successful operations of session, newest first.
// Skipped links are not counted.
func UndoSession(session *LogSession) (successful int, failed int, errs []error) {
	for i := len(session.Operations) - 1; i >= 0; i-- {
		op := session.Operations[i]
		if !op.Success || op.Type == OpSkip {
			continue
		}

		result := UndoOperation(op)
		if result.Success {
			successful++
			continue
		}
		failed++
		if result.Error != nil {
			errs = append(errs, result.Error)
		}
	}
	return successful, failed, errs
}

// Forget deletes the file backing a stored session
func (j *Journal) Forget(s StoredSession) error {
	if err := os.Remove(s.FilePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

type SessionSummary struct {
	StoredSession
	RelativeTime string
	Mode         string
}

// Summaries describes up to limit stored sessions for display
func (j *Journal) Summaries(limit int) ([]SessionSummary, error) {
	sessions, err := j.Sessions(limit)
	if err != nil {
		return nil, err
	}

	summaries := make([]SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		mode := "live"
		if s.Session.Metadata.DryRun {
			mode = "dry-run"
		}
		summaries = append(summaries, SessionSummary{
			StoredSession: s,
			RelativeTime:  formatRelativeTime(s.Session.Metadata.Timestamp),
			Mode:          mode,
		})
	}
	return summaries, nil
}

func formatRelativeTime(t time.Time) string {
	duration := time.Since(t)
	switch {
	case duration < time.Minute:
		return "just now"
	case duration < time.Hour:
		mins := int(duration.Minutes())
		return fmt.Sprintf("%d minute%s ago", mins, plural(mins))
	case duration < 24*time.Hour:
		hours := int(duration.Hours())
		return fmt.Sprintf("%d hour%s ago", hours, plural(hours))
	case duration < 7*24*time.Hour:
		days := int(duration.Hours() / 24)
		return fmt.Sprintf("%d day%s ago", days, plural(days))
	default:
		return t.Format("Jan 2, 2006")
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
