package log

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type OperationType string

const (
	OpLink      OperationType = "link"
	OpCreateDir OperationType = "create_dir"
	OpSkip      OperationType = "skip"
)

type OperationLog struct {
	ID         string        `json:"id"`
	Timestamp  time.Time     `json:"timestamp"`
	Type       OperationType `json:"type"`
	SourcePath string        `json:"source_path,omitempty"`
	DestPath   string        `json:"dest_path,omitempty"`
	Success    bool          `json:"success"`
	Error      string        `json:"error,omitempty"`
}

type SessionMetadata struct {
	TorrentPath   string    `json:"torrent_path,omitempty"`
	CommandArgs   []string  `json:"command_args"`
	WorkingDir    string    `json:"working_dir"`
	Timestamp     time.Time `json:"timestamp"`
	SessionID     string    `json:"session_id"`
	DryRun        bool      `json:"dry_run,omitempty"`
	TotalOps      int       `json:"total_operations"`
	SuccessfulOps int       `json:"successful_operations"`
	FailedOps     int       `json:"failed_operations"`
}

type LogSession struct {
	Metadata   SessionMetadata `json:"metadata"`
	Operations []OperationLog  `json:"operations"`
}

// Journal records the filesystem changes of one run so they can be listed
// and undone later. A disabled or nil Journal accepts every call and writes
// nothing.
type Journal struct {
	dir     string
	enabled bool

	mu      sync.Mutex
	session *LogSession
	path    string
}

// NewJournal creates a journal that stores sessions under dir
func NewJournal(dir string, enabled bool) *Journal {
	return &Journal{dir: dir, enabled: enabled}
}

// Dir returns the directory sessions are written to
func (j *Journal) Dir() string { return j.dir }

// Start opens a new session for the torrent at torrentPath. Operations
// recorded before Start are dropped.
func (j *Journal) Start(torrentPath string, args []string, dryRun bool) error {
	if j == nil || !j.enabled {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	now := time.Now()
	j.session = &LogSession{
		Metadata: SessionMetadata{
			TorrentPath: torrentPath,
			CommandArgs: append([]string(nil), args...),
			WorkingDir:  wd,
			Timestamp:   now,
			SessionID:   uuid.NewString(),
			DryRun:      dryRun,
		},
		Operations: []OperationLog{},
	}
	j.path = filepath.Join(j.dir, sessionFilename(now, j.session.Metadata.SessionID))
	return nil
}

// SessionID returns the id of the open session, or "" when none is open
func (j *Journal) SessionID() string {
	if j == nil {
		return ""
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.session == nil {
		return ""
	}
	return j.session.Metadata.SessionID
}

// LogLink records a hard link from sourcePath to destPath
func (j *Journal) LogLink(sourcePath, destPath string, err error) {
	j.record(OpLink, sourcePath, destPath, err)
}

// LogCreateDir records a directory creation
func (j *Journal) LogCreateDir(dirPath string, err error) {
	j.record(OpCreateDir, "", dirPath, err)
}

// LogSkip records a link that was not made because destPath already existed
func (j *Journal) LogSkip(sourcePath, destPath string) {
	j.record(OpSkip, sourcePath, destPath, nil)
}

func (j *Journal) record(opType OperationType, sourcePath, destPath string, err error) {
	if j == nil || !j.enabled {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.session == nil {
		return
	}

	op := OperationLog{
		ID:         fmt.Sprintf("%s_%d", j.session.Metadata.SessionID, len(j.session.Operations)),
		Timestamp:  time.Now(),
		Type:       opType,
		SourcePath: sourcePath,
		DestPath:   destPath,
		Success:    err == nil,
	}
	if err != nil {
		op.Error = err.Error()
	}
	j.session.Operations = append(j.session.Operations, op)
}

// End writes the open session to disk and closes it. Sessions without any
// operations are not written.
func (j *Journal) End() error {
	if j == nil || !j.enabled {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	session, path := j.session, j.path
	j.session, j.path = nil, ""
	if session == nil || len(session.Operations) == 0 {
		return nil
	}

	session.updateStats()
	return WriteSession(session, path)
}

// Cleanup removes session files older than retentionDays
func (j *Journal) Cleanup(retentionDays int) error {
	if j == nil || !j.enabled || retentionDays <= 0 {
		return nil
	}

	files, err := sessionFiles(j.dir)
	if err != nil {
		return err
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	var errs []error
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(file); err != nil {
				errs = append(errs, fmt.Errorf("failed to remove old log file %s: %w", file, err))
			}
		}
	}
	return errors.Join(errs...)
}

func (s *LogSession) updateStats() {
	successful, failed := 0, 0
	for _, op := range s.Operations {
		if op.Success {
			successful++
		} else {
			failed++
		}
	}
	s.Metadata.TotalOps = len(s.Operations)
	s.Metadata.SuccessfulOps = successful
	s.Metadata.FailedOps = failed
}

func sessionFilename(t time.Time, id string) string {
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("%s.%03d_%s.json", t.Format("2006-01-02_150405"), t.Nanosecond()/1000000, short)
}

// WriteSession writes session as indented JSON to path
func WriteSession(session *LogSession, path string) error {
	if session == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write log file: %w", err)
	}
	return nil
}

// ReadSession loads one session file
func ReadSession(logPath string) (*LogSession, error) {
	data, err := os.ReadFile(logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}

	var session LogSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// sessionFiles lists session files in dir, newest first
func sessionFiles(dir string) ([]string, error) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list log files: %w", err)
	}
	// Names start with the timestamp
	sort.Sort(sort.Reverse(sort.StringSlice(files)))
	return files, nil
}

// StoredSession is a session together with the file it was read from
type StoredSession struct {
	Session  *LogSession
	FilePath string
}

// Sessions returns up to limit stored sessions, newest first. A limit of zero
// or less returns all of them. Unreadable files are skipped.
func (j *Journal) Sessions(limit int) ([]StoredSession, error) {
	files, err := sessionFiles(j.dir)
	if err != nil {
		return nil, err
	}

	sessions := make([]StoredSession, 0, len(files))
	for _, file := range files {
		if limit > 0 && len(sessions) == limit {
			break
		}
		session, err := ReadSession(file)
		if err != nil {
			continue
		}
		sessions = append(sessions, StoredSession{Session: session, FilePath: file})
	}
	return sessions, nil
}

// FindSession returns the stored session whose id starts with id, or the
// newest session when id is empty.
func (j *Journal) FindSession(id string) (StoredSession, error) {
	sessions, err := j.Sessions(0)
	if err != nil {
		return StoredSession{}, err
	}
	if len(sessions) == 0 {
		return StoredSession{}, fmt.Errorf("no sessions found in %s", j.dir)
	}
	if id == "" {
		return sessions[0], nil
	}

	var found []StoredSession
	for _, s := range sessions {
		if strings.HasPrefix(s.Session.Metadata.SessionID, id) {
			found = append(found, s)
		}
	}
	switch len(found) {
	case 0:
		return StoredSession{}, fmt.Errorf("session %s not found", id)
	case 1:
		return found[0], nil
	default:
		return StoredSession{}, fmt.Errorf("session id %s is ambiguous (%d matches)", id, len(found))
	}
}
