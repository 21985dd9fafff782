package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/xvierd/focusday/internal/domain"
	"github.com/xvierd/focusday/internal/logging"
	"github.com/xvierd/focusday/internal/ports"
)

// SessionLogService keeps the completed sessions as a JSON array under a
// single key. It is the SessionSink of the pomodoro machine.
type SessionLogService struct {
	mu    sync.Mutex
	store ports.KeyValueStore

	gitDetector ports.GitDetector
	workingDir  string
}

// Ensure SessionLogService implements ports.SessionLog.
var _ ports.SessionLog = (*SessionLogService)(nil)

// NewSessionLogService creates a new session log.
func NewSessionLogService(store ports.KeyValueStore) *SessionLogService {
	return &SessionLogService{store: store}
}

// SetGitDetector enables tagging recorded sessions with the git branch of
// workingDir. An empty workingDir means the process working directory.
func (s *SessionLogService) SetGitDetector(detector ports.GitDetector, workingDir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gitDetector = detector
	s.workingDir = workingDir
}

// RecordSession appends session to the log.
func (s *SessionLogService) RecordSession(ctx context.Context, session domain.TimerSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session.Branch == "" {
		session.Branch = s.detectBranch(ctx)
	}

	sessions, err := s.load(ctx)
	if err != nil {
		return err
	}
	sessions = append(sessions, session)
	return s.save(ctx, sessions)
}

// List returns every session in completion order.
func (s *SessionLogService) List(ctx context.Context) ([]domain.TimerSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Since returns the sessions completed at or after since.
func (s *SessionLogService) Since(ctx context.Context, since time.Time) ([]domain.TimerSession, error) {
	sessions, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.SessionsSince(sessions, since), nil
}

// Recent returns up to limit sessions, newest first. limit <= 0 returns all.
func (s *SessionLogService) Recent(ctx context.Context, limit int) ([]domain.TimerSession, error) {
	sessions, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.TimerSession, 0, len(sessions))
	for i := len(sessions) - 1; i >= 0; i-- {
		out = append(out, sessions[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Today returns the sessions completed on the local calendar day of now.
func (s *SessionLogService) Today(ctx context.Context, now time.Time) ([]domain.TimerSession, error) {
	sessions, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.SessionsOnDay(sessions, now), nil
}

// Clear removes every session.
func (s *SessionLogService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Remove(ctx, ports.KeySessions); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}
	return nil
}

func (s *SessionLogService) load(ctx context.Context) ([]domain.TimerSession, error) {
	raw, ok, err := s.store.Get(ctx, ports.KeySessions)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var sessions []domain.TimerSession
	if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
		logging.LogError("ignoring stored sessions", err)
		return nil, nil
	}
	return sessions, nil
}

func (s *SessionLogService) save(ctx context.Context, sessions []domain.TimerSession) error {
	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("failed to encode sessions: %w", err)
	}
	if err := s.store.Set(ctx, ports.KeySessions, string(data)); err != nil {
		return fmt.Errorf("failed to save sessions: %w", err)
	}
	return nil
}

// detectBranch returns the current git branch, or "" when unknown.
// s.mu must be held.
func (s *SessionLogService) detectBranch(ctx context.Context) string {
	if s.gitDetector == nil || !s.gitDetector.IsAvailable() {
		return ""
	}
	dir := s.workingDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return ""
		}
		dir = wd
	}
	info, err := s.gitDetector.Detect(ctx, dir)
	if err != nil || info == nil {
		return ""
	}
	return info.Branch
}
