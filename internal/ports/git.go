package ports

import (
	"context"
)

// GitInfo holds the repository context of the working directory.
type GitInfo struct {
	Branch     string
	Commit     string
	Repository string
}

//go:generate mockgen -destination=mocks/mock_git_detector.go -package=mocks github.com/xvierd/focusday/internal/ports GitDetector

// GitDetector defines the interface for git context detection.
// This is a driven port (implemented by adapters).
type GitDetector interface {
	// Detect scans workingDir and its parents for a repository.
	Detect(ctx context.Context, workingDir string) (*GitInfo, error)

	// IsAvailable checks if git detection can be used.
	IsAvailable() bool
}
