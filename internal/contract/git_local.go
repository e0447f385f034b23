package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ActivityLogFormat is the fixed pretty-format requested from git. Each
// commit header line starts with "--" and carries hash, author, date and
// subject separated by pipes; --numstat file lines follow each header.
const ActivityLogFormat = "--%H|%an|%ad|%s"

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed in %q: %s", repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w", err)
	}
	return out, nil
}

// GetActivityLog implements the GitClient interface.
func (c *LocalGitClient) GetActivityLog(ctx context.Context, repoPath string, since time.Time, maxCommits int) ([]byte, error) {
	return c.Run(ctx, repoPath, BuildActivityLogArgs(since, maxCommits)...)
}

// BuildActivityLogArgs assembles the git log arguments for the activity
// query. Exposed so tests can verify the exact command surface without
// invoking git.
func BuildActivityLogArgs(since time.Time, maxCommits int) []string {
	args := []string{
		"log",
		"--numstat",
		"--pretty=format:" + ActivityLogFormat,
		"--date=iso-strict",
	}
	if !since.IsZero() {
		args = append(args, fmt.Sprintf("--since=%s", since.Format(DateTimeFormat)))
	}
	if maxCommits > 0 {
		args = append(args, fmt.Sprintf("-n%d", maxCommits))
	}
	return args
}
