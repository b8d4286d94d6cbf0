// Package gitsource fetches quiz repositories so quizzes can be loaded
// straight from a git URL.
package gitsource

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// IsRemote reports whether src names a git repository rather than a local
// file: an http(s) or git URL, or an scp-style user@host:path address.
func IsRemote(src string) bool {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") ||
		strings.HasPrefix(src, "git://") {
		return true
	}
	return strings.Contains(src, "@") && strings.Contains(src, ":") && strings.HasSuffix(src, ".git")
}

// Fetch clones repoURL under cacheDir, or pulls the latest changes if a
// clone is already there, and returns the local working-tree path.
func Fetch(cacheDir, repoURL string) (string, error) {
	localPath, err := localPath(cacheDir, repoURL)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(localPath); os.IsNotExist(err) {
		slog.Info("cloning quiz repository", "url", repoURL, "path", localPath)
		if _, err := git.PlainClone(localPath, false, &git.CloneOptions{URL: repoURL}); err != nil {
			return "", fmt.Errorf("failed to clone repo %s: %w", repoURL, err)
		}
		return localPath, nil
	} else if err != nil {
		return "", fmt.Errorf("error checking path %s: %w", localPath, err)
	}

	slog.Info("pulling quiz repository", "path", localPath)
	repo, err := git.PlainOpen(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open existing repo at %s: %w", localPath, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree for repo at %s: %w", localPath, err)
	}
	if err := worktree.Pull(&git.PullOptions{RemoteName: "origin"}); err != nil && err != git.NoErrAlreadyUpToDate {
		return "", fmt.Errorf("failed to pull changes for repo at %s: %w", localPath, err)
	}
	return localPath, nil
}

// localPath maps a repository URL onto a stable directory under baseDir,
// keyed by host and repository path.
func localPath(baseDir, repoURL string) (string, error) {
	parsedURL, err := url.Parse(repoURL)
	if err != nil || (parsedURL.Scheme != "https" && parsedURL.Scheme != "http" && parsedURL.Scheme != "git") {
		// scp-style address: user@host:path.git
		if strings.Contains(repoURL, "@") {
			parts := strings.SplitN(repoURL, ":", 2)
			if len(parts) == 2 {
				hostAndUser := strings.SplitN(parts[0], "@", 2)
				if len(hostAndUser) == 2 {
					repoPath := strings.TrimSuffix(parts[1], ".git")
					return filepath.Join(baseDir, hostAndUser[1], repoPath), nil
				}
			}
		}
		return "", fmt.Errorf("could not parse git URL: %s", repoURL)
	}

	sanitized := strings.TrimSuffix(parsedURL.Path, ".git")
	return filepath.Join(baseDir, parsedURL.Host, sanitized), nil
}
