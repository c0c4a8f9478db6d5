package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	gitssh "github.com/go-git/go-git/v5/plumbing/transport/ssh"
	"golang.org/x/crypto/ssh"

	"github.com/openkraft/javaqc/internal/domain"
	"github.com/openkraft/javaqc/internal/logging"
)

// Cloner implements domain.RepoCloner using go-git.
type Cloner struct{}

func New() *Cloner {
	return &Cloner{}
}

// Clone fetches req.URL into req.Path. A directory that already holds a
// repository is reused as is.
func (c *Cloner) Clone(ctx context.Context, req domain.CloneRequest) (string, error) {
	if c.IsGitRepo(req.Path) {
		logging.Info("reusing existing clone", "path", req.Path)
		return req.Path, nil
	}

	auth, err := authFor(req)
	if err != nil {
		return "", err
	}

	opts := &git.CloneOptions{URL: req.URL, Auth: auth}
	if req.Branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(req.Branch)
		opts.SingleBranch = true
	}

	if err := os.MkdirAll(req.Path, 0755); err != nil {
		return "", fmt.Errorf("creating clone directory: %w", err)
	}

	logging.Info("cloning repository", "url", redact(req.URL), "path", req.Path, "branch", req.Branch)
	if _, err := git.PlainCloneContext(ctx, req.Path, false, opts); err != nil {
		if errors.Is(err, git.ErrRepositoryAlreadyExists) {
			return req.Path, nil
		}
		return "", fmt.Errorf("cloning %s: %w", redact(req.URL), err)
	}
	return req.Path, nil
}

func (c *Cloner) IsGitRepo(path string) bool {
	_, err := git.PlainOpen(path)
	return err == nil
}

func (c *Cloner) CommitHash(repoPath string) (string, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	return head.Hash().String(), nil
}

func isSSH(url string) bool {
	return strings.HasPrefix(url, "git@") || strings.HasPrefix(url, "ssh://")
}

// authFor picks credentials for the URL scheme: the SSH agent for SSH
// remotes, basic auth for HTTP(S), nothing for local paths.
func authFor(req domain.CloneRequest) (transport.AuthMethod, error) {
	if isSSH(req.URL) {
		user := "git"
		if i := strings.Index(strings.TrimPrefix(req.URL, "ssh://"), "@"); i > 0 {
			user = strings.TrimPrefix(req.URL, "ssh://")[:i]
		}
		auth, err := gitssh.NewSSHAgentAuth(user)
		if err != nil {
			return nil, fmt.Errorf("ssh agent: %w", err)
		}
		if req.AcceptHostKey {
			auth.HostKeyCallback = ssh.InsecureIgnoreHostKey()
		}
		return auth, nil
	}

	switch {
	case req.Username != "" && req.Password != "":
		return &http.BasicAuth{Username: req.Username, Password: req.Password}, nil
	case req.Token != "":
		return &http.BasicAuth{Username: "oauth2", Password: req.Token}, nil
	}
	return nil, nil
}

// redact hides credentials embedded in a URL before it is logged.
func redact(url string) string {
	scheme := strings.Index(url, "://")
	at := strings.LastIndex(url, "@")
	if scheme < 0 || at < scheme {
		return url
	}
	return url[:scheme+3] + "***" + url[at:]
}
