package domain

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrMissingConfig is returned when a required setting is absent.
var ErrMissingConfig = errors.New("missing required configuration")

const (
	DefaultBranch            = "main"
	DefaultResultsDir        = "quality-check-results"
	DefaultCheckstyleVersion = "10.21.3"
	defaultWorkspaceDir      = "java-projects"
)

// Config holds the settings for one quality check run, loaded from a YAML
// file and overridden by command-line flags.
type Config struct {
	GitLab     GitLabConfig     `yaml:"gitlab"     json:"gitlab"`
	Project    ProjectConfig    `yaml:"project"    json:"project"`
	Workspace  WorkspaceConfig  `yaml:"workspace"  json:"workspace"`
	Checkstyle CheckstyleConfig `yaml:"checkstyle" json:"checkstyle"`
	Git        GitConfig        `yaml:"git"        json:"git"`
	Quality    QualityConfig    `yaml:"quality"    json:"quality"`
	Output     OutputConfig     `yaml:"output"     json:"output"`
}

type GitLabConfig struct {
	URL   string `yaml:"url"   json:"url,omitempty"`
	Token string `yaml:"token" json:"-"`
}

type ProjectConfig struct {
	ID     string `yaml:"id"     json:"id,omitempty"`
	HW     string `yaml:"hw"     json:"hw,omitempty"`
	Branch string `yaml:"branch" json:"branch,omitempty"`
}

type WorkspaceConfig struct {
	Path string `yaml:"path" json:"path,omitempty"`
}

type CheckstyleConfig struct {
	ConfigPath string `yaml:"config_path" json:"config_path,omitempty"`
	JarPath    string `yaml:"jar_path"    json:"jar_path,omitempty"`
	Version    string `yaml:"version"     json:"version,omitempty"`
}

type GitConfig struct {
	SSHURL        string `yaml:"ssh_url"        json:"ssh_url,omitempty"`
	AcceptHostKey bool   `yaml:"accept_hostkey" json:"accept_hostkey,omitempty"`
	Username      string `yaml:"username"       json:"username,omitempty"`
	Password      string `yaml:"password"       json:"-"`
}

type QualityConfig struct {
	FailOnIssues bool `yaml:"fail_on_issues" json:"fail_on_issues"`
}

type OutputConfig struct {
	ResultsDir string `yaml:"results_dir" json:"results_dir,omitempty"`
}

// MergeConfig overlays override on base. Non-zero override values win;
// booleans are or-ed since a flag can only switch them on.
func MergeConfig(base, override Config) Config {
	r := base
	pick := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	pick(&r.GitLab.URL, override.GitLab.URL)
	pick(&r.GitLab.Token, override.GitLab.Token)
	pick(&r.Project.ID, override.Project.ID)
	pick(&r.Project.HW, override.Project.HW)
	pick(&r.Project.Branch, override.Project.Branch)
	pick(&r.Workspace.Path, override.Workspace.Path)
	pick(&r.Checkstyle.ConfigPath, override.Checkstyle.ConfigPath)
	pick(&r.Checkstyle.JarPath, override.Checkstyle.JarPath)
	pick(&r.Checkstyle.Version, override.Checkstyle.Version)
	pick(&r.Git.SSHURL, override.Git.SSHURL)
	pick(&r.Git.Username, override.Git.Username)
	pick(&r.Git.Password, override.Git.Password)
	pick(&r.Output.ResultsDir, override.Output.ResultsDir)
	r.Git.AcceptHostKey = r.Git.AcceptHostKey || override.Git.AcceptHostKey
	r.Quality.FailOnIssues = r.Quality.FailOnIssues || override.Quality.FailOnIssues
	return r
}

// WithDefaults fills unset values. cwd anchors the default workspace.
func (c Config) WithDefaults(cwd string) Config {
	if c.Project.Branch == "" {
		c.Project.Branch = DefaultBranch
	}
	if c.Workspace.Path == "" {
		c.Workspace.Path = filepath.Join(cwd, defaultWorkspaceDir)
	}
	if c.Output.ResultsDir == "" {
		c.Output.ResultsDir = DefaultResultsDir
	}
	if c.Checkstyle.Version == "" {
		c.Checkstyle.Version = DefaultCheckstyleVersion
	}
	return c
}

// Validate reports the first missing required setting. An SSH URL makes the
// GitLab URL and token optional since cloning no longer goes through them.
func (c Config) Validate() error {
	if c.Git.SSHURL == "" {
		if c.GitLab.URL == "" {
			return fmt.Errorf("%w: GitLab URL (--gitlab-url or gitlab.url)", ErrMissingConfig)
		}
		if c.GitLab.Token == "" {
			return fmt.Errorf("%w: GitLab token (--token or gitlab.token)", ErrMissingConfig)
		}
	}
	if c.Project.ID == "" {
		return fmt.Errorf("%w: project ID (--project-id or project.id)", ErrMissingConfig)
	}
	return nil
}

// FullProjectID joins the project ID and homework path.
func (c Config) FullProjectID() string {
	if c.Project.HW == "" {
		return c.Project.ID
	}
	return c.Project.ID + "/" + c.Project.HW
}

// CloneURL returns the URL the repository is cloned from.
func (c Config) CloneURL() string {
	if c.Git.SSHURL != "" {
		return c.Git.SSHURL
	}
	base := strings.TrimRight(c.GitLab.URL, "/")
	base = strings.TrimSuffix(base, "/api/v4")
	return base + "/" + c.FullProjectID() + ".git"
}

// ClonePath is where the repository lives inside the workspace.
func (c Config) ClonePath() string {
	return filepath.Join(c.Workspace.Path, filepath.FromSlash(c.FullProjectID()))
}
