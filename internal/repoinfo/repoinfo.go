// Package repoinfo は対象リポジトリ（owner/repo または GitLab のプロジェクトパス）を解決する
package repoinfo

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5"
)

// DefaultRemote は参照するリモート名
const DefaultRemote = "origin"

// ErrNotFound はどの情報源からもリポジトリを決定できなかった
var ErrNotFound = errors.New("repository could not be determined (use --repo or set GITHUB_REPOSITORY)")

// scp形式のSSH URL（git@host:owner/repo.git）
var scpPattern = regexp.MustCompile(`^(?:[\w.-]+@)?([\w.-]+):([^/].*)$`)

// Repository はリポジトリの所在
type Repository struct {
	// Host はURLから解決した場合のホスト名（owner/repo 形式からの場合は空）
	Host string
	// Path は owner/repo。GitLabではサブグループを含む
	Path string
}

// Owner はパスの最後の要素を除いた部分を返す
func (r Repository) Owner() string {
	i := strings.LastIndex(r.Path, "/")
	if i < 0 {
		return ""
	}
	return r.Path[:i]
}

// Name はパスの最後の要素を返す
func (r Repository) Name() string {
	return r.Path[strings.LastIndex(r.Path, "/")+1:]
}

// String は owner/repo を返す
func (r Repository) String() string {
	return r.Path
}

// Parse は owner/repo 形式、HTTPS URL、SSH URL のいずれかを解析する
func Parse(s string) (Repository, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Repository{}, errors.New("repository is empty")
	}

	if strings.Contains(s, "://") {
		return parseURL(s)
	}
	if m := scpPattern.FindStringSubmatch(s); m != nil {
		return newRepository(m[1], m[2], s)
	}
	return newRepository("", s, s)
}

func parseURL(raw string) (Repository, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Repository{}, fmt.Errorf("invalid repository URL %q: %w", raw, err)
	}
	if u.Host == "" {
		return Repository{}, fmt.Errorf("invalid repository URL %q: host is missing", raw)
	}
	return newRepository(strings.ToLower(u.Hostname()), u.Path, raw)
}

func newRepository(host, path, raw string) (Repository, error) {
	path = strings.Trim(path, "/")
	path = strings.TrimSuffix(path, ".git")

	parts := strings.Split(path, "/")
	if len(parts) < 2 {
		return Repository{}, fmt.Errorf("invalid repository %q: expected owner/repo", raw)
	}
	for _, p := range parts {
		if p == "" {
			return Repository{}, fmt.Errorf("invalid repository %q: empty path segment", raw)
		}
	}

	return Repository{Host: host, Path: path}, nil
}

// FromGitRemote はディレクトリ（またはその親）のgitリポジトリのリモートURLから解決する
func FromGitRemote(dir, remote string) (Repository, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Repository{}, fmt.Errorf("failed to open git repository: %w", err)
	}

	r, err := repo.Remote(remote)
	if err != nil {
		return Repository{}, fmt.Errorf("failed to get remote %s: %w", remote, err)
	}

	urls := r.Config().URLs
	if len(urls) == 0 {
		return Repository{}, fmt.Errorf("remote %s has no URL", remote)
	}
	return Parse(urls[0])
}

// Resolve は候補を順に調べ、最初に空でない値を解析する。
// 候補がすべて空なら dir の origin リモートを使う。
func Resolve(dir string, candidates ...string) (Repository, error) {
	for _, c := range candidates {
		if strings.TrimSpace(c) == "" {
			continue
		}
		return Parse(c)
	}

	repo, err := FromGitRemote(dir, DefaultRemote)
	if err != nil {
		return Repository{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return repo, nil
}
