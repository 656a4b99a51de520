// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package git records generated constructors as commits and reverts them.
// Commits made by ctorgen carry a trailer so that undo never touches
// anything else.
package git

import (
	"strings"

	"github.com/cockroachdb/errors"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	generatedTrailer = "Generated-By: ctorgen"
	dirtyCommitMsg   = "ctorgen: save uncommitted changes before edit"
)

// ErrNotCtorgenCommit is returned when undo targets a commit ctorgen did not make.
var ErrNotCtorgenCommit = errors.New("not a ctorgen commit")

// ErrDirtyWorkTree is returned when uncommitted changes exist and DirtyCommit is false.
var ErrDirtyWorkTree = errors.New("uncommitted changes exist")

// ErrNoGit is returned when the working directory is not a git repository.
var ErrNoGit = errors.New("not a git repository")

// Config configures git integration behavior.
type Config struct {
	WorkDir     string // Repository working directory
	AutoCommit  bool   // Commit each generated constructor
	DirtyCommit bool   // Commit dirty files before editing
}

// Repo wraps a go-git repository.
type Repo struct {
	repo *gogit.Repository
	cfg  Config
}

// Open opens the repository containing cfg.WorkDir. Parent directories are
// searched, so WorkDir may be any directory inside the work tree.
func Open(cfg Config) (*Repo, error) {
	r, err := gogit.PlainOpenWithOptions(cfg.WorkDir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, errors.WithSecondaryError(errors.Wrapf(ErrNoGit, "opening %s", cfg.WorkDir), err)
	}
	return &Repo{repo: r, cfg: cfg}, nil
}

// Root returns the absolute path of the work tree.
func (r *Repo) Root() (string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return "", errors.Wrap(err, "getting worktree")
	}
	return wt.Filesystem.Root(), nil
}

// IsDirty reports whether the work tree has staged, unstaged or untracked changes.
func (r *Repo) IsDirty() (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, errors.Wrap(err, "getting worktree")
	}

	status, err := wt.Status()
	if err != nil {
		return false, errors.Wrap(err, "getting status")
	}

	return !status.IsClean(), nil
}

// IsCtorgenCommit reports whether HEAD carries the ctorgen trailer.
func (r *Repo) IsCtorgenCommit() (bool, error) {
	commit, err := r.headCommit()
	if err != nil {
		return false, err
	}
	return strings.Contains(commit.Message, generatedTrailer), nil
}

func (r *Repo) headCommit() (*object.Commit, error) {
	head, err := r.repo.Head()
	if err != nil {
		return nil, errors.Wrap(err, "getting HEAD")
	}
	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, errors.Wrap(err, "getting commit")
	}
	return commit, nil
}

func (r *Repo) lastCommitMessage() (string, error) {
	commit, err := r.headCommit()
	if err != nil {
		return "", err
	}
	return commit.Message, nil
}

// commitCount returns the number of commits reachable from HEAD.
func (r *Repo) commitCount() (int, error) {
	iter, err := r.repo.Log(&gogit.LogOptions{})
	if err != nil {
		return 0, err
	}
	count := 0
	err = iter.ForEach(func(c *object.Commit) error {
		count++
		return nil
	})
	return count, err
}
