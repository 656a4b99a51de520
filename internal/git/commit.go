// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	authorName  = "ctorgen"
	authorEmail = "noreply@ctorgen"
)

func signature() *object.Signature {
	return &object.Signature{Name: authorName, Email: authorEmail, When: time.Now()}
}

// HandleDirty commits pending changes separately when Config.DirtyCommit is
// set, and returns ErrDirtyWorkTree otherwise. A clean tree is a no-op.
func (r *Repo) HandleDirty() error {
	dirty, err := r.IsDirty()
	if err != nil {
		return err
	}
	if !dirty {
		return nil
	}
	if !r.cfg.DirtyCommit {
		return errors.WithHint(ErrDirtyWorkTree, "commit or stash your changes, or enable dirty-commit")
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return errors.Wrap(err, "getting worktree")
	}
	if _, err := wt.Add("."); err != nil {
		return errors.Wrap(err, "staging dirty files")
	}
	if _, err := wt.Commit(dirtyCommitMsg, &gogit.CommitOptions{Author: signature()}); err != nil {
		return errors.Wrap(err, "committing dirty files")
	}
	return nil
}

// Commit stages files and records a constructor commit for typeName. Paths
// may be absolute or relative to the work tree root. It does nothing when
// Config.AutoCommit is false.
func (r *Repo) Commit(files []string, typeName string) error {
	if !r.cfg.AutoCommit {
		return nil
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return errors.Wrap(err, "getting worktree")
	}
	root := wt.Filesystem.Root()

	rel := make([]string, 0, len(files))
	for _, f := range files {
		p, err := relativeTo(root, f)
		if err != nil {
			return err
		}
		if _, err := wt.Add(p); err != nil {
			return errors.Wrapf(err, "staging %s", p)
		}
		rel = append(rel, p)
	}

	if _, err := wt.Commit(GenerateMessage(typeName, rel), &gogit.CommitOptions{Author: signature()}); err != nil {
		return errors.Wrap(err, "committing")
	}
	return nil
}

func relativeTo(root, path string) (string, error) {
	if !filepath.IsAbs(path) {
		return filepath.ToSlash(path), nil
	}
	resolvedRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		resolvedRoot = root
	}
	resolvedPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		resolvedPath = path
	}
	rel, err := filepath.Rel(resolvedRoot, resolvedPath)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s", path)
	}
	return filepath.ToSlash(rel), nil
}

// Undo soft-resets HEAD to its parent when HEAD is a ctorgen commit. The
// generated code stays in the work tree as staged changes.
func (r *Repo) Undo() error {
	ours, err := r.IsCtorgenCommit()
	if err != nil {
		return err
	}
	if !ours {
		return ErrNotCtorgenCommit
	}

	commit, err := r.headCommit()
	if err != nil {
		return err
	}
	if commit.NumParents() == 0 {
		return errors.New("cannot undo: HEAD is the initial commit")
	}
	parent, err := commit.Parent(0)
	if err != nil {
		return errors.Wrap(err, "getting parent commit")
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return errors.Wrap(err, "getting worktree")
	}
	if err := wt.Reset(&gogit.ResetOptions{Commit: parent.Hash, Mode: gogit.SoftReset}); err != nil {
		return errors.Wrap(err, "resetting to parent")
	}
	return nil
}
