// SPDX-License-Identifier: EPL-2.0

//go:build !darwin && !linux

package native

func load() error { return ErrLibraryNotFound }

func libPaths() []string { return nil }
