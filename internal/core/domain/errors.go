package domain

import "go.trai.ch/zerr"

var (
	// ErrManifestNotFound is returned when the project root has no package.json.
	ErrManifestNotFound = zerr.New("package.json not found")

	// ErrManifestInvalid is returned when package.json cannot be decoded.
	ErrManifestInvalid = zerr.New("invalid package.json")

	// ErrSettingsInvalid is returned when the resolved settings contain an unknown value.
	ErrSettingsInvalid = zerr.New("invalid settings")

	// ErrEntryNotFound is returned when a target is owed output but none of its entry candidates exist.
	ErrEntryNotFound = zerr.New("entry point not found")

	// ErrNothingToBuild is returned when the task list builder produces no tasks.
	ErrNothingToBuild = zerr.New("nothing to build")

	// ErrUnresolvedTag is returned when a JSX tag placeholder survives into rendered output.
	ErrUnresolvedTag = zerr.New("unresolved jsx tag placeholder")

	// ErrSourceMapInvalid is returned when a bundle's sourcemap cannot be adjusted to its rendered code.
	ErrSourceMapInvalid = zerr.New("invalid sourcemap")

	// ErrAssetEmitFailed is returned when an asset cannot be hashed or copied to the output folder.
	ErrAssetEmitFailed = zerr.New("failed to emit asset")

	// ErrStyleCompileFailed is returned when a stylesheet cannot be compiled.
	ErrStyleCompileFailed = zerr.New("failed to compile stylesheet")

	// ErrBundleFailed is returned when the bundler reports errors for a task.
	ErrBundleFailed = zerr.New("bundling failed")

	// ErrWriteFailed is returned when a bundle cannot be written to disk.
	ErrWriteFailed = zerr.New("failed to write bundle")

	// ErrTypesFailed is returned when declaration extraction fails.
	ErrTypesFailed = zerr.New("failed to extract type declarations")

	// ErrToolFailed is returned when an external tool exits with a non-zero status.
	ErrToolFailed = zerr.New("external tool failed")

	// ErrWatchFailed is returned when watch mode cannot be set up.
	ErrWatchFailed = zerr.New("failed to start watch mode")

	// ErrBuildExecutionFailed is returned when one or more tasks fail.
	ErrBuildExecutionFailed = zerr.New("build execution failed")
)
