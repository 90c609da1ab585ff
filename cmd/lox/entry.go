package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"lox/interpreter-go/pkg/driver"
)

func runEntry(args []string, opts cliOptions) int {
	if len(args) > 1 {
		fmt.Fprintln(stderr, "lox run takes at most one script")
		return driver.ExitUsage
	}
	manifest, err := loadManifestFrom(".")
	if err != nil {
		fmt.Fprintf(stderr, "failed to load manifest: %v\n", err)
		return driver.ExitConfig
	}
	if manifest != nil && manifest.Trace {
		opts.trace = true
	}
	if len(args) == 1 {
		return runScript(args[0], opts)
	}
	if manifest == nil {
		fmt.Fprintf(stderr, "lox run: no script given and no %s found\n", driver.ManifestFileName)
		return driver.ExitUsage
	}
	if manifest.Main == "" {
		fmt.Fprintf(stderr, "lox run: %s does not name a main script\n", manifest.Path)
		return driver.ExitUsage
	}
	return runScript(manifest.Resolve(manifest.Main), opts)
}

func runScript(path string, opts cliOptions) int {
	source, code := readSource(path)
	if code != driver.ExitOK {
		return code
	}
	session := driver.NewSession(driver.SessionOptions{
		Stdout: stdout,
		Stderr: stderr,
		Logger: newLogger(opts.trace),
	})
	return session.Run(source).ExitCode()
}

func readSource(path string) (string, int) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(stderr, "lox: %s: no such file\n", path)
			return "", driver.ExitNoInput
		}
		fmt.Fprintf(stderr, "lox: read %s: %v\n", path, err)
		return "", driver.ExitIOErr
	}
	return string(data), driver.ExitOK
}

// loadManifestFrom returns nil without error when no lox.yml is found.
func loadManifestFrom(start string) (*driver.Manifest, error) {
	path, err := driver.FindManifest(start)
	if err != nil {
		if errors.Is(err, driver.ErrManifestNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return driver.LoadManifest(path)
}
