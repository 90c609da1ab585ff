package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"lox/interpreter-go/pkg/driver"
)

const defaultFixturesDir = "testdata/fixtures"

func runTest(args []string) int {
	if len(args) > 1 {
		fmt.Fprintln(stderr, "lox test takes at most one directory")
		return driver.ExitUsage
	}
	dir, code := fixturesDir(args)
	if code != driver.ExitOK {
		return code
	}

	files, err := driver.CollectFixtureFiles(dir)
	if err != nil {
		fmt.Fprintf(stderr, "lox test: %v\n", err)
		if errors.Is(err, fs.ErrNotExist) {
			return driver.ExitNoInput
		}
		return driver.ExitIOErr
	}

	passed, failed := 0, 0
	for _, file := range files {
		suite, err := driver.LoadFixtureSuite(file)
		if err != nil {
			fmt.Fprintf(stderr, "FAIL %s\n    %v\n", file, err)
			failed++
			continue
		}
		rel, relErr := filepath.Rel(dir, file)
		if relErr != nil {
			rel = file
		}
		for _, fixture := range suite.Fixtures {
			if err := fixture.Check(driver.RunFixture(fixture)); err != nil {
				fmt.Fprintf(stdout, "FAIL %s/%s\n    %v\n", rel, fixture.Name, err)
				failed++
				continue
			}
			fmt.Fprintf(stdout, "ok   %s/%s\n", rel, fixture.Name)
			passed++
		}
	}
	fmt.Fprintf(stdout, "%d passed, %d failed\n", passed, failed)
	if failed > 0 {
		return 1
	}
	return driver.ExitOK
}

// fixturesDir picks the explicit argument, then lox.yml's fixtures, then the
// conventional testdata directory.
func fixturesDir(args []string) (string, int) {
	if len(args) == 1 {
		return args[0], driver.ExitOK
	}
	manifest, err := loadManifestFrom(".")
	if err != nil {
		fmt.Fprintf(stderr, "failed to load manifest: %v\n", err)
		return "", driver.ExitConfig
	}
	if manifest != nil && manifest.Fixtures != "" {
		return manifest.Resolve(manifest.Fixtures), driver.ExitOK
	}
	return defaultFixturesDir, driver.ExitOK
}
