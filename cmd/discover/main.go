package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// This binary is the build-time component discovery tool.
//
// It parses one Go package, collects the types annotated with //di: directives and
// writes a file declaring their di.Type values plus a di.Types source listing them.
// The generated source is what a program passes to Container.Autowire in Scans.

const (
	defaultOut    = "components.gen.go"
	defaultSource = "Components"
	defaultSuffix = "Type"
	defaultImport = "github.com/sghaida/smartdi/di"
)

// genConfig controls naming in the generated file. It may be loaded from YAML.
type genConfig struct {
	// Out is the output file, relative to the package directory.
	Out string `yaml:"out"`

	// Source is the name of the generated di.Types variable.
	Source string `yaml:"source"`

	// Suffix is appended to a Go type name to form its di.Type variable.
	Suffix string `yaml:"suffix"`

	// Import is the import path of the di package.
	Import string `yaml:"import"`
}

func (c *genConfig) applyDefaults() {
	if strings.TrimSpace(c.Out) == "" {
		c.Out = defaultOut
	}
	if strings.TrimSpace(c.Source) == "" {
		c.Source = defaultSource
	}
	if c.Suffix == "" {
		c.Suffix = defaultSuffix
	}
	if strings.TrimSpace(c.Import) == "" {
		c.Import = defaultImport
	}
}

// loadGenConfig reads a YAML generator config. A missing file is an error only
// when the path was given explicitly.
func loadGenConfig(path string, explicit bool) (genConfig, error) {
	var cfg genConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

var (
	errColor = color.New(color.FgRed, color.Bold)
	okColor  = color.New(color.FgGreen)
)

// run executes the generator and returns an exit code.
// It exists separately from main to allow unit testing without os.Exit.
func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("discover", flag.ContinueOnError)
	flags.SetOutput(stderr)

	dir := flags.String("dir", ".", "package directory to scan")
	out := flags.String("out", "", "output file (default "+defaultOut+" in -dir)")
	configPath := flags.String("config", "", "optional YAML config (default discover.yaml in -dir)")

	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() > 0 {
		_, _ = fmt.Fprintln(stderr, "usage: discover [-dir <pkg>] [-out <file.gen.go>] [-config <discover.yaml>]")
		return 2
	}

	written, count, err := generate(*dir, *out, *configPath)
	if err != nil {
		_, _ = errColor.Fprintf(stderr, "discover: %v\n", err)
		return 1
	}
	_, _ = okColor.Fprintf(stdout, "discover: wrote %d types to %s\n", count, written)
	return 0
}

// generate scans pkgDir and writes the components file. It returns the path
// written and the number of types emitted.
func generate(pkgDir, outFlag, configFlag string) (string, int, error) {
	pkgDir = filepath.Clean(pkgDir)

	configPath, explicit := configFlag, configFlag != ""
	if !explicit {
		configPath = filepath.Join(pkgDir, "discover.yaml")
	}
	cfg, err := loadGenConfig(configPath, explicit)
	if err != nil {
		return "", 0, err
	}
	if outFlag != "" {
		cfg.Out = outFlag
	}
	cfg.applyDefaults()

	outPath := cfg.Out
	if !filepath.IsAbs(outPath) && outFlag == "" {
		outPath = filepath.Join(pkgDir, outPath)
	}
	if !strings.HasSuffix(outPath, ".go") {
		return "", 0, fmt.Errorf("output %s is not a .go file", outPath)
	}

	pkgName, decls, err := scanPackage(pkgDir)
	if err != nil {
		return "", 0, err
	}
	if len(decls) == 0 {
		return "", 0, fmt.Errorf("no //di: directives found in %s", pkgDir)
	}
	ordered, err := validateDecls(decls)
	if err != nil {
		return "", 0, err
	}

	src, err := render(buildTemplateData(pkgName, ordered, cfg))
	if err != nil {
		return "", 0, err
	}
	if err := writeFileAtomic(outPath, src, 0o644); err != nil {
		return "", 0, err
	}
	return outPath, len(ordered), nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// tempFile abstracts an os.File for testability.
type tempFile interface {
	Name() string
	Write([]byte) (int, error)
	Close() error
}

// File operation hooks, overridden in tests.
var (
	createTempFile = func(dir, pattern string) (tempFile, error) { return os.CreateTemp(dir, pattern) }
	chmodFile      = os.Chmod
	renameFile     = os.Rename
	removeFile     = os.Remove
)

// writeFileAtomic writes to a temporary file in the target directory and renames
// it over targetPath, so readers never observe a partial file.
func writeFileAtomic(targetPath string, data []byte, perm os.FileMode) (err error) {
	tmpFile, err := createTempFile(filepath.Dir(targetPath), filepath.Base(targetPath)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if err != nil {
			_ = removeFile(tmpPath)
		}
	}()

	if _, err = tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err = tmpFile.Close(); err != nil {
		return err
	}
	if err = chmodFile(tmpPath, perm); err != nil {
		return err
	}
	return renameFile(tmpPath, targetPath)
}
