package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/creachadair/command"
	"github.com/creachadair/mds/mdiff"
	"github.com/natefinch/atomic"
	"github.com/networkgear/tools/internal/parser"
)

var fmtArgs struct {
	Diff bool `flag:"d,Output a diff of changes instead of rewriting the file"`
}

func runFmt(env *command.Env, path string) error {
	bs, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read PSL file: %w", err)
	}

	psl, parseErrs := parser.Parse(bs)
	for _, err := range parseErrs {
		fmt.Fprintln(env, err)
	}
	// Unsortable blocks are left partly sorted, which is still a
	// valid rewrite.
	for _, err := range psl.Clean() {
		fmt.Fprintln(env, err)
	}

	clean := psl.MarshalPSL()
	if bytes.Equal(bs, clean) {
		app.log.Debug("file is already formatted", "path", path)
		return nil
	}

	if fmtArgs.Diff {
		lhs, rhs := strings.Split(string(bs), "\n"), strings.Split(string(clean), "\n")
		diff := mdiff.New(lhs, rhs).AddContext(3)
		mdiff.FormatUnified(os.Stdout, diff, &mdiff.FileInfo{
			Left:  "a/" + path,
			Right: "b/" + path,
		})
		return errors.New("file needs reformatting, rerun without -d to fix")
	}
	if len(parseErrs) > 0 {
		return errors.New("cannot reformat file due to parse errors")
	}
	if err := atomic.WriteFile(path, bytes.NewReader(clean)); err != nil {
		return fmt.Errorf("failed to reformat: %w", err)
	}
	app.log.Info("reformatted", "path", path)
	return nil
}

// validatePSL returns all problems found in the PSL file bs.
func validatePSL(bs []byte) []error {
	psl, errs := parser.Parse(bs)
	errs = append(errs, parser.ValidateOffline(psl)...)

	formatted := psl.MarshalPSL()
	if !bytes.Equal(bs, formatted) {
		errs = append(errs, ErrReformat)
	}
	errs = append(errs, psl.Clean()...)
	if !bytes.Equal(formatted, psl.MarshalPSL()) {
		errs = append(errs, ErrUnsorted)
	}
	return errs
}

func runValidate(env *command.Env, path string) error {
	bs, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read PSL file %q: %w", path, err)
	}

	errs := validatePSL(bs)
	for _, err := range errs {
		fmt.Fprintln(env, err)
	}

	switch l := len(errs); l {
	case 0:
		fmt.Fprintln(env, "PSL file is valid")
		return nil
	case 1:
		app.log.Warn("validation failed", countTags(errs).keyvals()...)
		return errors.New("file has 1 error")
	default:
		app.log.Warn("validation failed", countTags(errs).keyvals()...)
		return fmt.Errorf("file has %d errors", l)
	}
}

var dumpArgs struct {
	Format string `flag:"f,default=ast,Format to dump in, one of 'ast' or 'psl'"`
}

func runDump(env *command.Env, path string) error {
	var dumpFn func(*parser.List) []byte
	switch dumpArgs.Format {
	case "ast":
		dumpFn = (*parser.List).MarshalDebug
	case "psl":
		dumpFn = (*parser.List).MarshalPSL
	default:
		return fmt.Errorf("unknown dump format %q", dumpArgs.Format)
	}

	bs, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read PSL file: %w", err)
	}

	psl, errs := parser.Parse(bs)
	for _, err := range errs {
		fmt.Fprintln(env, err)
	}

	os.Stdout.Write(dumpFn(psl))
	return nil
}
