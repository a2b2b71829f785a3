// idntool is a CLI tool to validate internationalized domain names and
// to query and maintain public suffix lists.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/creachadair/command"
	"github.com/creachadair/flax"
	"github.com/networkgear/tools/internal/ace"
	"github.com/networkgear/tools/internal/config"
	"github.com/networkgear/tools/internal/domain"
	"github.com/networkgear/tools/internal/publicsuffix"
)

func main() {
	root := &command.C{
		Name:  filepath.Base(os.Args[0]),
		Usage: "command [flags] ...\nhelp [command]",
		Help: `A command-line tool to validate domain names and query
public suffix lists.`,
		SetFlags: command.Flags(flax.MustBind, &globalArgs),
		Init:     func(env *command.Env) error { return app.init() },
		Commands: []*command.C{
			{
				Name:  "check",
				Usage: "[name ...]",
				Help: `Validate domain names.

Each name is printed with its status, its Unicode form and its punycode
form. With no arguments, names are read from stdin, one per line.`,
				Run: command.Adapt(runCheck),
			},
			{
				Name:  "label",
				Usage: "<label> ...",
				Help:  "Validate single domain name labels.",
				Run:   command.Adapt(runLabel),
			},
			{
				Name:  "match",
				Usage: "<host> <cookie-domain>",
				Help: `Report whether a cookie for cookie-domain may be sent to host.

The host must domain-match the cookie domain, as defined by RFC 6265,
and the cookie domain must not be a public suffix other than the host
itself.`,
				Run: command.Adapt(runMatch),
			},
			{
				Name:     "suffix",
				Usage:    "<name> ...",
				Help:     "Print the public suffix and registered domain of names.",
				SetFlags: command.Flags(flax.MustBind, &suffixArgs),
				Run:      command.Adapt(runSuffix),
			},
			{
				Name: "psl",
				Help: "Maintain public suffix list files.",
				Commands: []*command.C{
					{
						Name:  "fmt",
						Usage: "<path>",
						Help: `Format a PSL file.

Suffixes within each block are sorted, and duplicate rules are merged.
By default, the given file is updated in place.`,
						SetFlags: command.Flags(flax.MustBind, &fmtArgs),
						Run:      command.Adapt(runFmt),
					},
					{
						Name:  "validate",
						Usage: "<path>",
						Help: `Check that a file is a valid PSL file.

Validation includes parse errors, as well as duplicated rules, missing
sections, private suffix blocks with no owner and unsorted suffixes.`,
						Run: command.Adapt(runValidate),
					},
					{
						Name:     "dump",
						Usage:    "<path>",
						Help:     "Print a debug dump of a PSL file.",
						SetFlags: command.Flags(flax.MustBind, &dumpArgs),
						Run:      command.Adapt(runDump),
					},
				},
			},

			command.HelpCommand(nil),
			command.VersionCommand(),
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	env := root.NewEnv(nil).SetContext(ctx).MergeFlags(true)
	command.RunOrFail(env, os.Args[1:])
}

var globalArgs struct {
	Config  string `flag:"config,Path of a YAML configuration file"`
	Options string `flag:"options,Validity options preset, one of none, loose, default or idna2008"`
	PSL     string `flag:"psl,Path of a PSL file to use instead of the built-in list"`
	Verbose bool   `flag:"v,Enable debug logging"`
}

// app is the state shared by all commands, set up once flags are
// parsed.
var app = appState{
	settings: config.Settings{Options: domain.Default, Workers: 1},
	log: log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "idntool",
	}),
}

type appState struct {
	settings config.Settings
	log      *log.Logger
}

func (a *appState) init() error {
	cfg := config.Default()
	if globalArgs.Config != "" {
		var err error
		cfg, err = config.Load(globalArgs.Config)
		if err != nil {
			return err
		}
	}
	if globalArgs.Options != "" {
		cfg.Options = globalArgs.Options
	}
	if globalArgs.PSL != "" {
		cfg.PSL = globalArgs.PSL
	}
	if globalArgs.Verbose {
		cfg.LogLevel = "debug"
	}

	settings, err := cfg.Resolve()
	if err != nil {
		return err
	}
	a.settings = settings
	a.log.SetLevel(settings.LogLevel)
	a.log.Debug("configured", "options", settings.Options, "workers", settings.Workers, "psl", settings.PSL)
	return nil
}

// matcher returns the public suffix rules to use.
func (a *appState) matcher(icannOnly bool) (*publicsuffix.Matcher, error) {
	var opts []publicsuffix.Option
	if icannOnly {
		opts = append(opts, publicsuffix.ICANNOnly())
	}
	if a.settings.PSL == "" {
		if !icannOnly {
			return publicsuffix.Default(), nil
		}
		return publicsuffix.LoadEmbedded(opts...)
	}

	bs, err := os.ReadFile(a.settings.PSL)
	if err != nil {
		return nil, fmt.Errorf("failed to read PSL file: %w", err)
	}
	m, err := publicsuffix.Load(bs, opts...)
	if err != nil {
		return nil, err
	}
	a.log.Debug("loaded public suffix list", "path", a.settings.PSL, "rules", m.NumRules())
	return m, nil
}

// parseName parses s with the configured options, in Unicode form.
func (a *appState) parseName(s string) (domain.Name, error) {
	opts := a.settings.Options.Without(domain.AddPunycodeEncoding)
	d, ok := domain.ParseWith(s, opts)
	if !ok {
		return domain.Name{}, fmt.Errorf("%q: %w", s, explainInvalid(s, opts))
	}
	return d, nil
}

func readLines(r io.Reader) ([]string, error) {
	var ret []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := sc.Text(); line != "" {
			ret = append(ret, line)
		}
	}
	return ret, sc.Err()
}

func runCheck(env *command.Env, names ...string) error {
	if len(names) == 0 {
		var err error
		names, err = readLines(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read names: %w", err)
		}
	}

	results := checkNames(names, app.settings.Options, app.settings.Workers)
	var errs []error
	for _, r := range results {
		fmt.Println(r)
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}

	if len(errs) == 0 {
		app.log.Debug("all names valid", "names", len(results))
		return nil
	}
	app.log.Warn("invalid names", countTags(errs).keyvals()...)
	return fmt.Errorf("%d of %d names are invalid", len(errs), len(results))
}

func runLabel(env *command.Env, labels ...string) error {
	if len(labels) == 0 {
		return env.Usagef("missing labels")
	}
	var invalid int
	for _, s := range labels {
		l, ascii, err := labelForms(s, app.settings.Options)
		if err != nil {
			fmt.Printf("%s\tinvalid\t%v\n", s, err)
			invalid++
			continue
		}
		form := "u-label"
		if ace.HasPrefix(s) {
			form = "a-label"
		}
		fmt.Printf("%s\t%s\t%s\t%s\tlen=%d\n", s, form, l, ascii, l.Len())
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d labels are invalid", invalid, len(labels))
	}
	return nil
}

func runMatch(env *command.Env, hostArg, cookieArg string) error {
	host, err := app.parseName(hostArg)
	if err != nil {
		return err
	}
	cookie, err := app.parseName(cookieArg)
	if err != nil {
		return err
	}
	m, err := app.matcher(false)
	if err != nil {
		return err
	}

	ok, reason := cookieMatches(m, host, cookie)
	if !ok {
		fmt.Printf("no match: %s\n", reason)
		return fmt.Errorf("%s does not match cookie domain %s", host, cookie)
	}
	fmt.Println("match")
	return nil
}

// cookieMatches reports whether a cookie with the Domain attribute
// cookie may be set by and sent to host. If not, it also returns the
// reason.
func cookieMatches(m *publicsuffix.Matcher, host, cookie domain.Name) (bool, string) {
	if m.IsPublicSuffix(cookie) && !host.Equal(cookie) {
		return false, fmt.Sprintf("%s is a public suffix", cookie)
	}
	if !host.DomainMatches(cookie) {
		return false, fmt.Sprintf("%s is not %s or a subdomain of it", host, cookie)
	}
	return true, ""
}

var suffixArgs struct {
	ICANN bool `flag:"icann,Ignore the private domains section of the list"`
}

func runSuffix(env *command.Env, names ...string) error {
	if len(names) == 0 {
		return env.Usagef("missing names")
	}
	m, err := app.matcher(suffixArgs.ICANN)
	if err != nil {
		return err
	}
	for _, s := range names {
		d, err := app.parseName(s)
		if err != nil {
			return err
		}
		fmt.Println(describeSuffix(m, d))
	}
	return nil
}

// describeSuffix formats the public suffix and registered domain of d
// as a tab separated line. Missing parts are printed as "-".
func describeSuffix(m *publicsuffix.Matcher, d domain.Name) string {
	suffix, registered := "-", "-"
	if ps, ok := m.PublicSuffix(d); ok {
		suffix = ps.String()
	}
	if rd, ok := m.RegisteredDomain(d); ok {
		registered = rd.String()
	}
	return fmt.Sprintf("%s\t%s\t%s", d, suffix, registered)
}
