// Command p2bookmarks converts an Eclipse p2 preferences file into a
// bookmarks XML document listing each configured update site.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"p2bookmarks/internal/bookmarks"
	"p2bookmarks/internal/prefs"
	"p2bookmarks/internal/prompt"
	"p2bookmarks/internal/settings"
)

// PrefsFileName is the well-known p2 preferences file looked up when
// --input names a directory.
const PrefsFileName = "org.eclipse.equinox.p2.metadata.repository.prefs"

// defaultOutput is used when neither --output nor settings name one.
const defaultOutput = "bookmarks.xml"

var (
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

type options struct {
	input  string
	output string
	yes    bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "p2bookmarks",
		Short: "Convert Eclipse p2 update-site preferences to bookmarks XML",
		Long: `Convert an Eclipse p2 preferences file into a bookmarks XML document.

Reads the repositories/ entries of a p2 preferences file, groups the
nickname, uri and enabled properties per update site, and writes one
<site/> element per complete site. Invalid lines are reported one by
one and may be removed from the input file in place (with confirmation;
the default answer is yes).

Defaults can be placed in ` + settings.FileName + ` in the working
directory; flags override it.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "preferences file, or directory containing "+PrefsFileName)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "bookmarks file, or directory (default "+defaultOutput+")")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "never prompt; take the default answer everywhere")
	return cmd
}

// applySettings fills unset options from the settings file.
func applySettings(opts *options, s *settings.Settings) {
	if s == nil {
		return
	}
	if opts.input == "" {
		opts.input = s.Input
	}
	if opts.output == "" {
		opts.output = s.Output
	}
	if s.AssumeYes {
		opts.yes = true
	}
}

// resolveInput resolves --input to the preferences file itself.
// A directory resolves to <dir>/PrefsFileName. The result must exist.
func resolveInput(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("input %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, PrefsFileName)
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("input %s: %w", path, err)
		}
	}
	return path, nil
}

// resolveOutput resolves --output to the bookmarks file path. An empty
// value falls back to defaultOutput; an existing directory resolves to
// <dir>/defaultOutput.
func resolveOutput(path string) string {
	if path == "" {
		return defaultOutput
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, defaultOutput)
	}
	return path
}

// reporter announces invalid lines on w ahead of each removal prompt.
func reporter(w io.Writer) prefs.Reporter {
	return func(first bool, ln prefs.Line) {
		if first {
			fmt.Fprintln(w, warnStyle.Render("invalid line found in preferences file"))
		} else {
			fmt.Fprintln(w, warnStyle.Render("another invalid line"))
		}
		fmt.Fprintf(w, "  %s\n", dimStyle.Render(fmt.Sprintf("line %d: %s", ln.Num, ln.Text)))
	}
}

func run(cmd *cobra.Command, opts options) error {
	s, err := settings.Load(".")
	if err != nil {
		return err
	}
	applySettings(&opts, s)
	if opts.input == "" {
		return fmt.Errorf("missing input: pass --input or set input in %s", settings.FileName)
	}

	inPath, err := resolveInput(opts.input)
	if err != nil {
		return err
	}
	outPath := resolveOutput(opts.output)

	var confirm prompt.Confirmer = prompt.Terminal{}
	if opts.yes {
		confirm = prompt.Static{Answer: true}
	}
	out := cmd.OutOrStdout()

	doc, err := prefs.ParseFile(inPath)
	if err != nil {
		return err
	}

	res, err := prefs.Repair(doc, confirm, reporter(out))
	if errors.Is(err, prompt.ErrCancelled) {
		fmt.Fprintln(out, "aborted")
		return nil
	}
	if err != nil {
		return err
	}
	if res.Needed() {
		if err := prefs.RewriteFile(inPath, res); err != nil {
			return err
		}
		fmt.Fprintf(out, "removed %d invalid line(s) from %s\n", len(res.Removed), inPath)
	}

	sites := bookmarks.Collect(doc, out)

	if !opts.yes {
		if _, err := os.Stat(outPath); err == nil {
			overwrite, err := confirm.Confirm(fmt.Sprintf("Overwrite %s?", outPath), true)
			if errors.Is(err, prompt.ErrCancelled) || (err == nil && !overwrite) {
				fmt.Fprintf(out, "aborted: %s left untouched\n", outPath)
				return nil
			}
			if err != nil {
				return err
			}
		}
	}

	if err := bookmarks.Write(outPath, sites); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %d site(s) to %s\n", len(sites), outPath)
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
