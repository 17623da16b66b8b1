package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"borg-find/src/action"
	"borg-find/src/borg"
	"borg-find/src/find"
	"borg-find/src/repo"
	"borg-find/src/ui"
	"borg-find/src/version"
)

type borgDetectorFunc func(context.Context) (borg.BinaryInfo, error)

var detectBorgFn borgDetectorFunc = borg.Detect

// NewRootCmd returns the root cobra command for the borg-find CLI. The tool
// is a single command: filter archives, diff manifests, act on matches.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	values := &flagValues{}
	cmd := &cobra.Command{
		Use:     "borg-find [flags] [REPOSITORY]",
		Short:   "Find new, modified, or matching files across borg archives",
		Long:    "borg-find scans the archives of a borg repository in chronological order and selects files by path, pattern, or change state relative to the previous archive.",
		Version: version.Version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repository := os.Getenv("BORG_REPO")
			if len(args) == 1 {
				repository = args[0]
			}
			if repository == "" {
				return errors.New("repository argument is required when BORG_REPO is not set")
			}
			return runFind(cmd, values, repository)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	addFlags(cmd, values)
	return cmd
}

func runFind(cmd *cobra.Command, values *flagValues, repository string) error {
	criteria, err := values.criteria()
	if err != nil {
		return err
	}
	if err := criteria.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	bin, err := detectBorgFn(ctx)
	if err != nil {
		return err
	}

	source := repo.NewBorgSource(bin, repository)
	printer := ui.NewPrinter(cmd.OutOrStdout())

	archives, err := find.SelectArchives(ctx, source, criteria)
	if err != nil {
		return err
	}

	if criteria.Jobs > 0 && len(archives) > 1 {
		printer.Status(fmt.Sprintf("Reading %d archive(s) from %s with %d job(s) ...",
			len(archives), printer.Repo(repository), criteria.Jobs))
		err := source.Prefetch(ctx, archives, criteria.Jobs, func(done, total int, archive repo.Archive) {
			printer.Status(fmt.Sprintf("[%d/%d] Reading archive %s ...", done, total, printer.Archive(repository, archive)))
		})
		printer.ClearStatus()
		if err != nil {
			return err
		}
	}

	return find.Walk(ctx, source, archives, criteria, selectAction(values, source, repository, printer))
}

// selectAction picks the action implementation from the mutually exclusive
// flag group. The pipeline driver never branches on action kind.
func selectAction(values *flagValues, source repo.Source, repository string, printer *ui.Printer) find.Action {
	switch {
	case values.execCmd != "":
		return &action.Exec{
			Source:     source,
			Repository: repository,
			Printer:    printer,
			Command:    values.execCmd,
			Verbose:    values.verbose,
		}
	case values.output != "":
		return &action.Extract{
			Source:     source,
			Repository: repository,
			Printer:    printer,
			OutputDir:  values.output,
		}
	default:
		digest := action.DigestNone
		if values.md5 {
			digest = action.DigestMD5
		} else if values.sha1 {
			digest = action.DigestSHA1
		}
		return &action.List{
			Source:     source,
			Repository: repository,
			Printer:    printer,
			Verbose:    values.verbose,
			Digest:     digest,
		}
	}
}

// Execute runs the CLI with the process stdio and returns the exit code.
func Execute() int {
	root := NewRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		ui.NewPrinter(os.Stderr).Errorf("%s%s", errorLabel(err), err.Error())
		return 1
	}
	return 0
}

func errorLabel(err error) string {
	var repoErr *repo.RepositoryError
	var readErr *repo.ArchiveReadError
	switch {
	case errors.As(err, &repoErr):
		return "repository error: "
	case errors.As(err, &readErr):
		return "archive error: "
	default:
		return ""
	}
}

// SetBorgDetectorForTest allows tests to stub borg binary detection. The
// returned function restores the previous detector.
func SetBorgDetectorForTest(fn borgDetectorFunc) func() {
	prev := detectBorgFn
	detectBorgFn = fn
	return func() { detectBorgFn = prev }
}
