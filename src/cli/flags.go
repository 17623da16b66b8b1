package cli

import (
	"fmt"
	"regexp"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"borg-find/src/find"
)

type flagValues struct {
	verbose bool
	jobs    int

	after   string
	before  string
	prefix  string
	reverse bool
	first   int
	last    int

	name    string
	regex   string
	onlyNew bool
	onlyMod bool

	execCmd string
	md5     bool
	sha1    bool
	output  string
}

func addFlags(cmd *cobra.Command, v *flagValues) {
	flags := cmd.Flags()

	flags.BoolVarP(&v.verbose, "verbose", "v", false, "print more details")
	flags.IntVarP(&v.jobs, "jobs", "j", runtime.NumCPU(), "number of parallel borg invocations to read archives (0 disables preloading)")

	flags.StringVarP(&v.after, "after", "A", "", "only consider archives created after this date (exclusive)")
	flags.StringVarP(&v.before, "before", "B", "", "only consider archives created before this date (exclusive)")
	flags.StringVarP(&v.prefix, "prefix", "P", "", "only consider archive names starting with this prefix")
	flags.BoolVarP(&v.reverse, "reverse", "R", false, "reverse the archive order, default is oldest first")
	flags.IntVarP(&v.first, "first", "F", 0, "consider only the first N archives after other filters were applied")
	flags.IntVarP(&v.last, "last", "L", 0, "consider only the last N archives after other filters were applied")

	flags.StringVarP(&v.name, "name", "n", "", "select files whose path contains this string (ignore case)")
	flags.StringVarP(&v.regex, "regex", "r", "", "select files whose path matches this pattern")
	flags.BoolVar(&v.onlyNew, "new", false, "select only files absent from the previous archive")
	flags.BoolVar(&v.onlyMod, "modified", false, "select only files that differ from the previous archive")

	flags.StringVarP(&v.execCmd, "exec", "x", "", "execute this command on every matching file, content on stdin")
	flags.BoolVar(&v.md5, "md5", false, "also print each file's md5sum")
	flags.BoolVar(&v.sha1, "sha1", false, "also print each file's sha1sum")
	flags.StringVarP(&v.output, "output", "o", "", "extract matching files to this folder")

	cmd.MarkFlagsMutuallyExclusive("exec", "md5", "sha1", "output")
}

// dateLayouts are the accepted --after/--before formats, from bare date to
// full RFC 3339.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
}

// criteria converts the raw flag values into engine criteria. Mutual
// exclusion of first/last and new/modified is left to Criteria.Validate so
// the engine enforces it regardless of front end.
func (v *flagValues) criteria() (find.Criteria, error) {
	criteria := find.Criteria{
		Prefix:       v.prefix,
		Reverse:      v.reverse,
		First:        v.first,
		Last:         v.last,
		Name:         v.name,
		OnlyNew:      v.onlyNew,
		OnlyModified: v.onlyMod,
		Jobs:         v.jobs,
	}
	if v.after != "" {
		t, err := parseDate(v.after)
		if err != nil {
			return find.Criteria{}, err
		}
		criteria.After = t
	}
	if v.before != "" {
		t, err := parseDate(v.before)
		if err != nil {
			return find.Criteria{}, err
		}
		criteria.Before = t
	}
	if v.regex != "" {
		pattern, err := regexp.Compile(v.regex)
		if err != nil {
			return find.Criteria{}, fmt.Errorf("invalid regex: %w", err)
		}
		criteria.Pattern = pattern
	}
	return criteria, nil
}
