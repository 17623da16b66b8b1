package find

import (
	"regexp"
	"time"
)

// Criteria is the flat, immutable selection configuration: which archives to
// walk and which files to report. The zero value selects every file of every
// archive.
type Criteria struct {
	// Archive selection. Zero times mean unset; both bounds are strict.
	After   time.Time
	Before  time.Time
	Prefix  string
	Reverse bool
	First   int
	Last    int

	// File selection.
	Name         string // case-insensitive substring of the path
	Pattern      *regexp.Regexp
	OnlyNew      bool
	OnlyModified bool

	// Jobs bounds concurrent manifest prefetching; 0 disables it.
	Jobs int
}

// ConfigError reports an invalid option combination. It is detected before
// any archive is fetched.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "invalid configuration: " + e.Reason }

// Validate enforces the mutual-exclusion invariants once, up front, so the
// pipeline loop never has to re-check them.
func (c Criteria) Validate() error {
	if c.First > 0 && c.Last > 0 {
		return &ConfigError{Reason: "--first and --last are mutually exclusive"}
	}
	if c.First < 0 {
		return &ConfigError{Reason: "--first must be positive"}
	}
	if c.Last < 0 {
		return &ConfigError{Reason: "--last must be positive"}
	}
	if c.OnlyNew && c.OnlyModified {
		return &ConfigError{Reason: "--new and --modified are mutually exclusive"}
	}
	return nil
}
