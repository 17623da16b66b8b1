package version

// Version is the borg-find release version. Overridden at build time via
// -ldflags "-X borg-find/src/version.Version=...".
var Version = "0.3.0"
