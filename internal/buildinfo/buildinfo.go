package buildinfo

import (
	"fmt"
	"io"
	"runtime"
)

// Set at link time with -ldflags "-X".
var (
	Version   = "dev"
	Commit    = "unknown"
	Date      = "unknown"
	GoVersion = runtime.Version()
)

// UserAgent identifies this build to upstream hosts.
func UserAgent() string {
	return "mcversion/" + Version
}

func PrintVersion(w io.Writer) {
	_, _ = fmt.Fprintln(w, "mcversion - Minecraft version metadata service")
	_, _ = fmt.Fprintf(w, "  %-12s %s\n", "Version:", Version)
	_, _ = fmt.Fprintf(w, "  %-12s %s\n", "Go Version:", GoVersion)
	_, _ = fmt.Fprintf(w, "  %-12s %s\n", "Git Commit:", Commit)
	_, _ = fmt.Fprintf(w, "  %-12s %s\n", "Built:", Date)
	_, _ = fmt.Fprintf(w, "  %-12s %s/%s\n", "OS/Arch:", runtime.GOOS, runtime.GOARCH)
}
