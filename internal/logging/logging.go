package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger based on the -v count. Diagnostics and
// the per-duplicate report go to stderr; the summary and savings total are
// written to stdout by the driver, not through here.
func Setup(verbosity int) {
	switch verbosity {
	case 0:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case 1:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case 2:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}
	log.Logger = zerolog.New(consoleWriter).With().Timestamp().Logger()

	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}
}

// GetLogger returns a logger tagged with the given component name.
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// PrintSummary prints the end-of-run totals. The savings line is always the
// last line of output and is printed at every verbosity, in dry-run and
// execute mode alike.
func PrintSummary(w io.Writer, verbosity int, sets, removed, failed, savedBytes int64, dryRun bool, duration time.Duration) {
	mode := ""
	if dryRun {
		mode = color.YellowString(" (dry-run)")
	}

	if verbosity >= 1 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Duplicate sets: %d\n", sets)
		fmt.Fprintf(w, "Replicas removed: %d%s\n", removed, mode)
		if failed > 0 {
			fmt.Fprintf(w, "Errors: %s\n", color.RedString("%d", failed))
		}
		fmt.Fprintf(w, "Duration: %s\n", duration.Round(time.Millisecond))
	}
	fmt.Fprintf(w, "Total savings: %s%s\n", FormatBytes(savedBytes), mode)
}

// FormatBytes formats bytes in human readable form (1024 based).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
