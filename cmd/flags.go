package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	app "github.com/gnames/gnlineage/pkg"
	"github.com/gnames/gnlineage/pkg/config"
	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
)

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", app.Version, app.Build)
		os.Exit(0)
	}
}

// resolveFlags adds flags shared by commands that query services.
func resolveFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("backend", "b", "",
		"cache backend: csv, sqlite or postgres")
	cmd.Flags().BoolP("retry-errors", "r", false,
		"query again lookups that failed with errors")
	cmd.Flags().BoolP("quiet", "q", false, "do not show progress bars")
}

// resolveOpts converts explicitly set shared flags to config options.
func resolveOpts(cmd *cobra.Command) []config.Option {
	var res []config.Option
	if cmd.Flags().Changed("backend") {
		s, _ := cmd.Flags().GetString("backend")
		res = append(res, config.OptCacheBackend(s))
	}
	if cmd.Flags().Changed("retry-errors") {
		b, _ := cmd.Flags().GetBool("retry-errors")
		res = append(res, config.OptCacheRetryErrors(b))
	}
	if q, _ := cmd.Flags().GetBool("quiet"); q {
		res = append(res, config.OptWithProgress(false))
	}
	return res
}

// signalContext is cancelled on Ctrl-C, resolvers save their progress
// before returning.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// lockCaches prevents two processes from writing the same caches.
func lockCaches(home string) (*flock.Flock, error) {
	path := config.LockFilePath(home)
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, LockError(path, err)
	}
	if !ok {
		return nil, LockBusyError(path)
	}
	return lock, nil
}
