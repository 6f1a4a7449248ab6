// Command reminderd polls a user's upcoming reminders and logs each one
// that falls due inside the lookahead window. The data service exposes no
// push mechanism, so notification is the caller's job; this daemon is
// that caller.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/w-yuning/bookeeper/internal/ledger"
	"github.com/w-yuning/bookeeper/internal/storage"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		logrus.Fatalf("reminderd: %v", err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("reminderd", flag.ContinueOnError)
	fs.SetOutput(stderr)

	userID := fs.String("user", "", "User ID to watch")
	interval := fs.Duration("interval", time.Minute, "Poll interval")
	window := fs.Duration("window", time.Hour, "Lookahead window for due reminders")
	once := fs.Bool("once", false, "Poll a single time and exit")
	dataDir := fs.String("data", "", "Data directory (defaults to BOOKEEPER_DATA_DIR or the per-user config dir)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *userID == "" {
		fmt.Fprintln(stdout, "Usage: reminderd -user <userID> [-interval <d>] [-window <d>] [-once] [-data <dir>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: user")
	}

	dir := *dataDir
	if dir == "" {
		dir = storage.DefaultDir()
	}

	store, err := storage.NewStore(dir)
	if err != nil {
		return fmt.Errorf("failed to open data directory: %w", err)
	}
	service := ledger.NewService(store)

	if *once {
		return poll(service, *userID, *window, stdout)
	}

	logrus.WithFields(logrus.Fields{
		"user":     *userID,
		"interval": interval.String(),
		"window":   window.String(),
	}).Info("watching reminders")

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for range ticker.C {
		if err := poll(service, *userID, *window, stdout); err != nil {
			logrus.WithError(err).Warn("reminder poll failed")
		}
	}
	return nil
}

// poll reports every enabled reminder due within the window, one line per
// reminder.
func poll(service *ledger.Service, userID string, window time.Duration, stdout io.Writer) error {
	now := time.Now()
	due, err := service.UpcomingReminders(userID, now, now.Add(window))
	if err != nil {
		return err
	}
	for _, reminder := range due {
		fmt.Fprintf(stdout, "%s\t%s\n", reminder.RemindAt.Format(time.RFC3339), reminder.Message)
	}
	return nil
}
