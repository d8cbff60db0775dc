package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"revwhoix-cli/internal/api"
	"revwhoix-cli/internal/config"
	"revwhoix-cli/internal/notify"
	"revwhoix-cli/internal/session"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "revwhoix",
	Short: "revwhoix - reverse WHOIS domain discovery from the terminal",
	Long: `revwhoix finds domains whose registration data matches a keyword, lets you
filter and page through them, export or copy the list, and inspect the
registration and DNS details of any single domain.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(bindFlags, config.InitConfig, initLogging)

	rootCmd.PersistentFlags().String("base-url", "", "Backend API base URL (default from config, http://localhost:5000/api)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Request timeout (default from config, 30s)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

func bindFlags() {
	_ = viper.BindPFlag(config.BaseURL, rootCmd.PersistentFlags().Lookup("base-url"))
	_ = viper.BindPFlag(config.Timeout, rootCmd.PersistentFlags().Lookup("timeout"))
}

func initLogging() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if debug {
		log.SetLevel(log.DebugLevel)
		return
	}
	log.SetLevel(config.GetLogLevel())
}

// newSession wires a session to the configured backend. Notifications are
// printed to w; a nil w keeps them silent.
func newSession(w io.Writer) *session.Session {
	opts := []notify.Option{notify.WithTTL(config.GetNotifyTTL())}
	if w != nil {
		opts = append(opts, notify.WithSink(notify.WriterSink{W: w}))
	}
	return session.New(newClient(), session.Options{
		Notifier:  notify.New(opts...),
		ResultDir: config.GetResultDir(),
	})
}

func newClient() *api.Client {
	log.WithFields(log.Fields{"base_url": config.GetBaseURL(), "timeout": config.GetTimeout()}).Debug("backend configured")
	return api.NewClient(config.GetBaseURL(), config.GetTimeout())
}
