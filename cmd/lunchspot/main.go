// Command lunchspot asks the relay for a random nearby lunch spot and prints it.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/lunch-spot/internal/client"
	"github.com/ukydev/lunch-spot/internal/config"
	"github.com/ukydev/lunch-spot/internal/models"
)

const defaultRelayURL = "http://localhost:3000"

type options struct {
	genre    string
	retry    bool
	relayURL string
	location *models.Location
}

func parseOptions(args []string) (*options, error) {
	fs := flag.NewFlagSet("lunchspot", flag.ContinueOnError)
	genre := fs.String("genre", "", "restrict the search to a genre, e.g. ramen")
	retry := fs.Bool("retry", false, "retry with any genre when a filtered lookup fails")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts := &options{genre: *genre, retry: *retry, relayURL: os.Getenv("RELAY_URL")}
	if opts.relayURL == "" {
		opts.relayURL = defaultRelayURL
	}

	lat, latOK := config.GetFloat("LUNCHSPOT_LAT")
	lon, lonOK := config.GetFloat("LUNCHSPOT_LON")
	if latOK && lonOK {
		opts.location = &models.Location{Lat: lat, Lon: lon}
	}
	return opts, nil
}

func run(ctx context.Context, opts *options, out io.Writer) error {
	view := client.NewTerminalView(out)
	controller := client.NewController(view, client.FixedLocator{Location: opts.location}, client.NewRelayClient(opts.relayURL))

	log.WithFields(log.Fields{
		"relay": opts.relayURL,
		"genre": opts.genre,
	}).Debug("Looking up lunch spot")

	err := controller.Decide(ctx, opts.genre)
	if err != nil && opts.retry && view.RetryOffered {
		fmt.Fprintln(out, "Retrying with any genre...")
		err = controller.Retry(ctx)
	}
	return err
}

func main() {
	config.LoadEnv()
	config.Load().ConfigureLogger()

	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, opts, os.Stdout)
	stop()
	if err != nil {
		log.WithError(err).Debug("Lookup failed")
		os.Exit(1)
	}
}
