package main

import (
	"context"
	"fmt"
	"github.com/OpenTransitTools/arrivalnotify/app/arrival-notify/notifier"
	"github.com/OpenTransitTools/arrivalnotify/business/data/arrivals"
	"github.com/OpenTransitTools/arrivalnotify/foundation/httpclient"
	"github.com/OpenTransitTools/arrivalnotify/foundation/sms"
	"github.com/ardanlabs/conf"
	"github.com/nats-io/nats.go"
	"io"
	logger "log"
	"os"
	"strings"
	"time"
)

var build = "develop"

// notSent is printed in place of a message id when no text message was sent
const notSent = "not sent"

func main() {
	log := logger.New(os.Stderr, "ARRIVAL_NOTIFY : ", logger.LstdFlags|logger.Lmicroseconds|logger.Lshortfile)
	if err := run(log, os.Args[1:], os.Stdout); err != nil {
		log.Printf("main: error: %v", err)
		os.Exit(1)
	}
}

func run(log *logger.Logger, args []string, out io.Writer) error {
	var cfg struct {
		conf.Version
		Args conf.Args
		API  struct {
			Host    string        `conf:"default:https://api-arrivals.sofiatraffic.bg"`
			WebHost string        `conf:"default:https://www.sofiatraffic.bg"`
			Timeout time.Duration `conf:"default:0s"`
		}
		Send bool `conf:"default:false"`
		NATS struct {
			URL     string
			Subject string `conf:"default:bus-arrivals"`
		}
	}
	cfg.Version.SVN = build
	cfg.Version.Desc = "Send the next arrivals of a bus line at a stop as a text message"

	const prefix = "ARRIVALS"

	usage, err := conf.Usage(prefix, &cfg)
	if err != nil {
		return fmt.Errorf("generating config usage: %w", err)
	}

	if err := conf.Parse(args, prefix, &cfg); err != nil {
		switch err {
		case conf.ErrHelpWanted:
			printUsage(out, usage)
			return nil
		case conf.ErrVersionWanted:
			version, err := conf.VersionString(prefix, &cfg)
			if err != nil {
				return fmt.Errorf("generating config version: %w", err)
			}
			fmt.Fprintln(out, version)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.Args) != 3 {
		printUsage(out, usage)
		return &arrivals.ArgumentError{
			Argument: "arguments",
			Value:    strings.Join(cfg.Args, " "),
			Err:      fmt.Errorf("expected 3 arguments, found %d", len(cfg.Args)),
		}
	}
	query, err := arrivals.ParseQuery(cfg.Args.Num(0), cfg.Args.Num(1))
	if err != nil {
		return err
	}
	phoneNumber := cfg.Args.Num(2)

	// Twilio account, read from TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and TWILIO_PHONE_NUMBER
	var twilioCfg struct {
		AccountSID  string
		AuthToken   string `conf:"noprint"`
		PhoneNumber string
	}
	if err := conf.Parse(nil, "TWILIO", &twilioCfg); err != nil {
		return fmt.Errorf("parsing twilio config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Printf("main : Started : Application initializing : version %s", build)
	defer log.Println("main: Completed")

	cfgOut, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Printf("main: Config :\n%v\n", cfgOut)

	smsConfig := sms.Config{
		AccountSID:  twilioCfg.AccountSID,
		AuthToken:   twilioCfg.AuthToken,
		PhoneNumber: twilioCfg.PhoneNumber,
	}
	if cfg.Send && !smsConfig.Configured() {
		log.Println("main: twilio account is not fully configured")
	}

	// =========================================================================
	// Start NATS

	var destination notifier.SnapshotDestination
	if len(cfg.NATS.URL) > 0 {
		log.Printf("main: Connecting to nats at %s", cfg.NATS.URL)
		natsConn, err := nats.Connect(cfg.NATS.URL)
		if err != nil {
			return fmt.Errorf("connecting to nats: %w", err)
		}
		defer func() {
			log.Printf("main: Nats Stopping : %s", cfg.NATS.URL)
			if err := natsConn.Flush(); err != nil {
				log.Printf("main: error flushing nats connection: %v", err)
			}
			natsConn.Close()
		}()
		destination = notifier.NewNatsSnapshotDestination(natsConn, cfg.NATS.Subject)
	}

	// =========================================================================
	// Collect and send arrivals

	client := notifier.NewArrivalsClient(log,
		httpclient.NewClient(log, cfg.API.Timeout),
		notifier.Endpoints{APIHost: cfg.API.Host, WebHost: cfg.API.WebHost},
		query,
		destination)

	if err := client.FetchArrivals(context.Background()); err != nil {
		return fmt.Errorf("fetching arrivals: %w", err)
	}
	fmt.Fprintln(out, client.Summary())

	messageID, err := client.SendNotification(sms.NewTwilioSender(smsConfig), smsConfig.PhoneNumber,
		phoneNumber, cfg.Send)
	if err != nil {
		return fmt.Errorf("sending notification: %w", err)
	}
	if messageID == nil {
		fmt.Fprintln(out, notSent)
	} else {
		fmt.Fprintln(out, *messageID)
	}
	return nil
}

func printUsage(out io.Writer, confUsage string) {
	fmt.Fprintln(out, confUsage)
	fmt.Fprintln(out, "arguments:")
	fmt.Fprintln(out, "<line_number> <stop_number> <phone_number>")
}
