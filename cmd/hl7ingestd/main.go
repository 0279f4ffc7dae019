// Command hl7ingestd ingests HL7 v2.x messages over MLLP and is also
// usable offline as a one-shot parse demo.
package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/corvushealth/hl7gateway/hl7"
	"github.com/corvushealth/hl7gateway/internal/config"
	"github.com/corvushealth/hl7gateway/internal/demo"
	"github.com/corvushealth/hl7gateway/internal/logging"
	"github.com/corvushealth/hl7gateway/internal/stats"
	"github.com/corvushealth/hl7gateway/internal/trigger"
	"github.com/corvushealth/hl7gateway/mllp"
	"github.com/corvushealth/hl7gateway/parse"
)

func main() {
	app := &cli.App{
		Name:  "hl7ingestd",
		Usage: "HL7 v2.x over MLLP ingestion server and parse demo",
		Commands: []*cli.Command{
			parseCommand(),
			serveCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "hl7ingestd: ", err)
		os.Exit(1)
	}
}

func parseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "parse a file (or - for stdin) and print its structure",
		ArgsUsage: "<file>",
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return cli.Exit("parse requires exactly one file argument", 1)
			}
			return runParse(c.Args().First(), c.App.Writer)
		},
	}
}

func runParse(path string, out io.Writer) error {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("reading input: %v", err), 1)
	}

	if unframed, unframeErr := mllp.Unframe(data); unframeErr == nil {
		data = unframed
	}

	msg, err := parse.New().Parse(data)
	if err != nil {
		return cli.Exit(fmt.Sprintf("parsing message: %v", err), 1)
	}

	fmt.Fprintf(out, "Type:      %s\n", msg.Type())
	fmt.Fprintf(out, "ControlID: %s\n", msg.ControlID())
	fmt.Fprintf(out, "Version:   %s\n", msg.Version())
	for _, seg := range msg.AllSegments() {
		fmt.Fprintf(out, "Segment:   %s\n", seg.Name())
	}

	if header, err := trigger.ParseHeader(msg); err == nil {
		fmt.Fprintf(out, "Header:    type=%s trigger=%s control=%s version=%s\n",
			header.MessageType, header.TriggerCode, header.ControlID, header.Version)
	}

	printProjection(out, msg)
	return nil
}

func printProjection(out io.Writer, msg hl7.Message) {
	switch msg.TriggerEvent() {
	case "ADT":
		if adt, err := trigger.ParseADT(msg); err == nil {
			fmt.Fprintf(out, "ADT: event=%s patient=%s name=%s dob=%s gender=%s\n",
				adt.EventType, adt.PatientID, adt.PatientName, adt.DateOfBirth, adt.Gender)
		}
	case "ORU":
		if oru, err := trigger.ParseORU(msg); err == nil {
			for _, obs := range oru.Observations {
				fmt.Fprintf(out, "OBX: %s=%s %s (ref %s)\n", obs.TestID, obs.Value, obs.Units, obs.ReferenceRange)
			}
		}
	case "RDE":
		if rde, err := trigger.ParseRDE(msg); err == nil {
			for _, order := range rde.MedicationOrders {
				fmt.Fprintf(out, "RXE: %s %s %s%s %s\n", order.RxID, order.MedicationName, order.Strength, order.Form, order.Frequency)
			}
		}
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the MLLP ingestion server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "address", Usage: "listen address, overrides config and HL7INGEST_ADDRESS"},
			&cli.StringFlag{Name: "config", Usage: "path to a YAML config file"},
		},
		Action: func(c *cli.Context) error {
			return runServe(c.String("config"), c.String("address"))
		},
	}
}

func runServe(configPath, addressOverride string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cli.Exit(fmt.Sprintf("loading config: %v", err), 1)
	}
	if addressOverride != "" {
		cfg.Address = addressOverride
	}

	logger := logging.New(cfg.LogLevel, os.Stdout)
	registry := stats.NewRegistry()
	handler := demo.New(logger, registry)

	srv := mllp.NewServer(
		mllp.WithHandler(handler),
		mllp.WithMaxConnections(cfg.MaxConnections),
		mllp.WithMaxFrameBytes(cfg.MaxFrameBytes),
		mllp.WithReadTimeout(cfg.ReadTimeout),
		mllp.WithWriteTimeout(cfg.WriteTimeout),
		mllp.WithLogger(logger),
		mllp.WithStats(registry),
	)

	listener, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return cli.Exit(fmt.Sprintf("binding %s: %v", cfg.Address, err), 1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(listener) }()

	logger.Info("hl7ingestd: listening on ", cfg.Address)

	select {
	case <-ctx.Done():
		logger.Info("hl7ingestd: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return cli.Exit(fmt.Sprintf("shutdown: %v", err), 1)
		}
		return nil
	case err := <-errCh:
		if err != nil && err != mllp.ErrServerClosed {
			return cli.Exit(fmt.Sprintf("serve: %v", err), 1)
		}
		return nil
	}
}
