// Command gnt punches and reads paper tapes on a GNT4604.
//
//	gnt [-config FILE] [-v] punch [-format telecode|bin|raw] [-dry-run OUT] FILE [PORT]
//	gnt [-config FILE] [-v] read [-dry-run IN] OUTFILE [PORT]
//	gnt ports
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ezrec/gnt4604/channel"
	"github.com/ezrec/gnt4604/config"
	"github.com/ezrec/gnt4604/console"
	"github.com/ezrec/gnt4604/encode"
	"github.com/ezrec/gnt4604/logging"
	"github.com/ezrec/gnt4604/session"
	"github.com/ezrec/gnt4604/translate"
)

var f = translate.From

var errUsage = errors.New(f("usage"))

// station is everything a command needs.
type station struct {
	cfg    config.Config
	log    zerolog.Logger
	stdout io.Writer
	op     session.Operator
}

func (st *station) open(port string, dryRun *channel.Tape) (ch channel.Channel, err error) {
	if dryRun != nil {
		st.log.Info().Msg("dry run, no hardware")
		ch = dryRun
		return
	}

	if port == "" {
		port = st.cfg.Device
	}
	st.log.Info().Str("device", port).Int("baud", st.cfg.Baud).Msg("opening punch")
	ch, err = channel.Open(port, channel.Mode{BaudRate: st.cfg.Baud})
	return
}

func portArg(fs *flag.FlagSet, n int) (port string, err error) {
	switch fs.NArg() {
	case n:
	case n + 1:
		port = fs.Arg(n)
	default:
		err = errUsage
	}
	return
}

func (st *station) punch(ctx context.Context, args []string) (err error) {
	fs := flag.NewFlagSet("punch", flag.ContinueOnError)
	var format string
	var dryRun string
	fs.StringVar(&format, "format", string(encode.FormatTelecode),
		f("Tape format: %v", strings.Join(encode.Formats(), ", ")))
	fs.StringVar(&dryRun, "dry-run", "", "Punch into this file instead of the GNT4604")
	err = fs.Parse(args)
	if err != nil {
		return
	}
	if fs.NArg() < 1 {
		err = errUsage
		return
	}
	port, err := portArg(fs, 1)
	if err != nil {
		return
	}

	enc, err := encode.New(format)
	if err != nil {
		return
	}

	source, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return
	}

	var tape *channel.Tape
	if len(dryRun) != 0 {
		ouf, err := os.Create(dryRun)
		if err != nil {
			return err
		}
		defer ouf.Close()
		tape = &channel.Tape{Output: ouf}
	}

	ch, err := st.open(port, tape)
	if err != nil {
		return
	}
	defer ch.Close()

	s := session.New(ch, enc, st.op, source)
	s.Runout = st.cfg.Runout
	s.Log = st.log
	s.Punch.Settle = st.cfg.Settle
	s.Punch.XonTimeout = st.cfg.XonTimeout
	s.Punch.Log = st.log
	s.Reader.Timeout = st.cfg.ReadTimeout
	s.Reader.IdlePoll = st.cfg.IdlePoll
	s.Reader.Reel = st.cfg.Reel
	s.Reader.Log = st.log

	st.log.Info().Str("file", fs.Arg(0)).Str("format", format).Msg("punching")
	err = s.Run(ctx)
	if err != nil {
		return
	}

	fmt.Fprintln(st.stdout, f("Tape verified ok"))
	return
}

func (st *station) read(ctx context.Context, args []string) (err error) {
	fs := flag.NewFlagSet("read", flag.ContinueOnError)
	var dryRun string
	fs.StringVar(&dryRun, "dry-run", "", "Read this tape image instead of the GNT4604")
	err = fs.Parse(args)
	if err != nil {
		return
	}
	if fs.NArg() < 1 {
		err = errUsage
		return
	}
	port, err := portArg(fs, 1)
	if err != nil {
		return
	}

	var tape *channel.Tape
	if len(dryRun) != 0 {
		inf, err := os.Open(dryRun)
		if err != nil {
			return err
		}
		defer inf.Close()
		tape = &channel.Tape{Input: inf}
	}

	ch, err := st.open(port, tape)
	if err != nil {
		return
	}
	defer ch.Close()

	c := session.NewCapture(ch, st.op)
	c.Runout = st.cfg.FileRunout
	c.Log = st.log
	c.Reader.Timeout = st.cfg.ReadTimeout
	c.Reader.IdlePoll = st.cfg.IdlePoll
	c.Reader.Reel = st.cfg.Reel
	c.Reader.Log = st.log

	buf, err := c.Read(ctx)
	if err != nil {
		return
	}

	ouf, err := os.Create(fs.Arg(0))
	if err != nil {
		return
	}
	defer ouf.Close()

	err = c.Write(ouf, buf)
	if err != nil {
		return
	}

	err = ouf.Close()
	if err != nil {
		return
	}

	fmt.Fprintln(st.stdout, f("Tapes match ok, %d characters written to %v", len(buf), fs.Arg(0)))
	return
}

func (st *station) ports(args []string) (err error) {
	if len(args) != 0 {
		err = errUsage
		return
	}

	ports, err := channel.Ports()
	if err != nil {
		return
	}
	for _, port := range ports {
		fmt.Fprintln(st.stdout, port)
	}
	return
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, op session.Operator) (err error) {
	fs := flag.NewFlagSet("gnt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var configPath string
	var verbose bool
	fs.StringVar(&configPath, "config", "", "Configuration file")
	fs.BoolVar(&verbose, "v", false, "Verbose mode")
	err = fs.Parse(args)
	if err != nil {
		return
	}

	cfg := config.Default()
	if len(configPath) != 0 {
		cfg, err = config.Load(configPath)
		if err != nil {
			return
		}
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if len(cfg.Locale) != 0 {
		translate.Use(cfg.Locale)
	}

	st := &station{
		cfg:    cfg,
		log:    logging.New(stderr, cfg.Log),
		stdout: stdout,
		op:     op,
	}

	if fs.NArg() == 0 {
		err = errUsage
		return
	}

	command, rest := fs.Arg(0), fs.Args()[1:]
	switch command {
	case "punch":
		err = st.punch(ctx, rest)
	case "read":
		err = st.read(ctx, rest)
	case "ports":
		err = st.ports(rest)
	default:
		err = errUsage
	}

	return
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, console.NewOperator())
	if errors.Is(err, errUsage) {
		fmt.Fprintln(os.Stderr, f("usage: %v [-config FILE] [-v] punch [-format telecode|bin|raw] [-dry-run OUT] FILE [PORT]", os.Args[0]))
		fmt.Fprintln(os.Stderr, f("       %v [-config FILE] [-v] read [-dry-run IN] OUTFILE [PORT]", os.Args[0]))
		fmt.Fprintln(os.Stderr, f("       %v ports", os.Args[0]))
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, f("%v: %v", os.Args[0], err))
		os.Exit(1)
	}
}
