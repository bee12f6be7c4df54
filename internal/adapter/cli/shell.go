// Package cli is the command-line front end to the BMI services.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"bmitracker/internal/app"
	"bmitracker/internal/logger"
)

// ErrUsage is returned for unknown commands or bad flags.
var ErrUsage = errors.New("usage error")

// ChartRenderer draws a trend as an image. *chart.Renderer implements it.
type ChartRenderer interface {
	Render(w io.Writer, t *app.Trend) error
}

// Shell routes command-line invocations to the application services.
type Shell struct {
	bmi    *app.BMIService
	trend  *app.TrendService
	charts ChartRenderer
	in     *bufio.Reader
	out    io.Writer
	log    *logger.Logger
}

// New creates a Shell wired to the given services. charts may be nil, in
// which case trend -png is rejected.
func New(bs *app.BMIService, ts *app.TrendService, cr ChartRenderer, in io.Reader, out io.Writer, log *logger.Logger) *Shell {
	return &Shell{bmi: bs, trend: ts, charts: cr, in: bufio.NewReader(in), out: out, log: log.With("component", "cli")}
}

// Run executes one command. User-facing messages, including validation
// failures, are written to the shell's output; the returned error is for
// the exit status.
func (s *Shell) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		s.usage()
		return ErrUsage
	}

	var err error
	switch args[0] {
	case "calc":
		err = s.cmdCalc(args[1:])
	case "save":
		err = s.cmdSave(ctx, args[1:])
	case "history":
		err = s.cmdHistory(ctx, args[1:])
	case "trend":
		err = s.cmdTrend(ctx, args[1:])
	case "delete":
		err = s.cmdDelete(ctx, args[1:])
	case "help", "-h", "-help", "--help":
		s.usage()
		return nil
	default:
		fmt.Fprintf(s.out, "unknown command %q\n", args[0])
		s.usage()
		return ErrUsage
	}
	return s.report(err)
}

func (s *Shell) usage() {
	fmt.Fprint(s.out, `usage: bmi [global flags] <command> [flags]

commands:
  calc    -weight KG -height CM              compute and classify a BMI
  save    -user NAME -weight KG -height CM   compute and store a BMI
  history [-user NAME]                       list stored records, newest first
  trend   -user NAME [-png FILE]             BMI trend with min/max/avg
  delete  -user NAME [-yes]                  delete all records for a user
`)
}

func (s *Shell) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(s.out)
	return fs
}

func (s *Shell) parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(s.out, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		return ErrUsage
	}
	return nil
}
