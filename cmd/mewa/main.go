package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"

	"github.com/mewa-lang/mewa"
)

func main() {
	log.SetFlags(0)
	var (
		inname, cfgname string
		fl              config
	)
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&cfgname, "config", "", "config file (default "+configPath()+")")
	flag.StringVar(&fl.Prompt, "prompt", "> ", "interactive prompt")
	flag.IntVar(&fl.PageSize, "page", mewa.DefaultPageSize, "page size in bytes for streamed input")
	flag.Float64Var(&fl.Epsilon, "eps", mewa.DefaultEpsilon, "relative tolerance of float equality")
	flag.BoolVar(&fl.Echo, "echo", false, "print parse trees")
	flag.BoolVar(&fl.GroupDigits, "group", false, "separate thousands in results")
	flag.BoolVar(&fl.StopOnNewline, "n", false, "parse separate input lines as separate expressions")
	flag.Parse()

	cfg := defaultConfig()
	path := cfgname
	if path == "" {
		path = configPath()
	}
	if path != "" {
		if err := loadConfig(&cfg, path, cfgname != ""); err != nil {
			log.Fatal(err)
		}
	}
	flag.Visit(func(f *flag.Flag) { cfg.override(f.Name, &fl) })
	if err := cfg.validate(); err != nil {
		log.Fatal(err)
	}
	if flag.NArg() > 1 {
		log.Fatalf("too many arguments (%d); quote the expression as one argument", flag.NArg())
	}

	c := newCalc(cfg, os.Stdout, log.Default())
	var err error
	switch {
	case flag.NArg() == 1:
		err = c.stream(mewa.NewStringParser(flag.Arg(0), c.arena, cfg.parseOptions()...))
	case inname != "" && inname != "-":
		err = c.streamFile(inname)
	case inname == "" && (isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())):
		err = c.repl(os.Stdin)
	default:
		err = c.stream(mewa.NewParser(os.Stdin, c.arena, cfg.parseOptions()...))
	}
	if err != nil {
		log.Fatal(err)
	}
}

// streamFile evaluates the file with the given name as a stream. The file is
// closed before streamFile returns.
func (c *calc) streamFile(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return errors.Wrap(err, "opening input")
	}
	defer f.Close()
	return c.stream(mewa.NewParser(f, c.arena, c.cfg.parseOptions()...))
}

// calc evaluates expressions and prints their results.
type calc struct {
	cfg   config
	ctx   *mewa.Context
	arena *mewa.Arena
	out   io.Writer
	log   *log.Logger
}

func newCalc(cfg config, out io.Writer, lg *log.Logger) *calc {
	return &calc{
		cfg:   cfg,
		ctx:   mewa.NewContext(mewa.Epsilon(cfg.Epsilon)),
		arena: mewa.NewArena(0),
		out:   out,
		log:   lg,
	}
}

// eval evaluates and prints one expression, then recycles the arena.
func (c *calc) eval(e *mewa.Expr) error {
	defer c.arena.Reset()
	if c.cfg.Echo {
		fmt.Fprintf(c.out, "%v : ", e)
	}
	r, err := c.ctx.Eval(e)
	if err != nil {
		if c.cfg.Echo {
			fmt.Fprintln(c.out)
		}
		return err
	}
	if c.cfg.GroupDigits {
		fmt.Fprintln(c.out, mewa.FormatGrouped(r))
	} else {
		fmt.Fprintln(c.out, r)
	}
	return nil
}

// stream evaluates every expression from p. The first error stops it.
func (c *calc) stream(p *mewa.Parser) error {
	for {
		e, err := p.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := c.eval(e); err != nil {
			return err
		}
	}
}

// repl reads lines from in and evaluates each, reporting errors without
// stopping. It returns nil at the end of the input.
func (c *calc) repl(in io.Reader) error {
	rd := bufio.NewReader(in)
	p := mewa.NewStringParser("", c.arena, c.cfg.parseOptions()...)
	for {
		fmt.Fprint(c.out, c.cfg.Prompt)
		line, err := rd.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) != 0 {
			c.arena.Reset()
			p.Reset(line)
			c.line(p)
		}
		switch {
		case err == io.EOF:
			fmt.Fprintln(c.out)
			return nil
		case err != nil:
			return errors.Wrap(err, "reading input")
		}
	}
}

// line evaluates the expressions on one line.
func (c *calc) line(p *mewa.Parser) {
	for {
		e, err := p.Next()
		if err == io.EOF {
			return
		}
		if err != nil {
			c.log.Print(err)
			continue
		}
		if err := c.eval(e); err != nil {
			c.log.Print(err)
		}
	}
}
