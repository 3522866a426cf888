package main

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/mewa-lang/mewa"
)

func testCalc(cfg config) (*calc, *bytes.Buffer, *bytes.Buffer) {
	var out, lg bytes.Buffer
	return newCalc(cfg, &out, log.New(&lg, "", 0)), &out, &lg
}

func TestStream(t *testing.T) {
	cases := []struct {
		name string
		cfg  func(*config)
		src  string
		want string
		err  error
	}{
		{"results", nil, "2 + 3 * 4; 7 / 2;\n3i * 3i", "14\n3.500000\n-9.000000\n", nil},
		{"echo", func(c *config) { c.Echo = true }, "1+2", "([1] + [2]) : 3\n", nil},
		{"group", func(c *config) { c.GroupDigits = true }, "1000 * 1000", "1,000,000\n", nil},
		{"lines", func(c *config) { c.StopOnNewline = true }, "1\n2", "1\n2\n", nil},
		{"eval-error", nil, "1; 1/0; 2", "1\n", mewa.ErrDivByZero},
		{"parse-error", nil, "1; (2", "1\n", mewa.ErrParenNotClosed},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			cfg := defaultConfig()
			if c.cfg != nil {
				c.cfg(&cfg)
			}
			calc, out, _ := testCalc(cfg)
			p := mewa.NewParser(strings.NewReader(c.src), calc.arena, cfg.parseOptions()...)
			err := calc.stream(p)
			if !errors.Is(err, c.err) {
				t.Errorf("want error %v, got %v", c.err, err)
			}
			if out.String() != c.want {
				t.Errorf("want output %q, got %q", c.want, out.String())
			}
		})
	}
}

func TestStreamFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "in.mw")
	if err := os.WriteFile(name, []byte("1 + 2; 1/0; 3"), 0o644); err != nil {
		t.Fatal(err)
	}
	calc, out, _ := testCalc(defaultConfig())
	if err := calc.streamFile(name); !errors.Is(err, mewa.ErrDivByZero) {
		t.Errorf("want division by zero, got %v", err)
	}
	if want := "3\n"; out.String() != want {
		t.Errorf("want output %q, got %q", want, out.String())
	}
	if err := calc.streamFile(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("want not exist, got %v", err)
	}
}

func TestREPL(t *testing.T) {
	calc, out, lg := testCalc(defaultConfig())
	err := calc.repl(strings.NewReader("1 + 1\n\n1 $\n2 * 3; 1/0; 4\n"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "> 2\n> > > 6\n4\n> \n"; out.String() != want {
		t.Errorf("want output %q, got %q", want, out.String())
	}
	if n := strings.Count(lg.String(), "\n"); n != 2 {
		t.Errorf("want 2 logged errors, got %q", lg.String())
	}
	if calc.arena.Len() != 0 {
		t.Errorf("arena holds %d nodes after loop", calc.arena.Len())
	}
}

func TestREPLLastLine(t *testing.T) {
	cfg := defaultConfig()
	cfg.Prompt = ""
	calc, out, _ := testCalc(cfg)
	if err := calc.repl(strings.NewReader("5")); err != nil {
		t.Fatal(err)
	}
	if want := "5\n\n"; out.String() != want {
		t.Errorf("want output %q, got %q", want, out.String())
	}
}

func TestREPLReadError(t *testing.T) {
	boom := errors.New("boom")
	calc, _, _ := testCalc(defaultConfig())
	err := calc.repl(iotest.ErrReader(boom))
	if !errors.Is(err, boom) {
		t.Errorf("want boom, got %v", err)
	}
}
