package commands

import (
	"errors"
	"flag"
	"io"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		args []string
		ok   bool
	}{
		{"cmd reseed -seed 4", []string{"reseed", "-seed", "4"}, true},
		{"cmd   ", nil, true},
		{"hello", nil, false},
		{"CMD reset", nil, false},
	}
	for _, tt := range tests {
		args, ok := Parse(tt.line)
		if ok != tt.ok || !reflect.DeepEqual(args, tt.args) {
			t.Fatalf("Parse(%q) = %v, %v; want %v, %v", tt.line, args, ok, tt.args, tt.ok)
		}
	}
}

func TestExecute(t *testing.T) {
	r := NewRegistry()
	fs := flag.NewFlagSet("speed", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	value := fs.Float64("value", 0, "")
	var gotArgs []string
	r.Register("speed", "set speed", fs, func(args []string) error {
		gotArgs = args
		return nil
	})

	if err := r.Execute([]string{"speed", "-value", "2.5", "extra"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if *value != 2.5 {
		t.Fatalf("value = %v, want 2.5", *value)
	}
	if !reflect.DeepEqual(gotArgs, []string{"extra"}) {
		t.Fatalf("args = %v", gotArgs)
	}
}

func TestExecuteErrors(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	r.Register("fail", "always fails", nil, func([]string) error { return boom })
	fs := flag.NewFlagSet("strict", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	r.Register("strict", "no flags", fs, func([]string) error { return nil })

	if err := r.Execute(nil); !errors.Is(err, ErrMissingSubcommand) {
		t.Fatalf("empty: %v", err)
	}
	if err := r.Execute([]string{"nope"}); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("unknown: %v", err)
	}
	if err := r.Execute([]string{"fail"}); !errors.Is(err, boom) {
		t.Fatalf("run error: %v", err)
	}
	if err := r.Execute([]string{"strict", "-x"}); err == nil {
		t.Fatalf("expected flag error")
	}
}

func TestNamesAndUsage(t *testing.T) {
	r := NewRegistry()
	r.Register("reset", "reset camera", nil, func([]string) error { return nil })
	r.Register("reseed", "new bodies", nil, func([]string) error { return nil })

	if got := r.Names(); !reflect.DeepEqual(got, []string{"reseed", "reset"}) {
		t.Fatalf("Names = %v", got)
	}
	usage := r.Usage()
	if len(usage) != 2 || usage[1] != "reset    reset camera" {
		t.Fatalf("Usage = %q", usage)
	}
}
