package args_test

import (
	"testing"

	"github.com/mwantia/commands/args"
)

func TestArgs_Size(t *testing.T) {
	a := args.Of(args.StringValue("Arg1"), args.StringValue("Arg2"))

	if a.Len() != 2 {
		t.Fatalf("Expected 2 values, got %d", a.Len())
	}
	if args.Empty().Len() != 0 {
		t.Fatalf("Expected empty container to have no values")
	}
}

func TestArgs_All(t *testing.T) {
	a := args.Of(args.StringValue("a"), args.Int32Value(2), args.BoolValue(true))

	// Each call to All starts a fresh iteration.
	for round := range 2 {
		count := 0
		for v := range a.All() {
			if !v.Equal(a.At(count)) {
				t.Fatalf("Round %d: value %d mismatch", round, count)
			}
			count++
		}
		if count != 3 {
			t.Fatalf("Round %d: expected 3 values, got %d", round, count)
		}
	}

	values := a.Values()
	values[0] = args.StringValue("changed")
	if args.Get[string](a, 0) != "a" {
		t.Fatalf("Values must return a copy")
	}
}

func TestArgs_Equal(t *testing.T) {
	a := args.Of(args.StringValue("Arg1"), args.Float64Value(3.141592653589793))
	b := args.Of(args.StringValue("Arg1"), args.Float64Value(3.141592653589793))
	c := args.Of(args.StringValue("Arg1"), args.Float64Value(2.718281828459045))

	tests := map[string]struct {
		other any
		want  bool
	}{
		"self":       {a, true},
		"same":       {b, true},
		"same value": {*b, true},
		"different":  {c, false},
		"string":     {"Arg1 3.141592653589793", false},
		"integer":    {42, false},
		"nil":        {nil, false},
		"nil args":   {(*args.Args)(nil), false},
	}

	for name, test := range tests {
		t.Run(name, func(tst *testing.T) {
			if got := a.Equal(test.other); got != test.want {
				tst.Fatalf("Expected Equal to be %v, got %v", test.want, got)
			}
		})
	}
}

func TestArgs_EqualTypeTag(t *testing.T) {
	a := args.Of(args.Int32Value(1))
	b := args.Of(args.Int64Value(1))

	if a.Equal(b) {
		t.Fatalf("Values of different types must not be equal")
	}
}

func TestArgs_Hash(t *testing.T) {
	long := map[string]args.Value{"color": args.StringValue("red")}
	short := map[rune]args.Value{'c': args.StringValue("red")}

	a := args.New([]args.Value{args.StringValue("hello")}, long, short)
	b := args.New([]args.Value{args.StringValue("hello")}, long, short)

	if !a.Equal(b) {
		t.Fatalf("Expected containers to be equal")
	}
	if a.Hash() != b.Hash() {
		t.Fatalf("Equal containers must hash equal: %d != %d", a.Hash(), b.Hash())
	}

	c := args.New([]args.Value{args.StringValue("hello")}, nil, short)
	if a.Equal(c) {
		t.Fatalf("Containers with different options must not be equal")
	}
}

func TestArgs_HashAcrossParsers(t *testing.T) {
	tokens := []string{"Steve", "--count=3", "-l"}
	spec := args.Spec{
		Required: []args.Type{args.String},
		Optional: []args.Option{
			{Type: args.Int32, Short: 'n', Long: "count"},
			{Short: 'l', Long: "loud"},
		},
	}

	first, err := args.Parse(tokens, spec)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	second, err := args.Parse(tokens, spec)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if first == second {
		t.Fatalf("Expected independent parsers to produce distinct containers")
	}
	if !first.Equal(second) || first.Hash() != second.Hash() {
		t.Fatalf("Expected equal containers with equal hashes")
	}
}

func TestArgs_String(t *testing.T) {
	tests := map[string]struct {
		args *args.Args
		want string
	}{
		"empty": {
			args: args.Empty(),
			want: "",
		},
		"single": {
			args: args.Of(args.StringValue("Arg1")),
			want: "Arg1",
		},
		"two": {
			args: args.Of(args.StringValue("Arg1"), args.StringValue("Arg2")),
			want: "Arg1 Arg2",
		},
		"float": {
			args: args.Of(args.StringValue("Arg1"), args.StringValue("Arg2"), args.Float64Value(3.141592653589793)),
			want: "Arg1 Arg2 3.141592653589793",
		},
		"long and short": {
			args: args.New(
				[]args.Value{args.StringValue("hi")},
				map[string]args.Value{"color": args.StringValue("red")},
				map[rune]args.Value{'c': args.StringValue("red"), 'n': args.Int32Value(3)},
			),
			want: "hi --color=red -n 3",
		},
	}

	for name, test := range tests {
		t.Run(name, func(tst *testing.T) {
			if got := test.args.String(); got != test.want {
				tst.Fatalf("Expected %q, got %q", test.want, got)
			}
		})
	}
}

func TestArgs_Has(t *testing.T) {
	a := args.New(nil,
		map[string]args.Value{"loud": args.BoolValue(true)},
		map[rune]args.Value{'l': args.BoolValue(true)},
	)

	if !a.Has('l', "") || !a.Has(0, "loud") || !a.Has('L', "LOUD") {
		t.Fatalf("Expected option to be found by either name")
	}
	if a.Has('x', "quiet") || a.Has(0, "") {
		t.Fatalf("Expected unknown option to be absent")
	}
}

func TestArgs_GetMismatch(t *testing.T) {
	a := args.Of(args.StringValue("text"))

	defer func() {
		if recover() == nil {
			t.Fatalf("Expected Get with the wrong type to panic")
		}
	}()

	args.Get[int32](a, 0)
}

func TestArgs_Lookup(t *testing.T) {
	a := args.New(nil, map[string]args.Value{"times": args.Int32Value(4)}, nil)

	if v, ok := args.Lookup[int32](a, "times"); !ok || v != 4 {
		t.Fatalf("Expected times=4, got %d (%v)", v, ok)
	}
	if _, ok := args.Lookup[string](a, "times"); ok {
		t.Fatalf("Expected lookup with the wrong type to fail")
	}
	if _, ok := args.Lookup[int32](a, "missing"); ok {
		t.Fatalf("Expected missing option to be absent")
	}
}
