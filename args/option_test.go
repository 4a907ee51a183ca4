package args

import "testing"

func TestKebab(t *testing.T) {
	tests := map[string]string{
		"color":     "color",
		"fooBar":    "foo-bar",
		"foo_bar":   "foo-bar",
		"FOO-BAR":   "foo-bar",
		"HTTPPort":  "http-port",
		"maxCount2": "max-count2",
		"  spaced ": "spaced",
		"trailing-": "trailing",
		"":          "",
	}

	for input, want := range tests {
		if got := kebab(input); got != want {
			t.Errorf("kebab(%q): expected %q, got %q", input, want, got)
		}
	}
}

func TestFoldName(t *testing.T) {
	for _, input := range []string{"loud", "LoUd", "LOUD", " loud "} {
		if got := foldName(input); got != "loud" {
			t.Errorf("foldName(%q): expected loud, got %q", input, got)
		}
	}
	for _, input := range []string{"max-count", "MaxCount", "MAX_COUNT", "maxcount", "mAx-CoUnT"} {
		if got := foldName(input); got != foldName(kebab("maxCount")) {
			t.Errorf("foldName(%q): expected maxcount, got %q", input, got)
		}
	}
	if got := foldName("-_ "); got != "" {
		t.Errorf("Expected separators to fold to empty, got %q", got)
	}
}

func TestOption_String(t *testing.T) {
	tests := map[string]struct {
		option Option
		want   string
	}{
		"flag":       {Option{Short: 'l', Long: "loud"}, "[-l|--loud]"},
		"short only": {Option{Type: Int32, Short: 'n'}, "[-n <int32>]"},
		"long only":  {Option{Type: String, Long: "color"}, "[--color <string>]"},
	}

	for name, test := range tests {
		t.Run(name, func(tst *testing.T) {
			if got := test.option.String(); got != test.want {
				tst.Fatalf("Expected %q, got %q", test.want, got)
			}
		})
	}
}

func TestOption_Normalize(t *testing.T) {
	opt, err := Option{Type: String, Short: 'C', Long: "TextColor"}.normalize()
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if opt.Short != 'c' || opt.Long != "text-color" {
		t.Fatalf("Unexpected normalized option %+v", opt)
	}

	if _, err := (Option{Short: '-'}).normalize(); err == nil {
		t.Fatalf("Expected '-' to be rejected as short name")
	}
}
