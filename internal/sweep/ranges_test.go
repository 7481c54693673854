package sweep

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseValueList(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		in      string
		want    []any
		wantErr bool
	}{
		{"int range", "1:10:3", []any{1, 4, 7, 10}, false},
		{"float range", "0:1:0.25", []any{0.0, 0.25, 0.5, 0.75, 1.0}, false},
		{"float range with drift", "0:0.3:0.1", []any{0.0, 0.1, 0.2, 0.3}, false},
		{"mixed list", "1, 2.5, red, true", []any{1, 2.5, "red", true}, false},
		{"single item", "42", []any{42}, false},
		{"empty", "  ", nil, true},
		{"zero step", "1:5:0", nil, true},
		{"inverted range", "5:1:1", nil, true},
		{"bad bound", "a:5:1", nil, true},
		{"too many values", "0:100000:1", nil, true},
		{"step below resolution", "0:0.001:0.0001", nil, true},
		{"step at resolution", "0:0.003:0.001", []any{0.0, 0.001, 0.002, 0.003}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseValueList(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseValueList(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseValueList(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestRangeSpec_ValuesAreDistinct(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"0:1:0.0015", "0:0.5:0.001", "-1:1:0.0033", "0.0005:0.01:0.0011"} {
		spec, err := ParseRangeSpec(s)
		if err != nil {
			t.Fatalf("ParseRangeSpec(%q): %v", s, err)
		}
		values, err := spec.Values()
		if err != nil {
			t.Fatalf("Values(%q): %v", s, err)
		}
		seen := make(map[any]bool, len(values))
		for _, v := range values {
			if seen[v] {
				t.Errorf("range %q repeats %v", s, v)
			}
			seen[v] = true
		}
	}
}

func TestParseRangeSpec_Integral(t *testing.T) {
	t.Parallel()
	spec, err := ParseRangeSpec("1:5:2")
	if err != nil {
		t.Fatal(err)
	}
	if !spec.Integral {
		t.Error("1:5:2 should be integral")
	}
	spec, err = ParseRangeSpec("1:5:0.5")
	if err != nil {
		t.Fatal(err)
	}
	if spec.Integral {
		t.Error("1:5:0.5 should not be integral")
	}
}
