package valuerange

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Range
		wantErr bool
	}{
		{"Integer", "1500", Range{1500, 1500}, false},
		{"Float", "3.14", Range{3.14, 3.14}, false},
		{"Negative", "-10.5", Range{-10.5, -10.5}, false},
		{"Range", "[0.7 0.9]", Range{0.7, 0.9}, false},
		{"Range with padding", "  [ 1   3 ]  ", Range{1, 3}, false},
		{"Reversed range", "[5 2]", Range{2, 5}, false},
		{"Leading dot", "[.4 .6]", Range{0.4, 0.6}, false},
		{"Empty", "", Range{}, true},
		{"Garbage", "fast", Range{}, true},
		{"Unterminated", "[1 2", Range{}, true},
		{"Three values", "[1 2 3]", Range{}, true},
		{"Bad max", "[1 x]", Range{}, true},
		{"NaN", "nan", Range{}, true},
		{"Infinity", "+Inf", Range{}, true},
		{"NaN bound", "[0.5 NaN]", Range{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRange_Sample(t *testing.T) {
	r := Range{Min: 2, Max: 6}
	if got := r.Sample(0); got != 2 {
		t.Errorf("Sample(0) = %v, want 2", got)
	}
	if got := r.Sample(0.5); got != 4 {
		t.Errorf("Sample(0.5) = %v, want 4", got)
	}
	if got := Fixed(7).Sample(0.9); got != 7 {
		t.Errorf("fixed Sample = %v, want 7", got)
	}
}

func TestRange_SampleInt(t *testing.T) {
	r := Range{Min: 1, Max: 3}
	seen := map[int]bool{}
	for _, u := range []float64{0, 0.2, 0.4, 0.6, 0.8, 0.999} {
		v := r.SampleInt(u)
		if v < 1 || v > 3 {
			t.Fatalf("SampleInt(%v) = %d, outside [1, 3]", u, v)
		}
		seen[v] = true
	}
	if len(seen) != 3 {
		t.Errorf("SampleInt should reach every value, got %v", seen)
	}
}

func TestRange_String(t *testing.T) {
	if got := MustParse("[0.6 1.8]").String(); got != "[0.6 1.8]" {
		t.Errorf("String() = %q", got)
	}
	if got := Fixed(12).String(); got != "12" {
		t.Errorf("String() = %q", got)
	}
}

func TestRange_YAML(t *testing.T) {
	var doc struct {
		Interval Range `yaml:"interval"`
		Burst    Range `yaml:"burst"`
	}
	src := "interval: \"[0.6 1.8]\"\nburst: 3\n"
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if doc.Interval != (Range{0.6, 1.8}) {
		t.Errorf("interval = %+v", doc.Interval)
	}
	if doc.Burst != Fixed(3) {
		t.Errorf("burst = %+v", doc.Burst)
	}

	if err := yaml.Unmarshal([]byte("interval: [1, 2]\n"), &doc); err == nil {
		t.Error("a YAML sequence should be rejected")
	}
}
