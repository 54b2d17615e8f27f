package fireworks

import (
	"image/color"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    ParticleColor
		wantErr bool
	}{
		{"#ff6432", ParticleColor{R: 255, G: 100, B: 50}, false},
		{"#fff", ParticleColor{R: 255, G: 255, B: 255}, false},
		{"orange", ParticleColor{}, true},
		{"", ParticleColor{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHexColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if !approxEqual(got.R, tt.want.R, 1e-6) || !approxEqual(got.G, tt.want.G, 1e-6) || !approxEqual(got.B, tt.want.B, 1e-6) {
				t.Errorf("ParseHexColor(%q): got %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

// TestParticleColor_JitterClamped 抖动后的通道不会超出 [0, 255]
func TestParticleColor_JitterClamped(t *testing.T) {
	c := ParticleColor{R: 255, G: 0, B: 250}

	hi := c.Jitter(constRand(1), 0.2)
	if hi.R != 255 || hi.G != 0 || hi.B != 255 {
		t.Errorf("Jitter(max): got %+v", hi)
	}

	lo := c.Jitter(constRand(0), 0.2)
	if !approxEqual(lo.R, 229.5, 1e-9) || !approxEqual(lo.B, 225, 1e-9) {
		t.Errorf("Jitter(min): got %+v, want R=229.5 B=225", lo)
	}
}

func TestParticleColor_NRGBA(t *testing.T) {
	c := ParticleColor{R: 300, G: 12.9, B: -4}
	want := color.NRGBA{R: 255, G: 12, B: 0, A: 127}
	if got := c.NRGBA(0.5); got != want {
		t.Errorf("NRGBA: got %+v, want %+v", got, want)
	}
}
