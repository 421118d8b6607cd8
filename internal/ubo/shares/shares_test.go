package shares

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_LiteralVectors(t *testing.T) {
	cases := []struct {
		name string
		text string
		want *float64
	}{
		{"plain percent", "50 %", ptr(0.5)},
		{"generic fraction", "1/3", ptr(1.0 / 3.0)},
		{"obchodni podil with splaceno stripped", "obchodni_podil: 1/2; splaceno:100 PROCENTA", ptr(0.5)},
		{"generic percent with semicolon decimal", "velikost:2;25 PROCENTA", ptr(0.0225)},
		{"empty text", "", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := Parse(tc.text)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tc.want, *got, 1e-9)
		})
	}
}

func TestParse_ObchodniPodilLayerWins(t *testing.T) {
	got, layer := Parse("obchodní podíl: 30 % ; splaceno: 100 procent")
	require.NotNil(t, got)
	assert.InDelta(t, 0.3, *got, 1e-9)
	assert.Equal(t, LayerObchodniPodil, layer)
}

func TestParse_HlasovaciPravaLayer(t *testing.T) {
	got, layer := Parse("hlasovací práva: 40%")
	require.NotNil(t, got)
	assert.InDelta(t, 0.4, *got, 1e-9)
	assert.Equal(t, LayerHlasovaciPrava, layer)
}

func TestParse_DivisionByZeroYieldsNil(t *testing.T) {
	got, layer := Parse("1/0")
	assert.Nil(t, got)
	assert.Equal(t, LayerNone, layer)
}

func TestParse_ClampsAboveOne(t *testing.T) {
	got, _ := Parse("80% 80%")
	require.NotNil(t, got)
	assert.Equal(t, 1.0, *got)
}

func TestParseRequired_ErrorsOnUnparseable(t *testing.T) {
	_, err := ParseRequired("no numbers here")
	assert.ErrorIs(t, err, ErrUnparseable)
}

func TestEffectiveMarker(t *testing.T) {
	v := EffectiveMarker("Novák — 50% (efektivně 45 %)")
	require.NotNil(t, v)
	assert.InDelta(t, 0.45, *v, 1e-9)

	assert.Nil(t, EffectiveMarker("Novák — 50%"))
}

func ptr(v float64) *float64 { return &v }
