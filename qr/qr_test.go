package qr

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	qrcode "github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const placeID = "ChIJP1UfWFWDGjkRxFYT32EgTVI"

func TestReviewURL(t *testing.T) {
	assert.Equal(t,
		"https://search.google.com/local/writereview?placeid=ChIJP1UfWFWDGjkRxFYT32EgTVI",
		ReviewURL(placeID))

	// Substituted verbatim, no escaping.
	assert.Equal(t,
		"https://search.google.com/local/writereview?placeid=a b&c",
		ReviewURL("a b&c"))
}

func TestEncodeRoundTrip(t *testing.T) {
	payload := ReviewURL(placeID)

	code, err := Encode(payload, DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, code.Verify())

	data, err := code.PNG()
	require.NoError(t, err)
	got, err := DecodePNG(data)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestEncodeGeometry(t *testing.T) {
	opts := DefaultOptions()
	code, err := Encode(ReviewURL(placeID), opts)
	require.NoError(t, err)

	n := code.Size()
	require.Greater(t, n, 0)
	assert.Equal(t, (n-17)%4, 0, "module count must match a QR version")

	want := (n + 2*opts.Border) * opts.BoxSize
	b := code.Image.Bounds()
	assert.Equal(t, want, b.Dx())
	assert.Equal(t, want, b.Dy())

	// Quiet zone stays light.
	r, g, bl, _ := code.Image.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r&g&bl)
	// Top-left finder pattern corner is dark.
	off := opts.Border * opts.BoxSize
	r, _, _, _ = code.Image.At(off, off).RGBA()
	assert.Equal(t, uint32(0), r)
}

func TestDisplayPNG(t *testing.T) {
	code, err := Encode(ReviewURL(placeID), Options{Level: qrcode.Low, BoxSize: 10, Border: 4, DisplaySize: 330})
	require.NoError(t, err)

	data, err := code.DisplayPNG()
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, code.FitSize(330), img.Bounds().Dx())
	assert.Equal(t, code.FitSize(330), img.Bounds().Dy())
}

func TestFitSize(t *testing.T) {
	code, err := Encode(ReviewURL(placeID), DefaultOptions())
	require.NoError(t, err)
	edge := code.Size() + 2*DefaultOptions().Border

	for _, size := range []int{1, 50, 107, 200, 333, 1000} {
		got := code.FitSize(size)
		assert.Zero(t, got%edge, "size %d", size)
		assert.GreaterOrEqual(t, got, edge*MinPixelsPerModule, "size %d", size)
	}
	assert.Equal(t, edge*MinPixelsPerModule, code.FitSize(1))
}

func TestScaledPNGDecodesAtAnySize(t *testing.T) {
	payload := ReviewURL(placeID)
	code, err := Encode(payload, DefaultOptions())
	require.NoError(t, err)

	for size := 10; size <= 400; size += 7 {
		data, err := code.ScaledPNG(size)
		require.NoError(t, err)
		got, err := DecodePNG(data)
		require.NoError(t, err, "size %d", size)
		assert.Equal(t, payload, got, "size %d", size)
	}
}

func TestEncodeErrors(t *testing.T) {
	_, err := Encode("", DefaultOptions())
	assert.ErrorIs(t, err, ErrEmptyPayload)

	_, err = Encode(strings.Repeat("x", 8000), DefaultOptions())
	assert.ErrorIs(t, err, ErrEncode)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    qrcode.RecoveryLevel
		wantErr bool
	}{
		{in: "L", want: qrcode.Low},
		{in: "m", want: qrcode.Medium},
		{in: "Q", want: qrcode.High},
		{in: "highest", want: qrcode.Highest},
		{in: "Z", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseLevel(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTerminal(t *testing.T) {
	code, err := Encode(ReviewURL(placeID), DefaultOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	code.Terminal(&buf)
	assert.NotEmpty(t, buf.String())
	assert.Greater(t, strings.Count(buf.String(), "\n"), 10)
}
