package codegen

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/daryltucker/tflite2c/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kwsMeta = model.Metadata{
	ID:                  "0",
	Name:                "kws",
	Architecture:        "ds_cnn",
	InferenceType:       "int8",
	WindowStrideMs:      20,
	WindowSizeMs:        40,
	DCTCoefficientCount: 10,
	ClipDurationMs:      1000,
}

var tflHeader = []byte{0x1c, 0x00, 0x00, 0x00, 0x54, 0x46, 0x4c, 0x33}

func TestRender_Golden(t *testing.T) {
	want, err := os.ReadFile(filepath.Join("testdata", "0_kws_ds_cnn_int8.cc"))
	require.NoError(t, err)

	var buf bytes.Buffer
	stats, err := Render(&buf, kwsMeta, bytes.NewReader(tflHeader), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, string(want), buf.String())
	assert.Equal(t, int64(len(tflHeader)), stats.Bytes)
	assert.Equal(t, 49, stats.RecordingWindow)
	assert.Len(t, stats.SHA256, 64)
}

func TestRender_Deterministic(t *testing.T) {
	var a, b bytes.Buffer
	_, err := Render(&a, kwsMeta, bytes.NewReader(tflHeader), Options{})
	require.NoError(t, err)
	_, err = Render(&b, kwsMeta, bytes.NewReader(tflHeader), Options{})
	require.NoError(t, err)
	assert.Equal(t, a.String(), b.String())
}

func TestRender_EmptyModel(t *testing.T) {
	var buf bytes.Buffer
	stats, err := Render(&buf, kwsMeta, bytes.NewReader(nil), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.Bytes)
	assert.Contains(t, buf.String(), "g_kwsModel[] ALIGNMENT_ATTRIBUTE =  {};\n")
}

func TestRender_BannerOrder(t *testing.T) {
	var buf bytes.Buffer
	_, err := Render(&buf, kwsMeta, bytes.NewReader(nil), DefaultOptions())
	require.NoError(t, err)
	out := buf.String()

	last := -1
	for _, f := range kwsMeta.Fields() {
		idx := strings.Index(out, `{"`+f.Key+`", `)
		require.GreaterOrEqual(t, idx, 0, "field %s missing", f.Key)
		assert.Greater(t, idx, last, "field %s out of order", f.Key)
		last = idx
	}
	assert.Contains(t, out, "int num_params = 8;")
}

func TestRender_Options(t *testing.T) {
	var buf bytes.Buffer
	_, err := Render(&buf, kwsMeta, bytes.NewReader(tflHeader), Options{ArrayName: "g_wakeWord"})
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "static const uint8_t g_wakeWord[] ALIGNMENT_ATTRIBUTE =")
	assert.Contains(t, out, "return sizeof(g_wakeWord);")
	assert.NotContains(t, out, "g_kwsModel")
}

func TestRender_Accessors(t *testing.T) {
	meta := kwsMeta
	meta.WindowStrideMs = 30
	meta.WindowSizeMs = 60
	meta.DCTCoefficientCount = 13

	var buf bytes.Buffer
	_, err := Render(&buf, meta, bytes.NewReader(nil), DefaultOptions())
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "GetFrameShiftMs()\n{\n    return 30;")
	assert.Contains(t, out, "GetFrameLenMs()\n{\n    return 60;")
	assert.Contains(t, out, "GetNumMfccCoeffs()\n{\n    return 13;")
	assert.Contains(t, out, "GetRecordingWin()\n{\n    return 32;")
}

func TestCString(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"kws", `"kws"`},
		{"", `""`},
		{`say "hi"`, `"say \"hi\""`},
		{`C:\models`, `"C:\\models"`},
		{"a\nb", `"a\nb"`},
		{"\x01", `"\001"`},
		{"é", `"\303\251"`},
		{"a?b", `"a?b"`},
		{"a??=b", `"a?\?=b"`},
		{"???", `"?\?\?"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cString(tt.in), "cString(%q)", tt.in)
	}
}

func TestCenter(t *testing.T) {
	assert.Equal(t, "                          Model Configuration                          ", center(bannerTitle, bannerWidth))
	assert.Equal(t, "toolong", center("toolong", 3))
}
