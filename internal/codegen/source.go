/*
PURPOSE:
  Renders the C++ source file that carries a TFLite model as a static
  byte array plus the accessors the keyword-spotting runtime calls.

REQUIREMENTS:
  User-specified:
  - Fixed includes, PrintModelConfig() banner, aligned byte array,
    six accessors (pointer, length, frame shift, frame length,
    MFCC coefficient count, recording window).

  Implementation-discovered:
  - Metadata strings are user input; escape them for C literals.
  - The array body is streamed between the two template halves so the
    model is never held in memory.

ARCHITECTURE INTEGRATION:
  - Called by: Generate (generate.go)
  - Uses: internal/model

ERROR HANDLING:
  - Returns the first write/read error; output is then incomplete and the
    caller must discard it.

IMPLEMENTATION RULES:
  - Output must be byte-for-byte deterministic for identical inputs.

USAGE:
  stats, err := codegen.Render(w, meta, modelFile, codegen.DefaultOptions())

SELF-HEALING INSTRUCTIONS:
  - If the runtime renames an accessor, update footerTmpl only.

RELATED FILES:
  - internal/codegen/array.go
  - internal/assets/BufAttributes.h

MAINTENANCE:
  - Keep the banner width in sync with bannerWidth.
*/

package codegen

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/daryltucker/tflite2c/internal/model"
)

const (
	// DefaultArrayName is the symbol the runtime links against.
	DefaultArrayName = "g_kwsModel"
	// DefaultExtension is the generated file extension, without the dot.
	DefaultExtension = "cc"

	bannerWidth = 71
	bannerTitle = "Model Configuration"
)

// Options controls naming in the generated source.
type Options struct {
	ArrayName string
	Extension string
}

// DefaultOptions returns the options the embedded runtime expects.
func DefaultOptions() Options {
	return Options{ArrayName: DefaultArrayName, Extension: DefaultExtension}
}

func (o Options) withDefaults() Options {
	if o.ArrayName == "" {
		o.ArrayName = DefaultArrayName
	}
	if o.Extension == "" {
		o.Extension = DefaultExtension
	}
	return o
}

// Stats describes a rendered model.
type Stats struct {
	Bytes           int64
	SHA256          string
	RecordingWindow int
}

type templateData struct {
	Fields          []model.Field
	ArrayName       string
	Border          string
	Title           string
	Meta            model.Metadata
	RecordingWindow int
}

var funcs = template.FuncMap{"cstr": cString}

var headerTmpl = template.Must(template.New("header").Funcs(funcs).Parse(`#include <cstdint>
#include <cstddef>
#include <stdio.h>
#include "BufAttributes.h"


void PrintModelConfig()
{
    struct ConfigParam {
        const char* key;
        const char* value;
    };

    ConfigParam config_params[] = {
{{- range .Fields}}
        {{"{"}}{{cstr .Key}}, {{cstr .Value}}{{"}"}},
{{- end}}

    };

    int num_params = {{len .Fields}};
    printf("{{.Border}}\n");
    printf("{{.Title}}\n");
    printf("{{.Border}}\n");
    for (int i = 0; i < num_params; ++i)
    {
        printf("%s: %s\n", config_params[i].key, config_params[i].value);
    }
    printf("{{.Border}}\n\n");
}
static const uint8_t {{.ArrayName}}[] ALIGNMENT_ATTRIBUTE = `))

var footerTmpl = template.Must(template.New("footer").Parse(`
const uint8_t * GetModelPointer()
{
    return {{.ArrayName}};
}

size_t GetModelLen()
{
    return sizeof({{.ArrayName}});
}

const uint8_t GetFrameShiftMs()
{
    return {{.Meta.WindowStrideMs}};
}

const uint8_t GetFrameLenMs()
{
    return {{.Meta.WindowSizeMs}};
}

const uint8_t GetNumMfccCoeffs()
{
    return {{.Meta.DCTCoefficientCount}};
}

const uint8_t GetRecordingWin()
{
    return {{.RecordingWindow}};
}
`))

// Render writes the complete source file for meta to w, streaming the model
// bytes from r. The caller validates meta (non-zero stride) beforehand.
func Render(w io.Writer, meta model.Metadata, r io.Reader, opts Options) (Stats, error) {
	opts = opts.withDefaults()

	data := templateData{
		Fields:          meta.Fields(),
		ArrayName:       opts.ArrayName,
		Border:          "+" + strings.Repeat("-", bannerWidth) + "+",
		Title:           "|" + center(bannerTitle, bannerWidth) + "|",
		Meta:            meta,
		RecordingWindow: meta.RecordingWindow(),
	}

	if err := headerTmpl.Execute(w, data); err != nil {
		return Stats{}, fmt.Errorf("render header: %w", err)
	}

	h := sha256.New()
	n, err := WriteArrayBody(w, io.TeeReader(r, h))
	if err != nil {
		return Stats{Bytes: n}, fmt.Errorf("render model data: %w", err)
	}

	if err := footerTmpl.Execute(w, data); err != nil {
		return Stats{Bytes: n}, fmt.Errorf("render accessors: %w", err)
	}

	return Stats{
		Bytes:           n,
		SHA256:          hex.EncodeToString(h.Sum(nil)),
		RecordingWindow: data.RecordingWindow,
	}, nil
}

func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

// cString quotes s as a C string literal. Printable ASCII passes through;
// quotes, backslashes and everything else are escaped. A '?' following
// another '?' is written as \? so no trigraph can form.
func cString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '?' && i > 0 && s[i-1] == '?':
			b.WriteString(`\?`)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\t':
			b.WriteString(`\t`)
		case c < 0x20 || c >= 0x7f:
			// Octal keeps the escape from swallowing following hex digits.
			fmt.Fprintf(&b, "\\%03o", c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
