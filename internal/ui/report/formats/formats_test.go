package formats

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"doctypes/internal/core/errors"
	"doctypes/internal/core/ports"
	"doctypes/internal/engine/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleResult() ports.ScanResult {
	return ports.ScanResult{
		RunID:        "run-1",
		StartedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Duration:     1500 * time.Millisecond,
		FilesScanned: 2,
		Signatures: []ports.Signature{
			{
				File:      "/repo/src/Gateway.php",
				Line:      9,
				Function:  "client",
				Class:     "Gateway",
				Namespace: `App\Service`,
				Qualified: `\App\Service\Gateway::client`,
				DocTag:    "Client|null",
				ReturnTypes: []types.Type{
					types.Object{FQSEN: `\Vendor\Http\Client`},
					types.Scalar{Kind: types.KindNull},
				},
			},
			{
				File:        "/repo/src/helpers.php",
				Line:        4,
				Function:    "ids",
				Qualified:   `\ids`,
				DocTag:      "int[]",
				ReturnTypes: []types.Type{types.Array{}},
			},
			{
				File:      "/repo/src/helpers.php",
				Line:      8,
				Function:  "plain",
				Qualified: `\plain`,
			},
		},
		Failures: []ports.FileFailure{{Path: "/repo/src/broken.php", Error: "parse failed"}},
	}
}

func TestGenerate_UnknownFormat(t *testing.T) {
	_, err := Generate("xml", sampleResult(), Options{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeNotSupported))
}

func TestGenerateText(t *testing.T) {
	out, err := Generate(" TEXT ", sampleResult(), Options{ProjectRoot: "/repo"})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "src/Gateway.php:9")
	assert.Contains(t, lines[0], `\Vendor\Http\Client|null`)
	assert.True(t, strings.HasSuffix(lines[2], "-"))
	assert.Equal(t, "error: src/broken.php: parse failed", lines[3])
	assert.Equal(t, "2 files, 3 signatures, 1 failures", lines[4])
}

func TestGenerateTSV(t *testing.T) {
	out, err := GenerateTSV(sampleResult(), Options{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "File\tLine\tNamespace\tClass\tFunction\tDocTag\tReturnTypes", lines[0])
	assert.Equal(t, "/repo/src/Gateway.php\t9\tApp\\Service\tGateway\tclient\tClient|null\t\\Vendor\\Http\\Client|null", lines[1])
	assert.Equal(t, "/repo/src/helpers.php\t8\t\t\tplain\t\t", lines[3])
}

func TestGenerateJSON(t *testing.T) {
	out, err := GenerateJSON(sampleResult(), Options{ProjectRoot: "/repo"})
	require.NoError(t, err)

	var decoded jsonReport
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "run-1", decoded.RunID)
	assert.Equal(t, int64(1500), decoded.DurationMS)
	require.Len(t, decoded.Signatures, 3)
	assert.Equal(t, "src/Gateway.php", decoded.Signatures[0].File)
	assert.Equal(t, []jsonType{
		{Variant: "object", Name: `\Vendor\Http\Client`},
		{Variant: "scalar", Name: "null"},
	}, decoded.Signatures[0].ReturnTypes)
	assert.Empty(t, decoded.Signatures[2].ReturnTypes)
	assert.Contains(t, out, `"return_types": []`)
}

func TestGenerateMarkdown(t *testing.T) {
	out, err := GenerateMarkdown(sampleResult(), Options{ProjectRoot: "/repo", Title: "Acme"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "# Acme\n"))
	assert.Contains(t, out, "| Documented Returns | 2 |")
	assert.Contains(t, out, "| `\\App\\Service\\Gateway::client` | `\\Vendor\\Http\\Client` \\| `null` | `src/Gateway.php:9` |")
	assert.Contains(t, out, "_undocumented_")
	assert.Contains(t, out, "## Failures")
	assert.NotContains(t, out, "<details>")
}

func TestGenerateMarkdown_Empty(t *testing.T) {
	out, err := GenerateMarkdown(ports.ScanResult{}, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "# Return Type Report")
	assert.Contains(t, out, "No functions found.")
	assert.NotContains(t, out, "## Failures")
}

func TestGenerateYAML(t *testing.T) {
	out, err := Generate("yaml", sampleResult(), Options{ProjectRoot: "/repo"})
	require.NoError(t, err)

	var decoded jsonReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "run-1", decoded.RunID)
	require.Len(t, decoded.Signatures, 3)
	assert.Equal(t, "client", decoded.Signatures[0].Function)
	assert.Equal(t, []jsonFailure{{Path: "src/broken.php", Error: "parse failed"}}, decoded.Failures)
	assert.Contains(t, out, "return_types:")
}
