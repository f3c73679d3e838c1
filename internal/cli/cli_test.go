package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/typo3docs/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var limitOp = domain.Operation{
	Name: "search",
	Params: []domain.Param{
		{Name: "query", Type: domain.ParamString, Required: true},
		{Name: "limit", Type: domain.ParamInteger, Min: domain.IntPtr(1), Max: domain.IntPtr(50), Default: 10},
	},
}

func TestParseArgs(t *testing.T) {
	args, err := ParseArgs(limitOp, []string{"query=dependency injection", "limit=5", "extra=a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"query": "dependency injection",
		"limit": 5,
		"extra": "a=b",
	}, args)
}

func TestParseArgs_Errors(t *testing.T) {
	tests := []struct {
		name  string
		pairs []string
	}{
		{name: "Missing Equals", pairs: []string{"query"}},
		{name: "Empty Key", pairs: []string{"=value"}},
		{name: "Duplicate", pairs: []string{"query=a", "query=b"}},
		{name: "Not An Integer", pairs: []string{"limit=ten"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArgs(limitOp, tt.pairs)
			assert.Error(t, err)
		})
	}
}

type fakeInvoker struct {
	res  domain.Result
	args map[string]any
}

func (f *fakeInvoker) Invoke(_ context.Context, _ string, args map[string]any) domain.Result {
	f.args = args
	return f.res
}

func (f *fakeInvoker) Operation(name string) (domain.Operation, bool) {
	return limitOp, name == limitOp.Name
}

func TestRunInvoke(t *testing.T) {
	t.Run("Raw Document", func(t *testing.T) {
		inv := &fakeInvoker{res: domain.Result{Kind: domain.ResultDocument, Text: "# Title"}}
		var out bytes.Buffer

		require.NoError(t, RunInvoke(context.Background(), inv, "search", []string{"query=x", "limit=3"}, &out, InvokeOptions{}))
		assert.Equal(t, "# Title\n", out.String())
		assert.Equal(t, 3, inv.args["limit"])
	})

	t.Run("Rendered Document", func(t *testing.T) {
		inv := &fakeInvoker{res: domain.Result{Kind: domain.ResultDocument, Text: "# Title\n"}}
		var out bytes.Buffer
		upper := func(s string) (string, error) { return strings.ToUpper(s), nil }

		require.NoError(t, RunInvoke(context.Background(), inv, "search", []string{"query=x"}, &out, InvokeOptions{Render: upper}))
		assert.Equal(t, "# TITLE\n", out.String())
	})

	t.Run("Error Document", func(t *testing.T) {
		inv := &fakeInvoker{res: domain.Result{Kind: domain.ResultError, Text: "Unknown tool: nope"}}
		var out bytes.Buffer

		err := RunInvoke(context.Background(), inv, "nope", nil, &out, InvokeOptions{})
		assert.ErrorIs(t, err, ErrInvocationFailed)
		assert.Equal(t, "Unknown tool: nope\n", out.String())
	})
}

func TestPrintCatalog(t *testing.T) {
	var out bytes.Buffer
	PrintCatalog(&out, []domain.Operation{limitOp})

	text := out.String()
	assert.Contains(t, text, "search\n")
	assert.Contains(t, text, "--arg query=<string>  (required)")
	assert.Contains(t, text, "--arg limit=<integer>  (default 10, 1..50)")
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "typo3docs.yaml"), []byte("port: 9000\nlog_level: warn\n"), 0644))

	cfg, err := LoadConfig(Options{Port: 9100, Debug: true, Timeout: 2 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.Timeout)

	_, err = LoadConfig(Options{LogFormat: "xml"})
	assert.Error(t, err)
}

func TestNewRuntime(t *testing.T) {
	t.Chdir(t.TempDir())

	rt, err := NewRuntime(Options{LogLevel: "error"})
	require.NoError(t, err)
	assert.Len(t, rt.Gateway.Catalog(), 6)
	assert.NotNil(t, rt.Metrics)

	// Pure lookups work without network access.
	res := rt.Gateway.Invoke(context.Background(), "get_typo3_coding_guidelines", map[string]any{"topic": "fluid"})
	assert.False(t, res.IsError())
}
