package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/aretw0/typo3docs/internal/content"
	"github.com/aretw0/typo3docs/internal/render"
	"github.com/aretw0/typo3docs/internal/runtime"
	"github.com/aretw0/typo3docs/internal/testutils"
	"github.com/aretw0/typo3docs/pkg/adapters/remote"
	"github.com/aretw0/typo3docs/pkg/domain"
	"github.com/aretw0/typo3docs/pkg/ports"
	"github.com/aretw0/typo3docs/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDeps(t *testing.T, f ports.Fetcher) Deps {
	t.Helper()
	cat, err := content.Default()
	require.NoError(t, err)
	deps, err := Deps{Fetcher: f, Content: cat}.withDefaults()
	require.NoError(t, err)
	return deps
}

func newGateway(t *testing.T, f ports.Fetcher) *runtime.Dispatcher {
	t.Helper()
	reg := registry.NewRegistry()
	require.NoError(t, Register(reg, testDeps(t, f)))
	return runtime.NewDispatcher(reg)
}

// requiredOnly builds the minimal argument map of an operation.
func requiredOnly(op domain.Operation) map[string]any {
	args := map[string]any{}
	for _, p := range op.Params {
		if p.Required {
			args[p.Name] = "news"
		}
	}
	return args
}

func TestRegister_AllOperations(t *testing.T) {
	reg := registry.NewRegistry()
	require.NoError(t, Register(reg, testDeps(t, testutils.Offline())))

	var names []string
	for _, op := range reg.Catalog() {
		names = append(names, op.Name)
	}
	assert.Equal(t, []string{
		OpSearchDocs, OpChangelog, OpSearchExtensions,
		OpExtensionDetail, OpAPIReference, OpGuidelines,
	}, names)
}

func TestRegister_RequiresCollaborators(t *testing.T) {
	cat, err := content.Default()
	require.NoError(t, err)

	assert.Error(t, Register(registry.NewRegistry(), Deps{Content: cat}))
	assert.Error(t, Register(registry.NewRegistry(), Deps{Fetcher: testutils.Offline()}))
}

func TestOperations_RequiredOnlyNeverFails(t *testing.T) {
	fetchers := map[string]ports.Fetcher{
		"failing": testutils.Offline(),
		"empty":   testutils.Returning(map[string]any{}),
	}
	for label, f := range fetchers {
		gw := newGateway(t, f)
		for _, op := range Operations() {
			t.Run(label+"/"+op.Name, func(t *testing.T) {
				res := gw.Invoke(context.Background(), op.Name, requiredOnly(op))
				assert.False(t, res.IsError(), res.Text)
				assert.NotEmpty(t, strings.TrimSpace(res.Text))
			})
		}
	}
}

func TestRemoteFirst_FailureEqualsFallback(t *testing.T) {
	deps := testDeps(t, testutils.Offline())
	ctx := context.Background()

	t.Run("docs", func(t *testing.T) {
		h := &DocsSearch{deps: deps}
		got, err := h.Handle(ctx, domain.Args{"query": "QueryBuilder", "version": "main"})
		require.NoError(t, err)
		assert.Equal(t, render.Render(h.curated("QueryBuilder", "main")), render.Render(got))
		assert.Equal(t, domain.SourceCurated, got.Source)
	})

	t.Run("extensions", func(t *testing.T) {
		h := &ExtensionSearch{deps: deps}
		got, err := h.Handle(ctx, domain.Args{"query": "mask", "typo3_version": "12", "limit": 10})
		require.NoError(t, err)
		assert.Equal(t, render.Render(h.curated("mask", "12", 10)), render.Render(got))
	})

	t.Run("detail", func(t *testing.T) {
		h := &ExtensionDetail{deps: deps}
		for _, key := range []string{"news", "does_not_exist"} {
			got, err := h.Handle(ctx, domain.Args{"extension_key": key})
			require.NoError(t, err)
			assert.Equal(t, render.Render(h.curated(key)), render.Render(got))
		}
	})
}

func TestExtensionSearch_News500(t *testing.T) {
	srv := testutils.StatusServer(t, http.StatusInternalServerError, "boom")

	reg := registry.NewRegistry()
	deps := testDeps(t, remote.NewClient())
	deps.Endpoints.TERAPIURL = srv.URL
	require.NoError(t, Register(reg, deps))

	res := runtime.NewDispatcher(reg).Invoke(context.Background(), OpSearchExtensions, map[string]any{"query": "news"})
	require.False(t, res.IsError(), res.Text)
	assert.Equal(t, domain.SourceCurated, res.Source)
	assert.Contains(t, res.Text, "### News System (news)")
	assert.Contains(t, res.Text, "composer require georgringer/news")
	assert.NotContains(t, res.Text, "Error")
}

func TestExtensionSearch_Remote(t *testing.T) {
	f := testutils.Returning(map[string]any{
		"extensions": []any{
			map[string]any{
				"key":             "news",
				"title":           "News system",
				"description":     strings.Repeat("a", 500),
				"downloads":      "1234567",
				"currentVersion": map[string]any{"version": "12.1.0"},
				"author":         map[string]any{"name": "Georg Ringer"},
			},
			map[string]any{"key": "blog"},
			map[string]any{"noise": true},
			"not an object",
		},
	})
	gw := newGateway(t, f)

	res := gw.Invoke(context.Background(), OpSearchExtensions, map[string]any{"query": "news", "limit": 5})
	require.False(t, res.IsError(), res.Text)
	assert.Equal(t, domain.SourceRemote, res.Source)
	assert.Contains(t, res.Text, "**Results:** 2 found")
	assert.Contains(t, res.Text, "**Downloads:** 1,234,567")
	assert.Contains(t, res.Text, "**Version:** 12.1.0")
	assert.Contains(t, res.Text, "### blog (blog)")
	assert.Contains(t, res.Text, "No description")
	assert.Contains(t, res.Text, "**Author:** Unknown")
	assert.NotContains(t, res.Text, strings.Repeat("a", MaxDescriptionChars+1))
	assert.Contains(t, res.Text, "### blog (blog)\n\n**Version:** unknown")

	require.Len(t, f.URLs(), 1)
	assert.Contains(t, f.URLs()[0], "/extension/search/?")
	assert.Contains(t, f.URLs()[0], "limit=5")
	assert.Contains(t, f.URLs()[0], "typo3Version=12")
}

func TestExtensionSearch_MalformedFieldsKeepRemote(t *testing.T) {
	f := testutils.Returning(map[string]any{
		"extensions": []any{
			map[string]any{
				"key":            "news",
				"title":          "News",
				"downloads":      map[string]any{"total": 5},
				"currentVersion": []any{11, 12},
				"author":         "Georg Ringer",
			},
			map[string]any{
				"key":            "blog",
				"downloads":      "lots",
				"currentVersion": map[string]any{"version": []any{"1.0"}},
			},
		},
	})
	gw := newGateway(t, f)

	res := gw.Invoke(context.Background(), OpSearchExtensions, map[string]any{"query": "news"})
	require.False(t, res.IsError(), res.Text)
	assert.Equal(t, domain.SourceRemote, res.Source)
	assert.Contains(t, res.Text, "**Results:** 2 found")
	assert.Contains(t, res.Text, "### News (news)")
	assert.Contains(t, res.Text, "**Version:** unknown")
	assert.Contains(t, res.Text, "**Downloads:** 0")
	assert.Contains(t, res.Text, "**Author:** Unknown")
	assert.Contains(t, res.Text, "### blog (blog)")
}

func TestExtensionSearch_EmptyRemoteFallsBack(t *testing.T) {
	var reasons []string
	deps := testDeps(t, testutils.Returning(map[string]any{"extensions": []any{}}))
	deps.Hooks.OnFallback = func(_ context.Context, e *domain.FallbackEvent) {
		reasons = append(reasons, e.Reason)
	}
	h := &ExtensionSearch{deps: deps}

	doc, err := h.Handle(context.Background(), domain.Args{"query": "solr", "limit": 10})
	require.NoError(t, err)
	assert.Equal(t, domain.SourceCurated, doc.Source)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "Solr (solr)", doc.Sections[0].Heading)
	assert.Equal(t, []string{"no results"}, reasons)
}

func TestExtensionSearch_NoCuratedMatch(t *testing.T) {
	h := &ExtensionSearch{deps: testDeps(t, testutils.Offline())}

	doc, err := h.Handle(context.Background(), domain.Args{"query": "zzz-nothing", "limit": 10})
	require.NoError(t, err)
	assert.Equal(t, domain.SourceStatic, doc.Source)
	assert.Empty(t, doc.Sections)
	assert.Contains(t, render.Render(doc), "No curated extension matches")
}

func TestTruncation_ListLimits(t *testing.T) {
	var hits []any
	for i := 0; i < 30; i++ {
		hits = append(hits, map[string]any{
			"title":   fmt.Sprintf("Page %d", i),
			"url":     fmt.Sprintf("/p/%d", i),
			"snippet": strings.Repeat("x", 1000),
			"key":     fmt.Sprintf("ext_%d", i),
		})
	}
	deps := testDeps(t, testutils.Returning(map[string]any{"results": hits, "extensions": hits}))

	docs, err := (&DocsSearch{deps: deps}).Handle(context.Background(), domain.Args{"query": "page", "version": "main"})
	require.NoError(t, err)
	assert.Len(t, docs.Sections, MaxDocResults)
	for _, s := range docs.Sections {
		assert.LessOrEqual(t, len([]rune(s.Text)), MaxDescriptionChars)
	}

	ext, err := (&ExtensionSearch{deps: deps}).Handle(context.Background(), domain.Args{"query": "page", "limit": 3})
	require.NoError(t, err)
	assert.Len(t, ext.Sections, 3)

	// Curated matches obey the limit too: "e" matches most extensions.
	curated := (&ExtensionSearch{deps: deps}).curated("e", "12", 2)
	assert.Len(t, curated.Sections, 2)
}

func TestDocsSearch_Remote(t *testing.T) {
	f := testutils.Returning(map[string]any{
		"results": []any{
			map[string]any{"title": "QueryBuilder", "url": "/m/typo3/reference-coreapi/main/en-us/ApiOverview/Database/QueryBuilder/", "snippet": "Build queries"},
			map[string]any{"title": "External", "url": "https://example.org/x", "description": "Only a description"},
			map[string]any{"url": "/y", "snippet": "", "description": "Description after empty snippet"},
			map[string]any{"title": []any{"bad"}, "url": "/z"},
		},
	})
	gw := newGateway(t, f)

	res := gw.Invoke(context.Background(), OpSearchDocs, map[string]any{"query": "query builder", "version": "12.4"})
	require.False(t, res.IsError(), res.Text)
	assert.Equal(t, domain.SourceRemote, res.Source)
	assert.Contains(t, res.Text, "# TYPO3 Documentation Search: query builder")
	assert.Contains(t, res.Text, "**Version:** 12.4")
	assert.Contains(t, res.Text, "### 1. QueryBuilder")
	assert.Contains(t, res.Text, "**URL:** https://docs.typo3.org/m/typo3/reference-coreapi/main/en-us/ApiOverview/Database/QueryBuilder/")
	assert.Contains(t, res.Text, "**URL:** https://example.org/x")
	assert.Contains(t, res.Text, "Only a description")
	assert.Contains(t, res.Text, "### 3. No title")
	assert.Contains(t, res.Text, "Description after empty snippet")
	assert.Contains(t, res.Text, "### 4. No title\n\n**URL:** https://docs.typo3.org/z")
	assert.Contains(t, res.Text, "**Search Documentation:** https://docs.typo3.org/search/?q=query+builder")

	require.Len(t, f.URLs(), 1)
	assert.Contains(t, f.URLs()[0], "q=query+builder")
}

func TestDocsSearch_CuratedMatching(t *testing.T) {
	h := &DocsSearch{deps: testDeps(t, testutils.Offline())}

	headings := func(query string) []string {
		var out []string
		for _, s := range h.curated(query, "main").Sections {
			out = append(out, s.Heading)
		}
		return out
	}

	want := headings("QueryBuilder")
	require.NotEmpty(t, want)
	assert.Equal(t, want, headings("querybuilder"))
	assert.Equal(t, want, headings("  querybuilder  "))

	// Topics whose key occurs inside a longer question still match.
	assert.Contains(t, headings("how do I configure the scheduler"), "Scheduler")

	// Topics sharing a link are listed once.
	assert.Equal(t, []string{"Database"}, headings("database querybuilder"))
}

func TestDocsSearch_GenericGuidance(t *testing.T) {
	h := &DocsSearch{deps: testDeps(t, testutils.Offline())}

	doc := h.curated("qwertyuiop", "12.4")
	assert.Equal(t, domain.SourceStatic, doc.Source)
	text := render.Render(doc)
	assert.Contains(t, text, "No exact matches found")
	assert.Contains(t, text, "https://docs.typo3.org/m/typo3/reference-coreapi/12.4/en-us/")
	assert.NotContains(t, text, "{version}")
}

func TestChangelog_12Breaking(t *testing.T) {
	gw := newGateway(t, testutils.Offline())
	cat, err := content.Default()
	require.NoError(t, err)
	cl, ok := cat.Changelog("12")
	require.True(t, ok)
	breaking, ok := cl.Group("Breaking")
	require.True(t, ok)

	res := gw.Invoke(context.Background(), OpChangelog, map[string]any{"version": "12", "type": "Breaking"})
	require.False(t, res.IsError(), res.Text)

	var items []string
	for _, line := range strings.Split(res.Text, "\n") {
		if strings.HasPrefix(line, "- ") && !strings.HasPrefix(line, "- **") {
			items = append(items, strings.TrimPrefix(line, "- "))
		}
	}
	assert.Equal(t, breaking.Entries, items)
	assert.NotContains(t, res.Text, "Deprecation Changes")
	assert.NotContains(t, res.Text, "Feature Changes")
}

func TestChangelog(t *testing.T) {
	h := &Changelog{deps: testDeps(t, testutils.Offline())}
	ctx := context.Background()

	t.Run("all types in order", func(t *testing.T) {
		doc, err := h.Handle(ctx, domain.Args{"version": "12.4", "type": "All"})
		require.NoError(t, err)
		require.Len(t, doc.Sections, 3)
		assert.Equal(t, "Breaking Changes", doc.Sections[0].Heading)
		assert.Equal(t, "Deprecation Changes", doc.Sections[1].Heading)
		assert.Equal(t, "Feature Changes", doc.Sections[2].Heading)
		assert.Contains(t, render.Render(doc), "/12.4/en-us/Changelog/Index.html")
	})

	t.Run("type without entries", func(t *testing.T) {
		doc, err := h.Handle(ctx, domain.Args{"version": "13", "type": "Important"})
		require.NoError(t, err)
		assert.Empty(t, doc.Sections)
		assert.Contains(t, render.Render(doc), "No Important entries are curated for TYPO3 13.")
	})

	t.Run("unknown major", func(t *testing.T) {
		doc, err := h.Handle(ctx, domain.Args{"version": "8.7", "type": "All"})
		require.NoError(t, err)
		assert.Equal(t, domain.SourceStatic, doc.Source)
		assert.Contains(t, render.Render(doc), "Curated versions: 11, 12, 13.")
	})
}

func TestMajorVersion(t *testing.T) {
	assert.Equal(t, "12", MajorVersion("12.4.3"))
	assert.Equal(t, "12", MajorVersion(" 12 "))
	assert.Equal(t, "", MajorVersion(""))
}

func TestExtensionDetail_Remote(t *testing.T) {
	f := testutils.Returning(map[string]any{
		"key":         "news",
		"title":       "News system",
		"description": "Versatile news system",
		"downloads":   float64(2500000),
		"category":    "plugin",
		"currentVersion": map[string]any{
			"version":         "12.1.0",
			"typo3Dependency": "12.4.0-13.4.99",
			"phpDependency":   "8.1.0-8.3.99",
		},
		"author":            map[string]any{"name": "Georg Ringer", "company": "studio"},
		"documentationLink": "https://docs.typo3.org/p/georgringer/news/main/en-us/",
		"repositoryUrl":     "https://github.com/georgringer/news",
	})
	gw := newGateway(t, f)

	res := gw.Invoke(context.Background(), OpExtensionDetail, map[string]any{"extension_key": "news"})
	require.False(t, res.IsError(), res.Text)
	assert.Equal(t, domain.SourceRemote, res.Source)
	assert.Contains(t, res.Text, "# News system")
	assert.Contains(t, res.Text, "**Downloads:** 2,500,000")
	assert.Contains(t, res.Text, "**Current Version:** 12.1.0")
	assert.Contains(t, res.Text, "**TYPO3:** 12.4.0-13.4.99")
	assert.Contains(t, res.Text, "**PHP:** 8.1.0-8.3.99")
	assert.Contains(t, res.Text, "**Documentation:** https://docs.typo3.org/p/georgringer/news/main/en-us/")
	assert.Contains(t, res.Text, "**Repository:** https://github.com/georgringer/news")
	assert.Contains(t, res.Text, "composer require typo3-ter/news")
	require.Len(t, f.URLs(), 1)
	assert.True(t, strings.HasSuffix(f.URLs()[0], "/extension/news"))
}

func TestExtensionDetail_MissingCompatibility(t *testing.T) {
	f := testutils.Returning(map[string]any{
		"key":            "news",
		"title":          "News system",
		"currentVersion": map[string]any{"version": "12.1.0", "typo3Dependency": []any{11, 12}},
	})
	gw := newGateway(t, f)

	res := gw.Invoke(context.Background(), OpExtensionDetail, map[string]any{"extension_key": "news"})
	require.False(t, res.IsError(), res.Text)
	assert.Equal(t, domain.SourceRemote, res.Source)
	assert.Contains(t, res.Text, "**Current Version:** 12.1.0")
	assert.Contains(t, res.Text, "**TYPO3:** Check documentation")
	assert.Contains(t, res.Text, "**PHP:** Check documentation")
	assert.NotContains(t, res.Text, "**Repository:**")
}

func TestExtensionDetail_Fallback(t *testing.T) {
	h := &ExtensionDetail{deps: testDeps(t, testutils.Offline())}

	known := render.Render(h.curated("news"))
	assert.Contains(t, known, "# News System")
	assert.Contains(t, known, "composer require georgringer/news")

	builtin := render.Render(h.curated("form"))
	assert.Contains(t, builtin, "**Package:** Built-in")

	unknown := render.Render(h.curated("my_ext"))
	assert.Contains(t, unknown, "Could not fetch details for extension 'my_ext'. Visit: https://extensions.typo3.org/extension/my_ext")
}

func TestAPIReference(t *testing.T) {
	h := &APIReference{deps: testDeps(t, testutils.Offline())}
	ctx := context.Background()
	const pool = `TYPO3\CMS\Core\Database\ConnectionPool`

	t.Run("known class", func(t *testing.T) {
		doc, err := h.Handle(ctx, domain.Args{"class_name": pool})
		require.NoError(t, err)
		text := render.Render(doc)
		assert.Contains(t, text, "# ConnectionPool API Reference")
		assert.Contains(t, text, "### getQueryBuilderForTable(")
		assert.Contains(t, text, "### getConnectionByName(")
	})

	t.Run("method narrows", func(t *testing.T) {
		doc, err := h.Handle(ctx, domain.Args{"class_name": pool, "method_name": "getConnectionForTable"})
		require.NoError(t, err)
		text := render.Render(doc)
		assert.Contains(t, text, "### getConnectionForTable(string $table): Connection")
		assert.NotContains(t, text, "getQueryBuilderForTable")
	})

	t.Run("unknown method keeps full body", func(t *testing.T) {
		doc, err := h.Handle(ctx, domain.Args{"class_name": pool, "method_name": "nope"})
		require.NoError(t, err)
		text := render.Render(doc)
		assert.Contains(t, text, "Method `nope` is not documented")
		assert.Contains(t, text, "getQueryBuilderForTable")
	})

	t.Run("unknown class lists catalog", func(t *testing.T) {
		doc, err := h.Handle(ctx, domain.Args{"class_name": `Vendor\Unknown`})
		require.NoError(t, err)
		assert.Equal(t, domain.SourceStatic, doc.Source)
		text := render.Render(doc)
		for _, ref := range h.deps.Content.References {
			assert.Contains(t, text, "`"+ref.Class+"`")
		}
	})
}

func TestMethodSection(t *testing.T) {
	body := "## Methods\n\n### a(): int\nFirst.\n\n### b(): int\nSecond.\n\n## Notes\nEnd."

	got, ok := MethodSection(body, "b")
	require.True(t, ok)
	assert.Equal(t, "### b(): int\nSecond.", got)

	_, ok = MethodSection(body, "c")
	assert.False(t, ok)
}

func TestGuidelines(t *testing.T) {
	h := &Guidelines{deps: testDeps(t, testutils.Offline())}
	ctx := context.Background()

	doc, err := h.Handle(ctx, domain.Args{"topic": "security"})
	require.NoError(t, err)
	assert.Equal(t, domain.SourceCurated, doc.Source)
	assert.NotEmpty(t, doc.Body)

	generic, err := h.Handle(ctx, domain.Args{"topic": "typescript"})
	require.NoError(t, err)
	text := render.Render(generic)
	assert.Contains(t, text, `No dedicated guideline is curated for "typescript"`)
	assert.Contains(t, text, "## Quick Reference")
}

func TestPureLookups_Idempotent(t *testing.T) {
	gw := newGateway(t, testutils.Offline())
	cases := []struct {
		op   string
		args map[string]any
	}{
		{OpChangelog, map[string]any{"version": "11.5"}},
		{OpAPIReference, map[string]any{"class_name": `TYPO3\CMS\Extbase\Persistence\Repository`}},
		{OpAPIReference, map[string]any{"class_name": "Unknown"}},
		{OpGuidelines, map[string]any{"topic": "fluid"}},
	}
	for _, tc := range cases {
		first := gw.Invoke(context.Background(), tc.op, tc.args)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, gw.Invoke(context.Background(), tc.op, tc.args))
		}
	}
}

func TestPureLookups_NeverFetch(t *testing.T) {
	f := &testutils.Fetcher{Err: errors.New("must not be called")}
	gw := newGateway(t, f)

	gw.Invoke(context.Background(), OpChangelog, map[string]any{"version": "12"})
	gw.Invoke(context.Background(), OpAPIReference, map[string]any{"class_name": "x"})
	gw.Invoke(context.Background(), OpGuidelines, map[string]any{})
	assert.Empty(t, f.URLs())
}
