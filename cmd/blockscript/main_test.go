package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/blockscript/pkg/catalog"
	"github.com/aretw0/blockscript/pkg/dsl"
	"github.com/aretw0/blockscript/pkg/xmlcodec"
)

// project creates a temp dir with a file-backed blockscript.toml and two
// script documents: guard.xml (complete) and draft.xml (incomplete).
func project(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blockscript.toml"), []byte(`
[workspace]
name = "test"

[store]
driver = "file"
path = "scripts"
`), 0o644))

	cat := catalog.Default()
	guard := dsl.New(cat).
		On("OnHeartbeat").
		If(dsl.Cond("IsNight"), dsl.Action("Jump")).
		MustBuild()
	draft := dsl.New(cat).
		On("OnHeartbeat").
		Do("Walk").
		MustBuild()

	writeDoc := func(name string, doc []byte) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), doc, 0o644))
	}
	doc, err := xmlcodec.Marshal(guard)
	require.NoError(t, err)
	writeDoc("guard.xml", doc)
	doc, err = xmlcodec.Marshal(draft)
	require.NoError(t, err)
	writeDoc("draft.xml", doc)
	return dir
}

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", dir}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestCompile(t *testing.T) {
	dir := project(t)

	out, err := run(t, dir, "compile", filepath.Join(dir, "guard.xml"))
	require.NoError(t, err)
	assert.Equal(t, "// OnHeartbeat\nvoid main()\n{\nif (IsNight()) {\nJump();\n}\n\n}\n", out)

	_, err = run(t, dir, "compile", filepath.Join(dir, "draft.xml"))
	assert.ErrorContains(t, err, "incomplete")

	target := filepath.Join(dir, "guard.c")
	_, err = run(t, dir, "compile", "-o", target, filepath.Join(dir, "guard.xml"))
	require.NoError(t, err)
	code, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(code), "IsNight()")
}

func TestCompile_AllowIncomplete(t *testing.T) {
	dir := project(t)

	both := dsl.New(catalog.Default()).
		On("OnHeartbeat").
		If(dsl.And(dsl.Cond("IsNight"), dsl.Cond("IsDay")), dsl.Action("Jump")).
		MustBuild()
	doc, err := xmlcodec.Marshal(both)
	require.NoError(t, err)
	path := filepath.Join(dir, "both.xml")
	require.NoError(t, os.WriteFile(path, doc, 0o644))

	_, err = run(t, dir, "compile", path)
	assert.ErrorContains(t, err, "incomplete", "And reports itself incomplete")

	out, err := run(t, dir, "compile", "--allow-incomplete", path)
	require.NoError(t, err)
	assert.Contains(t, out, "if ((IsNight() & IsDay())) {")
}

func TestDescribe(t *testing.T) {
	dir := project(t)

	out, err := run(t, dir, "describe", filepath.Join(dir, "guard.xml"))
	require.NoError(t, err)
	assert.Contains(t, out, "# guard")
	assert.Contains(t, out, "> When every few seconds, if it is night, then jump.")
}

func TestValidate(t *testing.T) {
	dir := project(t)
	guard := filepath.Join(dir, "guard.xml")
	draft := filepath.Join(dir, "draft.xml")

	out, err := run(t, dir, "validate", guard, draft)
	assert.ErrorContains(t, err, "1 of 2 documents invalid")
	assert.Contains(t, out, guard+"\n")
	assert.Contains(t, out, draft+": script is incomplete")

	_, err = run(t, dir, "validate", "--allow-incomplete", guard, draft)
	assert.NoError(t, err)

	broken := filepath.Join(dir, "broken.xml")
	require.NoError(t, os.WriteFile(broken, []byte("<Script><Trigger/></Script>"), 0o644))
	_, err = run(t, dir, "validate", broken)
	assert.Error(t, err)
}

func TestGraph(t *testing.T) {
	dir := project(t)

	out, err := run(t, dir, "graph", "--incomplete", filepath.Join(dir, "draft.xml"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, "class n1 incomplete;")
}

func TestStats(t *testing.T) {
	dir := project(t)

	out, err := run(t, dir, "stats", filepath.Join(dir, "guard.xml"), filepath.Join(dir, "draft.xml"))
	require.NoError(t, err)
	assert.Contains(t, out, "# 2 documents")
	assert.Contains(t, out, "| Jump | 1 |")
	assert.Contains(t, out, "| Walk | 1 |")
}

func TestStoreLifecycle(t *testing.T) {
	dir := project(t)

	out, err := run(t, dir, "store", "save", filepath.Join(dir, "guard.xml"))
	require.NoError(t, err)
	assert.Equal(t, "guard\n", out)

	_, err = run(t, dir, "store", "save", "--id", "second", filepath.Join(dir, "draft.xml"))
	require.NoError(t, err)

	out, err = run(t, dir, "store", "list")
	require.NoError(t, err)
	assert.Equal(t, "guard\nsecond\n", out)

	out, err = run(t, dir, "store", "list", "-l")
	require.NoError(t, err)
	assert.Contains(t, out, "guard\t4 blocks\t")

	out, err = run(t, dir, "store", "get", "guard")
	require.NoError(t, err)
	original, err := os.ReadFile(filepath.Join(dir, "guard.xml"))
	require.NoError(t, err)
	assert.Equal(t, string(original), out)

	out, err = run(t, dir, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "# 2 stored scripts")

	out, err = run(t, dir, "stats", "--metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "blockscript_scripts 2")
	assert.Contains(t, out, `blockscript_statement_uses{name="Jump",type="action"} 1`)

	_, err = run(t, dir, "store", "rm", "guard", "second")
	require.NoError(t, err)
	out, err = run(t, dir, "store", "list")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = run(t, dir, "store", "get", "guard")
	assert.ErrorContains(t, err, "not found")
}

func TestCatalog(t *testing.T) {
	dir := project(t)

	out, err := run(t, dir, "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "| Jump | action |")
	assert.Contains(t, out, "| OnHeartbeat | every few seconds |")

	out, err = run(t, dir, "catalog", "--yaml")
	require.NoError(t, err)
	def, err := catalog.ParseYAML(strings.NewReader(out))
	require.NoError(t, err)
	assert.NotEmpty(t, def.Statements)
}

func TestCatalogFlag(t *testing.T) {
	dir := project(t)

	_, err := run(t, dir, "--catalog", filepath.Join("..", "..", "pkg", "catalog", "testdata", "catalog.yaml"),
		"compile", filepath.Join(dir, "guard.xml"))
	assert.Error(t, err, "the test catalog has no Jump statement")

	_, err = run(t, dir, "--catalog", filepath.Join(dir, "missing.yaml"), "catalog")
	assert.ErrorContains(t, err, "loading catalog")
}

func TestVersion(t *testing.T) {
	out, err := run(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "blockscript")
}
