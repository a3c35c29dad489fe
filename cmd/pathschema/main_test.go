package main

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathschema"
	"pathschema/internal/errors"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cmd := newRootCmd()

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--no-color", "--log-level", "error"}, args...))

	err := cmd.Execute()

	return out.String(), err
}

func TestFieldsAndFlatten(t *testing.T) {
	out, err := run(t, "--schema-dir", "testdata", "fields", "film", "shot_root")
	require.NoError(t, err)
	assert.Equal(t, "project\nsequence\nshot\n", out)

	out, err = run(t, "--schema-dir", "testdata", "flatten", "film", "shot_pub")
	require.NoError(t, err)
	assert.Equal(t, "<project.root>/sequence/<sequence.name>/<shot.name>/pub\n", out)
}

func TestResolve(t *testing.T) {
	out, err := run(t, "--schema-dir", "testdata",
		"resolve", "film", "shot_root", "shot_pub", "shot_work", "--context", "testdata/shot.yaml")
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"/tmp/unittest/sequence/101/001",
		"/tmp/unittest/sequence/101/001/pub",
		"/tmp/unittest/sequence/101/001/work/animation",
	}, "\n")+"\n", out)

	out, err = run(t, "--schema-dir", "testdata", "resolve", "film", "project_root", "--set", "project=demo")
	require.Error(t, err)
	assert.Empty(t, out)

	_, err = run(t, "--schema-dir", "testdata", "resolve", "film", "shot_scene", "-c", "testdata/shot.yaml")
	var missing *pathschema.MissingFieldsError
	require.True(t, errors.As(err, &missing), "got %v", err)
	assert.Equal(t, []string{"publish"}, missing.Fields)

	_, err = run(t, "--schema-dir", "testdata", "resolve", "opera", "x")
	var notFound *pathschema.SchemaNotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestResolveSetOverridesFile(t *testing.T) {
	// --set keys fold like context file keys, so Project replaces the loaded project.
	_, err := run(t, "--schema-dir", "testdata",
		"resolve", "film", "shot_root", "-c", "testdata/shot.yaml", "--set", "Project=demo")
	var attr *pathschema.AttributeResolutionError
	require.True(t, errors.As(err, &attr), "got %v", err)
	assert.Equal(t, "<project.root>", attr.Placeholder)

	// A plain sequence value still lets the shot's project through.
	ctxFile := filepath.Join(t.TempDir(), "ctx.yaml")
	require.NoError(t, os.WriteFile(ctxFile, []byte(`shot:
  name: "001"
  parent:
    type: sequence
    name: "101"
    parent:
      type: project
      root: /mnt/show
`), 0o600))

	out, err := run(t, "--schema-dir", "testdata",
		"resolve", "film", "project_root", "-c", ctxFile, "--set", "Sequence=202")
	require.NoError(t, err)
	assert.Equal(t, "/mnt/show\n", out)
}

func TestResolveAllKeys(t *testing.T) {
	out, err := run(t, "--schema-dir", "testdata", "resolve", "film", "-c", "testdata/shot.yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "shot_pub")
	assert.Contains(t, out, "/tmp/unittest/sequence/101/001/pub")
	assert.Contains(t, out, "error: missing fields")
}

func TestKeys(t *testing.T) {
	out, err := run(t, "--schema-dir", "testdata", "keys", "film")
	require.NoError(t, err)

	assert.Contains(t, out, "shot_scene")
	assert.Contains(t, out, "project, sequence, shot, task, publish")
	assert.Less(t, strings.Index(out, "project_root"), strings.Index(out, "shot_scene"))
}

func TestTree(t *testing.T) {
	out, err := run(t, "--schema-dir", "testdata", "tree", "film", "--plain", "-c", "testdata/shot.yaml")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/tmp/unittest",
		"/tmp/unittest/asset",
		"/tmp/unittest/sequence",
		"/tmp/unittest/sequence/101",
		"/tmp/unittest/sequence/101/001",
		"/tmp/unittest/sequence/101/001/work",
		"/tmp/unittest/sequence/101/001/pub",
	}, strings.Split(strings.TrimSpace(out), "\n"))

	out, err = run(t, "--schema-dir", "testdata", "tree", "film", "-c", "testdata/shot.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "0007")
	assert.Contains(t, out, "-rwxrwx---")
	assert.Contains(t, out, "-rwxrwxr-x")
	assert.Contains(t, out, "publish")
}

func TestLint(t *testing.T) {
	out, err := run(t, "--schema-dir", "testdata", "lint", "film")
	require.NoError(t, err)
	assert.Contains(t, out, "schema film is clean")

	out, err = run(t, "--schema-dir", "testdata", "lint", "broken")
	require.Error(t, err)
	assert.Contains(t, out, "unknown_key_ref")
	assert.Contains(t, out, `"project_root"`)
	assert.Contains(t, err.Error(), "1 problem(s)")

	out, err = run(t, "--schema-dir", "testdata", "lint", "film", "broken")
	require.Error(t, err)
	assert.Contains(t, out, "schema film is clean")
	assert.Contains(t, out, "broken: ")
	assert.Contains(t, err.Error(), "1 problem(s) in film, broken")
}

func TestDatabaseSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.db")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)

	_, err = db.Exec(`CREATE TABLE path_schemas (name TEXT PRIMARY KEY, format TEXT NOT NULL DEFAULT 'yaml', body TEXT NOT NULL)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO path_schemas (name, format, body) VALUES (?, ?, ?)`,
		"film", "toml", `project_root = "/db/<project.name>"`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	ctxFile := filepath.Join(t.TempDir(), "ctx.yaml")
	require.NoError(t, os.WriteFile(ctxFile, []byte("project:\n  name: demo\n"), 0o600))

	out, err := run(t, "--db", path, "resolve", "film", "project_root", "-c", ctxFile)
	require.NoError(t, err)
	assert.Equal(t, "/db/demo\n", out)

	// Names missing from the database fall through to the directory.
	out, err = run(t, "--db", path, "--schema-dir", "testdata", "fields", "broken", "project_root")
	require.NoError(t, err)
	assert.Equal(t, "project\n", out)

	// The database copy of film shadows the directory one.
	_, err = run(t, "--db", path, "--schema-dir", "testdata", "fields", "film", "shot_root")
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "pathschema.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[schema]\ndir = \"testdata\"\n"), 0o600))

	out, err := run(t, "--config", cfg, "fields", "film", "project_root")
	require.NoError(t, err)
	assert.Equal(t, "project\n", out)

	_, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.toml"), "keys", "film")
	assert.Error(t, err)
}
