package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const brandDocument = `
queries:
  brands:
    - collection: brand
    - require:
        - entityFetch: [attributeContentAll]
`

func documentDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}

func runValidateCommand(t *testing.T, format string, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

func TestValidateValidDirectory(t *testing.T) {
	dir := documentDir(t, map[string]string{
		"product.yaml":     productDocument,
		"nested/brand.yml": brandDocument,
		"notes.txt":        "not a document",
	})

	buf, err := runValidateCommand(t, "text", dir)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "✓ 2 query(ies) in 2 file(s) valid")
}

func TestValidateValidDirectoryJSON(t *testing.T) {
	dir := documentDir(t, map[string]string{"product.yaml": productDocument})

	buf, err := runValidateCommand(t, "json", dir)
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	assert.Equal(t, 1, resp.Data.Files)
	assert.Equal(t, 1, resp.Data.Queries)
}

func TestValidateSingleFile(t *testing.T) {
	path := writeDocument(t, "product.yaml", productDocument)

	buf, err := runValidateCommand(t, "text", path)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "✓ 1 query(ies) in 1 file(s) valid")
}

func TestValidateNonExistentPath(t *testing.T) {
	buf, err := runValidateCommand(t, "text", "/nonexistent/directory/path")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeNotFound)
	assert.Contains(t, buf.String(), "not found")
}

func TestValidateEmptyDirectory(t *testing.T) {
	_, err := runValidateCommand(t, "text", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeNoFiles)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	dir := documentDir(t, map[string]string{
		"a_broken.yaml": "- collection: product\n- filterBy:\n    attributeLike: [code, abc]\n",
		"b_null.yaml":   "- collection: product\n- filterBy:\n    attributeEquals: [code, null]\n",
		"c_first.yaml":  brandDocument,
		"d_second.yaml": brandDocument,
	})

	buf, err := runValidateCommand(t, "json", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
		Error  *CLIError        `json:"error"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.False(t, resp.Data.Valid)
	assert.Equal(t, 4, resp.Data.Files)
	assert.Equal(t, 3, resp.Data.Queries)

	codes := make([]string, 0, len(resp.Data.Errors))
	for _, issue := range resp.Data.Errors {
		codes = append(codes, issue.Code)
	}
	assert.Equal(t, []string{ErrCodeCompile, ErrCodePrint, ErrCodeDuplicateName}, codes)

	compileIssue := resp.Data.Errors[0]
	assert.Equal(t, ErrCodeCompile, compileIssue.Code)
	assert.Equal(t, 3, compileIssue.Line)
	assert.Contains(t, compileIssue.Message, `unknown constraint "attributeLike"`)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeCompile, resp.Error.Code)
}

func TestValidateTextOutput(t *testing.T) {
	dir := documentDir(t, map[string]string{
		"broken.yaml": "- collection: product\n- filterBy:\n    attributeLike: [code, abc]\n",
	})

	buf, err := runValidateCommand(t, "text", dir)
	require.Error(t, err)

	output := buf.String()
	assert.Contains(t, output, "✗ Validation failed")
	assert.Contains(t, output, filepath.Join(dir, "broken.yaml")+":3:")
	assert.Contains(t, output, ErrCodeCompile+": query[1].filterBy.attributeLike: unknown constraint")
}

func TestValidateVerboseOutput(t *testing.T) {
	dir := documentDir(t, map[string]string{"product.yaml": productDocument})

	buf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: "text", Verbose: true})
	cmd.SetOut(buf)
	cmd.SetErr(errBuf)
	cmd.SetArgs([]string{dir})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, errBuf.String(), "Found 1 document file(s)")
	assert.Contains(t, errBuf.String(), "Validating query by code")
}

func TestLoadDocumentsDirFailFast(t *testing.T) {
	dir := documentDir(t, map[string]string{
		"a.yaml": "- collection: [product, brand]\n",
		"b.yaml": "- collection: [product, brand]\n",
	})

	result, errs := LoadDocumentsDir(dir, LoadModeFailFast)
	require.NotNil(t, result)
	assert.Len(t, errs, 1)
	assert.Equal(t, 2, result.FileCount)

	_, errs = LoadDocumentsDir(dir, LoadModeCollectAll)
	assert.Len(t, errs, 2)
}

func TestFindDocumentFiles(t *testing.T) {
	dir := documentDir(t, map[string]string{
		"b.cue":         "query: []\n",
		"a.yaml":        "",
		"sub/c.json":    "",
		"sub/readme.md": "",
	})

	files, err := FindDocumentFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.yaml"),
		filepath.Join(dir, "b.cue"),
		filepath.Join(dir, "sub", "c.json"),
	}, files)
}
