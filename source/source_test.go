package source

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"attributes",
			`<div ng-show="a">`,
			`<div __loc__="f.html:1" ng-show="a">`,
		},
		{
			"bare tag",
			"<p>\n<span>x</span></p>",
			"<p __loc__=\"f.html:1\">\n<span __loc__=\"f.html:2\">x</span></p>",
		},
		{
			"self closing",
			`<br/>`,
			`<br __loc__="f.html:1"/>`,
		},
		{
			"name ends at newline",
			"<input\n  ng-model=\"x\">",
			"<input __loc__=\"f.html:1\"\n  ng-model=\"x\">",
		},
		{
			"namespaced tag",
			`<ng:include src="x">`,
			`<ng:include __loc__="f.html:1" src="x">`,
		},
		{
			"quoted angle brackets are not tags",
			`<a title="<b >">`,
			`<a __loc__="f.html:1" title="<b >">`,
		},
		{
			"comments and doctype untouched",
			"<!DOCTYPE html>\n<!-- <div > -->\n<i>",
			"<!DOCTYPE html>\n<!-- <div > -->\n<i __loc__=\"f.html:3\">",
		},
		{
			"script body untouched",
			"<script>if (a <b) {}</script>\n<b>",
			"<script __loc__=\"f.html:1\">if (a <b) {}</script>\n<b __loc__=\"f.html:2\">",
		},
		{
			"apostrophe in text",
			"<p>it's</p>\n<div title='a>b <i c'></div>",
			"<p __loc__=\"f.html:1\">it's</p>\n<div __loc__=\"f.html:2\" title='a>b <i c'></div>",
		},
		{
			"noscript body is markup",
			"<noscript><div ng-show=\"a\"></div></noscript>",
			"<noscript __loc__=\"f.html:1\"><div __loc__=\"f.html:1\" ng-show=\"a\"></div></noscript>",
		},
		{
			"less-than in text",
			"a < b <em>",
			`a < b <em __loc__="f.html:1">`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(Annotate("f.html", []byte(tt.in))))
		})
	}
}

func TestAnnotateEscapesFileName(t *testing.T) {
	got := string(Annotate(`we"ird&.html`, []byte("<p>")))
	assert.Equal(t, `<p __loc__="we&#34;ird&amp;.html:1">`, got)
}

func TestReadAllIsChunkingIndependent(t *testing.T) {
	src := strings.Repeat("<ul class=\"a\">\n  <li ng-repeat=\"x in xs\"\n      ng-class-odd=\"'o'\">\n  <!-- <p > -->\n  <script>x <y</script></li>\n</ul>\n", 30)

	whole := Annotate("f.html", []byte(src))

	for _, size := range []int{1, 2, 5, 13, 64, 4096} {
		got, err := ReadAll(strings.NewReader(src), "f.html", size)
		require.NoError(t, err)
		assert.Equal(t, string(whole), string(got), "chunk size %d", size)
	}

	got, err := ReadAll(iotest.OneByteReader(strings.NewReader(src)), "f.html", 0)
	require.NoError(t, err)
	assert.Equal(t, string(whole), string(got))
}

func TestTaggerTracksLinesAcrossWrites(t *testing.T) {
	var out bytes.Buffer
	tg := NewTagger(&out, "f.html")

	for _, chunk := range []string{"<d", "iv>\n\n<", "p\n>"} {
		n, err := tg.Write([]byte(chunk))
		require.NoError(t, err)
		assert.Equal(t, len(chunk), n)
	}

	assert.Equal(t, "<div __loc__=\"f.html:1\">\n\n<p __loc__=\"f.html:3\"\n>", out.String())
	assert.Equal(t, 4, tg.Line())
}

func TestReadAllPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := ReadAll(iotest.ErrReader(boom), "f.html", 16)
	assert.ErrorIs(t, err, boom)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>\n<b>"), 0644))

	got, err := ReadFile(path, 2)
	require.NoError(t, err)
	assert.Equal(t, "<p __loc__=\""+path+":1\">\n<b __loc__=\""+path+":2\">", string(got))

	_, err = ReadFile(filepath.Join(dir, "missing.html"), 0)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	for _, p := range []string{
		"index.html",
		"notes.txt",
		"views/a.htm",
		"views/B.HTML",
		"views/nested/c.html",
		".cache/hidden.html",
		"node_modules/lib/x.html",
		"vendor/v.html",
		"build/out.html",
	} {
		full := filepath.Join(dir, p)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("<p>"), 0644))
	}
	rel := func(paths []string) []string {
		out := make([]string, len(paths))
		for i, p := range paths {
			r, err := filepath.Rel(dir, p)
			require.NoError(t, err)
			out[i] = filepath.ToSlash(r)
		}
		return out
	}

	t.Run("directory walk skips hidden and dependency dirs", func(t *testing.T) {
		files, err := Expand([]string{dir}, WalkOptions{SkipHidden: true, SkipVendor: true, ExcludeDirs: []string{"build"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"index.html", "views/B.HTML", "views/a.htm", "views/nested/c.html"}, rel(files))
	})

	t.Run("default options keep excluded-by-name dirs", func(t *testing.T) {
		files, err := Expand([]string{dir}, DefaultWalkOptions)
		require.NoError(t, err)
		assert.Contains(t, rel(files), "build/out.html")
		assert.NotContains(t, rel(files), "vendor/v.html")
	})

	t.Run("globs and explicit files are de-duplicated", func(t *testing.T) {
		files, err := Expand([]string{
			filepath.Join(dir, "*.html"),
			filepath.Join(dir, "index.html"),
			filepath.Join(dir, "notes.txt"),
		}, DefaultWalkOptions)
		require.NoError(t, err)
		assert.Equal(t, []string{"index.html", "notes.txt"}, rel(files))
	})

	t.Run("unmatched pattern", func(t *testing.T) {
		_, err := Expand([]string{filepath.Join(dir, "*.jade")}, DefaultWalkOptions)
		assert.ErrorIs(t, err, ErrNoMatch)
	})

	t.Run("malformed pattern", func(t *testing.T) {
		_, err := Expand([]string{"["}, DefaultWalkOptions)
		assert.ErrorIs(t, err, filepath.ErrBadPattern)
	})
}
