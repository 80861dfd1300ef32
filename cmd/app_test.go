package cmd_test

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/maps"

	"github.com/leonardinius/golean/cmd"
)

const testDir = "testdata"

var expectedErrorPattern = regexp.MustCompile(`-- expect error: (.+)$`)
var reportedErrorPattern = regexp.MustCompile(`^ERROR \S+?:(\[line \d+:\d+\] .+)$`)

func runApp(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	out, errOut := new(strings.Builder), new(strings.Builder)
	app := cmd.NewLeanApp(cmd.WithStdout(out), cmd.WithStderr(errOut))
	code = app.Main(args)
	return code, out.String(), errOut.String()
}

func fixtures(t *testing.T) map[string][]string {
	t.Helper()
	require.DirExists(t, testDir)

	paths, err := filepath.Glob(filepath.Join(testDir, "*.lean"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	suite := map[string][]string{}
	for _, path := range paths {
		f, err := os.Open(path)
		require.NoError(t, err)

		expected := []string{}
		lines := bufio.NewScanner(f)
		for lines.Scan() {
			if m := expectedErrorPattern.FindStringSubmatch(lines.Text()); m != nil {
				expected = append(expected, m[1])
			}
		}
		require.NoError(t, lines.Err())
		require.NoError(t, f.Close())

		suite[path] = expected
	}
	return suite
}

func TestFixtures(t *testing.T) {
	t.Parallel()

	suite := fixtures(t)
	paths := maps.Keys(suite)
	sort.Strings(paths)

	for _, path := range paths {
		expected := suite[path]
		t.Run(filepath.Base(path), func(t *testing.T) {
			t.Parallel()
			code, stdout, stderr := runApp(t, path)

			var reported []string
			for _, line := range strings.Split(stderr, "\n") {
				if m := reportedErrorPattern.FindStringSubmatch(line); m != nil {
					reported = append(reported, m[1])
				}
			}

			assert.Empty(t, stdout)
			if len(expected) == 0 {
				assert.Equal(t, 0, code, stderr)
				assert.Empty(t, stderr)
				return
			}
			assert.Equal(t, 64, code)
			assert.Equal(t, expected, reported, stderr)
		})
	}
}

func TestExcerpt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(testDir, "unexpected_char.lean")
	code, _, stderr := runApp(t, path)

	assert.Equal(t, 64, code)
	assert.Equal(t,
		"ERROR "+path+":[line 2:9] unexpected character '#'\n"+
			"    def x := #1\n"+
			"             ^\n",
		stderr)
}

func TestMultipleFilesKeepChecking(t *testing.T) {
	t.Parallel()

	code, _, stderr := runApp(t,
		filepath.Join(testDir, "unterminated_string.lean"),
		filepath.Join(testDir, "ok.lean"),
		filepath.Join(testDir, "unexpected_char.lean"),
	)

	assert.Equal(t, 64, code)
	assert.Contains(t, stderr, "unterminated string")
	assert.Contains(t, stderr, "unexpected character '#'")
}

func TestConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "golean.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("exit_code: 3\nreport:\n  prefix: E\n  excerpt: false\n"), 0o600))

	path := filepath.Join(testDir, "unexpected_char.lean")
	code, _, stderr := runApp(t, "--config", cfgPath, path)

	assert.Equal(t, 3, code)
	assert.Equal(t, "E "+path+":[line 2:9] unexpected character '#'\n", stderr)
}

func TestInvalidConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "golean.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("unknown: 1\n"), 0o600))

	code, _, stderr := runApp(t, "-c", cfgPath, filepath.Join(testDir, "ok.lean"))

	assert.Equal(t, 64, code)
	assert.Contains(t, stderr, "ERROR config "+cfgPath)
	assert.Contains(t, stderr, "field unknown not found")
}

func TestUsageErrors(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name string
		args []string
		err  string
	}{
		{"missing file", []string{filepath.Join(testDir, "missing.lean")}, "does not exist"},
		{"unknown flag", []string{"--nope"}, "unknown long flag '--nope'"},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			code, _, stderr := runApp(t, tc.args...)
			assert.Equal(t, 64, code)
			assert.True(t, strings.HasPrefix(stderr, "ERROR "), stderr)
			assert.Contains(t, stderr, tc.err)
		})
	}
}

func TestHelp(t *testing.T) {
	t.Parallel()

	code, _, stderr := runApp(t, "--help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "golean")
	assert.Contains(t, stderr, "-w, --[no-]watch")
	assert.Contains(t, stderr, "Watch files for changes")
}

func TestPrompt(t *testing.T) {
	t.Parallel()

	in := io.NopCloser(strings.NewReader("def f (x) := x\n)\n\"open\n"))
	out, errOut := new(strings.Builder), new(strings.Builder)
	app := cmd.NewLeanApp(cmd.WithStdin(in), cmd.WithStdout(out), cmd.WithStderr(errOut))

	code := app.Main(nil)

	assert.Equal(t, 0, code, errOut.String())
	assert.Equal(t, "def f (paren x) := x\n", out.String())

	stderr := errOut.String()
	closer := "ERROR [line 1:0] unexpected closing delimiter ')'\n    )\n    ^\n"
	unterminated := "ERROR [line 1:0] unterminated string\n    \"open\n    ^\n"
	assert.Contains(t, stderr, closer)
	assert.Contains(t, stderr, unterminated)
	assert.Less(t, strings.Index(stderr, closer), strings.Index(stderr, unterminated), "errors reported in input order")
}
