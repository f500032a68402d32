package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestRunExtension(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extensions are shell scripts in this test")
	}
	dir := t.TempDir()
	script := "#!/bin/sh\necho \"$IPRO_API_URL $IPRO_ACCOUNT $IPRO_CPF $*\"\nexit 3\n"
	if err := os.WriteFile(filepath.Join(dir, "ipro-hello"), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	var out bytes.Buffer
	defer swap[io.Writer](&stdout, &out)()
	defer swap(&apiURL, "http://backend:1")()
	defer swap(&accountFlag, int64(7))()
	defer swap(&cpfFlag, "11122233344")()

	found, code := RunExtension("hello", []string{"a", "b"})
	if !found {
		t.Fatal("RunExtension() did not find ipro-hello")
	}
	if code != 3 {
		t.Errorf("exit code = %d, want 3", code)
	}
	if got, want := strings.TrimSpace(out.String()), "http://backend:1 7 11122233344 a b"; got != want {
		t.Errorf("extension output = %q, want %q", got, want)
	}

	if found, _ := RunExtension("missing", nil); found {
		t.Error("RunExtension() found a missing extension")
	}
}
