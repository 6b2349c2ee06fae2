package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestGet_DevBuild(t *testing.T) {
	info := Get()
	if !info.IsDev() {
		t.Fatalf("expected dev build by default, got %q", info.Version)
	}
	if info.GoVersion != runtime.Version() {
		t.Fatalf("expected go version %q, got %q", runtime.Version(), info.GoVersion)
	}

	s := info.String()
	if !strings.HasPrefix(s, "greetbox/dev (commit: unknown") {
		t.Fatalf("unexpected dev string %q", s)
	}
}

func TestInfo_ReleaseString(t *testing.T) {
	info := Info{Version: "v1.2.0", OS: "linux", Arch: "amd64"}
	if info.IsDev() {
		t.Fatal("expected release build")
	}
	if got := info.String(); got != "greetbox/v1.2.0 (linux/amd64)" {
		t.Fatalf("unexpected release string %q", got)
	}
}
