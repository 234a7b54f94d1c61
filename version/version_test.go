package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get("swift2", "swift3")
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
	assert.Equal(t, []string{"swift2", "swift3"}, info.Dialects)
}

func TestInfoString(t *testing.T) {
	info := Info{Version: "v0.3.0", CommitHash: "0123456789abcdef", BuildTime: "2026-10-01"}
	assert.Equal(t, "0123456", info.Short())
	assert.Equal(t, "amtool v0.3.0 (commit 0123456, built 2026-10-01)", info.String())

	info.CommitHash = "dev"
	assert.Equal(t, "dev", info.Short())
}
