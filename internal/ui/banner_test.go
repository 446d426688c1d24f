package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gravitrone/secop-lookup/internal/ui/components"
)

func TestSplitLinesSplitsOnNewlines(t *testing.T) {
	lines := splitLines("a\nb\nc")
	assert.Equal(t, []string{"a", "b", "c"}, lines)
}

func TestRenderBannerIncludesSubtitleAndNoOSC(t *testing.T) {
	out := RenderBanner()
	assert.NotContains(t, out, "\x1b]")

	clean := components.SanitizeText(out)
	assert.Contains(t, clean, "Datos abiertos de contratación pública")
	assert.Contains(t, clean, "─")
}

func TestRenderCompactBannerIsOneLine(t *testing.T) {
	clean := components.SanitizeText(RenderCompactBanner())
	assert.Contains(t, clean, "SECOP")
	assert.NotContains(t, clean, "\n")
}
