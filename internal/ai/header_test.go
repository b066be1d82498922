package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHeader_ExactFormat(t *testing.T) {
	meta := HeaderMeta{
		Title:         "Borehole",
		GeneratedAt:   time.Date(2026, 3, 1, 9, 5, 59, 0, time.UTC),
		ContactEmail:  "a@b.co",
		MobileNumber:  "255712345678",
		ProjectType:   "Agriculture",
		Budget:        1500000,
		DurationWeeks: 12,
	}

	expected := "# Borehole\n\n" +
		"**Generated on:** 2026-03-01 09:05 UTC\n" +
		"**Prepared by:** a@b.co | 255712345678\n" +
		"**Project Type:** Agriculture\n" +
		"**Budget:** Tsh1,500,000.00\n" +
		"**Duration:** 12 weeks\n\n---\n\n"

	assert.Equal(t, expected, RenderHeader(meta))
}

func TestRenderHeader_WithoutMobile(t *testing.T) {
	header := RenderHeader(HeaderMeta{
		Title:         "Borehole",
		GeneratedAt:   time.Date(2026, 3, 1, 9, 5, 0, 0, time.UTC),
		ContactEmail:  "a@b.co",
		ProjectType:   "Agriculture",
		Budget:        0.01,
		DurationWeeks: 1,
	})

	assert.Contains(t, header, "**Prepared by:** a@b.co\n")
	assert.Contains(t, header, "**Budget:** Tsh0.01\n")
	assert.Contains(t, header, "**Duration:** 1 weeks")
}

func TestRenderHeader_ConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("EAT", 3*60*60)
	header := RenderHeader(HeaderMeta{
		Title:       "Borehole",
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, loc),
	})

	assert.Contains(t, header, "**Generated on:** 2026-03-01 09:00 UTC\n")
}

func TestParseHeader_RoundTrip(t *testing.T) {
	meta := HeaderMeta{
		Title:         "Fish Market Cold Room",
		GeneratedAt:   time.Date(2026, 10, 15, 14, 30, 0, 0, time.UTC),
		ContactEmail:  "owner@example.com",
		MobileNumber:  "255700000000",
		ProjectType:   "Fishing",
		Budget:        12345678.9,
		DurationWeeks: 30,
	}
	body := "## Project Description\n\nCold storage for the market.\n"

	parsed, rest, err := ParseHeader(RenderHeader(meta) + body)
	require.NoError(t, err)

	assert.Equal(t, meta.Title, parsed.Title)
	assert.True(t, meta.GeneratedAt.Equal(parsed.GeneratedAt))
	assert.Equal(t, "owner@example.com | 255700000000", parsed.PreparedBy)
	assert.Equal(t, meta.ProjectType, parsed.ProjectType)
	assert.Equal(t, "Tsh12,345,678.90", parsed.Budget)
	assert.Equal(t, "30 weeks", parsed.Duration)
	assert.Equal(t, 30, parsed.DurationWeeks)
	assert.Equal(t, body, rest)
}

func TestParseHeader_Malformed(t *testing.T) {
	cases := map[string]string{
		"без разделителя":  "# Title\n\nplain text",
		"без заголовка":    "Title\n\n**Generated on:** x\n\n---\n\nbody",
		"неверная дата":    "# T\n\n**Generated on:** yesterday\n**Prepared by:** a\n**Project Type:** b\n**Budget:** c\n**Duration:** 1 weeks\n\n---\n\n",
		"неверный срок":    "# T\n\n**Generated on:** 2026-01-01 10:00 UTC\n**Prepared by:** a\n**Project Type:** b\n**Budget:** c\n**Duration:** many\n\n---\n\n",
		"перепутаны метки": "# T\n\n**Prepared by:** a\n**Generated on:** 2026-01-01 10:00 UTC\n**Project Type:** b\n**Budget:** c\n**Duration:** 1 weeks\n\n---\n\n",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := ParseHeader(content)
			assert.ErrorIs(t, err, ErrMalformedHeader)
		})
	}
}
