package reference

import (
	"math/rand"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/fjod/swiftrail/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	orderRefRe    = regexp.MustCompile(`^SR-(\d+)-([A-HJ-NP-Z]{4})$`)
	fallbackRefRe = regexp.MustCompile(`^SR-T[0-9A-Z]+-[A-HJ-NP-Z]{4}$`)
)

func newTestGenerator() *Generator {
	return NewGeneratorWithSource(rand.NewSource(42))
}

func TestOrderReference_Format(t *testing.T) {
	g := newTestGenerator()

	ref := g.OrderReference(41)

	m := orderRefRe.FindStringSubmatch(ref)
	require.NotNil(t, m, "unexpected reference %q", ref)
	assert.Equal(t, "42", m[1])
	assert.False(t, IsFallback(ref))
}

func TestOrderReference_NoAmbiguousLetters(t *testing.T) {
	g := newTestGenerator()
	for i := 0; i < 500; i++ {
		ref := g.OrderReference(int64(i))
		suffix := ref[strings.LastIndex(ref, "-")+1:]
		assert.NotContains(t, suffix, "I")
		assert.NotContains(t, suffix, "O")
	}
}

func TestFallbackOrderReference(t *testing.T) {
	g := newTestGenerator()
	now := time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)

	ref := g.FallbackOrderReference(now)

	assert.Regexp(t, fallbackRefRe, ref)
	assert.True(t, IsFallback(ref))
	assert.False(t, orderRefRe.MatchString(ref))
}

func TestTicketReference(t *testing.T) {
	assert.Equal(t, "SR-7-ABCD-001", TicketReference("SR-7-ABCD", 1))
	assert.Equal(t, "SR-7-ABCD-012", TicketReference("SR-7-ABCD", 12))
	assert.Equal(t, "SR-7-ABCD-123", TicketReference("SR-7-ABCD", 123))
}

func TestBoardingCode_Layout(t *testing.T) {
	g := newTestGenerator()
	trip := domain.Trip{
		TrainRef:  "TGV123",
		Departure: "Paris Gare de Lyon",
		Arrival:   "Lyon Part-Dieu",
		Date:      "2025-04-10",
	}

	code := g.BoardingCode("SR-7-ABCD-001", trip)

	assert.Regexp(t, regexp.MustCompile(`^PGLP20250410TGV123-001\d{4}$`), code)
}

func TestInitials(t *testing.T) {
	cases := map[string]string{
		"Paris":              "PA",
		"Paris Gare de Lyon": "PG",
		"lyon part-dieu":     "LP",
		"Aix-en-Provence":    "AE",
		"Y":                  "YX",
		"":                   "XX",
		"Saint-Étienne":      "SÉ",
	}
	for city, want := range cases {
		assert.Equal(t, want, Initials(city), city)
	}
}

func TestGenerator_SeededIsRepeatable(t *testing.T) {
	a := newTestGenerator()
	b := newTestGenerator()
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.OrderReference(int64(i)), b.OrderReference(int64(i)))
	}
}
