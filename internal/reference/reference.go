// Package reference mints order references, ticket references and boarding
// codes.
//
// An order reference is SR-<sequence>-<4 letters> where the sequence is the
// number of orders already stored plus one. The count is read without any
// lock, so two concurrent checkouts can share a sequence; the letter suffix is
// the only thing keeping them apart. When the store cannot be used, a
// timestamp stands in for the sequence: SR-T<base36 millis>-<4 letters>.
package reference

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/fjod/swiftrail/domain"
)

const (
	Prefix = "SR"

	// Uppercase letters without I and O.
	Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ"

	suffixLen      = 4
	fallbackMarker = "T"
)

type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewGenerator() *Generator {
	return NewGeneratorWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewGeneratorWithSource is used by tests to get repeatable output.
func NewGeneratorWithSource(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// OrderReference builds the normal reference from the stored order count.
func (g *Generator) OrderReference(existingOrderCount int64) string {
	return fmt.Sprintf("%s-%d-%s", Prefix, existingOrderCount+1, g.letters(suffixLen))
}

// FallbackOrderReference is used when the order count or the order insert
// failed.
func (g *Generator) FallbackOrderReference(now time.Time) string {
	seq := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	return fmt.Sprintf("%s-%s%s-%s", Prefix, fallbackMarker, seq, g.letters(suffixLen))
}

// IsFallback reports whether ref was produced by FallbackOrderReference.
func IsFallback(ref string) bool {
	return strings.HasPrefix(ref, Prefix+"-"+fallbackMarker)
}

// TicketReference appends the 1-based ticket index, zero padded to 3 digits.
func TicketReference(orderRef string, index int) string {
	return fmt.Sprintf("%s-%03d", orderRef, index)
}

// BoardingCode concatenates departure and arrival initials, the compact date,
// the train reference, the last 4 characters of the ticket reference and a
// 4 digit verification code.
func (g *Generator) BoardingCode(ticketRef string, trip domain.Trip) string {
	var b strings.Builder
	b.WriteString(Initials(trip.Departure))
	b.WriteString(Initials(trip.Arrival))
	b.WriteString(strings.ReplaceAll(trip.Date, "-", ""))
	b.WriteString(compact(trip.TrainRef))
	b.WriteString(lastN(ticketRef, 4))
	b.WriteString(fmt.Sprintf("%04d", g.intn(10000)))
	return b.String()
}

// Initials returns two uppercase letters for a city: the first letters of its
// first two words, or the first two letters of a single word. Short names are
// padded with X.
func Initials(city string) string {
	words := strings.FieldsFunc(city, func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	var letters []rune
	switch {
	case len(words) >= 2:
		letters = []rune{[]rune(words[0])[0], []rune(words[1])[0]}
	case len(words) == 1:
		letters = []rune(words[0])
	}

	out := make([]rune, 0, 2)
	for _, r := range letters {
		if len(out) == 2 {
			break
		}
		out = append(out, unicode.ToUpper(r))
	}
	for len(out) < 2 {
		out = append(out, 'X')
	}
	return string(out)
}

func (g *Generator) letters(n int) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	b := make([]byte, n)
	for i := range b {
		b[i] = Alphabet[g.rnd.Intn(len(Alphabet))]
	}
	return string(b)
}

func (g *Generator) intn(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rnd.Intn(n)
}

func compact(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToUpper(r)
		}
		return -1
	}, s)
}

func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
