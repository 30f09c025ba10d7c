package views_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/mybank/internal/client/views"
)

func TestSanitizeAmount(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"12", "12"},
		{"12.5", "12.5"},
		{"12.999", "12.99"},
		{"$1,250.75", "1250.75"},
		{"1.2.3", "1.23"},
		{"1.2.3.4", "1.23"},
		{"..5", ".5"},
		{"abc", ""},
		{"-40", "40"},
		{"7.", "7."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, views.SanitizeAmount(tt.in), tt.in)
	}
}

func TestSanitizeDigits(t *testing.T) {
	assert.Equal(t, "123456789", views.SanitizeDigits("123-456 789"))
	assert.Equal(t, "", views.SanitizeDigits("abc"))
	assert.Equal(t, "42", views.SanitizeDigits("#42"))
	assert.Equal(t, "", views.SanitizeDigits("٣"))
}

const fuzzAlphabet = "0123456789..,-+$ abcxyz٣€"

func randomInput(r *rand.Rand) string {
	alphabet := []rune(fuzzAlphabet)
	n := r.Intn(16)
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteRune(alphabet[r.Intn(len(alphabet))])
	}
	return b.String()
}

func TestSanitizeAmount_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	for i := 0; i < 2000; i++ {
		in := randomInput(r)
		out := views.SanitizeAmount(in)

		assert.LessOrEqual(t, strings.Count(out, "."), 1, in)
		for _, c := range out {
			assert.True(t, c == '.' || (c >= '0' && c <= '9'), "%q -> %q", in, out)
		}
		if dot := strings.IndexByte(out, '.'); dot >= 0 {
			assert.LessOrEqual(t, len(out)-dot-1, 2, "%q -> %q", in, out)
		}
		assert.Equal(t, out, views.SanitizeAmount(out), "not idempotent for %q", in)
	}
}

func TestSanitizeDigits_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(2))

	for i := 0; i < 2000; i++ {
		in := randomInput(r)
		out := views.SanitizeDigits(in)
		for _, c := range out {
			assert.True(t, c >= '0' && c <= '9', "%q -> %q", in, out)
		}
		assert.Equal(t, out, views.SanitizeDigits(out))
	}
}

func TestInput_TypeAndPaste(t *testing.T) {
	in := views.NewInput(views.InputAmount)
	in.Enter("12.999")
	assert.Equal(t, "12.99", in.Value())

	in.Type('5')
	assert.Equal(t, "12.99", in.Value())

	in.Paste("abc 3.14159")
	assert.Equal(t, "3.14", in.Value())

	in.Reset()
	assert.Equal(t, "", in.Value())

	id := views.NewInput(views.InputDigits)
	id.Enter("4x2")
	assert.Equal(t, "42", id.Value())
	id.Paste("#7 ")
	assert.Equal(t, "7", id.Value())
}
