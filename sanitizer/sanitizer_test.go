package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizerPolicies(t *testing.T) {
	testCases := []struct {
		name     string
		policy   PolicyPreset
		input    string
		expected string
	}{
		{
			name:     "raw passes through",
			policy:   PolicyRaw,
			input:    "hello\x00world\n",
			expected: "hello\x00world\n",
		},
		{
			name:     "terminal hex encodes null byte",
			policy:   PolicyTerminal,
			input:    "test\x00data",
			expected: "test<00>data",
		},
		{
			name:     "terminal hex encodes escape sequences",
			policy:   PolicyTerminal,
			input:    "red\x1b[31m",
			expected: "red<1b>[31m",
		},
		{
			name:     "terminal hex encodes multi-byte control",
			policy:   PolicyTerminal,
			input:    "line1\u0085line2",
			expected: "line1<c285>line2",
		},
		{
			name:     "terminal preserves UTF-8",
			policy:   PolicyTerminal,
			input:    "Hello 世界 ✓",
			expected: "Hello 世界 ✓",
		},
		{
			name:     "json escapes newline and tab",
			policy:   PolicyJSON,
			input:    "a\nb\tc",
			expected: `a\nb\tc`,
		},
		{
			name:     "syslog escapes parameter delimiters",
			policy:   PolicySyslog,
			input:    `a"b]c\d`,
			expected: `a\"b\]c\\d`,
		},
		{
			name:     "syslog hex encodes control characters",
			policy:   PolicySyslog,
			input:    "x\ny",
			expected: "x<0a>y",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := New().Policy(tc.policy)
			assert.Equal(t, tc.expected, s.Sanitize(tc.input))
		})
	}
}

func TestSanitizerCustomRules(t *testing.T) {
	t.Run("strip whitespace", func(t *testing.T) {
		s := New().Rule(FilterWhitespace, TransformStrip)
		assert.Equal(t, "nospaces", s.Sanitize("no spaces\t"))
	})

	t.Run("first matching rule wins", func(t *testing.T) {
		s := New().
			Rule(FilterControl, TransformStrip).
			Rule(FilterNonPrintable, TransformHexEncode)
		assert.Equal(t, "ab", s.Sanitize("a\x07b"))
	})

	t.Run("unknown policy is ignored", func(t *testing.T) {
		s := New().Policy("unknown")
		assert.Equal(t, "a\x00", s.Sanitize("a\x00"))
	})
}

func TestSerializer(t *testing.T) {
	t.Run("compact quotes when needed", func(t *testing.T) {
		se := NewSerializer("compact", New())
		var buf []byte
		se.WriteString(&buf, "plain")
		buf = append(buf, ' ')
		se.WriteString(&buf, "two words")
		buf = append(buf, ' ')
		se.WriteString(&buf, "")
		assert.Equal(t, `plain "two words" ""`, string(buf))
	})

	t.Run("json nil and bool", func(t *testing.T) {
		se := NewSerializer("json", New())
		var buf []byte
		se.WriteNil(&buf)
		buf = append(buf, ',')
		se.WriteBool(&buf, true)
		assert.Equal(t, "null,true", string(buf))
	})

	t.Run("json replaces invalid utf-8", func(t *testing.T) {
		se := NewSerializer("json", New())
		var buf []byte
		se.WriteString(&buf, "a\xffb")
		assert.Equal(t, "\"a�b\"", string(buf))
	})

	t.Run("full dumps composite values on one line", func(t *testing.T) {
		se := NewSerializer("full", New())
		var buf []byte
		se.WriteComplex(&buf, struct {
			A int
			B []string
		}{A: 1, B: []string{"x"}})
		assert.Contains(t, string(buf), "A:1")
		assert.Contains(t, string(buf), "x")
		assert.NotContains(t, string(buf), "\n")
	})
}
