package helpers_test

import (
	"testing"

	"github.com/sootra/accessibility-app/internal/helpers"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	testCases := []struct {
		Name     string
		Input    string
		Length   int
		Expected string
	}{
		{
			Name:     "short",
			Input:    "abc",
			Length:   10,
			Expected: "abc",
		},
		{
			Name:     "exact",
			Input:    "abcdef",
			Length:   6,
			Expected: "abcdef",
		},
		{
			Name:     "ascii",
			Input:    "abcdefghij",
			Length:   6,
			Expected: "abc...",
		},
		{
			Name:     "multibyte",
			Input:    "ééééé",
			Length:   6,
			Expected: "é...",
		},
		{
			Name:     "tiny_limit",
			Input:    "abcdef",
			Length:   2,
			Expected: "..",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, helpers.Truncate(tc.Input, tc.Length))
		})
	}
}
