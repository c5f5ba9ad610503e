package payload_test

import (
	"testing"

	"github.com/sootra/accessibility-app/internal/payload"
	"github.com/stretchr/testify/assert"
)

func TestCheckWellFormed(t *testing.T) {
	testCases := []struct {
		Name          string
		HTML          string
		ExpectError   bool
		ErrorContains string
	}{
		{
			Name: "document",
			HTML: "<!DOCTYPE html><html lang=\"en\"><head><title>T</title></head><body><h1>T</h1></body></html>",
		},
		{
			Name: "void_elements",
			HTML: "<div><img src=\"a.png\" alt=\"a\"><br><input type=\"text\"></div>",
		},
		{
			Name: "self_closing",
			HTML: "<div><br/><img src=\"a.png\"/></div>",
		},
		{
			Name: "optional_end_tags",
			HTML: "<ul><li>one<li>two</ul><p>para",
		},
		{
			Name: "nested_same_element",
			HTML: "<div><div>inner</div></div>",
		},
		{
			Name: "script_with_markup",
			HTML: "<html><body><script>if (a < b) { document.write('<h1>'); }</script></body></html>",
		},
		{
			Name: "comment",
			HTML: "<div><!-- <span> --></div>",
		},
		{
			Name:          "unclosed",
			HTML:          "<html><body><h1>Invalid HTML without closing tags",
			ExpectError:   true,
			ErrorContains: "<h1>, <body>, <html>",
		},
		{
			Name:          "mismatched",
			HTML:          "<div><span>text</div>",
			ExpectError:   true,
			ErrorContains: "<span> is still open",
		},
		{
			Name:          "stray_closing_tag",
			HTML:          "<div>text</div></section>",
			ExpectError:   true,
			ErrorContains: "unexpected closing tag </section>",
		},
		{
			Name:          "no_elements",
			HTML:          "plain text",
			ExpectError:   true,
			ErrorContains: "no HTML elements",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			err := payload.CheckWellFormed(tc.HTML)
			if !tc.ExpectError {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tc.ErrorContains)
			}
		})
	}
}
