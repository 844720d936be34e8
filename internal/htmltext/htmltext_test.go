package htmltext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlatten(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"headings and paragraphs become lines",
			"<h1>Title</h1><p>Hello<br>World</p>",
			"Title\nHello\nWorld",
		},
		{
			"nested inline tags are stripped",
			"<p>Some <strong>bold</strong> and <em>italic</em> text</p>",
			"Some bold and italic text",
		},
		{
			"list items on separate lines",
			"<ul><li>First</li><li>Second</li></ul>",
			"First\nSecond",
		},
		{
			"entities decoded",
			"<p>Tom &amp; Jerry &lt;3&gt; &quot;quotes&quot; &#39;apos&#39;&nbsp;end</p>",
			"Tom & Jerry <3> \"quotes\" 'apos' end",
		},
		{
			"excess blank lines collapsed",
			"<p>One</p><p></p><p></p><p>Two</p>",
			"One\n\nTwo",
		},
		{
			"whitespace runs collapsed",
			"<p>spaced \t  out</p>",
			"spaced out",
		},
		{
			"plain text passes through",
			"just text",
			"just text",
		},
		{
			"empty input",
			"",
			"",
		},
		{
			"blockquote and div boundaries",
			"<div>intro</div><blockquote>quoted words</blockquote>",
			"intro\nquoted words",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Flatten(tt.input))
		})
	}
}

func TestContainsMarkup(t *testing.T) {
	assert.True(t, ContainsMarkup("<p>hi</p>"))
	assert.True(t, ContainsMarkup("before <br/> after"))
	assert.False(t, ContainsMarkup("plain text, no tags"))
	assert.False(t, ContainsMarkup("5 > 3 but 2 < 1 is false"))
	// bare comparison text still trips the tag pattern when brackets pair up
	assert.True(t, ContainsMarkup("a < b and b > c"))
}
