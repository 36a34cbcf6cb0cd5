package html

import (
	"strings"
	"testing"

	"github.com/arborfw/arbor/pkg/vango/vdom"
)

func TestHTMLApplier_TextNodes(t *testing.T) {
	tests := []struct {
		name     string
		node     *vdom.VNode
		expected string
	}{
		{
			name:     "simple text",
			node:     vdom.NewText("Hello World"),
			expected: "Hello World",
		},
		{
			name:     "text with HTML entities",
			node:     vdom.NewText("<script>alert('xss')</script>"),
			expected: "&lt;script&gt;alert(&#39;xss&#39;)&lt;/script&gt;",
		},
		{
			name:     "text with quotes",
			node:     vdom.NewText(`"Hello" & 'World'`),
			expected: "&#34;Hello&#34; &amp; &#39;World&#39;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := RenderToString(tt.node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("RenderToString() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestHTMLApplier_Elements(t *testing.T) {
	tests := []struct {
		name     string
		node     *vdom.VNode
		expected string
	}{
		{
			name:     "empty div",
			node:     vdom.NewElement("div", nil),
			expected: "<div></div>",
		},
		{
			name:     "div with text",
			node:     vdom.NewElement("div", nil, vdom.NewText("Hello")),
			expected: "<div>Hello</div>",
		},
		{
			name: "div with attributes",
			node: vdom.NewElement("div", vdom.Props{
				{Key: "class", Value: "container"},
				{Key: "id", Value: "main"},
			}),
			expected: `<div class="container" id="main"></div>`,
		},
		{
			name: "nested elements",
			node: vdom.NewElement("div", nil,
				vdom.NewElement("p", nil, vdom.NewText("Paragraph 1")),
				vdom.NewElement("p", nil, vdom.NewText("Paragraph 2")),
			),
			expected: "<div><p>Paragraph 1</p><p>Paragraph 2</p></div>",
		},
		{
			name: "void element",
			node: vdom.NewElement("img", vdom.Props{
				{Key: "src", Value: "image.jpg"},
				{Key: "alt", Value: "Test Image"},
			}),
			expected: `<img src="image.jpg" alt="Test Image">`,
		},
		{
			name: "boolean attributes",
			node: vdom.NewElement("input", vdom.Props{
				{Key: "type", Value: "checkbox"},
				{Key: "checked", Value: true},
				{Key: "disabled", Value: false},
			}),
			expected: `<input type="checkbox" checked>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := RenderToString(tt.node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			
			// Props are an ordered slice, so attributes render in declared order
			if !htmlEquals(result, tt.expected) {
				t.Errorf("RenderToString() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestHTMLApplier_EventHandlers(t *testing.T) {
	tests := []struct {
		name          string
		node          *vdom.VNode
		shouldHaveHID bool
	}{
		{
			name: "element with onClick",
			node: vdom.NewElement("button", vdom.Props{
				{Key: "onClick", Value: "handleClick"},
			}, vdom.NewText("Click me")),
			shouldHaveHID: true,
		},
		{
			name: "element without events",
			node: vdom.NewElement("div", vdom.Props{
				{Key: "class", Value: "container"},
			}),
			shouldHaveHID: false,
		},
		{
			name: "element with multiple events",
			node: vdom.NewElement("input", vdom.Props{
				{Key: "type", Value: "text"},
				{Key: "onChange", Value: "handleChange"},
				{Key: "onBlur", Value: "handleBlur"},
			}),
			shouldHaveHID: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := RenderToString(tt.node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			
			hasHID := strings.Contains(result, "data-hid=")
			if hasHID != tt.shouldHaveHID {
				t.Errorf("Expected hydration ID: %v, got: %v in %q", 
					tt.shouldHaveHID, hasHID, result)
			}
			
			// Verify event handlers are not in the output
			if strings.Contains(result, "onClick") || 
			   strings.Contains(result, "onChange") || 
			   strings.Contains(result, "onBlur") {
				t.Errorf("Event handlers should not be in HTML output: %q", result)
			}
		})
	}
}

func TestHTMLApplier_Fragments(t *testing.T) {
	node := vdom.NewFragment(
		vdom.NewElement("h1", nil, vdom.NewText("Title")),
		vdom.NewElement("p", nil, vdom.NewText("Content")),
	)
	
	expected := "<h1>Title</h1><p>Content</p>"
	result, err := RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	
	if result != expected {
		t.Errorf("RenderToString() = %q, want %q", result, expected)
	}
}

func TestHTMLApplier_Portals(t *testing.T) {
	node := vdom.NewPortal("#modal-root",
		vdom.NewElement("div", vdom.Props{{Key: "class", Value: "modal"}},
			vdom.NewText("Modal content"),
		),
	)

	result, err := RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(result, `data-arbor-portal="#modal-root"`) {
		t.Errorf("Portal should have data-arbor-portal attribute: %q", result)
	}
	
	if !strings.Contains(result, `style="display:none"`) {
		t.Errorf("Portal placeholder should be hidden: %q", result)
	}
}

func TestHTMLApplier_XSSPrevention(t *testing.T) {
	tests := []struct {
		name     string
		node     *vdom.VNode
		notWant  string // should NOT contain this
	}{
		{
			name: "script in text",
			node: vdom.NewElement("div", nil,
				vdom.NewText("<script>alert('xss')</script>"),
			),
			notWant: "<script>",
		},
		{
			name: "script in attribute",
			node: vdom.NewElement("div", vdom.Props{
				{Key: "title", Value: `<script>alert('xss')</script>`},
			}),
			notWant: "<script>",
		},
		{
			name: "javascript URL",
			node: vdom.NewElement("a", vdom.Props{
				{Key: "href", Value: "javascript:alert('xss')"},
			}, vdom.NewText("Link")),
			notWant: "javascript:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := RenderToString(tt.node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			
			if strings.Contains(result, tt.notWant) {
				t.Errorf("Result should not contain %q, got: %q", tt.notWant, result)
			}
		})
	}
}

func TestHTMLApplier_ComplexTree(t *testing.T) {
	// Build a more complex tree
	node := vdom.NewElement("html", nil,
		vdom.NewElement("head", nil,
			vdom.NewElement("title", nil, vdom.NewText("Test Page")),
			vdom.NewElement("meta", vdom.Props{
				{Key: "charset", Value: "utf-8"},
			}),
		),
		vdom.NewElement("body", nil,
			vdom.NewElement("header", nil,
				vdom.NewElement("h1", nil, vdom.NewText("Welcome")),
			),
			vdom.NewElement("main", nil,
				vdom.NewElement("article", nil,
					vdom.NewElement("h2", nil, vdom.NewText("Article Title")),
					vdom.NewElement("p", nil, 
						vdom.NewText("This is "),
						vdom.NewElement("strong", nil, vdom.NewText("important")),
						vdom.NewText(" content."),
					),
				),
			),
			vdom.NewElement("footer", nil,
				vdom.NewText("© 2025"),
			),
		),
	)
	
	result, err := RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	
	// Just verify it contains key elements
	expectedContains := []string{
		"<html>",
		"</html>",
		"<title>Test Page</title>",
		`<meta charset="utf-8">`,
		"<h1>Welcome</h1>",
		"<strong>important</strong>",
		"© 2025",
	}
	
	for _, expected := range expectedContains {
		if !strings.Contains(result, expected) {
			t.Errorf("Result should contain %q, got: %q", expected, result)
		}
	}
}

// Helper function to compare HTML strings, ignoring surrounding whitespace
func htmlEquals(a, b string) bool {
	return strings.TrimSpace(a) == strings.TrimSpace(b)
}