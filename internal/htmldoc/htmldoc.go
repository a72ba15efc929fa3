// Package htmldoc extracts the handful of page elements the check-in flow
// depends on: hidden form inputs and anchors found by their visible label.
// It wraps golang.org/x/net/html so callers never touch the node tree directly.
package htmldoc

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	apperrors "github.com/Safenein/moodle-painkillers/internal/errors"
)

// Parse parses an HTML document from r. The parser is lenient and mirrors
// browser behavior, so malformed markup still yields a usable tree.
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// HiddenInputValue returns the value attribute of the first
// <input type="hidden" name="..."> element matching name, in document order.
// A missing element or a matching element without a value attribute yields a
// FieldNotFound error.
func HiddenInputValue(doc *html.Node, name string) (string, error) {
	if doc == nil {
		return "", apperrors.Internal("hidden input lookup on nil document")
	}
	if name == "" {
		return "", apperrors.Internal("hidden input lookup with empty name")
	}

	input := findElement(doc, func(n *html.Node) bool {
		if n.Data != "input" {
			return false
		}
		typ, _ := attrValue(n, "type")
		if typ != "hidden" {
			return false
		}
		got, _ := attrValue(n, "name")
		return got == name
	})
	if input == nil {
		return "", apperrors.FieldNotFoundf(name, "Could not find the %q field on the page.", name)
	}

	value, ok := attrValue(input, "value")
	if !ok {
		return "", apperrors.FieldNotFoundf(name, "The %q field on the page has no value.", name)
	}
	return value, nil
}

// AnchorHref returns the href of the first anchor whose visible text equals
// label after trimming surrounding whitespace. Text is gathered across nested
// elements, so labels wrapped in spans still match. A missing anchor or an
// anchor without an href yields a FieldNotFound error.
func AnchorHref(doc *html.Node, label string) (string, error) {
	if doc == nil {
		return "", apperrors.Internal("anchor lookup on nil document")
	}
	if label == "" {
		return "", apperrors.Internal("anchor lookup with empty label")
	}

	anchor := findElement(doc, func(n *html.Node) bool {
		return n.Data == "a" && strings.TrimSpace(textContent(n)) == label
	})
	if anchor == nil {
		return "", apperrors.FieldNotFoundf(label, "Could not find the %q link on the page.", label)
	}

	href, ok := attrValue(anchor, "href")
	if !ok || href == "" {
		return "", apperrors.FieldNotFoundf(label, "The %q link on the page has no destination.", label)
	}
	return href, nil
}

// findElement walks the tree depth-first and returns the first element node
// accepted by match, in document order.
func findElement(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, match); found != nil {
			return found
		}
	}
	return nil
}

// attrValue returns the value of the named attribute and whether it was present.
// Attribute keys are lowercased by the tokenizer, so lookups use lowercase names.
func attrValue(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// textContent concatenates every text node under n, in document order.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
