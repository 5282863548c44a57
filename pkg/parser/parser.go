// Package parser turns raw HTML into plain text suitable for tokenization.
package parser

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// VisibleText removes every element named in denyTags (and everything inside it),
// then joins the remaining text nodes with single spaces and collapses whitespace.
// Comments and doctype nodes never contribute text.
func VisibleText(rawHTML string, denyTags []string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	for _, tag := range denyTags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		doc.Find(tag).Remove()
	}

	var parts []string
	for _, n := range doc.Nodes {
		collectText(n, &parts)
	}
	return CollapseWhitespace(strings.Join(parts, " ")), nil
}

// ReadableText distills the main article with go-readability and then applies the
// same deny-list cleaning as VisibleText to the distilled markup.
func ReadableText(rawURL, rawHTML string, denyTags []string) (string, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse URL: %w", err)
	}

	readabilityParser := readability.NewParser()
	article, err := readabilityParser.Parse(strings.NewReader(rawHTML), parsedURL)
	if err != nil {
		return "", fmt.Errorf("failed to distill article: %w", err)
	}

	text, err := VisibleText(article.Content, denyTags)
	if err != nil {
		return "", err
	}
	if title := CollapseWhitespace(article.Title); title != "" && !strings.HasPrefix(text, title) {
		text = strings.TrimSpace(title + " " + text)
	}
	return text, nil
}

// CollapseWhitespace trims s and replaces every whitespace run with one space.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func collectText(n *html.Node, parts *[]string) {
	switch n.Type {
	case html.TextNode:
		*parts = append(*parts, n.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}
