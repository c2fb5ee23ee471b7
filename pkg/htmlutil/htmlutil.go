package htmlutil

import (
	"bytes"

	"golang.org/x/net/html"
)

// GetText returns the concatenated contents of every text node under `node`.
// For raw text elements like <script> this is the unescaped payload.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// GetAttr returns the value of the attribute `key` on `node`.
func GetAttr(node *html.Node, key string) (string, bool) {
	if node == nil {
		return "", false
	}
	for _, a := range node.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
