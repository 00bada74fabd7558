package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// assetAttr names one attribute that can point at a local asset.
type assetAttr struct {
	namespace string
	key       string
}

// assetAttrs lists, per element, the attributes holding asset paths.
// Component markup uses img for every picture and svg image for overlays.
var assetAttrs = map[atom.Atom][]assetAttr{
	atom.Img:    {{key: "src"}},
	atom.A:      {{key: "href"}},
	atom.Source: {{key: "src"}},
	atom.Image:  {{key: "href"}, {namespace: "xlink", key: "href"}},
}

// nonLocalPrefixes mark values that never name a file under the source
// directory.
var nonLocalPrefixes = []string{"http://", "https://", "file://", "data:", "mailto:", "//", "#"}

// ResolveAssetPaths turns relative asset paths in htmlContent into file://
// URLs under baseDir, so the page still finds its images when the PDF step
// loads it from a temporary file. Values that are absolute, remote, anchors,
// or resolve outside baseDir are kept as written. An empty baseDir is a
// no-op.
func ResolveAssetPaths(htmlContent, baseDir string) (string, error) {
	if baseDir == "" {
		return htmlContent, nil
	}
	root, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	nodes, err := parseMarkup(htmlContent)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	for _, top := range nodes {
		for n := range top.Descendants() {
			if n.Type == html.ElementNode {
				anchorAssets(n, root)
			}
		}
		anchorAssets(top, root)
		if err := html.Render(&out, top); err != nil {
			return "", err
		}
	}
	return out.String(), nil
}

// parseMarkup returns the top-level nodes of content. A complete document
// comes back as one document node so its doctype survives. Anything else is
// parsed as body content, which keeps html.Parse from adding wrappers.
func parseMarkup(content string) ([]*html.Node, error) {
	head := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		if err != nil {
			return nil, err
		}
		return []*html.Node{doc}, nil
	}
	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	return html.ParseFragment(strings.NewReader(content), body)
}

func anchorAssets(n *html.Node, root string) {
	if n.Type != html.ElementNode {
		return
	}
	for _, want := range assetAttrs[n.DataAtom] {
		for i, a := range n.Attr {
			if a.Namespace != want.namespace || a.Key != want.key || !isRelativePath(a.Val) {
				continue
			}
			target := filepath.Join(root, a.Val)
			if isPathUnderDir(target, root) {
				n.Attr[i].Val = pathToFileURL(target)
			}
		}
	}
}

// isRelativePath reports whether path is a candidate for rewriting.
func isRelativePath(path string) bool {
	if path == "" || filepath.IsAbs(path) {
		return false
	}
	for _, p := range nonLocalPrefixes {
		if strings.HasPrefix(path, p) {
			return false
		}
	}
	return true
}

// isPathUnderDir reports whether target is dir or lies beneath it.
func isPathUnderDir(target, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(target))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// pathToFileURL encodes an absolute path as a file URL, with backslashes
// turned into slashes on Windows.
func pathToFileURL(absPath string) string {
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}).String()
}
