package utils

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// inline styles, mail clients drop <style> blocks
var emailStyles = map[string]string{
	"h1":         "color:#166534;font-size:22px;margin:0 0 12px",
	"h2":         "color:#166534;font-size:18px;margin:16px 0 8px",
	"p":          "color:#1c1917;font-size:14px;line-height:1.6;margin:0 0 12px",
	"a":          "color:#15803d;text-decoration:underline",
	"blockquote": "border-left:3px solid #86efac;margin:0 0 12px;padding-left:12px;color:#57534e",
	"table":      "border-collapse:collapse;margin:0 0 12px",
	"td":         "border:1px solid #e7e5e4;padding:4px 8px",
	"th":         "border:1px solid #e7e5e4;padding:4px 8px;background:#f0fdf4",
}

// EmailHTML renders markdown into a sanitized HTML fragment with inline styles for mail clients.
func EmailHTML(markdown string) string {
	rendered := RenderMarkdown(markdown)
	if rendered == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rendered))
	if err != nil {
		return rendered
	}

	for tag, style := range emailStyles {
		doc.Find(tag).Each(func(i int, s *goquery.Selection) {
			s.SetAttr("style", style)
		})
	}

	// goquery renders full document tags if missing, we just want the body content
	out, _ := doc.Find("body").Html()
	if out == "" {
		out, _ = doc.Html()
	}
	return out
}
