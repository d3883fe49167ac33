// Package htmlsanitizer cleans HTML with an allow-list policy.
//
// Sanitize keeps editor markup (headings, lists, tables, links, images and
// basic formatting). SanitizeStrict keeps only prose emphasis and lists and no
// attributes, for content coming from untrusted users.
//
// Whatever the allow-list, constructs that can execute script never survive:
// script-like elements, event handler attributes and javascript: URLs are
// always removed.
package htmlsanitizer

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Config is the allow-list used by Sanitize.
// A nil slice keeps the default list; a non-nil slice replaces it.
type Config struct {
	// AllowedTags lists the element names kept in the output.
	AllowedTags []string

	// AllowedAttrs lists the attribute names kept on any allowed element.
	AllowedAttrs []string

	// AllowDataAttr keeps data-* attributes.
	//
	// Optional. Default: false
	AllowDataAttr bool

	// AllowedURISchemes lists the schemes accepted in href and src.
	// Relative URLs are always accepted.
	AllowedURISchemes []string
}

// ConfigDefault is the permissive editor configuration.
var ConfigDefault = Config{ //nolint:gochecknoglobals
	AllowedTags: []string{
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p", "br", "hr", "div", "span", "blockquote", "pre", "code",
		"b", "strong", "i", "em", "u", "s", "strike", "sub", "sup", "small", "mark",
		"ul", "ol", "li",
		"table", "thead", "tbody", "tfoot", "tr", "th", "td", "caption", "colgroup", "col",
		"a", "img",
	},
	AllowedAttrs: []string{
		"href", "src", "alt", "title", "style", "class", "target", "rel",
		"width", "height", "align", "valign",
		"colspan", "rowspan", "border", "cellpadding", "cellspacing",
	},
	AllowDataAttr:     false,
	AllowedURISchemes: []string{"http", "https", "mailto"},
}

// ConfigStrict is the narrow configuration used by SanitizeStrict.
var ConfigStrict = Config{ //nolint:gochecknoglobals
	AllowedTags:       []string{"p", "br", "b", "i", "u", "strong", "em", "ul", "ol", "li"},
	AllowedAttrs:      []string{},
	AllowDataAttr:     false,
	AllowedURISchemes: []string{},
}

// styleProperties are the CSS properties kept inside an allowed style attribute.
var styleProperties = []string{ //nolint:gochecknoglobals
	"color", "background-color", "font-size", "font-weight", "font-style", "font-family",
	"text-align", "text-decoration", "line-height", "vertical-align",
	"margin", "margin-top", "margin-right", "margin-bottom", "margin-left",
	"padding", "padding-top", "padding-right", "padding-bottom", "padding-left",
	"border", "border-collapse", "border-color", "border-style", "border-width",
	"width", "height", "max-width", "display",
}

// forbiddenTags are never emitted, even when a caller allows them.
var forbiddenTags = map[string]struct{}{ //nolint:gochecknoglobals
	"script": {}, "style": {}, "iframe": {}, "frame": {}, "frameset": {},
	"object": {}, "embed": {}, "applet": {}, "base": {}, "meta": {}, "link": {},
	"form": {}, "input": {}, "button": {}, "textarea": {}, "select": {},
	"svg": {}, "math": {}, "template": {}, "noscript": {},
}

// forbiddenAttrs are never emitted, even when a caller allows them.
// Event handlers (on*) are handled separately.
var forbiddenAttrs = map[string]struct{}{ //nolint:gochecknoglobals
	"srcdoc": {}, "formaction": {}, "action": {}, "xlink:href": {},
}

func configDefault(config ...Config) Config {
	if len(config) < 1 {
		return ConfigDefault
	}

	cfg := config[0]

	if cfg.AllowedTags == nil {
		cfg.AllowedTags = ConfigDefault.AllowedTags
	}

	if cfg.AllowedAttrs == nil {
		cfg.AllowedAttrs = ConfigDefault.AllowedAttrs
	}

	if cfg.AllowedURISchemes == nil {
		cfg.AllowedURISchemes = ConfigDefault.AllowedURISchemes
	}

	return cfg
}

// Sanitize returns html with everything outside the allow-list removed.
// Empty input yields an empty string.
func Sanitize(html string, config ...Config) string {
	if html == "" {
		return ""
	}

	return newPolicy(configDefault(config...)).Sanitize(html)
}

// SanitizeStrict sanitizes untrusted prose, keeping emphasis and lists only.
func SanitizeStrict(html string) string {
	return Sanitize(html, ConfigStrict)
}

func newPolicy(cfg Config) *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	if tags := allowedTags(cfg.AllowedTags); len(tags) > 0 {
		p.AllowElements(tags...)
	}

	for _, attr := range allowedAttrs(cfg.AllowedAttrs) {
		if attr == "style" {
			p.AllowStyles(styleProperties...).Globally()
			continue
		}

		p.AllowAttrs(attr).Globally()
	}

	if cfg.AllowDataAttr {
		p.AllowDataAttributes()
	}

	// href and src must parse and use an allowed scheme
	p.RequireParseableURLs(true)
	p.AllowRelativeURLs(true)

	if schemes := allowedSchemes(cfg.AllowedURISchemes); len(schemes) > 0 {
		p.AllowURLSchemes(schemes...)
	}

	return p
}

func allowedTags(tags []string) []string {
	out := make([]string, 0, len(tags))

	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}

		if _, forbidden := forbiddenTags[tag]; forbidden {
			continue
		}

		out = append(out, tag)
	}

	return out
}

func allowedAttrs(attrs []string) []string {
	out := make([]string, 0, len(attrs))

	for _, attr := range attrs {
		attr = strings.ToLower(strings.TrimSpace(attr))
		if attr == "" || strings.HasPrefix(attr, "on") {
			continue
		}

		if _, forbidden := forbiddenAttrs[attr]; forbidden {
			continue
		}

		out = append(out, attr)
	}

	return out
}

func allowedSchemes(schemes []string) []string {
	out := make([]string, 0, len(schemes))

	for _, scheme := range schemes {
		scheme = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(scheme), ":"))
		switch scheme {
		case "", "javascript", "vbscript", "data":
			continue
		}

		out = append(out, scheme)
	}

	return out
}
