package llmd

import "regexp"

var (
	imageRe     = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]*)\)`)
	linkRe      = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)
	codeSpanRe  = regexp.MustCompile("`([^`]*)`")
	boldStarRe  = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	boldUnderRe = regexp.MustCompile(`__([^_]+)__`)
	strikeRe    = regexp.MustCompile(`~~([^~]+)~~`)
	italicRe    = regexp.MustCompile(`\*([^*]+)\*`)
)

// renderInline implements §4.4.1: strip inline emphasis, rewrite links and
// images per keepURLs, and keep code-span inner text. It is applied to
// paragraph text, list-item text, key-value values, and table cells.
func renderInline(text string, keepURLs bool) string {
	text = imageRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := imageRe.FindStringSubmatch(m)

		return renderLinkLike(sub[1], sub[2], keepURLs)
	})

	text = linkRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := linkRe.FindStringSubmatch(m)

		return renderLinkLike(sub[1], sub[2], keepURLs)
	})

	text = codeSpanRe.ReplaceAllString(text, "$1")
	text = boldStarRe.ReplaceAllString(text, "$1")
	text = boldUnderRe.ReplaceAllString(text, "$1")
	text = strikeRe.ReplaceAllString(text, "$1")
	text = italicRe.ReplaceAllString(text, "$1")

	return text
}

// renderLinkLike renders a link or image's text/url pair per keepURLs.
func renderLinkLike(text, url string, keepURLs bool) string {
	if keepURLs {
		return text + "<" + url + ">"
	}

	return text
}
