package templating

import (
	"regexp"
	"strings"
)

const activeAttr = ` class="active"`

var (
	// Tried in order; the second catches tags with '>' inside attribute values.
	headerPatterns = []string{
		`<header[^>]*>.*?</header>`,
		`<header.*?</header>`,
	}

	headerOpenRegex  = regexp.MustCompile(`(?i)<header`)
	headerCloseRegex = regexp.MustCompile(`(?i)</header>`)

	bodyEndRegex = regexp.MustCompile(`(?i)\s*</body>`)
	bodyTagRegex = regexp.MustCompile(`(?i)</body>`)
	headEndRegex = regexp.MustCompile(`(?i)</head>`)
	titleRegex   = regexp.MustCompile(`(?i)<title>.*?</title>`)
)

// HeaderReplacer swaps header regions for one fixed fragment.
//
// Whatever the fragment carries in front of its <header> tag (typically an
// "<!-- Header -->" comment) is matched as an optional prefix of the region,
// and whatever follows its </header> as an optional suffix. The indentation in
// front of the region is absorbed as well, so a page that already holds the
// fragment is left byte-identical.
type HeaderReplacer struct {
	fragment string
	patterns []*regexp.Regexp
}

// NewHeaderReplacer compiles the region patterns for fragment.
func NewHeaderReplacer(fragment string) *HeaderReplacer {
	prefix, suffix := leadPattern(fragment), trailPattern(fragment)
	hr := &HeaderReplacer{fragment: fragment}
	for _, p := range headerPatterns {
		hr.patterns = append(hr.patterns, regexp.MustCompile(`(?is)`+prefix+p+suffix))
	}
	return hr
}

// Replace rewrites every header region of text. The first pattern that
// matches anywhere wins. Text without a header region is returned unchanged.
func (hr *HeaderReplacer) Replace(text string) string {
	for _, re := range hr.patterns {
		if re.MatchString(text) {
			return re.ReplaceAllLiteralString(text, hr.fragment)
		}
	}
	return text
}

// ReplaceHeader is a one-off HeaderReplacer.
func ReplaceHeader(text, fragment string) string {
	return NewHeaderReplacer(fragment).Replace(text)
}

// leadPattern turns the part of fragment before its <header tag into a regex
// prefix. The comment is literal and optional, the indentation in front of it
// and the whitespace between it and the tag are not literal.
func leadPattern(fragment string) string {
	loc := headerOpenRegex.FindStringIndex(fragment)
	if loc == nil || loc[0] == 0 {
		return ""
	}
	body := strings.TrimSpace(fragment[:loc[0]])
	if body == "" {
		return `[ \t]*`
	}
	return `[ \t]*(?:` + regexp.QuoteMeta(body) + `\s*)?`
}

// trailPattern is the optional suffix matching whatever fragment carries
// after its last </header>.
func trailPattern(fragment string) string {
	locs := headerCloseRegex.FindAllStringIndex(fragment, -1)
	if len(locs) == 0 {
		return ""
	}
	tail := strings.TrimSpace(fragment[locs[len(locs)-1][1]:])
	if tail == "" {
		return ""
	}
	return `(?:\s*` + regexp.QuoteMeta(tail) + `)?`
}

// InjectFooter replaces the last body-end marker, including the whitespace in
// front of it, with block. block is expected to end with its own </body>.
func InjectFooter(text, block string) string {
	locs := bodyEndRegex.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text
	}
	last := locs[len(locs)-1]
	return text[:last[0]] + block + text[last[1]:]
}

// EnsureStylesheet links href right before the first </head> unless text
// already references it.
func EnsureStylesheet(text, href string) string {
	if strings.Contains(text, href) {
		return text
	}
	loc := headEndRegex.FindStringIndex(text)
	if loc == nil {
		return text
	}
	return text[:loc[0]] + `    <link rel="stylesheet" href="` + href + `">` + "\n" + text[loc[0]:]
}

// EnsureScript loads src right before the last </body> unless text already
// references it.
func EnsureScript(text, src string) string {
	if strings.Contains(text, src) {
		return text
	}
	locs := bodyTagRegex.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text
	}
	at := locs[len(locs)-1][0]
	return text[:at] + `    <script src="` + src + `"></script>` + "\n" + text[at:]
}

// ClearActiveNav strips every active marker from text.
func ClearActiveNav(text string) string {
	return strings.ReplaceAll(text, activeAttr, "")
}

// NavMarker marks one navigation anchor as active.
type NavMarker struct {
	re *regexp.Regexp
}

// NewNavMarker compiles a marker for the first anchor whose text starts with
// label. An empty href matches any link target.
func NewNavMarker(href, label string) *NavMarker {
	target := `[^"]*`
	if href != "" {
		target = regexp.QuoteMeta(href)
	}
	// The empty group records where the attribute goes.
	return &NavMarker{re: regexp.MustCompile(`<a href="` + target + `"()>` + regexp.QuoteMeta(label) + `[\s<]`)}
}

// Mark adds the active attribute to the first matching anchor of text.
func (m *NavMarker) Mark(text string) string {
	loc := m.re.FindStringSubmatchIndex(text)
	if loc == nil {
		return text
	}
	at := loc[2]
	return text[:at] + activeAttr + text[at:]
}

// MarkActiveNav is a one-off NavMarker.
func MarkActiveNav(text, href, label string) string {
	return NewNavMarker(href, label).Mark(text)
}

// SetTitle rewrites every single-line <title> element to hold title.
func SetTitle(text, title string) string {
	return titleRegex.ReplaceAllLiteralString(text, "<title>"+title+"</title>")
}
