package templating

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

//go:embed fragments/*.html
var fragmentFS embed.FS

// Fragments is the set of canonical markup blocks written into pages.
type Fragments struct {
	// Header is the full site header written by the pages pipeline.
	Header string
	// BasicHeader is the headers pipeline fallback when no template file exists.
	BasicHeader  string
	Footer       string
	Notification string
	Scripts      string
}

// DefaultFragments loads the fragments embedded in the binary.
func DefaultFragments() (*Fragments, error) {
	f := &Fragments{}
	for name, dst := range map[string]*string{
		"header.html":         &f.Header,
		"basic_header.html":   &f.BasicHeader,
		"footer.html":         &f.Footer,
		"notification.html":   &f.Notification,
		"footer_scripts.html": &f.Scripts,
	} {
		data, err := fragmentFS.ReadFile("fragments/" + name)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded fragment %s: %w", name, err)
		}
		*dst = strings.TrimRight(string(data), "\r\n")
	}
	return f, nil
}

// FooterBlock is the text that takes the place of the body-end marker: the
// footer, the notification container, the script block and a fresh </body>.
func (f *Fragments) FooterBlock() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(f.Footer)
	sb.WriteString("\n\n")
	sb.WriteString(f.Notification)
	sb.WriteString("\n\n")
	sb.WriteString(f.Scripts)
	sb.WriteString("\n</body>")
	return sb.String()
}

// LoadHeaderTemplate reads a header template from path. A missing or empty file
// is not an error: fallback is returned and found reports false. Leading blank
// lines and trailing whitespace are dropped, as for the embedded fragments.
func LoadHeaderTemplate(path, fallback string) (header string, found bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fallback, false, nil
		}
		return "", false, fmt.Errorf("failed to read header template %s: %w", path, err)
	}
	header = trimTemplate(string(data))
	if header == "" {
		return fallback, false, nil
	}
	return header, true, nil
}

// trimTemplate keeps the indentation of the first non-blank line.
func trimTemplate(s string) string {
	s = strings.TrimRight(s, " \t\r\n")
	lead := len(s) - len(strings.TrimLeft(s, " \t\r\n"))
	if i := strings.LastIndexAny(s[:lead], "\r\n"); i >= 0 {
		s = s[i+1:]
	}
	return s
}
