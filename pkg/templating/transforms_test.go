package templating

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReplaceHeader(t *testing.T) {
	indented := "    <!-- Header -->\n    <header>new</header>"

	tests := []struct {
		name     string
		text     string
		fragment string
		want     string
	}{
		{
			name:     "simple region",
			text:     "<body>\n<header class=\"old\">\n<nav>x</nav>\n</header>\n<main></main>\n</body>",
			fragment: `<header id="new"></header>`,
			want:     "<body>\n<header id=\"new\"></header>\n<main></main>\n</body>",
		},
		{
			name:     "no region",
			text:     "<body><main></main></body>",
			fragment: `<header id="new"></header>`,
			want:     "<body><main></main></body>",
		},
		{
			name:     "upper case tags",
			text:     "<BODY><HEADER>old</HEADER></BODY>",
			fragment: "<header>new</header>",
			want:     "<BODY><header>new</header></BODY>",
		},
		{
			name:     "leading comment absorbed",
			text:     "<body>\n    <!-- Header -->\n    <header>old</header>\n</body>",
			fragment: indented,
			want:     "<body>\n" + indented + "\n</body>",
		},
		{
			name:     "comment with different spacing before tag",
			text:     "<body>\n    <!-- Header -->\n<header>old</header>\n</body>",
			fragment: indented,
			want:     "<body>\n" + indented + "\n</body>",
		},
		{
			name:     "comment with different indentation",
			text:     "<body>\n<!-- Header -->\n<header>old</header>\n</body>",
			fragment: indented,
			want:     "<body>\n" + indented + "\n</body>",
		},
		{
			name:     "indentation without comment",
			text:     "<body>\n\t<header>old</header>\n</body>",
			fragment: indented,
			want:     "<body>\n" + indented + "\n</body>",
		},
		{
			name:     "trailing comment absorbed",
			text:     "<body>\n<header>old</header>\n  <!-- /Header -->\n</body>",
			fragment: "<header>new</header>\n<!-- /Header -->",
			want:     "<body>\n<header>new</header>\n<!-- /Header -->\n</body>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReplaceHeader(tt.text, tt.fragment)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ReplaceHeader() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReplaceHeader_Idempotent(t *testing.T) {
	fragments, err := DefaultFragments()
	if err != nil {
		t.Fatalf("DefaultFragments() error = %v", err)
	}
	inputs := []string{
		"<body>\n  <header>old</header>\n</body>",
		"<body>\n<header class=\"x\">old</header>\n</body>",
		"<body>\n    <!-- Header -->\n    <header>old</header>\n</body>",
		"<body>\n<!-- Header -->\n<header>old</header>\n</body>",
		"<body>\n<header>old</header>\n<!-- /Header -->\n</body>",
	}
	for _, frag := range []string{fragments.Header, fragments.BasicHeader, "<header>new</header>\n<!-- /Header -->"} {
		hr := NewHeaderReplacer(frag)
		for _, in := range inputs {
			once := hr.Replace(in)
			twice := hr.Replace(once)
			if diff := cmp.Diff(once, twice); diff != "" {
				t.Errorf("second Replace changed the text (-once +twice):\n%s", diff)
			}
			if !strings.Contains(once, frag) {
				t.Errorf("result does not contain the fragment: %q", once)
			}
			if n := strings.Count(once, "<!-- Header -->"); n > 1 {
				t.Errorf("header comment repeated %d times: %q", n, once)
			}
		}
	}
}

func TestInjectFooter(t *testing.T) {
	block := "\n<footer>f</footer>\n</body>"

	got := InjectFooter("<html><body>\n<p>x</p>\n  </body></html>", block)
	want := "<html><body>\n<p>x</p>\n<footer>f</footer>\n</body></html>"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("InjectFooter() mismatch (-want +got):\n%s", diff)
	}

	noBody := "<html><p>x</p></html>"
	if got := InjectFooter(noBody, block); got != noBody {
		t.Errorf("InjectFooter() without </body> changed the text: %q", got)
	}
}

func TestEnsureStylesheet(t *testing.T) {
	in := "<head>\n<title>t</title>\n</head><body></body>"
	want := "<head>\n<title>t</title>\n    <link rel=\"stylesheet\" href=\"main-styles.css\">\n</head><body></body>"

	got := EnsureStylesheet(in, "main-styles.css")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("EnsureStylesheet() mismatch (-want +got):\n%s", diff)
	}
	if again := EnsureStylesheet(got, "main-styles.css"); again != got {
		t.Errorf("EnsureStylesheet() is not idempotent: %q", again)
	}
	if n := strings.Count(got, "main-styles.css"); n != 1 {
		t.Errorf("expected exactly one stylesheet reference, found %d", n)
	}

	noHead := "<body></body>"
	if got := EnsureStylesheet(noHead, "main-styles.css"); got != noHead {
		t.Errorf("EnsureStylesheet() without </head> changed the text: %q", got)
	}
}

func TestEnsureScript(t *testing.T) {
	in := "<body>\n<p>x</p>\n</body>"
	want := "<body>\n<p>x</p>\n    <script src=\"main-nav.js\"></script>\n</body>"

	got := EnsureScript(in, "main-nav.js")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("EnsureScript() mismatch (-want +got):\n%s", diff)
	}
	if again := EnsureScript(got, "main-nav.js"); again != got {
		t.Errorf("EnsureScript() is not idempotent: %q", again)
	}

	present := `<body><script src="main-nav.js"></script></body>`
	if got := EnsureScript(present, "main-nav.js"); got != present {
		t.Errorf("EnsureScript() changed a page that already loads the script: %q", got)
	}
}

func TestSetTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"<title>Old</title>", "<title>Blogs - Shortcut Sensei</title>"},
		{"<TITLE>Old</TITLE>", "<title>Blogs - Shortcut Sensei</title>"},
		{"<head><title></title></head>", "<head><title>Blogs - Shortcut Sensei</title></head>"},
		{"<head></head>", "<head></head>"},
	}
	for _, tt := range tests {
		if got := SetTitle(tt.in, "Blogs - Shortcut Sensei"); got != tt.want {
			t.Errorf("SetTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMarkActiveNav(t *testing.T) {
	nav := `<li><a href="index.html">Home</a></li>` +
		`<li><a href="all-applications.html">Applications <i class="fas fa-chevron-down"></i></a></li>` +
		`<li><a href="blogs.html">Blogs</a></li>`

	tests := []struct {
		name  string
		href  string
		label string
		want  string
	}{
		{
			name:  "label only",
			label: "Blogs",
			want:  strings.Replace(nav, `<a href="blogs.html">`, `<a href="blogs.html" class="active">`, 1),
		},
		{
			name:  "href and label",
			href:  "all-applications.html",
			label: "Applications",
			want:  strings.Replace(nav, `<a href="all-applications.html">`, `<a href="all-applications.html" class="active">`, 1),
		},
		{
			name:  "unknown label",
			label: "Profile",
			want:  nav,
		},
		{
			name:  "prefix of a longer word",
			label: "Blog",
			want:  nav,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkActiveNav(nav, tt.href, tt.label)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("MarkActiveNav() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNavMarker_Reuse(t *testing.T) {
	m := NewNavMarker("", "Blogs")
	for _, page := range []string{
		`<a href="blogs.html">Blogs</a>`,
		`<a href="index.html">Home</a><a href="blogs.html">Blogs <i></i></a>`,
	} {
		want := strings.Replace(page, `<a href="blogs.html">`, `<a href="blogs.html" class="active">`, 1)
		if got := m.Mark(page); got != want {
			t.Errorf("Mark(%q) = %q, want %q", page, got, want)
		}
	}
}

func TestClearActiveNav(t *testing.T) {
	in := `<a href="a.html" class="active">A</a><a href="b.html" class="active">B</a>`
	want := `<a href="a.html">A</a><a href="b.html">B</a>`
	if got := ClearActiveNav(in); got != want {
		t.Errorf("ClearActiveNav() = %q, want %q", got, want)
	}
}
