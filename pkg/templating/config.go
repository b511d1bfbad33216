package templating

// TemplateConfig holds the site catalog the synchronizer works from.
type TemplateConfig struct {
	// SentinelMarker is the literal whose presence means a page already carries
	// the canonical footer. The pages pipeline skips header and footer work for it.
	SentinelMarker string `json:"sentinel_marker"`

	// StylesheetHref is the shared stylesheet every page must link.
	StylesheetHref string `json:"stylesheet_href"`

	// ScriptSrc is the shared navigation script every page must load.
	ScriptSrc string `json:"script_src"`

	// HeaderTemplateFile is read from the site directory by the headers pipeline.
	HeaderTemplateFile string `json:"header_template_file"`

	// ExcludeFiles are never picked up by a glob scan.
	ExcludeFiles []string `json:"exclude_files"`

	// AllowList is the fixed set of pages used by allow-list scans.
	AllowList []string `json:"allow_list"`

	// NavLabels maps a filename to the navigation label marked active on it.
	NavLabels map[string]string `json:"nav_labels"`

	// Titles maps a filename to its canonical <title> text.
	Titles map[string]string `json:"titles"`

	// ApplicationsHref and ApplicationsLabel identify the anchor marked active
	// on pages that have no entry in NavLabels.
	ApplicationsHref  string `json:"applications_href"`
	ApplicationsLabel string `json:"applications_label"`
}

// DefaultConfig returns the catalog of the live site.
func DefaultConfig() *TemplateConfig {
	return &TemplateConfig{
		SentinelMarker:     "main-footer",
		StylesheetHref:     "main-styles.css",
		ScriptSrc:          "main-nav.js",
		HeaderTemplateFile: "header-template.html",
		ExcludeFiles: []string{
			"header-template.html",
			"footer-template.html",
			"header-template-standard.html",
		},
		AllowList: []string{
			// Application pages
			"Google Chrome.html", "Visual Studio.html", "File Explorer.htm",
			"Microsoft Excell.htm", "Microsoft Word.htm", "Microsoft PowerPoint.htm",
			"Microsoft Outlook.html", "Microsoft Teams.html", "Adobe PhotoShop.html",
			"Discord.html", "Slack.htm", "Spotify.html", "Zoom.html",
			"Windows_11.html", "Skype.html", "Telegram.html", "Whatsapp.html",
			"VLC Media Player.html", "WinRAR.html", "7-zip.html",
			"Acrobat Adobe Reader.html", "Microsoft Edge.html", "Mozilla Thunderbird.html",
			"Microsoft OneDrive.html", "Microsoft OneNote.html", "Adobe Creative Cloud.html",
			"Audacity.html", "Trello.html",
			// Navigation pages
			"Applications.htm", "blogs.html", "About.htm",
			"user_com.htm", "user_profile.htm", "home-page.html",
			"home-page-after_signup.html",
		},
		NavLabels: map[string]string{
			"index.html":            "Home",
			"all-applications.html": "Applications",
			"Applications.htm":      "Applications",
			"blogs.html":            "Blogs",
			"About.htm":             "About",
			"user_com.htm":          "Community",
			"user_profile.htm":      "Profile",
		},
		Titles: map[string]string{
			"Google Chrome.html":       "Google Chrome Shortcuts - Shortcut Sensei",
			"Visual Studio.html":       "Visual Studio Code Shortcuts - Shortcut Sensei",
			"File Explorer.htm":        "File Explorer Shortcuts - Shortcut Sensei",
			"Microsoft Excell.htm":     "Microsoft Excel Shortcuts - Shortcut Sensei",
			"Microsoft Word.htm":       "Microsoft Word Shortcuts - Shortcut Sensei",
			"Microsoft PowerPoint.htm": "Microsoft PowerPoint Shortcuts - Shortcut Sensei",
			"Microsoft Outlook.html":   "Microsoft Outlook Shortcuts - Shortcut Sensei",
			"Microsoft Teams.html":     "Microsoft Teams Shortcuts - Shortcut Sensei",
			"Adobe PhotoShop.html":     "Adobe Photoshop Shortcuts - Shortcut Sensei",
			"Discord.html":             "Discord Shortcuts - Shortcut Sensei",
			"Slack.htm":                "Slack Shortcuts - Shortcut Sensei",
			"Spotify.html":             "Spotify Shortcuts - Shortcut Sensei",
			"Zoom.html":                "Zoom Shortcuts - Shortcut Sensei",
			"Windows_11.html":          "Windows 11 Shortcuts - Shortcut Sensei",
			"Applications.htm":         "All Applications - Shortcut Sensei",
			"blogs.html":               "Blogs - Shortcut Sensei",
			"About.htm":                "About - Shortcut Sensei",
			"user_com.htm":             "Community - Shortcut Sensei",
			"user_profile.htm":         "User Profile - Shortcut Sensei",
		},
		ApplicationsHref:  "all-applications.html",
		ApplicationsLabel: "Applications",
	}
}
