package content

// Copy used when neither the API nor the static file can be loaded, so
// the page always has something to show.
const (
	aboutMe = `I love building software that's both useful and fun, and I'm always curious about how things work behind the scenes.
Most of my projects start with a simple idea and turn into a chance to learn something new, whether it's exploring a
different language, experimenting with tools, or solving tricky problems.`

	projectOne = `A terminal-based email client built in Go with fuzzyfinder capabilities
using the Charmbracelet TUI framework and go-imap.`

	projectTwo = `A terminal-based music streaming application built in Go with a TUI
interface, leveraging yt-dlp and mpv for YouTube Music playback directly from the command line.`

	projectThree = `A machine learning-powered web application that uses TF-IDF vectorization and cosine
similarity to recommend games based on content analysis.`

	projectFour = `A responsive portfolio website built with Go and Gin, rendering its projects,
certifications and updates from a single JSON content document.`
)

// Default returns a fresh copy of the built-in document.
func Default() *Document {
	return &Document{
		PersonalInfo: &PersonalInfo{
			Name:    "Zach Kordas-Potter",
			Title:   "Software Developer",
			Tagline: "Building useful things in Go.",
			Bio:     aboutMe,
			Socials: []Link{
				{Type: "github", URL: "https://github.com/Zachkp", Text: "GitHub"},
			},
		},
		Projects: []Project{
			{
				ID: "proj_default_1", Title: "Terminal Mail", Description: projectOne,
				Icon: "fas fa-envelope", Tags: []string{"Go", "Bubble Tea", "IMAP"},
				Links:    []Link{{Type: "github", URL: "https://github.com/Zachkp", Text: "Code"}},
				Featured: true, Order: 1,
			},
			{
				ID: "proj_default_2", Title: "Terminal Music", Description: projectTwo,
				Icon: "fas fa-music", Tags: []string{"Go", "TUI", "mpv"},
				Links:    []Link{{Type: "github", URL: "https://github.com/Zachkp", Text: "Code"}},
				Featured: true, Order: 2,
			},
			{
				ID: "proj_default_3", Title: "Game Recommender", Description: projectThree,
				Icon: "fas fa-gamepad", Tags: []string{"Python", "scikit-learn"},
				Featured: true, Order: 3,
			},
			{
				ID: "proj_default_4", Title: "Portfolio", Description: projectFour,
				Icon: "fas fa-globe", Tags: []string{"Go", "Gin"},
				Links:    []Link{{Type: "website", URL: "/", Text: "Live"}},
				Featured: true, Order: 4,
			},
		},
		Certifications: []Certification{
			{
				ID: "cert_default_1", Title: "Project+", Issuer: "CompTIA", Date: "July 2022",
				Icon: "fas fa-certificate", PDFPath: "static/certs/project-plus.pdf", Order: 1,
			},
		},
		Updates: []Update{
			{
				ID: "update_default_1", Title: "New portfolio", Date: "2025-08-01",
				Description: "The site now renders from a single content document.", Tag: "Site", Order: 1,
			},
		},
		Skills: []Skill{
			{ID: "skill_default_1", Title: "Backend", Description: "Go, SQL, HTTP services", Icon: "fas fa-server", Order: 1},
			{ID: "skill_default_2", Title: "Tooling", Description: "CLIs and terminal apps", Icon: "fas fa-terminal", Order: 2},
		},
	}
}
