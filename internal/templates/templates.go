package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"text/template"

	"github.com/vango-dev/sitekit/internal/errors"
)

// Config holds template variables.
type Config struct {
	SiteName string
	PageFile string
}

// Template is a set of files to write.
type Template struct {
	Name        string
	Description string

	// Files maps a relative path to its template source. The key "{{page}}"
	// is replaced by Config.PageFile.
	Files map[string]string
}

const pageKey = "{{page}}"

var templates = map[string]*Template{
	"restaurant": restaurantTemplate(),
	"minimal":    minimalTemplate(),
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	t, ok := templates[name]
	if !ok {
		return nil, errors.Newf(errors.CategoryCLI, "unknown template %q", name).
			WithSuggestion("Available templates: restaurant, minimal")
	}
	return t, nil
}

// List returns the template names in order.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create renders every file into dir and returns the written paths.
func (t *Template) Create(dir string, cfg Config) ([]string, error) {
	if cfg.SiteName == "" {
		cfg.SiteName = "My Restaurant"
	}
	if cfg.PageFile == "" {
		cfg.PageFile = "index.html"
	}

	var written []string
	for relPath, content := range t.Files {
		if relPath == pageKey {
			relPath = cfg.PageFile
		}
		tmpl, err := template.New(relPath).Parse(content)
		if err != nil {
			return written, errors.Newf(errors.CategoryCLI, "invalid template %s: %v", relPath, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return written, errors.Newf(errors.CategoryCLI, "template execute error %s: %v", relPath, err)
		}

		fullPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			return written, err
		}
		if err := os.WriteFile(fullPath, buf.Bytes(), 0o644); err != nil {
			return written, err
		}
		written = append(written, fullPath)
	}
	sort.Strings(written)
	return written, nil
}

func minimalTemplate() *Template {
	return &Template{
		Name:        "minimal",
		Description: "A single contact form",
		Files: map[string]string{
			pageKey: `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.SiteName | html}}</title>
</head>
<body>
  <form id="contact">
    <div class="form-group">
      <label for="email">Email</label>
      <input id="email" name="email" type="email" required>
    </div>
    <div class="form-group">
      <label for="message">Message</label>
      <textarea id="message" name="message" required></textarea>
    </div>
    <button type="submit">Send</button>
  </form>
</body>
</html>
`,
		},
	}
}

func restaurantTemplate() *Template {
	return &Template{
		Name:        "restaurant",
		Description: "Home, menu and reservations",
		Files: map[string]string{
			pageKey: `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.SiteName | html}}</title>
  <link rel="stylesheet" href="css/style.css">
</head>
<body>
  <div class="preloader"></div>

  <header id="header">
    <a class="logo" href="#home">{{.SiteName | html}}</a>
    <button class="mobile-menu-btn" aria-label="Menu"><i class="fas fa-bars"></i></button>
    <nav class="main-nav">
      <ul>
        <li><a href="#home" class="active">Home</a></li>
        <li><a href="#menu">Menu</a></li>
        <li><a href="#reservations">Reservations</a></li>
      </ul>
    </nav>
  </header>

  <section id="home" data-offset-top="0" data-height="700">
    <h1>{{.SiteName | html}}</h1>
    <a href="#reservations" class="btn">Book a table</a>
  </section>

  <section id="menu" data-offset-top="700" data-height="1100">
    <div class="tabs">
      <button class="tab-btn active" data-category="starters">Starters</button>
      <button class="tab-btn" data-category="mains">Mains</button>
      <button class="tab-btn" data-category="desserts">Desserts</button>
    </div>
    <div id="starters" class="category-content active">
      <div class="menu-item">
        <h3>Gazpacho</h3><span class="price">7.50</span>
        <button class="add-to-cart" data-item="Gazpacho" data-price="7.50">Add</button>
      </div>
    </div>
    <div id="mains" class="category-content">
      <div class="menu-item">
        <h3>Paella</h3><span class="price">18.00</span>
        <button class="add-to-cart" data-item="Paella" data-price="18.00">Add</button>
      </div>
    </div>
    <div id="desserts" class="category-content">
      <div class="menu-item">
        <h3>Crema catalana</h3><span class="price">6.00</span>
        <button class="add-to-cart" data-item="Crema catalana" data-price="6.00">Add</button>
      </div>
    </div>
  </section>

  <section id="reservations" data-offset-top="1800" data-height="900">
    <form id="reservation">
      <div class="form-group">
        <label for="name">Name</label>
        <input id="name" name="name" required>
      </div>
      <div class="form-group">
        <label for="email">Email</label>
        <input id="email" name="email" type="email" required>
      </div>
      <div class="form-group">
        <label for="phone">Phone</label>
        <input id="phone" name="phone" pattern="[0-9 +]{9,}" data-pattern-error="Enter a valid phone number">
      </div>
      <div class="form-group">
        <label for="guests">Guests</label>
        <input id="guests" name="guests" type="number" min="1" max="12" value="2">
      </div>
      <div class="form-group">
        <label for="date">Date</label>
        <input id="date" name="date" type="date" required>
      </div>
      <button type="submit">Book</button>
    </form>
  </section>
</body>
</html>
`,
			"css/style.css": `.preloader { position: fixed; inset: 0; background: #fff; transition: opacity .5s; }
.preloader.fade-out { opacity: 0; }
#header { position: fixed; top: 0; width: 100%; transition: background .3s; }
#header.scrolled { background: #1a1a1a; }
.main-nav a.active { color: #c0392b; }
.category-content { display: none; }
.category-content.active { display: block; }
.form-group.error input { border-color: #c0392b; }
.error-message { color: #c0392b; font-size: .85em; }
.notification { position: fixed; bottom: 20px; left: 50%; transform: translateX(-50%); opacity: 0; transition: opacity .3s; }
.notification.show { opacity: 1; }
`,
		},
	}
}
