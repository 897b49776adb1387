package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/sitekit/internal/errors"
	"github.com/vango-dev/sitekit/pkg/page"
)

func TestGet(t *testing.T) {
	for _, name := range List() {
		if _, err := Get(name); err != nil {
			t.Errorf("Get(%q) error = %v", name, err)
		}
	}
	if _, err := Get("bistro"); err == nil {
		t.Error("expected error for unknown template")
	} else if se := errors.FromError(err, ""); se.Category != errors.CategoryCLI {
		t.Errorf("Category = %q", se.Category)
	}
	if got := List(); len(got) != 2 || got[0] != "minimal" || got[1] != "restaurant" {
		t.Errorf("List() = %v", got)
	}
}

func TestCreateMountsCleanly(t *testing.T) {
	for _, name := range List() {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			tmpl, _ := Get(name)

			written, err := tmpl.Create(dir, Config{SiteName: "Bar <Pepe>", PageFile: "home.html"})
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			pagePath := filepath.Join(dir, "home.html")
			found := false
			for _, p := range written {
				if p == pagePath {
					found = true
				}
			}
			if !found {
				t.Fatalf("written = %v, want %s", written, pagePath)
			}

			data, err := os.ReadFile(pagePath)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(data), "Bar &lt;Pepe&gt;") {
				t.Error("site name should be HTML-escaped")
			}

			doc, err := page.Load(pagePath)
			if err != nil {
				t.Fatal(err)
			}
			p, err := page.Mount(doc, nil)
			if err != nil {
				t.Fatalf("Mount() error = %v", err)
			}
			if len(p.Forms) != 1 {
				t.Errorf("forms = %d, want 1", len(p.Forms))
			}
		})
	}
}

func TestCreateDefaults(t *testing.T) {
	dir := t.TempDir()
	tmpl, _ := Get("restaurant")
	written, err := tmpl.Create(dir, Config{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "css", "style.css"), filepath.Join(dir, "index.html")}
	if len(written) != 2 || written[0] != want[0] || written[1] != want[1] {
		t.Errorf("written = %v, want %v", written, want)
	}
}
