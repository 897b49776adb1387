// Package templates provides starter pages for sitekit init.
//
// # Available Templates
//
//   - restaurant: home, menu tabs with add-to-cart buttons, reservation form
//   - minimal: a single contact form
//
// # Usage
//
//	tmpl, err := templates.Get("restaurant")
//	if err != nil {
//	    return err
//	}
//	err = tmpl.Create(dir, templates.Config{SiteName: "La Terraza"})
//
// # Template Variables
//
//	{{.SiteName}} - Name shown in the title and header
//	{{.PageFile}} - File name of the page (default index.html)
package templates
