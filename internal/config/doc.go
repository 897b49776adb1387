// Package config provides configuration loading for sitekit.
//
// The configuration lives in sitekit.json (or sitekit.yaml) next to the page
// it describes. Every field is optional; New returns the defaults.
//
// # Configuration File Structure
//
//	{
//	  "page": "index.html",
//	  "dev": {
//	    "port": 3000,
//	    "host": "localhost"
//	  },
//	  "forms": {
//	    "selector": "form",
//	    "errorClass": "error",
//	    "fieldSelector": ".form-group",
//	    "messages": {
//	      "required": "Este campo es obligatorio"
//	    }
//	  },
//	  "behavior": {
//	    "headerOffset": 80,
//	    "stickyThreshold": 100,
//	    "toastDuration": "3s"
//	  }
//	}
//
// # Environment
//
// A few settings can be overridden with SITEKIT_* variables, e.g.
// SITEKIT_PORT, SITEKIT_HOST, SITEKIT_PAGE and SITEKIT_LOG_LEVEL.
package config
