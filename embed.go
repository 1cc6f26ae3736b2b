package taxmate

import "embed"

// EmbeddedAssets contains static assets shipped with the binary:
// favicon.svg, og-image.svg, site.css, reveal.js and faq.js.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
