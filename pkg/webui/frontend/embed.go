package frontend

import "embed"

// Dist embeds the page assets (logo and page script) served next to the
// server-rendered form.
//
//go:embed dist/*
var Dist embed.FS
