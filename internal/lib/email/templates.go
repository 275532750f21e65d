package email

import "embed"

// Template names an HTML file under templates/.
type Template string

const (
	// TemplateObituary announces that a zombie ate someone.
	TemplateObituary Template = "obituary"
)

//go:embed templates/*.html
var templateFS embed.FS
