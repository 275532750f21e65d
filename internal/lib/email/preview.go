package email

// PreviewData holds sample template data, templateName -> variable ->
// value, for rendering templates without a real event.
var PreviewData = map[Template]map[string]string{
	TemplateObituary: {
		"PersonID": "7",
		"ZombieID": "2",
	},
}
