package client

import "strings"

const (
	MessageEmptyInput = "Please enter some text to analyze."
	MessageNoSkills   = "No skills were identified."
)

// RenderSkills formats skills as a plain-text bullet list.
func RenderSkills(skills []string) string {
	if len(skills) == 0 {
		return MessageNoSkills
	}
	var b strings.Builder
	for i, s := range skills {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(s)
	}
	return b.String()
}
