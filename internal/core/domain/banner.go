package domain

import "strings"

// Shebang is prepended to executable bundles.
const Shebang = "#!/usr/bin/env node"

// Banner renders the one-line header comment injected into every bundle:
// "/*! name vVersion [by Author <email>] */".
func Banner(name, version string, author Author) string {
	var b strings.Builder
	b.WriteString("/*! ")
	b.WriteString(name)
	b.WriteString(" v")
	b.WriteString(version)

	switch {
	case author.Literal != "":
		b.WriteString(" by ")
		b.WriteString(author.Literal)
	case author.Name != "":
		b.WriteString(" by ")
		b.WriteString(author.Name)
		if author.Email != "" {
			b.WriteString(" <")
			b.WriteString(author.Email)
			b.WriteString(">")
		}
	}

	b.WriteString(" */")
	return b.String()
}

// ExecutableBanner prefixes a banner with the node shebang and a blank line.
func ExecutableBanner(banner string) string {
	return Shebang + "\n\n" + banner
}
