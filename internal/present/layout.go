package present

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// TerminalWidth returns the width of stdout, or 80 when it is not a terminal
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// SideBySide lays out art on the left and info lines on the right. Lines
// that do not fit are wrapped to the space left by the art.
func SideBySide(art string, info []string, width int) string {
	artLines := strings.Split(strings.TrimRight(art, "\n"), "\n")
	maxArtWidth := 0
	for _, line := range artLines {
		if w := visibleLen(line); w > maxArtWidth {
			maxArtWidth = w
		}
	}

	spacing := 4
	infoStartCol := maxArtWidth + spacing

	infoWidth := width - infoStartCol - 2 // Leave a small margin
	if infoWidth < 20 {
		infoWidth = 20
	}

	var infoLines []string
	for _, line := range info {
		if visibleLen(line) <= infoWidth {
			infoLines = append(infoLines, line)
			continue
		}
		infoLines = append(infoLines, wrapText(line, infoWidth)...)
	}

	var b strings.Builder
	b.WriteString("\n")
	for i := 0; i < max(len(artLines), len(infoLines)); i++ {
		b.WriteString("  ")
		if i < len(artLines) {
			b.WriteString(artLines[i])
			b.WriteString(strings.Repeat(" ", infoStartCol-visibleLen(artLines[i])))
		} else {
			b.WriteString(strings.Repeat(" ", infoStartCol))
		}

		if i < len(infoLines) {
			b.WriteString(infoLines[i])
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	var result []string
	var currentLine string
	words := strings.Fields(text)

	if len(words) == 0 {
		return []string{""}
	}

	for _, word := range words {
		if len(currentLine) == 0 {
			currentLine = word
		} else if visibleLen(currentLine)+1+visibleLen(word) <= width {
			currentLine += " " + word
		} else {
			result = append(result, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		result = append(result, currentLine)
	}

	return result
}

// visibleLen returns the number of runes shown on screen
func visibleLen(s string) int {
	return len([]rune(stripAnsi(s)))
}

// stripAnsi removes ANSI escape sequences from a string
func stripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}
