package extract

import (
	"html"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

const (
	minTitleLen       = 10
	maxTitleLen       = 150
	maxDescriptionLen = 700
	maxFallbackTitle  = 200
)

var (
	bareURLRe    = regexp.MustCompile(`(?i)^(?:https?://|www\.)\S+$`)
	urlRe        = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+`)
	boilerplates = []*regexp.Regexp{
		regexp.MustCompile(`(?i)#?\brepost(?:ed)?\b(?:\s+(?:from|da|by))?(?:\s*@[\w.]+)?`),
		regexp.MustCompile(`(?i)\blink\s+in\s+(?:bio|descrizione)\b`),
		regexp.MustCompile(`(?i)\bseguici\s+su\s+\S+`),
		regexp.MustCompile(`(?i)\bleggi\s+(?:di\s+piu|di\s+più|tutto)\b`),
	}
	handleJunkRe = regexp.MustCompile(`[\d_.@]+`)

	// leading and trailing quotes, bullets and separators removed from title candidates
	titleTrimSet = " \t\"'`“”„«»‘’‚•·-–—*►▶▸>~|:#"

	stripHTMLPolicy = bluemonday.StrictPolicy()
)

// SynthesizeTitle picks the first well-formed line of raw text as the title.
// Falls back to "Evento <handle>" and returns empty string only when the handle is unusable too.
func SynthesizeTitle(raw, fallbackHandle string) string {
	for _, line := range strings.Split(raw, "\n") {
		if isBoilerplateLine(line) {
			continue
		}
		cleaned := cleanTitle(line)
		if n := utf8.RuneCountInString(cleaned); n >= minTitleLen && n <= maxTitleLen {
			return capitalize(cleaned)
		}
	}
	return handleTitle(fallbackHandle)
}

// SynthesizeDescription strips boilerplate and markup from raw text and bounds its length
func SynthesizeDescription(raw string) string {
	text := html.UnescapeString(stripHTMLPolicy.Sanitize(raw))
	for _, re := range boilerplates {
		text = re.ReplaceAllString(text, " ")
	}
	text = strings.Join(strings.Fields(stripInvisible(text)), " ")
	return truncateWords(text, maxDescriptionLen)
}

// isBoilerplateLine detects attribution lines, bare links and tag-only lines
func isBoilerplateLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true
	}
	lower := strings.ToLower(trimmed)
	if strings.Contains(lower, "repost") || strings.Contains(lower, "link in bio") {
		return true
	}
	if bareURLRe.MatchString(trimmed) {
		return true
	}
	fields := strings.Fields(trimmed)
	for _, f := range fields {
		if !strings.HasPrefix(f, "#") && !strings.HasPrefix(f, "@") {
			return false
		}
	}
	return true
}

// cleanTitle removes emoji, control characters and links, then trims quotes and bullets
func cleanTitle(line string) string {
	text := urlRe.ReplaceAllString(line, " ")
	text = strings.Join(strings.Fields(stripSymbols(text)), " ")
	return strings.Trim(text, titleTrimSet)
}

// stripSymbols replaces emoji, pictographs and control runes with spaces
func stripSymbols(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return ' '
		case isInvisible(r), unicode.Is(unicode.So, r), unicode.Is(unicode.Sk, r), unicode.Is(unicode.Cs, r), unicode.Is(unicode.Co, r):
			return ' '
		}
		return r
	}, s)
}

// stripInvisible replaces control and formatting runes with spaces, keeping emoji
func stripInvisible(s string) string {
	return strings.Map(func(r rune) rune {
		if isInvisible(r) && r != '\n' {
			return ' '
		}
		return r
	}, s)
}

func isInvisible(r rune) bool {
	return unicode.IsControl(r) || unicode.Is(unicode.Cf, r) || (r >= 0xFE00 && r <= 0xFE0F) || r == 0x20E3
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// handleTitle makes "Evento <handle>" from an account handle without digits, underscores, dots and @
func handleTitle(handle string) string {
	name := strings.Join(strings.Fields(handleJunkRe.ReplaceAllString(handle, " ")), " ")
	if name == "" {
		return ""
	}
	return truncateWords("Evento "+name, maxFallbackTitle)
}

// truncateWords cuts s to at most limit runes, preferring a word boundary, and marks the cut with "..."
func truncateWords(s string, limit int) string {
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	cut := rs[:limit-3]
	if idx := lastSpace(cut); idx > len(cut)/2 {
		cut = cut[:idx]
	}
	return strings.TrimRight(string(cut), " ,;:.") + "..."
}

func lastSpace(rs []rune) int {
	for i := len(rs) - 1; i >= 0; i-- {
		if rs[i] == ' ' {
			return i
		}
	}
	return -1
}
