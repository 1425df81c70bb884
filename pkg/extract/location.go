package extract

import (
	"context"
	"log"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const maxAddressWords = 6

var (
	streetPrefixRe = regexp.MustCompile(`(?i)\b(via|viale|piazza|piazzale|corso|largo|vicolo|ponte|lungomare|lungotevere|strada|salita|borgo|campo)\s+`)
	addressStopRe  = regexp.MustCompile(`(?i)[,;\n()!?]|\.\s|\bpresso\b`)

	addressConnectors = map[string]bool{
		"di": true, "de": true, "del": true, "dei": true, "della": true, "delle": true, "degli": true, "dello": true, "d'": true,
	}
	// words ending an address even when capitalized, as in all-caps captions
	addressStopWords = map[string]bool{
		"ore": true, "h": true, "alle": true, "dalle": true, "dal": true, "al": true, "il": true, "lo": true, "la": true,
		"le": true, "per": true, "con": true, "e": true, "ed": true, "a": true, "in": true, "su": true, "da": true,
		"lunedi": true, "martedi": true, "mercoledi": true, "giovedi": true, "venerdi": true, "sabato": true, "domenica": true,
	}
)

// Geocoder resolves a street address to coordinates
type Geocoder interface {
	Geocode(ctx context.Context, address, city string) (Coordinates, error)
}

// Location is the spatial part of an event
type Location struct {
	City        string
	Address     string
	Coordinates Coordinates
	Geocoded    bool // coordinates come from the geocoder, not the city centroid
}

// LocatorConfig configures Locator
type LocatorConfig struct {
	Cities         []City        // gazetteer, DefaultCities if empty
	DefaultCity    string        // city used when none matches, DefaultCity if empty
	Geocoder       Geocoder      // optional
	GeocodeTimeout time.Duration // bound for a single geocoder call, 8s if zero
}

type cityMatcher struct {
	city City
	re   *regexp.Regexp
}

// Locator finds city, street address and coordinates in text
type Locator struct {
	cities         []cityMatcher
	fallback       City
	geocoder       Geocoder
	geocodeTimeout time.Duration
}

// NewLocator makes a Locator for the given gazetteer
func NewLocator(cfg LocatorConfig) *Locator {
	cities := cfg.Cities
	if len(cities) == 0 {
		cities = DefaultCities
	}
	defaultName := cfg.DefaultCity
	if defaultName == "" {
		defaultName = DefaultCity
	}
	res := &Locator{geocoder: cfg.Geocoder, geocodeTimeout: cfg.GeocodeTimeout}
	if res.geocodeTimeout <= 0 {
		res.geocodeTimeout = 8 * time.Second
	}

	var builtinFallback City
	for _, c := range cities {
		names := append([]string{c.Name}, c.Aliases...)
		quoted := make([]string, 0, len(names))
		for _, n := range names {
			if n = Normalize(n); n != "" {
				quoted = append(quoted, regexp.QuoteMeta(n))
			}
		}
		if len(quoted) == 0 {
			continue
		}
		res.cities = append(res.cities, cityMatcher{city: c, re: regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)})
		if strings.EqualFold(c.Name, defaultName) {
			res.fallback = c
		}
		if strings.EqualFold(c.Name, DefaultCity) {
			builtinFallback = c
		}
	}

	// the fallback city must have a centroid, an unknown default gives way to a gazetteer entry
	if res.fallback.Name == "" {
		switch {
		case builtinFallback.Name != "":
			res.fallback = builtinFallback
		case len(res.cities) > 0:
			res.fallback = res.cities[0].city
		default:
			res.fallback = City{Name: defaultName}
		}
		log.Printf("[WARN] default city %q is not in the gazetteer, using %s", defaultName, res.fallback.Name)
	}
	return res
}

// Locate returns the location of an event described by raw text. It always returns a city and coordinates.
func (l *Locator) Locate(ctx context.Context, raw string) Location {
	return l.locate(ctx, NewTextContext(raw))
}

func (l *Locator) locate(ctx context.Context, tc TextContext) Location {
	city := l.matchCity(tc.Normalized)
	res := Location{City: city.Name, Address: city.Name, Coordinates: city.Centroid}

	address := ExtractAddress(tc.Raw)
	if address == "" {
		return res
	}
	res.Address = address

	if l.geocoder == nil {
		return res
	}
	gctx, cancel := context.WithTimeout(ctx, l.geocodeTimeout)
	defer cancel()
	coords, err := l.geocoder.Geocode(gctx, address, city.Name)
	if err != nil {
		log.Printf("[DEBUG] geocode %q, %s failed, using centroid: %v", address, city.Name, err)
		return res
	}
	if coords.IsZero() {
		return res
	}
	res.Coordinates = coords
	res.Geocoded = true
	return res
}

// matchCity returns the first gazetteer city mentioned in normalized text, or the fallback
func (l *Locator) matchCity(normalized string) City {
	if normalized != "" {
		for _, c := range l.cities {
			if c.re.MatchString(normalized) {
				return c.city
			}
		}
	}
	return l.fallback
}

// ExtractAddress finds the first street-level address, like "Piazza Duomo" or "Via dei Mille 12".
// It returns an empty string when the text has none.
func ExtractAddress(raw string) string {
	for _, loc := range streetPrefixRe.FindAllStringSubmatchIndex(raw, -1) {
		prefix := titleWord(raw[loc[2]:loc[3]])
		rest := raw[loc[1]:]
		if stop := addressStopRe.FindStringIndex(rest); stop != nil {
			rest = rest[:stop[0]]
		}
		if words := addressWords(strings.Fields(rest)); len(words) > 0 {
			return prefix + " " + strings.Join(words, " ")
		}
	}
	return ""
}

// addressWords takes the leading capitalized phrase, allowing lowercase connectors inside it
func addressWords(tokens []string) []string {
	var words []string
	named := false
	for i, tok := range tokens {
		if len(words) >= maxAddressWords {
			break
		}
		tok = strings.TrimRight(tok, ".:")
		if tok == "" {
			break
		}
		lower := Normalize(tok)
		if addressStopWords[lower] {
			break
		}
		first, _ := utf8.DecodeRuneInString(tok)
		switch {
		case unicode.IsUpper(first):
			words = append(words, titleWord(tok))
			named = true
		case unicode.IsDigit(first):
			words = append(words, tok)
		case addressConnectors[lower] && i+1 < len(tokens) && startsUpper(tokens[i+1]):
			words = append(words, lower)
		default:
			if !named {
				return nil
			}
			return trimConnectors(words)
		}
	}
	if !named {
		return nil
	}
	return trimConnectors(words)
}

func trimConnectors(words []string) []string {
	for len(words) > 0 && addressConnectors[words[len(words)-1]] {
		words = words[:len(words)-1]
	}
	return words
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

// titleWord lower-cases a word and upper-cases its first letter and letters after . ' or -
func titleWord(w string) string {
	rs := []rune(strings.ToLower(w))
	upNext := true
	for i, r := range rs {
		if upNext && unicode.IsLetter(r) {
			rs[i] = unicode.ToUpper(r)
			upNext = false
			continue
		}
		if r == '.' || r == '\'' || r == '-' || r == '’' {
			upNext = true
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			upNext = false
		}
	}
	return string(rs)
}
