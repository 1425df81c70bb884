package extract

import (
	"strings"

	"github.com/umputun/corteo/pkg/domain"
)

// Coordinates is a WGS84 point
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsZero reports whether coordinates are unset
func (c Coordinates) IsZero() bool {
	return c.Lat == 0 && c.Lng == 0
}

// City is a gazetteer entry
type City struct {
	Name     string
	Aliases  []string // extra spellings matched besides Name
	Centroid Coordinates
}

// DefaultCity is used when no gazetteer city is mentioned
const DefaultCity = "Milano"

// DefaultCities is the gazetteer of major Italian cities. Order matters, the first mentioned entry wins.
var DefaultCities = []City{
	{Name: "Roma", Aliases: []string{"rome"}, Centroid: Coordinates{Lat: 41.9028, Lng: 12.4964}},
	{Name: "Milano", Aliases: []string{"milan"}, Centroid: Coordinates{Lat: 45.4642, Lng: 9.1900}},
	{Name: "Napoli", Aliases: []string{"naples"}, Centroid: Coordinates{Lat: 40.8518, Lng: 14.2681}},
	{Name: "Torino", Aliases: []string{"turin"}, Centroid: Coordinates{Lat: 45.0703, Lng: 7.6869}},
	{Name: "Palermo", Centroid: Coordinates{Lat: 38.1157, Lng: 13.3615}},
	{Name: "Genova", Aliases: []string{"genoa"}, Centroid: Coordinates{Lat: 44.4056, Lng: 8.9463}},
	{Name: "Bologna", Centroid: Coordinates{Lat: 44.4949, Lng: 11.3426}},
	{Name: "Firenze", Aliases: []string{"florence"}, Centroid: Coordinates{Lat: 43.7696, Lng: 11.2558}},
	{Name: "Bari", Centroid: Coordinates{Lat: 41.1171, Lng: 16.8719}},
	{Name: "Catania", Centroid: Coordinates{Lat: 37.5079, Lng: 15.0830}},
	{Name: "Venezia", Aliases: []string{"venice", "mestre"}, Centroid: Coordinates{Lat: 45.4408, Lng: 12.3155}},
	{Name: "Verona", Centroid: Coordinates{Lat: 45.4384, Lng: 10.9916}},
	{Name: "Messina", Centroid: Coordinates{Lat: 38.1938, Lng: 15.5540}},
	{Name: "Padova", Aliases: []string{"padua"}, Centroid: Coordinates{Lat: 45.4064, Lng: 11.8768}},
	{Name: "Trieste", Centroid: Coordinates{Lat: 45.6495, Lng: 13.7768}},
	{Name: "Brescia", Centroid: Coordinates{Lat: 45.5416, Lng: 10.2118}},
	{Name: "Parma", Centroid: Coordinates{Lat: 44.8015, Lng: 10.3279}},
	{Name: "Taranto", Centroid: Coordinates{Lat: 40.4644, Lng: 17.2470}},
	{Name: "Modena", Centroid: Coordinates{Lat: 44.6471, Lng: 10.9252}},
	{Name: "Cagliari", Centroid: Coordinates{Lat: 39.2238, Lng: 9.1217}},
	{Name: "Perugia", Centroid: Coordinates{Lat: 43.1107, Lng: 12.3908}},
	{Name: "Pisa", Centroid: Coordinates{Lat: 43.7228, Lng: 10.4017}},
}

// LookupCity returns the DefaultCities entry with the given name, ignoring case
func LookupCity(name string) (City, bool) {
	for _, c := range DefaultCities {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c, true
		}
	}
	return City{}, false
}

// monthNumbers maps normalized Italian month names and abbreviations to month numbers
var monthNumbers = map[string]int{
	"gennaio": 1, "febbraio": 2, "marzo": 3, "aprile": 4, "maggio": 5, "giugno": 6,
	"luglio": 7, "agosto": 8, "settembre": 9, "ottobre": 10, "novembre": 11, "dicembre": 12,
	"gen": 1, "feb": 2, "mar": 3, "apr": 4, "mag": 5, "giu": 6,
	"lug": 7, "ago": 8, "set": 9, "ott": 10, "nov": 11, "dic": 12,
}

// monthPattern lists full names before abbreviations, the regexp engine picks the first alternative
const monthPattern = `gennaio|febbraio|marzo|aprile|maggio|giugno|luglio|agosto|settembre|ottobre|novembre|dicembre|` +
	`gen|feb|mar|apr|mag|giu|lug|ago|set|ott|nov|dic`

const dayNamePattern = `lunedi|martedi|mercoledi|giovedi|venerdi|sabato|domenica`

// schedulingCues mark sentences that likely announce the event date
var schedulingCues = []string{
	"si terra", "avra luogo", "in programma", "appuntamento", "ci vediamo", "vi aspettiamo",
	"quando", "data", "ore", "alle", "dalle",
	"lunedi", "martedi", "mercoledi", "giovedi", "venerdi", "sabato", "domenica",
}

// Rule maps a label to keywords. Keywords are matched on normalized text as whole words,
// a trailing "*" turns a keyword into a stem matching any word starting with it.
type Rule[T ~string] struct {
	Label    T
	Keywords []string
}

// DefaultCategories is the ordered category table
var DefaultCategories = []Rule[domain.Category]{
	{Label: domain.CategoryEnvironment, Keywords: []string{
		"clima*", "ambient*", "ecolog*", "fridays for future", "extinction rebellion", "ultima generazione",
		"inquinament*", "fossil*", "greenpeace", "deforestazion*", "siccita", "biodiversita",
		"riscaldamento globale", "transizione ecologica", "no tav",
	}},
	{Label: domain.CategoryLGBTQ, Keywords: []string{
		"pride", "lgbt*", "queer", "omofob*", "transfob*", "omotransfob*", "gay", "lesbic*",
		"bisessual*", "arcobaleno", "ddl zan", "trans", "transgender", "non binar*",
	}},
	{Label: domain.CategoryWomenRights, Keywords: []string{
		"femminis*", "transfemminis*", "non una di meno", "violenza di genere", "violenza sulle donne",
		"femminicid*", "patriarcat*", "aborto", "donne",
	}},
	{Label: domain.CategoryLabor, Keywords: []string{
		"scioper*", "lavorat*", "lavoro", "sindacat*", "cgil", "cisl", "uil", "usb", "cobas",
		"salari*", "precari*", "licenziament*", "operai*", "rider", "primo maggio",
	}},
	{Label: domain.CategoryRacialSocial, Keywords: []string{
		"razzis*", "antirazzis*", "migrant*", "rifugiat*", "cittadinanza", "ius soli", "ius scholae",
		"discriminazion*", "antifascis*", "fascis*", "sfratt*", "diritto alla casa", "poverta", "cpr",
	}},
	{Label: domain.CategoryCivilHuman, Keywords: []string{
		"diritti umani", "diritti civili", "liberta", "repression*", "carcer*", "detenut*",
		"ddl sicurezza", "democrazia", "tortura", "diritto di protesta",
	}},
	{Label: domain.CategoryHealthEdu, Keywords: []string{
		"sanita", "sanitari*", "ospedal*", "salute", "scuol*", "universita", "student*", "istruzione",
		"ricerca pubblica", "medici", "infermier*",
	}},
	{Label: domain.CategoryPeace, Keywords: []string{
		"pace", "guerra", "guerre", "palestin*", "gaza", "disarmo", "antimilitaris*", "militarizzazion*",
		"riarmo", "ucrain*", "genocidi*", "cessate il fuoco", "no war",
	}},
	{Label: domain.CategoryTransparency, Keywords: []string{
		"corruzion*", "trasparenz*", "mafia", "mafie", "antimafia", "legalita", "tangent*", "appalti",
	}},
}

// DefaultEventTypes is the ordered event type table
var DefaultEventTypes = []Rule[domain.EventType]{
	{Label: domain.EventProtest, Keywords: []string{
		"corteo", "cortei", "manifestazion*", "presidio", "presidi", "scioper*", "protest*", "flash mob",
		"flashmob", "sit-in", "sit in", "marcia", "mobilitazion*", "pride", "fiaccolata", "blocco",
		"picchetto", "occupazion*", "street parade",
	}},
	{Label: domain.EventAssembly, Keywords: []string{
		"assemblea", "assemblee", "riunione", "plenaria", "consulta",
	}},
	{Label: domain.EventWorkshop, Keywords: []string{
		"workshop", "laborator*", "formazione", "training",
	}},
	{Label: domain.EventTalk, Keywords: []string{
		"conferenza", "dibattito", "talk", "presentazion*", "seminari*", "incontro", "tavola rotonda",
		"convegno", "lezione",
	}},
}
