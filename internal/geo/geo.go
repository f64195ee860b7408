// Package geo maps coarse country signals inferred from article text to
// display names and approximate map coordinates.
package geo

import "regexp"

// CountryMatch is the result of inferring a country from article text.
type CountryMatch struct {
	Code     string
	Country  string
	Location string
}

// Coords is an approximate country center with its canonical display name.
type Coords struct {
	Lat  float64
	Lng  float64
	Name string
}

type countryPattern struct {
	re      *regexp.Regexp
	code    string
	country string
}

// Ordered: first match wins.
var countryPatterns = []countryPattern{
	{regexp.MustCompile(`(?i)bbc|uk|britain|british|reuters.*uk`), "gb", "イギリス"},
	{regexp.MustCompile(`(?i)cnn|nbc|abc|fox|ap news|usa today|american`), "us", "アメリカ"},
	{regexp.MustCompile(`(?i)japan|nhk|asahi|yomiuri|mainichi|nikkei`), "jp", "日本"},
	{regexp.MustCompile(`(?i)australia|abc.*au|sbs`), "au", "オーストラリア"},
	{regexp.MustCompile(`(?i)canada|canadian|cbc|ctv`), "ca", "カナダ"},
	{regexp.MustCompile(`(?i)germany|german|dw|spiegel`), "de", "ドイツ"},
	{regexp.MustCompile(`(?i)france|french|le monde|le figaro`), "fr", "フランス"},
	{regexp.MustCompile(`(?i)italy|italian|ansa|corriere`), "it", "イタリア"},
	{regexp.MustCompile(`(?i)india|indian|times of india|hindustan`), "in", "インド"},
	{regexp.MustCompile(`(?i)china|chinese|xinhua|scmp`), "cn", "中国"},
	{regexp.MustCompile(`(?i)korea|korean|chosun`), "kr", "韓国"},
	{regexp.MustCompile(`(?i)brazil|brazilian|globo`), "br", "ブラジル"},
	{regexp.MustCompile(`(?i)netherlands|dutch`), "nl", "オランダ"},
	{regexp.MustCompile(`(?i)kenya|nairobi`), "ke", "ケニア"},
	{regexp.MustCompile(`(?i)thailand|thai|bangkok`), "th", "タイ"},
}

var countryCoords = map[string]Coords{
	"gb": {55.38, -3.44, "イギリス"},
	"us": {39.83, -98.58, "アメリカ"},
	"jp": {36.20, 138.25, "日本"},
	"au": {-25.27, 133.78, "オーストラリア"},
	"ca": {56.13, -106.35, "カナダ"},
	"de": {51.17, 10.45, "ドイツ"},
	"fr": {46.23, 2.21, "フランス"},
	"it": {41.87, 12.57, "イタリア"},
	"in": {20.59, 78.96, "インド"},
	"cn": {35.86, 104.20, "中国"},
	"kr": {35.91, 127.77, "韓国"},
	"br": {-14.24, -51.93, "ブラジル"},
	"nl": {52.13, 5.29, "オランダ"},
	"ke": {-0.02, 37.91, "ケニア"},
	"th": {15.87, 100.99, "タイ"},
}

// Default center used when the country is unknown.
var worldCenter = Coords{Lat: 20, Lng: 0, Name: "世界"}

// InferCountry matches the source name and article text against the
// fixed pattern table. Unmatched text falls back to the generic world
// placeholder.
func InferCountry(sourceName, title, description string) CountryMatch {
	text := title + " " + description
	for _, p := range countryPatterns {
		if p.re.MatchString(sourceName) || p.re.MatchString(text) {
			return CountryMatch{Code: p.code, Country: p.country, Location: p.country}
		}
	}
	return CountryMatch{Code: "xx", Country: "世界", Location: "世界各地"}
}

// CountryCoords resolves a country code to approximate coordinates and
// a canonical display name. Unknown codes land on the world center with
// the caller-supplied fallback name.
func CountryCoords(code, fallbackName string) Coords {
	if c, ok := countryCoords[code]; ok {
		return c
	}
	c := worldCenter
	if fallbackName != "" {
		c.Name = fallbackName
	}
	return c
}
