package models

import (
	"time"

	dbtypes "github.com/YusukeAsk/016-worldhappynews/internal/db"
)

// NewsGenre is the fixed category set articles are curated into.
type NewsGenre string

const (
	GenreAnimal    NewsGenre = "動物"
	GenreKindness  NewsGenre = "親切"
	GenreHumor     NewsGenre = "ユーモア"
	GenreCulture   NewsGenre = "文化"
	GenreCommunity NewsGenre = "コミュニティ"
	GenreCourage   NewsGenre = "勇気"
	GenreEducation NewsGenre = "教育"
	GenreHumanity  NewsGenre = "人情"
)

// GenreStyle carries the cosmetic attributes attached to each genre.
// Purely presentational; the front end consumes them as-is.
type GenreStyle struct {
	Color      string
	PaperStyle string
}

var GenreStyles = map[NewsGenre]GenreStyle{
	GenreAnimal:    {Color: "bg-amber-200 text-amber-900", PaperStyle: "bg-[#f5ead0]"},
	GenreKindness:  {Color: "bg-rose-200 text-rose-900", PaperStyle: "bg-[#dce8f0]"},
	GenreHumor:     {Color: "bg-sky-200 text-sky-900", PaperStyle: "bg-[#e8f0f5]"},
	GenreCulture:   {Color: "bg-sky-200 text-sky-900", PaperStyle: "bg-[#f5ead0]"},
	GenreCommunity: {Color: "bg-emerald-200 text-emerald-900", PaperStyle: "bg-[#e5f0e0]"},
	GenreCourage:   {Color: "bg-orange-200 text-orange-900", PaperStyle: "bg-[#dce8f0]"},
	GenreEducation: {Color: "bg-violet-200 text-violet-900", PaperStyle: "bg-[#e5f0e0]"},
	GenreHumanity:  {Color: "bg-rose-200 text-rose-900", PaperStyle: "bg-[#dce8f0]"},
}

// ValidGenre reports whether g is one of the fixed genres.
func ValidGenre(g NewsGenre) bool {
	_, ok := GenreStyles[g]
	return ok
}

// Cosmetic layout variants, assigned cyclically by position index.
var (
	TapePositions = []string{"tape-top-left", "tape-top-right", "tape-bottom-right"}
	TornEdges     = []string{"torn-edge-1", "torn-edge-2"}
	Rotations     = []string{"-rotate-1", "rotate-1", "rotate-0.5", "-rotate-0.5", "rotate-0"}
)

// Article is a curated happy-news record. ID is a stable hash of the
// source URL, so re-ingesting the same article updates in place.
type Article struct {
	ID                string           `db:"id" json:"id"`
	Title             string           `db:"title" json:"title"`
	Summary           string           `db:"summary" json:"summary"`
	Location          string           `db:"location" json:"location"`
	Country           string           `db:"country" json:"country"`
	CountryCode       string           `db:"country_code" json:"countryCode"`
	Lat               float64          `db:"lat" json:"lat"`
	Lng               float64          `db:"lng" json:"lng"`
	Genre             NewsGenre        `db:"genre" json:"genre"`
	GenreColor        string           `db:"genre_color" json:"genreColor"`
	PaperStyle        string           `db:"paper_style" json:"paperStyle"`
	TapePosition      string           `db:"tape_position" json:"tapePosition"`
	TornEdge          string           `db:"torn_edge" json:"tornEdge"`
	Rotation          string           `db:"rotation" json:"rotation"`
	Image             string           `db:"image" json:"image"`
	URL               string           `db:"url" json:"url"`
	PublishedAt       time.Time        `db:"published_at" json:"publishedAt"`
	SourceName        string           `db:"source_name" json:"sourceName"`
	Content           dbtypes.NullText `db:"content" json:"content,omitempty"`
	ContentTranslated dbtypes.NullText `db:"content_translated" json:"contentTranslated,omitempty"`
	CreatedAt         time.Time        `db:"created_at" json:"createdAt"`
}

// Comment is a user comment on an article. Immutable once created.
type Comment struct {
	ID         string    `db:"id" json:"id"`
	ArticleID  string    `db:"article_id" json:"articleId"`
	AuthorName string    `db:"author_name" json:"authorName"`
	Body       string    `db:"body" json:"body"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// RawArticle is an uncurated article as returned by a provider fetcher.
type RawArticle struct {
	Title       string
	Description string
	Content     string
	URL         string
	Image       string
	PublishedAt time.Time
	SourceName  string
}
