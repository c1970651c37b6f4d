package entity

type Genre string

const (
	GenreAction      Genre = "Action"
	GenreComedy      Genre = "Comedy"
	GenreDrama       Genre = "Drama"
	GenreHorror      Genre = "Horror"
	GenreThriller    Genre = "Thriller"
	GenreRomance     Genre = "Romance"
	GenreSciFi       Genre = "Sci-Fi"
	GenreFantasy     Genre = "Fantasy"
	GenreAdventure   Genre = "Adventure"
	GenreAnimation   Genre = "Animation"
	GenreDocumentary Genre = "Documentary"
	GenreMusical     Genre = "Musical"
)

// MinReleaseYear is the year of the first released film.
const MinReleaseYear = 1888

type Movie struct {
	Base
	Title             string  `db:"title"` // unique
	Genre             Genre   `db:"genre"`
	DurationInMinutes int     `db:"duration_in_minutes"`
	Rating            float64 `db:"rating"` // 0-10
	ReleaseYear       int     `db:"release_year"`
}
