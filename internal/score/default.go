package score

import (
	"database/sql"
	"log"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"git.lost.host/meutraa/bmsplay/internal/game"
)

// DefaultScorer keeps finished results in a local sqlite database,
// keyed by the sha256 sum of the chart source.
type DefaultScorer struct {
	Database string

	db *sql.DB
}

func (s *DefaultScorer) Init() error {
	db, err := sql.Open("sqlite3", s.Database)
	if err != nil {
		return errors.Wrap(err, "unable to open score database")
	}

	initStatement := `
	create table if not exists scores
	  (
		  id integer not null primary key,
		  sum text,
		  title text,
		  speed real,
		  cool integer,
		  great integer,
		  good integer,
		  miss integer,
		  maxcombo integer,
		  point integer
	  );
	`
	if _, err = db.Exec(initStatement); err != nil {
		return errors.Wrap(err, "unable to create scores table")
	}

	s.db = db
	return nil
}

func (s *DefaultScorer) Deinit() {
	if nil != s.db {
		s.db.Close()
	}
}

func (s *DefaultScorer) Save(chart *game.Chart, result *Score, speed float64) error {
	_, err := s.db.Exec(
		"insert into scores(sum, title, speed, cool, great, good, miss, maxcombo, point) values(?, ?, ?, ?, ?, ?, ?, ?, ?)",
		chart.Sum, chart.Title, speed,
		result.Judges[0], result.Judges[1], result.Judges[2], result.Judges[3],
		result.MaxCombo, result.Point,
	)
	return errors.Wrap(err, "unable to save score")
}

func (s *DefaultScorer) Best(chart *game.Chart) (int, bool) {
	var point sql.NullInt64
	err := s.db.QueryRow("select max(point) from scores where sum = ?", chart.Sum).Scan(&point)
	if err != nil && err != sql.ErrNoRows {
		log.Println("unable to load best score", err)
	}
	if err != nil || !point.Valid {
		return 0, false
	}
	return int(point.Int64), true
}
