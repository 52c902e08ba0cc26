package packmaker

import (
	"bytes"
	"crypto/sha1"
	"database/sql"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/bodgit/packmaker/sprite"
	_ "github.com/mattn/go-sqlite3"
)

// SheetDB is a library of sprite sheets, one current sheet per kind
type SheetDB struct {
	db *sql.DB
}

// NewSheetDB opens or creates the library in file
func NewSheetDB(file string) (*SheetDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS sheet (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, image BLOB NOT NULL)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS kind (name TEXT PRIMARY KEY NOT NULL, sheet_id INTEGER NOT NULL, FOREIGN KEY(sheet_id) REFERENCES sheet(id))"); err != nil {
		return nil, err
	}

	return &SheetDB{
		db: db,
	}, nil
}

// Close closes the library
func (db *SheetDB) Close() error {
	return db.db.Close()
}

// ImportSheet stores the image in file as the sheet for k
func (db *SheetDB) ImportSheet(k Kind, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	return db.Import(k, f)
}

// Import stores the image read from r as the sheet for k
func (db *SheetDB) Import(k Kind, r io.Reader) error {
	h := sha1.New()
	m, _, err := image.Decode(io.TeeReader(r, h))
	if err != nil {
		return err
	}

	if _, err := sprite.NewSheet(m); err != nil {
		return err
	}

	id, err := db.addSheet(fmt.Sprintf("%X", h.Sum(nil)), m)
	if err != nil {
		return err
	}

	if _, err := db.db.Exec("INSERT OR REPLACE INTO kind (name, sheet_id) VALUES (?, ?)", k.String(), id); err != nil {
		return err
	}

	return nil
}

func (db *SheetDB) addSheet(sha string, m image.Image) (int64, error) {
	var id int64
	switch err := db.db.QueryRow("SELECT id FROM sheet WHERE sha1 = ?", sha).Scan(&id); err {
	case sql.ErrNoRows:
		b := new(bytes.Buffer)
		if err := png.Encode(b, m); err != nil {
			return 0, err
		}
		result, err := db.db.Exec("INSERT INTO sheet (sha1, image) VALUES (?, ?)", sha, b.Bytes())
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

// FindSheet returns the sheet for k, or nil if none has been imported
func (db *SheetDB) FindSheet(k Kind) (*sprite.Sheet, error) {
	var b []byte
	switch err := db.db.QueryRow("SELECT s.image FROM kind AS k JOIN sheet AS s ON k.sheet_id = s.id WHERE k.name = ?", k.String()).Scan(&b); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return sprite.DecodeSheet(bytes.NewReader(b))
	default:
		return nil, err
	}
}

func decodeSheetFile(file string) (*sprite.Sheet, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return sprite.DecodeSheet(f)
}
