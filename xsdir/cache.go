package xsdir

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/sohnishi/acexs/internal/fingerprint"
)

// cacheRow mirrors one row of the xsdir_cache table.
type cacheRow struct {
	Path             string  `db:"path"`
	Size             int64   `db:"size"`
	ModTimeUnix      int64   `db:"mod_time_unix"`
	Fingerprint      string  `db:"fingerprint"`
	TableID          string  `db:"table_id"`
	AWR              float64 `db:"awr"`
	Filename         string  `db:"filename"`
	AccessRoute      string  `db:"access_route"`
	FileType         int     `db:"file_type"`
	Address          int     `db:"address"`
	TableLength      int     `db:"table_length"`
	RecordLength     int     `db:"record_length"`
	EntriesPerRecord int     `db:"entries_per_record"`
	Temperature      float64 `db:"temperature"`
	HasPtable        bool    `db:"has_ptable"`
}

// Cache is a persistent sqlite-backed store of parsed XsInfo rows, keyed by
// the source file's path, size, modification time, and content fingerprint.
// A cache hit on all four avoids reparsing an XSDIR file that has not
// changed since it was last read.
type Cache struct {
	db *sqlx.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS xsdir_cache (
	path               TEXT NOT NULL,
	size               INTEGER NOT NULL,
	mod_time_unix      INTEGER NOT NULL,
	fingerprint        TEXT NOT NULL,
	table_id           TEXT NOT NULL,
	awr                REAL NOT NULL,
	filename           TEXT NOT NULL,
	access_route       TEXT NOT NULL,
	file_type          INTEGER NOT NULL,
	address            INTEGER NOT NULL,
	table_length       INTEGER NOT NULL,
	record_length      INTEGER NOT NULL,
	entries_per_record INTEGER NOT NULL,
	temperature        REAL NOT NULL,
	has_ptable         INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS xsdir_cache_path_idx ON xsdir_cache(path);
`

// OpenCache opens (creating if necessary) a sqlite cache database at
// dbPath.
func OpenCache(dbPath string) (*Cache, error) {
	db, err := sqlx.Connect("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening xsdir cache at %s: %w", dbPath, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating xsdir cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the cache's underlying database handle.
func (c *Cache) Close() error { return c.db.Close() }

// Lookup returns the cached entries for path if a row exists whose size,
// modification time, and content fingerprint still match the file on disk.
// A miss (stale or absent) reports ok=false rather than an error.
func (c *Cache) Lookup(path string) (entries []XsInfo, ok bool, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false, fmt.Errorf("stat %s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, false, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sum, err := fingerprint.Sum(f, fingerprint.BLAKE3)
	if err != nil {
		return nil, false, fmt.Errorf("fingerprinting %s: %w", path, err)
	}

	var rows []cacheRow
	err = c.db.Select(&rows, `
		SELECT path, size, mod_time_unix, fingerprint, table_id, awr, filename,
		       access_route, file_type, address, table_length, record_length,
		       entries_per_record, temperature, has_ptable
		FROM xsdir_cache
		WHERE path = ? AND size = ? AND mod_time_unix = ? AND fingerprint = ?`,
		path, info.Size(), info.ModTime().Unix(), sum)
	if err != nil && err != sql.ErrNoRows {
		return nil, false, fmt.Errorf("querying xsdir cache: %w", err)
	}
	if len(rows) == 0 {
		return nil, false, nil
	}

	entries = make([]XsInfo, len(rows))
	for i, r := range rows {
		entries[i] = XsInfo{
			TableID: r.TableID, AWR: r.AWR, Filename: r.Filename, AccessRoute: r.AccessRoute,
			FileType: r.FileType, Address: r.Address, TableLength: r.TableLength,
			RecordLength: r.RecordLength, EntriesPerRecord: r.EntriesPerRecord,
			Temperature: r.Temperature, HasPtable: r.HasPtable,
		}
	}
	return entries, true, nil
}

// Store replaces path's cached rows with entries, stamped with the file's
// current size, modification time, and content fingerprint.
func (c *Cache) Store(path string, entries []XsInfo) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sum, err := fingerprint.Sum(f, fingerprint.BLAKE3)
	if err != nil {
		return fmt.Errorf("fingerprinting %s: %w", path, err)
	}

	tx, err := c.db.Beginx()
	if err != nil {
		return fmt.Errorf("beginning xsdir cache transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM xsdir_cache WHERE path = ?`, path); err != nil {
		return fmt.Errorf("clearing stale xsdir cache rows for %s: %w", path, err)
	}

	for _, e := range entries {
		_, err := tx.NamedExec(`
			INSERT INTO xsdir_cache (
				path, size, mod_time_unix, fingerprint, table_id, awr, filename,
				access_route, file_type, address, table_length, record_length,
				entries_per_record, temperature, has_ptable
			) VALUES (
				:path, :size, :mod_time_unix, :fingerprint, :table_id, :awr, :filename,
				:access_route, :file_type, :address, :table_length, :record_length,
				:entries_per_record, :temperature, :has_ptable
			)`, cacheRow{
			Path: path, Size: info.Size(), ModTimeUnix: info.ModTime().Unix(), Fingerprint: sum,
			TableID: e.TableID, AWR: e.AWR, Filename: e.Filename, AccessRoute: e.AccessRoute,
			FileType: e.FileType, Address: e.Address, TableLength: e.TableLength,
			RecordLength: e.RecordLength, EntriesPerRecord: e.EntriesPerRecord,
			Temperature: e.Temperature, HasPtable: e.HasPtable,
		})
		if err != nil {
			return fmt.Errorf("inserting xsdir cache row for %s: %w", e.TableID, err)
		}
	}

	return tx.Commit()
}
