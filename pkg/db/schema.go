package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- One row per broken-page report
CREATE TABLE IF NOT EXISTS archived_pages (
    record_id INTEGER PRIMARY KEY AUTOINCREMENT,
    url TEXT NOT NULL,
    archived BOOLEAN NOT NULL DEFAULT 0,
    snapshot_url TEXT,          -- NULL when no snapshot was found
    ai_reconstruction TEXT,     -- generated content or the failure sentinel
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_archived_pages_url ON archived_pages(url);
CREATE INDEX IF NOT EXISTS idx_archived_pages_archived ON archived_pages(archived);
`
