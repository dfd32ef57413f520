package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Runs table: one row per completed validation run
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    file_path TEXT NOT NULL,
    field_name TEXT NOT NULL,
    good_rows INTEGER NOT NULL,
    bad_rows INTEGER NOT NULL,
    duration_ms INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_runs_file ON runs(file_path);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);

-- Run errors: per-row failures captured for a run (capped by the caller)
CREATE TABLE IF NOT EXISTS run_errors (
    error_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    line INTEGER NOT NULL,
    category TEXT NOT NULL,      -- empty, preprocess, decode
    message TEXT NOT NULL,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_run_errors_run ON run_errors(run_id);
CREATE INDEX IF NOT EXISTS idx_run_errors_category ON run_errors(category);
`
