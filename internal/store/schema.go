package store

// Schema v1 - Initial database schema
//
// Seven tables: users, trips, trip_steps, journal_entries, journal_media,
// checklists, checklist_items. Cascade rules:
//   trips           -> trip_steps      ON DELETE CASCADE
//   trips           -> checklists      ON DELETE CASCADE
//   trips           -> journal_entries ON DELETE CASCADE
//   trip_steps      -> journal_entries ON DELETE SET NULL
//   journal_entries -> journal_media   ON DELETE CASCADE
//   checklists      -> checklist_items ON DELETE CASCADE
const schemaV1 = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
  version INTEGER PRIMARY KEY,
  applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Credential rows. Passwords are stored in clear text; this mirrors the
-- legacy on-device behavior and must not leave the device.
CREATE TABLE IF NOT EXISTS users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT NOT NULL,
  password TEXT NOT NULL
);

-- Top-level journeys. user_id is a latent column: declared for a future
-- multi-user mode but never populated or filtered on.
CREATE TABLE IF NOT EXISTS trips (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL,
  destination TEXT,
  start_date TEXT,
  end_date TEXT,
  budget REAL,
  notes TEXT,
  image_uri TEXT,
  user_id INTEGER,
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY (user_id) REFERENCES users(id)
);

-- Dated itinerary steps within a trip
CREATE TABLE IF NOT EXISTS trip_steps (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  trip_id INTEGER NOT NULL,
  name TEXT NOT NULL,
  location TEXT,
  start_date TEXT,
  end_date TEXT,
  description TEXT,
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_trip_steps_trip_id ON trip_steps(trip_id);

-- Diary entries, tied to a trip and optionally to a step. Deleting the
-- step keeps the entry and clears the reference.
CREATE TABLE IF NOT EXISTS journal_entries (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  trip_id INTEGER NOT NULL,
  step_id INTEGER,
  title TEXT NOT NULL,
  content TEXT,
  entry_date TEXT NOT NULL,
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE,
  FOREIGN KEY (step_id) REFERENCES trip_steps(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_journal_entries_trip_id ON journal_entries(trip_id);
CREATE INDEX IF NOT EXISTS idx_journal_entries_step_id ON journal_entries(step_id);

-- Photos and audio attached to a diary entry
CREATE TABLE IF NOT EXISTS journal_media (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  entry_id INTEGER NOT NULL,
  media_type TEXT NOT NULL,
  uri TEXT NOT NULL,
  description TEXT,
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY (entry_id) REFERENCES journal_entries(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_journal_media_entry_id ON journal_media(entry_id);

-- Packing/task lists scoped to a trip
CREATE TABLE IF NOT EXISTS checklists (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  trip_id INTEGER NOT NULL,
  title TEXT NOT NULL,
  description TEXT,
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_checklists_trip_id ON checklists(trip_id);

-- Line items; is_checked is stored as 0/1 and surfaced as bool
CREATE TABLE IF NOT EXISTS checklist_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  checklist_id INTEGER NOT NULL,
  text TEXT NOT NULL,
  is_checked BOOLEAN NOT NULL DEFAULT 0,
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY (checklist_id) REFERENCES checklists(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_checklist_items_checklist_id ON checklist_items(checklist_id);
`

// dropOrder lists the domain tables children-first so a reset never hits a
// foreign key reference from a surviving child.
var dropOrder = []string{
	"checklist_items",
	"checklists",
	"journal_media",
	"journal_entries",
	"trip_steps",
	"trips",
	"users",
}
