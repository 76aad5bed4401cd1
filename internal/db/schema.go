package db

// SchemaSQL is the complete schema for fresh cardioplan installs.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All repository
// tests build their in-memory database from GetSchemaSQL(), so a repository
// referencing a column that does not exist here fails immediately with
// "no such column" at test time.
//
// Column names x101..x112 (pre-operative indicators), pe..snd
// (post-operative conditions) and x201..x209 / x401..x409 (strategy values)
// are the clinical variable codes the downstream models were trained
// against; they are kept verbatim.
const SchemaSQL = `
-- Patients with their pre-operative (first-stage) indicators
CREATE TABLE IF NOT EXISTS patients (
	patient_id INTEGER PRIMARY KEY AUTOINCREMENT,
	surname TEXT NOT NULL,
	firstname TEXT NOT NULL,
	middlename TEXT,
	sex TEXT,
	date_of_birth TEXT,
	diagnosis TEXT,
	x101 REAL, x102 REAL, x103 REAL, x104 REAL, x105 REAL,
	x106 REAL, x107 REAL, x108 REAL, x109 REAL,
	x110 TEXT, x111 TEXT, x112 TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Post-operative condition sub-records (second-stage input).
-- A patient may exist without a row here; the pipeline reports that case
-- distinctly from a missing patient.
CREATE TABLE IF NOT EXISTS patient_conditions (
	patient_id INTEGER PRIMARY KEY,
	pe TEXT, vab TEXT, p_early TEXT, plicat TEXT, stroke TEXT,
	thrombosis TEXT, chyle TEXT, avb TEXT, snd TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (patient_id) REFERENCES patients(patient_id) ON DELETE CASCADE
);

-- Accepted first-stage (operative) treatment strategies, append-only
CREATE TABLE IF NOT EXISTS first_stage_treatments (
	id TEXT PRIMARY KEY,
	patient_id INTEGER NOT NULL,
	x201 REAL NOT NULL, x202 REAL NOT NULL, x203 REAL NOT NULL,
	x204 REAL NOT NULL, x205 REAL NOT NULL, x206 REAL NOT NULL,
	x207 REAL NOT NULL, x208 REAL NOT NULL, x209 REAL NOT NULL,
	created_at DATETIME NOT NULL,
	FOREIGN KEY (patient_id) REFERENCES patients(patient_id)
);

-- Accepted second-stage (medication) treatment strategies, append-only
CREATE TABLE IF NOT EXISTS second_stage_treatments (
	id TEXT PRIMARY KEY,
	patient_id INTEGER NOT NULL,
	x401 REAL NOT NULL, x402 REAL NOT NULL, x403 REAL NOT NULL,
	x404 REAL NOT NULL, x405 REAL NOT NULL, x406 REAL NOT NULL,
	x407 REAL NOT NULL, x408 REAL NOT NULL, x409 REAL NOT NULL,
	created_at DATETIME NOT NULL,
	FOREIGN KEY (patient_id) REFERENCES patients(patient_id)
);

CREATE INDEX IF NOT EXISTS idx_first_stage_treatments_patient
	ON first_stage_treatments(patient_id);
CREATE INDEX IF NOT EXISTS idx_second_stage_treatments_patient
	ON second_stage_treatments(patient_id);
`

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
func GetSchemaSQL() string {
	return SchemaSQL
}
