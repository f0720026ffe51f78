package repository

// consumption_logs.item_id has no foreign key: logs may reference unknown items.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS inventory (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    name             TEXT NOT NULL,
    quantity         REAL NOT NULL,
    unit             TEXT NOT NULL DEFAULT '',
    category         TEXT NOT NULL,
    expiration_date  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS consumption_logs (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    item_id          INTEGER NOT NULL,
    quantity         REAL NOT NULL,
    resource_type    TEXT NOT NULL,
    timestamp        TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_inventory_name ON inventory(name);
CREATE INDEX IF NOT EXISTS idx_inventory_category ON inventory(category);
CREATE INDEX IF NOT EXISTS idx_logs_resource ON consumption_logs(resource_type);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS inventory (
    id               BIGSERIAL PRIMARY KEY,
    name             TEXT NOT NULL,
    quantity         DOUBLE PRECISION NOT NULL,
    unit             TEXT NOT NULL DEFAULT '',
    category         TEXT NOT NULL,
    expiration_date  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS consumption_logs (
    id               BIGSERIAL PRIMARY KEY,
    item_id          BIGINT NOT NULL,
    quantity         DOUBLE PRECISION NOT NULL,
    resource_type    TEXT NOT NULL,
    timestamp        TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_inventory_name ON inventory(name);
CREATE INDEX IF NOT EXISTS idx_inventory_category ON inventory(category);
CREATE INDEX IF NOT EXISTS idx_logs_resource ON consumption_logs(resource_type);
`
