// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

package db

var sqlMigrations = map[string]string{
	"001_initial.down.sql": `
		DROP TABLE parser_runs;
		DROP INDEX menus_hall_date_idx;
		DROP TABLE menus;
		DROP TABLE dining_halls;
	`,
	"001_initial.up.sql": `
		CREATE TABLE dining_halls (
			id       TEXT  NOT NULL PRIMARY KEY,
			name     TEXT  NOT NULL,
			college  TEXT  NOT NULL,
			vendor   TEXT  NOT NULL,
			color    TEXT  DEFAULT NULL
		);

		CREATE TABLE menus (
			id             BIGSERIAL    NOT NULL PRIMARY KEY,
			hall_id        TEXT         NOT NULL REFERENCES dining_halls ON DELETE CASCADE,
			date           DATE         NOT NULL,
			meal           TEXT         NOT NULL,
			stations_json  JSONB        NOT NULL,
			fetched_at     TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
			is_valid       BOOLEAN      NOT NULL DEFAULT TRUE,
			UNIQUE (hall_id, date, meal)
		);
		CREATE INDEX menus_hall_date_idx ON menus (hall_id, date);

		CREATE TABLE parser_runs (
			id             BIGSERIAL    NOT NULL PRIMARY KEY,
			hall_id        TEXT         NOT NULL REFERENCES dining_halls ON DELETE CASCADE,
			started_at     TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
			duration_ms    BIGINT       DEFAULT NULL,
			status         TEXT         NOT NULL,
			error_message  TEXT         DEFAULT NULL,
			menu_date      DATE         DEFAULT NULL
		);
	`,
	"002_dining_hours.down.sql": `
		DROP TABLE dining_hours_overrides;
		DROP TABLE dining_hours;
	`,
	"002_dining_hours.up.sql": `
		CREATE TABLE dining_hours (
			id           BIGSERIAL  NOT NULL PRIMARY KEY,
			hall_id      TEXT       NOT NULL REFERENCES dining_halls ON DELETE CASCADE,
			day_of_week  SMALLINT   NOT NULL CHECK (day_of_week BETWEEN 0 AND 6),
			meal         TEXT       NOT NULL,
			start_time   TEXT       NOT NULL,
			end_time     TEXT       NOT NULL,
			is_active    BOOLEAN    NOT NULL DEFAULT TRUE,
			UNIQUE (hall_id, day_of_week, meal)
		);

		CREATE TABLE dining_hours_overrides (
			id          BIGSERIAL  NOT NULL PRIMARY KEY,
			hall_id     TEXT       NOT NULL REFERENCES dining_halls ON DELETE CASCADE,
			date        DATE       NOT NULL,
			meal        TEXT       DEFAULT NULL,
			start_time  TEXT       DEFAULT NULL,
			end_time    TEXT       DEFAULT NULL,
			reason      TEXT       DEFAULT NULL,
			UNIQUE (hall_id, date, meal)
		);
	`,
}
