package migration

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/tracklit/internal/utils"
)

// NormalizeResult summarizes a day normalization pass over completion_records.
type NormalizeResult struct {
	Rewritten  int      // rows whose day was rewritten to YYYY-MM-DD
	Duplicates int      // rows removed because another row already covered the same tracker and day
	Invalid    []string // ids of rows whose day could not be parsed; left untouched
}

// Changed reports whether the pass modified any row.
func (r NormalizeResult) Changed() bool {
	return r.Rewritten > 0 || r.Duplicates > 0
}

type recordRow struct {
	id        string
	trackerID string
	day       string
}

// NormalizeDays rewrites every completion day to its canonical YYYY-MM-DD key in
// loc and collapses rows that end up on the same (tracker, day). Rows that already
// carry the canonical key win over rewritten ones; otherwise the earliest created
// row is kept. The whole pass runs in one transaction.
func NormalizeDays(db *sql.DB, driver Driver, loc *time.Location) (NormalizeResult, error) {
	var result NormalizeResult
	if loc == nil {
		loc = time.Local
	}

	tx, err := db.Begin()
	if err != nil {
		return result, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.Query("SELECT id, tracker_id, day FROM completion_records ORDER BY tracker_id, created_at, id")
	if err != nil {
		return result, fmt.Errorf("failed to read completion records: %w", err)
	}
	var all []recordRow
	for rows.Next() {
		var rr recordRow
		if err := rows.Scan(&rr.id, &rr.trackerID, &rr.day); err != nil {
			rows.Close()
			return result, err
		}
		all = append(all, rr)
	}
	if err := rows.Close(); err != nil {
		return result, err
	}
	if err := rows.Err(); err != nil {
		return result, err
	}

	type groupKey struct{ trackerID, day string }
	groups := make(map[groupKey][]recordRow)
	var order []groupKey
	for _, rr := range all {
		key, err := utils.ParseLegacyDay(rr.day, loc)
		if err != nil {
			result.Invalid = append(result.Invalid, rr.id)
			continue
		}
		gk := groupKey{rr.trackerID, key}
		if _, ok := groups[gk]; !ok {
			order = append(order, gk)
		}
		groups[gk] = append(groups[gk], rr)
	}

	p := func(n int) string {
		if driver == DriverPostgres {
			return fmt.Sprintf("$%d", n)
		}
		return "?"
	}
	deleteStmt := "DELETE FROM completion_records WHERE id = " + p(1)
	updateStmt := "UPDATE completion_records SET day = " + p(1) + " WHERE id = " + p(2)

	var updates [][2]string
	for _, gk := range order {
		members := groups[gk]
		keep := 0
		for i, m := range members {
			if m.day == gk.day {
				keep = i
				break
			}
		}
		for i, m := range members {
			if i == keep {
				continue
			}
			if _, err := tx.Exec(deleteStmt, m.id); err != nil {
				return result, fmt.Errorf("failed to remove duplicate record %s: %w", m.id, err)
			}
			result.Duplicates++
		}
		if members[keep].day != gk.day {
			updates = append(updates, [2]string{gk.day, members[keep].id})
		}
	}

	// Updates run after every duplicate is gone so the unique index never trips.
	for _, u := range updates {
		if _, err := tx.Exec(updateStmt, u[0], u[1]); err != nil {
			return result, fmt.Errorf("failed to rewrite record %s: %w", u[1], err)
		}
		result.Rewritten++
	}

	if err := tx.Commit(); err != nil {
		return NormalizeResult{}, fmt.Errorf("failed to commit normalization: %w", err)
	}
	return result, nil
}
