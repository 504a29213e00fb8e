package repositories

import (
	"database/sql"
	"strings"

	intconfig "gatepass/internal/config"
	intdb "gatepass/internal/db"
	"gatepass/internal/domain"
	"gatepass/internal/domain/models"
)

type TripRepository struct {
	DB *sql.DB
}

func (r TripRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Insert stores the trip and its documents in one transaction, returning
// the new trip id. A failed document write rolls back the trip row: no
// partial trip ever surfaces in the trip log.
func (r TripRepository) Insert(req models.TripRequest, tripRef string) (int64, error) {
	db := r.db()
	if db == nil {
		return 0, domain.InternalError{Msg: "database not available"}
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, domain.InternalError{Msg: "failed to start transaction", Err: err}
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	cols := []string{"trip_ref", "driver_name", "driver_phone", "vehicle_number", "route_from", "route_to"}
	vals := []any{tripRef, req.DriverName, req.DriverPhone, req.VehicleNumber, req.RouteFrom, req.RouteTo}

	// older deployments may not have the driver_photo column yet
	if intdb.HasColumn(tx, "trips", "driver_photo") {
		cols = append(cols, "driver_photo")
		vals = append(vals, intdb.NullIfEmpty(req.DriverPhoto))
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(cols)), ",")
	res, err := tx.Exec(
		"INSERT INTO trips ("+strings.Join(cols, ", ")+") VALUES ("+placeholders+")",
		vals...,
	)
	if err != nil {
		return 0, domain.InternalError{Msg: "failed to insert trip", Err: err}
	}

	tripID, err := res.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Msg: "failed to read trip id", Err: err}
	}

	for _, kind := range models.DocumentKinds {
		payload, ok := req.Documents[kind]
		if !ok || strings.TrimSpace(payload) == "" {
			continue
		}
		if _, err := tx.Exec(
			"INSERT INTO trip_documents (trip_id, kind, payload) VALUES (?, ?, ?)",
			tripID, kind, payload,
		); err != nil {
			return 0, domain.InternalError{Msg: "failed to insert trip document", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, domain.InternalError{Msg: "failed to commit trip", Err: err}
	}
	committed = true

	return tripID, nil
}

// GetByRef loads a trip by its public reference.
func (r TripRepository) GetByRef(ref string) (models.Trip, error) {
	return r.getOne("trip_ref = ?", strings.TrimSpace(ref))
}

func (r TripRepository) getOne(where string, arg any) (models.Trip, error) {
	var t models.Trip

	db := r.db()
	if db == nil {
		return t, domain.InternalError{Msg: "database not available"}
	}

	var photo sql.NullString
	err := db.QueryRow(`
		SELECT id, trip_ref, driver_name, driver_phone, vehicle_number,
		       route_from, route_to, COALESCE(driver_photo, ''), COALESCE(created_at, '')
		FROM trips
		WHERE `+where+`
		LIMIT 1
	`, arg).Scan(
		&t.ID,
		&t.TripRef,
		&t.DriverName,
		&t.DriverPhone,
		&t.VehicleNumber,
		&t.RouteFrom,
		&t.RouteTo,
		&photo,
		&t.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return t, domain.NotFoundError{Resource: "trip"}
		}
		return t, domain.InternalError{Msg: "failed to query trip", Err: err}
	}
	t.DriverPhoto = photo.String
	return t, nil
}

// ListRecent returns the newest trips first for the trip log.
func (r TripRepository) ListRecent(limit int) ([]models.Trip, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "database not available"}
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := db.Query(`
		SELECT id, trip_ref, driver_name, driver_phone, vehicle_number,
		       route_from, route_to, COALESCE(created_at, '')
		FROM trips
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to list trips", Err: err}
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		var t models.Trip
		if err := rows.Scan(
			&t.ID,
			&t.TripRef,
			&t.DriverName,
			&t.DriverPhone,
			&t.VehicleNumber,
			&t.RouteFrom,
			&t.RouteTo,
			&t.CreatedAt,
		); err != nil {
			return nil, domain.InternalError{Msg: "failed to scan trip", Err: err}
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// DocumentsByTripID lists uploaded documents for a trip.
func (r TripRepository) DocumentsByTripID(tripID int64) ([]models.TripDocument, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "database not available"}
	}

	rows, err := db.Query(`
		SELECT trip_id, kind, payload
		FROM trip_documents
		WHERE trip_id = ?
		ORDER BY id ASC
	`, tripID)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to list trip documents", Err: err}
	}
	defer rows.Close()

	out := []models.TripDocument{}
	for rows.Next() {
		var d models.TripDocument
		if err := rows.Scan(&d.TripID, &d.Kind, &d.Payload); err != nil {
			return nil, domain.InternalError{Msg: "failed to scan trip document", Err: err}
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
