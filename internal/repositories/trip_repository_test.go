package repositories

import (
	"errors"
	"testing"

	"gatepass/internal/domain"
	"gatepass/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestInsertWithPhotoColumn(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("information_schema\\.columns").WithArgs("trips", "driver_photo").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("driver_photo"))
	mock.ExpectExec("INSERT INTO trips").
		WithArgs("ref-1", "Ravi Kumar", "9876543210", "TN-01-AB-1234", "Chennai", "Vizag", "photo-b64").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectExec("INSERT INTO trip_documents").
		WithArgs(int64(3), models.DocRCBook, "rc-data").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO trip_documents").
		WithArgs(int64(3), models.DocInsurance, "ins-data").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	repo := TripRepository{DB: db}
	id, err := repo.Insert(models.TripRequest{
		DriverName:    "Ravi Kumar",
		DriverPhone:   "9876543210",
		VehicleNumber: "TN-01-AB-1234",
		RouteFrom:     "Chennai",
		RouteTo:       "Vizag",
		DriverPhoto:   "photo-b64",
		Documents: map[string]string{
			models.DocRCBook:    "rc-data",
			models.DocInsurance: "ins-data",
		},
	}, "ref-1")
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if id != 3 {
		t.Errorf("id = %d, want 3", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsertDocumentFailureRollsBackTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("information_schema\\.columns").WithArgs("trips", "driver_photo").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}))
	mock.ExpectExec("INSERT INTO trips").
		WithArgs("ref-2", "Ravi Kumar", "9876543210", "TN-01-AB-1234", "Chennai", "Vizag").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO trip_documents").
		WithArgs(int64(7), models.DocRCBook, "rc-data").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	repo := TripRepository{DB: db}
	_, err = repo.Insert(models.TripRequest{
		DriverName:    "Ravi Kumar",
		DriverPhone:   "9876543210",
		VehicleNumber: "TN-01-AB-1234",
		RouteFrom:     "Chennai",
		RouteTo:       "Vizag",
		Documents: map[string]string{
			models.DocRCBook: "rc-data",
		},
	}, "ref-2")
	if !domain.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}

	// the rollback expectation above is the point: the trip row must not
	// survive a failed document write
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetByRefNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id, trip_ref, driver_name").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := TripRepository{DB: db}
	if _, err := repo.GetByRef("missing"); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestListRecent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id, trip_ref, driver_name").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "trip_ref", "driver_name", "driver_phone", "vehicle_number",
			"route_from", "route_to", "created_at",
		}).
			AddRow(9, "ref-9", "B", "9999999999", "KA-05-ZZ-0001", "Bangalore", "Mysore", "2026-01-16").
			AddRow(8, "ref-8", "A", "8888888888", "TN-01-AB-1234", "Chennai", "Vizag", "2026-01-15"))

	repo := TripRepository{DB: db}
	trips, err := repo.ListRecent(0) // 0 falls back to the default page size
	if err != nil {
		t.Fatalf("ListRecent error: %v", err)
	}
	if len(trips) != 2 {
		t.Fatalf("got %d trips", len(trips))
	}
	if trips[0].ID != 9 {
		t.Errorf("newest trip must come first, got id %d", trips[0].ID)
	}
}
