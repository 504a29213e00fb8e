// Package passclient holds the client-side gatepass lifecycle: the form
// that collects and validates driver/vehicle/document fields, the
// submission state machine, and the scanner used by checkpoint devices.
package passclient

import (
	"encoding/base64"
	"io"
	"strings"

	"gatepass/internal/domain"
	"gatepass/internal/domain/models"
	"gatepass/internal/utils"
)

// Field names used in validation errors, in the fixed check order.
const (
	FieldPhone     = "driver_phone"
	FieldVehicle   = "vehicle_number"
	FieldDocuments = "documents"
)

// Form collects a pass request. Setters apply the field formatters as the
// value changes and clear that field's error immediately, matching the
// as-you-type behavior of the dashboard.
type Form struct {
	driverName    string
	driverPhone   string
	vehicleNumber string
	routeFrom     string
	routeTo       string
	driverPhoto   string
	documents     map[string]string
	errs          map[string]string
}

func NewForm() *Form {
	return &Form{
		documents: map[string]string{},
		errs:      map[string]string{},
	}
}

func (f *Form) SetDriverName(v string) {
	f.driverName = strings.TrimSpace(v)
}

// SetDriverPhone keeps only digits, at most ten of them.
func (f *Form) SetDriverPhone(v string) {
	f.driverPhone = utils.FormatPhone(v)
	delete(f.errs, FieldPhone)
}

// SetVehicleNumber applies the progressive plate formatter.
func (f *Form) SetVehicleNumber(v string) {
	f.vehicleNumber = utils.FormatVehicleNumber(v)
	delete(f.errs, FieldVehicle)
}

func (f *Form) SetRouteFrom(v string) { f.routeFrom = strings.TrimSpace(v) }

func (f *Form) SetRouteTo(v string) { f.routeTo = strings.TrimSpace(v) }

func (f *Form) SetDriverPhoto(b64 string) { f.driverPhoto = b64 }

// AttachDocument stores an already-encoded document payload.
func (f *Form) AttachDocument(kind, payload string) {
	if strings.TrimSpace(payload) == "" {
		return
	}
	f.documents[kind] = payload
	delete(f.errs, FieldDocuments)
}

// AttachDocumentFile reads and encodes an uploaded file in one shot.
// Either the document is attached or an error comes back; no partial state.
func (f *Form) AttachDocumentFile(kind string, r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.AttachDocument(kind, base64.StdEncoding.EncodeToString(raw))
	return nil
}

func (f *Form) DriverPhone() string   { return f.driverPhone }
func (f *Form) VehicleNumber() string { return f.vehicleNumber }

// FieldError returns the recorded error for a field, if any.
func (f *Form) FieldError(field string) string { return f.errs[field] }

// Validate checks submittability in the fixed order phone, vehicle number,
// mandatory document, and returns the first failure only. The failing
// field's message is also recorded for display.
func (f *Form) Validate() error {
	if !utils.ValidPhone(f.driverPhone) {
		return f.fail(FieldPhone, "phone must be exactly 10 digits")
	}
	if !utils.ValidVehicleNumber(f.vehicleNumber) {
		return f.fail(FieldVehicle, "invalid format, expected TN-01-AB-1234")
	}
	if strings.TrimSpace(f.documents[models.DocRCBook]) == "" {
		return f.fail(FieldDocuments, "RC book proof is mandatory")
	}
	return nil
}

func (f *Form) fail(field, msg string) error {
	f.errs[field] = msg
	return domain.ValidationError{Field: field, Msg: msg}
}

// BuildRequest assembles the submission payload from the current fields.
func (f *Form) BuildRequest() models.TripRequest {
	docs := make(map[string]string, len(f.documents))
	for k, v := range f.documents {
		docs[k] = v
	}
	return models.TripRequest{
		DriverName:    f.driverName,
		DriverPhone:   f.driverPhone,
		VehicleNumber: f.vehicleNumber,
		RouteFrom:     f.routeFrom,
		RouteTo:       f.routeTo,
		DriverPhoto:   f.driverPhoto,
		Documents:     docs,
	}
}
