package models

// Document kinds attached to a trip request. RCBook is the only mandatory
// proof; the rest are optional compliance documents.
const (
	DocRCBook    = "rc_book"
	DocInsurance = "insurance"
	DocPUCCert   = "puc_cert"
	DocPermit    = "permit"
)

// DocumentKinds lists the known kinds in display order.
var DocumentKinds = []string{DocRCBook, DocInsurance, DocPUCCert, DocPermit}

// DocumentLabels maps a kind to its operator-facing name.
var DocumentLabels = map[string]string{
	DocRCBook:    "RC Book",
	DocInsurance: "Insurance",
	DocPUCCert:   "Pollution (PUC)",
	DocPermit:    "National Permit",
}

// TripRequest is the submission payload for a new gatepass.
// Documents maps kind -> base64 payload (data URL accepted as-is).
type TripRequest struct {
	DriverName    string            `json:"driver_name"`
	DriverPhone   string            `json:"driver_phone"`
	VehicleNumber string            `json:"vehicle_number"`
	RouteFrom     string            `json:"route_from"`
	RouteTo       string            `json:"route_to"`
	DriverPhoto   string            `json:"driver_photo,omitempty"`
	Documents     map[string]string `json:"documents"`
}

// Trip is the stored record behind an issued pass.
type Trip struct {
	ID            int64  `json:"id"`
	TripRef       string `json:"trip_ref"`
	DriverName    string `json:"driver_name"`
	DriverPhone   string `json:"driver_phone"`
	VehicleNumber string `json:"vehicle_number"`
	RouteFrom     string `json:"route_from"`
	RouteTo       string `json:"route_to"`
	DriverPhoto   string `json:"driver_photo,omitempty"`
	CreatedAt     string `json:"created_at"`
}

// TripDocument is one uploaded proof belonging to a trip.
type TripDocument struct {
	TripID  int64  `json:"trip_id"`
	Kind    string `json:"kind"`
	Payload string `json:"payload"`
}

// IssuedPass is the issuance response artifact: an opaque reference plus
// the QR PNG encoding the signed token. Held in memory only.
type IssuedPass struct {
	TripRef  string `json:"trip_ref"`
	QRBase64 string `json:"qr_base64"`
}

// DocumentStatus is one line of the verification result checklist.
type DocumentStatus struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Image  string `json:"image,omitempty"`
}

// VerificationResult is what the scanner displays after a successful
// verification. Received, never mutated.
type VerificationResult struct {
	Status     string           `json:"status"`
	Driver     string           `json:"driver"`
	Phone      string           `json:"phone"`
	Vehicle    string           `json:"vehicle"`
	Route      string           `json:"route"`
	Photo      string           `json:"photo,omitempty"`
	Documents  []DocumentStatus `json:"documents"`
	VerifiedAt string           `json:"verified_at"`
}
