package passclient

import (
	"errors"
	"strings"
	"testing"

	"gatepass/internal/domain"
	"gatepass/internal/domain/models"
)

func validForm() *Form {
	f := NewForm()
	f.SetDriverName("Ravi Kumar")
	f.SetDriverPhone("9876543210")
	f.SetVehicleNumber("tn01ab1234")
	f.SetRouteFrom("Chennai")
	f.SetRouteTo("Vizag")
	f.AttachDocument(models.DocRCBook, "rc-data")
	return f
}

func TestFormSettersApplyFormatters(t *testing.T) {
	f := NewForm()
	f.SetDriverPhone("+91 98765-43210 junk")
	if got := f.DriverPhone(); got != "9198765432" {
		t.Errorf("phone = %q, want formatted 10 digits", got)
	}
	f.SetVehicleNumber("tn01ab1234")
	if got := f.VehicleNumber(); got != "TN-01-AB-1234" {
		t.Errorf("vehicle = %q, want TN-01-AB-1234", got)
	}
}

func TestValidateFixedOrder(t *testing.T) {
	f := NewForm()
	f.SetDriverPhone("123")
	f.SetVehicleNumber("bad")

	// phone reported first even though vehicle and documents also fail
	err := f.Validate()
	var verr domain.ValidationError
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.As(err, &verr) || verr.Field != FieldPhone {
		t.Fatalf("first error = %v, want %s", err, FieldPhone)
	}

	f.SetDriverPhone("9876543210")
	err = f.Validate()
	if !errors.As(err, &verr) || verr.Field != FieldVehicle {
		t.Fatalf("second error = %v, want %s", err, FieldVehicle)
	}

	f.SetVehicleNumber("tn01ab1234")
	err = f.Validate()
	if !errors.As(err, &verr) || verr.Field != FieldDocuments {
		t.Fatalf("third error = %v, want %s", err, FieldDocuments)
	}

	f.AttachDocument(models.DocRCBook, "rc-data")
	if err := f.Validate(); err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}
}

func TestMissingMandatoryDocumentBlocksValidFields(t *testing.T) {
	f := validForm()
	f.documents = map[string]string{models.DocInsurance: "ins-data"}

	err := f.Validate()
	var verr domain.ValidationError
	if !errors.As(err, &verr) || verr.Field != FieldDocuments {
		t.Fatalf("error = %v, want the document error specifically", err)
	}
}

func TestErrorsClearOnFieldChange(t *testing.T) {
	f := NewForm()
	_ = f.Validate()
	if f.FieldError(FieldPhone) == "" {
		t.Fatal("expected recorded phone error")
	}
	f.SetDriverPhone("9")
	if f.FieldError(FieldPhone) != "" {
		t.Errorf("phone error should clear the instant the field changes")
	}
}

func TestAttachDocumentFile(t *testing.T) {
	f := NewForm()
	if err := f.AttachDocumentFile(models.DocRCBook, strings.NewReader("rc file bytes")); err != nil {
		t.Fatalf("AttachDocumentFile error: %v", err)
	}
	req := f.BuildRequest()
	if req.Documents[models.DocRCBook] == "" {
		t.Errorf("expected encoded rc_book payload in request")
	}
}

func TestBuildRequestCopiesDocuments(t *testing.T) {
	f := validForm()
	req := f.BuildRequest()
	req.Documents["tampered"] = "x"
	if _, ok := f.documents["tampered"]; ok {
		t.Errorf("BuildRequest must not share the documents map")
	}
}
