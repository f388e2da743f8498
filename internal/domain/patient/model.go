package patient

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/cathshield/cathshield/internal/risk"
)

// Patient maps to the patient table: one monitored catheter patient,
// identified on the ward by bed number and initials only.
type Patient struct {
	ID                    uuid.UUID           `db:"id" json:"id"`
	BedNumber             string              `db:"bed_number" json:"bed_number"`
	Initials              string              `db:"initials" json:"initials"`
	InsertionDate         time.Time           `db:"insertion_date" json:"insertion_date"`
	Factors               risk.PatientFactors `db:"-" json:"patient_factors"`
	ExpectedAdmissionDays *int                `db:"expected_admission_length_days" json:"expected_admission_length_days,omitempty"`
	CreatedAt             time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time           `db:"updated_at" json:"updated_at"`
}

// DwellHours returns whole hours of catheter dwell time at the given
// instant, floored.
func (p *Patient) DwellHours(now time.Time) float64 {
	h := now.Sub(p.InsertionDate).Hours()
	if h < 0 {
		return 0
	}
	return math.Floor(h)
}

// ConsentLanguage is the language the consent conversation was held in.
type ConsentLanguage string

const (
	ConsentEnglish ConsentLanguage = "English"
	ConsentKannada ConsentLanguage = "Kannada"
	ConsentBoth    ConsentLanguage = "Both"
	ConsentOther   ConsentLanguage = "Other"
)

// Consent maps to the consent table: one recorded consent conversation for a
// patient's monitoring enrollment.
type Consent struct {
	ID               uuid.UUID       `db:"id" json:"id"`
	PatientID        uuid.UUID       `db:"patient_id" json:"patient_id"`
	ConsentGiven     bool            `db:"consent_given" json:"consent_given"`
	LanguageUsed     ConsentLanguage `db:"consent_language_used" json:"consent_language_used"`
	ConsentTimestamp time.Time       `db:"consent_timestamp" json:"consent_timestamp"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
}

// ImageType distinguishes the two photographed views.
type ImageType string

const (
	ImageCatheterSite   ImageType = "catheter_site"
	ImageTractionModule ImageType = "traction_module"
)

// CaptureStatus records whether the bedside capture succeeded.
type CaptureStatus string

const (
	CaptureSuccess CaptureStatus = "success"
	CaptureFailed  CaptureStatus = "failed"
)

// ImageCapture maps to the image_capture table. Only capture metadata is
// stored; the defect flags a capture may eventually yield arrive separately
// as booleans on the assessment request.
type ImageCapture struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	PatientID     uuid.UUID     `db:"patient_id" json:"patient_id"`
	Timestamp     time.Time     `db:"timestamp" json:"timestamp"`
	ImageType     ImageType     `db:"image_type" json:"image_type"`
	ImageURL      string        `db:"image_url" json:"image_url"`
	Notes         *string       `db:"notes" json:"notes,omitempty"`
	CaptureStatus CaptureStatus `db:"capture_status" json:"capture_status"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
}
